package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/khmariem/id3/set/sqlset"
	"github.com/pkg/errors"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a maximum number of
connections (0 for no limit) and returns an Adapter that works on the file's
database or an error if it fails to open as an sqlite3 database.
*/
func New(path string, maxConns int) (sqlset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening SQLite3 database %s", path)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) QuoteIdentifier(name string) (string, error) {
	return quoteIdentifier(name)
}

func (a *adapter) Placeholder(int) string {
	return "?"
}

func quoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty names cannot be used as identifiers")
	}
	if strings.ContainsAny(name, `"`) {
		return "", errors.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}
