package pgadapter

import (
	"database/sql"
	"fmt"

	"github.com/khmariem/id3/set/sqlset"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL connection URL and returns an Adapter that works on
its database or an error if the URL cannot be used.
*/
func New(url string) (sqlset.Adapter, error) {
	connector, err := pq.NewConnector(url)
	if err != nil {
		return nil, errors.Wrap(err, "parsing PostgreSQL URL")
	}
	return &adapter{sql.OpenDB(connector)}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty names cannot be used as identifiers")
	}
	return pq.QuoteIdentifier(name), nil
}

func (a *adapter) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}
