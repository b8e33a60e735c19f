/*
Package sqlset reads sets from and writes sets to SQL database tables.

Every column of a set is stored as a TEXT column of the table, named after
it. NULL values are rejected when reading, as trees need a value for every
column.
*/
package sqlset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/khmariem/id3/set"
	"github.com/pkg/errors"
)

/*
Adapter is an interface providing the methods
needed to work with a set on a database backend.
*/
type Adapter interface {
	// DB returns the handle to the database
	DB() *sql.DB
	// QuoteIdentifier takes a table or column name and returns it quoted
	// for use in statements, or an error if it cannot be used.
	QuoteIdentifier(string) (string, error)
	// Placeholder returns the bind parameter for the i-th argument of a
	// statement, starting at 1.
	Placeholder(i int) string
}

/*
ReadSet takes a context, an adapter, a table name and the names of the
columns to read and returns the set with the rows of the table or an error.
When no column names are given, all the columns of the table are read in
their declaration order.
*/
func ReadSet(ctx context.Context, a Adapter, table string, names []string) (*set.Set, error) {
	stmt, err := selectStatement(a, table, names)
	if err != nil {
		return nil, err
	}
	rows, err := a.DB().QueryContext(ctx, stmt)
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()
	if len(names) == 0 {
		names, err = rows.Columns()
		if err != nil {
			return nil, errors.Wrapf(err, "listing columns of table %s", table)
		}
	}
	s := &set.Set{Names: names}
	values := make([]sql.NullString, len(names))
	dest := make([]interface{}, len(names))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, errors.Wrapf(err, "reading row %d of table %s", len(s.Rows)+1, table)
		}
		row := make([]string, len(values))
		for i, v := range values {
			if !v.Valid {
				return nil, errors.Errorf("row %d of table %s has no value for %s", len(s.Rows)+1, table, names[i])
			}
			row[i] = v.String
		}
		s.Rows = append(s.Rows, row)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading table %s", table)
	}
	return s, nil
}

/*
WriteSet takes a context, an adapter, a table name and a set and stores the
rows of the set on the table, creating it if it does not exist. It returns
the number of rows written or an error. Rows are written in a single
transaction: on error none of them are.
*/
func WriteSet(ctx context.Context, a Adapter, table string, s *set.Set) (int, error) {
	createStmt, err := createStatement(a, table, s.Names)
	if err != nil {
		return 0, err
	}
	insertStmt, err := insertStatement(a, table, s.Names)
	if err != nil {
		return 0, err
	}
	tx, err := a.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, createStmt)
	if err != nil {
		return 0, errors.Wrapf(err, "ensuring table %s exists", table)
	}
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return 0, errors.Wrap(err, "preparing insert command")
	}
	defer stmt.Close()
	for i, row := range s.Rows {
		args := make([]interface{}, 0, len(row))
		for _, v := range row {
			args = append(args, v)
		}
		_, err = stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, errors.Wrapf(err, "inserting row %d", i+1)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing rows")
	}
	return len(s.Rows), nil
}

func selectStatement(a Adapter, table string, names []string) (string, error) {
	qt, err := a.QuoteIdentifier(table)
	if err != nil {
		return "", err
	}
	columns := "*"
	if len(names) > 0 {
		qcs, err := quoteAll(a, names)
		if err != nil {
			return "", err
		}
		columns = strings.Join(qcs, ", ")
	}
	return fmt.Sprintf("SELECT %s FROM %s", columns, qt), nil
}

func createStatement(a Adapter, table string, names []string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("no columns to store")
	}
	qt, err := a.QuoteIdentifier(table)
	if err != nil {
		return "", err
	}
	qcs, err := quoteAll(a, names)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s TEXT NOT NULL)", qt, strings.Join(qcs, " TEXT NOT NULL, ")), nil
}

func insertStatement(a Adapter, table string, names []string) (string, error) {
	qt, err := a.QuoteIdentifier(table)
	if err != nil {
		return "", err
	}
	qcs, err := quoteAll(a, names)
	if err != nil {
		return "", err
	}
	placeholders := make([]string, 0, len(names))
	for i := range names {
		placeholders = append(placeholders, a.Placeholder(i+1))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", qt, strings.Join(qcs, ", "), strings.Join(placeholders, ", ")), nil
}

func quoteAll(a Adapter, names []string) ([]string, error) {
	result := make([]string, 0, len(names))
	for _, n := range names {
		q, err := a.QuoteIdentifier(n)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, nil
}
