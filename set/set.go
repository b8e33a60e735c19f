/*
Package set provides the tables of categorical values that trees are
grown from and tested against, as read from CSV files, SQL databases or
MongoDB collections.
*/
package set

import (
	"github.com/khmariem/id3/feature"
	"github.com/pkg/errors"
)

/*
Set is a table of categorical values: the names of its columns and its
rows, every row having a value for every column.
*/
type Set struct {
	Names []string
	Rows  [][]string
}

// Count returns the number of rows in the set
func (s *Set) Count() int {
	return len(s.Rows)
}

/*
Select takes a slice of column names and returns a new set with only those
columns, in the given order, or an error if a column is not in the set.
*/
func (s *Set) Select(names []string) (*Set, error) {
	indexes := make([]int, 0, len(names))
	for _, name := range names {
		i := s.indexOf(name)
		if i < 0 {
			return nil, errors.Errorf("set has no column %s", name)
		}
		indexes = append(indexes, i)
	}
	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		selected := make([]string, 0, len(indexes))
		for _, i := range indexes {
			selected = append(selected, row[i])
		}
		rows = append(rows, selected)
	}
	return &Set{Names: append([]string(nil), names...), Rows: rows}, nil
}

/*
WithOutcome takes the name of a column and returns a new set with that
column moved to the last position, where trees expect the outcome, or an
error if the set has no such column.
*/
func (s *Set) WithOutcome(name string) (*Set, error) {
	if s.indexOf(name) < 0 {
		return nil, errors.Errorf("outcome feature '%s' is not defined", name)
	}
	names := make([]string, 0, len(s.Names))
	for _, n := range s.Names {
		if n != name {
			names = append(names, n)
		}
	}
	return s.Select(append(names, name))
}

/*
Validate takes a slice of features and returns an error if a column of the
set is not one of the features or a row takes a value that is not
available for its feature.
*/
func (s *Set) Validate(features []*feature.Feature) error {
	byName := make(map[string]*feature.Feature, len(features))
	for _, f := range features {
		byName[f.Name()] = f
	}
	columns := make([]*feature.Feature, 0, len(s.Names))
	for _, name := range s.Names {
		f, ok := byName[name]
		if !ok {
			return errors.Errorf("reference to unknown feature %s", name)
		}
		columns = append(columns, f)
	}
	for i, row := range s.Rows {
		if len(row) != len(columns) {
			return errors.Errorf("row %d has %d values for %d columns", i, len(row), len(columns))
		}
		for j, v := range row {
			if err := columns[j].Valid(v); err != nil {
				return errors.Wrapf(err, "row %d", i)
			}
		}
	}
	return nil
}

func (s *Set) indexOf(name string) int {
	for i, n := range s.Names {
		if n == name {
			return i
		}
	}
	return -1
}
