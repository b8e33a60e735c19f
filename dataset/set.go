package dataset

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Error represents an error related with datasets
type Error string

/*
ErrInvalidDataset is the error returned when a dataset cannot be used to
grow a tree: it has no rows, its rows have different lengths or there is
no attribute column besides the outcome.
*/
const ErrInvalidDataset = Error("invalid dataset")

func (e Error) Error() string {
	return string(e)
}

/*
Dataset represents a collection of rows of categorical values. The last
value of every row is the outcome, the rest are attribute values.

Partitions of a dataset physically drop the column they were split on, so
every dataset also keeps the original index of each of its attribute
columns.
*/
type Dataset struct {
	rows       [][]string
	attributes []int
}

/*
New takes a slice of rows and returns a dataset built with them or an
ErrInvalidDataset error if there are no rows, rows have different lengths,
or rows lack at least one attribute column and the outcome column.
The rows are not copied.
*/
func New(rows [][]string) (*Dataset, error) {
	if err := Validate(rows); err != nil {
		return nil, err
	}
	attributes := make([]int, len(rows[0])-1)
	for i := range attributes {
		attributes[i] = i
	}
	return &Dataset{rows: rows, attributes: attributes}, nil
}

/*
Validate takes a slice of rows and returns a wrapped ErrInvalidDataset if
they cannot form a dataset, nil otherwise.
*/
func Validate(rows [][]string) error {
	if len(rows) == 0 {
		return errors.Wrap(ErrInvalidDataset, "no rows")
	}
	columns := len(rows[0])
	if columns < 2 {
		return errors.Wrapf(ErrInvalidDataset, "%d columns, need at least one attribute and the outcome", columns)
	}
	for i, row := range rows {
		if len(row) != columns {
			return errors.Wrapf(ErrInvalidDataset, "row %d has %d columns, expected %d", i, len(row), columns)
		}
	}
	return nil
}

// Count returns the number of rows in the dataset
func (d *Dataset) Count() int {
	return len(d.rows)
}

// Columns returns the number of columns of the rows in the dataset,
// outcome included, or 0 for an empty dataset.
func (d *Dataset) Columns() int {
	if len(d.rows) == 0 {
		return 0
	}
	return len(d.rows[0])
}

// Rows returns the rows of the dataset. They must not be modified.
func (d *Dataset) Rows() [][]string {
	return d.rows
}

/*
Attribute takes the position of an attribute column in the dataset and
returns the index that column had in the original dataset, or -1 if the
position is not an attribute column.
*/
func (d *Dataset) Attribute(column int) int {
	if column < 0 || column >= len(d.attributes) {
		return -1
	}
	return d.attributes[column]
}

// Attributes returns the original indexes of the attribute columns left in
// the dataset
func (d *Dataset) Attributes() []int {
	return d.attributes
}

/*
Outcome returns the outcome of the first row in the dataset. It panics on an
empty dataset.
*/
func (d *Dataset) Outcome() string {
	row := d.rows[0]
	return row[len(row)-1]
}

/*
GroupByValue takes a column position and divides the dataset by the
different values found in that column. Every resulting subset holds the
rows sharing a value, with the column removed.

A column equal to the number of columns stands for the outcome column and is
treated as the last one.

The dataset is not modified.
*/
func (d *Dataset) GroupByValue(column int) map[string]*Dataset {
	if column == d.Columns() {
		column--
	}
	attributes := d.attributes
	if column < len(d.attributes) {
		attributes = without(d.attributes, column)
	}
	groups := make(map[string]*Dataset)
	for _, row := range d.rows {
		value := row[column]
		group, ok := groups[value]
		if !ok {
			group = &Dataset{attributes: attributes}
			groups[value] = group
		}
		group.rows = append(group.rows, without(row, column))
	}
	return groups
}

/*
Entropy returns the Shannon entropy (natural logarithm) of the outcome
distribution in the dataset. It is 0 exactly when all rows share the same
outcome.

The dataset must not be empty: Entropy panics otherwise.
*/
func (d *Dataset) Entropy() float64 {
	if len(d.rows) == 0 {
		panic("dataset: entropy of an empty dataset")
	}
	var result float64
	total := float64(len(d.rows))
	groups := d.GroupByValue(d.Columns())
	for _, v := range Values(groups) {
		p := float64(len(groups[v].rows)) / total
		result -= p * math.Log(p)
	}
	return result
}

/*
Values takes the result of GroupByValue and returns its values sorted, so
that computations over all the groups run in the same order every time.
*/
func Values(groups map[string]*Dataset) []string {
	values := make([]string, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func without[T any](s []T, i int) []T {
	result := make([]T, 0, len(s)-1)
	result = append(result, s[:i]...)
	return append(result, s[i+1:]...)
}
