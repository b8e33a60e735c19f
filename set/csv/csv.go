/*
Package csv reads and writes sets as CSV streams whose first row holds the
column names.
*/
package csv

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/khmariem/id3/set"
	"github.com/pkg/errors"
)

/*
ReadSet takes an io.Reader for a CSV stream and returns the set parsed from
it or an error.

The header or first row of the CSV content is expected to consist of the
names of the columns. The rest of the rows should have a value for every
column. Values are trimmed of surrounding spaces.
*/
func ReadSet(reader io.Reader) (*set.Set, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("reading header: empty input")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	names := trimAll(header)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return nil, errors.New("parsing header: empty column name")
		}
		if seen[n] {
			return nil, errors.Errorf("parsing header: column %s appears twice", n)
		}
		seen[n] = true
	}
	s := &set.Set{Names: names}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading line %d", l)
		}
		s.Rows = append(s.Rows, trimAll(row))
	}
	return s, nil
}

/*
ReadSetFromFilePath takes a filepath string, opens the file to which the
filepath points to and uses ReadSet to return the set read from it or an
error. An empty filepath stands for STDIN.
*/
func ReadSetFromFilePath(filepath string) (*set.Set, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", filepath)
		}
		defer f.Close()
	}
	s, err := ReadSet(f)
	if err != nil {
		err = errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return s, err
}

// WriteSet takes an io.Writer and a set and writes the set as CSV onto it,
// column names first.
func WriteSet(w io.Writer, s *set.Set) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Names); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return errors.Wrap(err, "writing rows")
	}
	return nil
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.TrimSpace(v))
	}
	return result
}
