package csv

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/khmariem/id3/set"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = `weather,temperature,humidity,wind,decision
sunny, hot, high, weak, no
overcast,hot,high,weak,yes
rain ,mild,high,strong,no
`

func TestReadSet(t *testing.T) {
	s, err := ReadSet(strings.NewReader(weatherCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"weather", "temperature", "humidity", "wind", "decision"}, s.Names)
	assert.Equal(t, [][]string{
		{"sunny", "hot", "high", "weak", "no"},
		{"overcast", "hot", "high", "weak", "yes"},
		{"rain", "mild", "high", "strong", "no"},
	}, s.Rows)
}

func TestReadSetErrors(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"duplicate column": "a,a,decision\n",
		"empty column":     "a,,decision\n",
		"ragged row":       "a,decision\nx,y,z\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSet(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestReadSetHeaderOnly(t *testing.T) {
	s, err := ReadSet(strings.NewReader("a,decision\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Count())
}

func TestWriteSet(t *testing.T) {
	original := &set.Set{
		Names: []string{"weather", "decision"},
		Rows:  [][]string{{"sunny", "no"}, {"rain, light", "yes"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSet(&buf, original))
	assert.Equal(t, "weather,decision\nsunny,no\n\"rain, light\",yes\n", buf.String())
	read, err := ReadSet(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, read)
}

func TestReadSetFromMissingFile(t *testing.T) {
	_, err := ReadSetFromFilePath("testdata/missing.csv")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
