package json

import (
	"bytes"
	"testing"

	"github.com/khmariem/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherTree() *tree.Tree {
	humidity := tree.NewInternal(2, "humidity")
	humidity.Children["high"] = tree.NewLeaf("no")
	humidity.Children["normal"] = tree.NewLeaf("yes")
	wind := tree.NewInternal(3, "wind")
	wind.Children["strong"] = tree.NewLeaf("no")
	wind.Children["weak"] = tree.NewLeaf("yes")
	root := tree.NewInternal(0, "weather")
	root.Children["overcast"] = tree.NewLeaf("yes")
	root.Children["sunny"] = humidity
	root.Children["rain"] = wind
	return tree.New(root, []string{"weather", "temperature", "humidity", "wind", "decision"})
}

func TestMarshal(t *testing.T) {
	leafTree := tree.New(tree.NewLeaf("yes"), nil)
	data, err := Marshal(leafTree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":{"label":"yes"}}`, string(data))

	root := tree.NewInternal(0, "")
	root.Children["a"] = tree.NewLeaf("x")
	data, err = Marshal(tree.New(root, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":{"attribute":0,"children":{"a":{"label":"x"}}}}`, string(data))
}

func TestWriteReadJSONTree(t *testing.T) {
	original := weatherTree()
	var buf bytes.Buffer
	require.NoError(t, WriteJSONTree(original, &buf))
	read, err := ReadJSONTree(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, read)
	assert.Equal(t, original.String(), read.String())
}

func TestUnmarshalErrors(t *testing.T) {
	cases := map[string]string{
		"not json":         `{`,
		"no root":          `{"attributes":["a","b"]}`,
		"empty node":       `{"root":{}}`,
		"label and split":  `{"root":{"label":"x","attribute":0}}`,
		"no children":      `{"root":{"attribute":1}}`,
		"negative index":   `{"root":{"attribute":-1,"children":{"a":{"label":"x"}}}}`,
		"null child":       `{"root":{"attribute":0,"children":{"a":null}}}`,
		"invalid grandkid": `{"root":{"attribute":0,"children":{"a":{"attribute":1,"children":{"b":{}}}}}}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestMarshalNil(t *testing.T) {
	_, err := Marshal(nil)
	assert.Error(t, err)
}
