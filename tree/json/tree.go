/*
Package json provides the means to serialize trees as JSON documents and
to read them back.
*/
package json

import (
	"encoding/json"
	"io"

	"github.com/khmariem/id3/tree"
	"github.com/pkg/errors"
)

type jsonTree struct {
	Attributes []string  `json:"attributes,omitempty"`
	Root       *jsonNode `json:"root"`
}

type jsonNode struct {
	Label     *string              `json:"label,omitempty"`
	Attribute *int                 `json:"attribute,omitempty"`
	Name      string               `json:"name,omitempty"`
	Children  map[string]*jsonNode `json:"children,omitempty"`
}

/*
Marshal takes a tree and returns it serialized as a JSON object with
the following fields:
* "attributes": an array with the column names of the dataset the tree was
  grown from, omitted if unknown
* "root": the root node of the tree.
A leaf is serialized as an object with its "label", an internal node as an
object with its "attribute" index, optional "name" and "children" object
mapping every attribute value to its subtree.
*/
func Marshal(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root == nil {
		return nil, errors.New("cannot marshal a tree without root")
	}
	root, err := marshalNode(t.Root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&jsonTree{t.Attributes, root})
}

// Unmarshal takes a slice of bytes with a tree serialized by Marshal and
// returns the tree or an error.
func Unmarshal(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, err
	}
	if jt.Root == nil {
		return nil, errors.New("no root node available")
	}
	root, err := unmarshalNode(jt.Root)
	if err != nil {
		return nil, err
	}
	return tree.New(root, jt.Attributes), nil
}

/*
WriteJSONTree takes a tree and an io.Writer and serializes the tree as JSON
with Marshal onto the io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

/*
ReadJSONTree takes an io.Reader and returns the tree serialized as JSON
on it or an error if the JSON cannot be read from the io.Reader or
unmarshalled onto a tree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

func marshalNode(n tree.Node) (*jsonNode, error) {
	switch node := n.(type) {
	case *tree.Leaf:
		label := node.Label
		return &jsonNode{Label: &label}, nil
	case *tree.Internal:
		attribute := node.Attribute
		jn := &jsonNode{Attribute: &attribute, Name: node.Name, Children: make(map[string]*jsonNode, len(node.Children))}
		for v, c := range node.Children {
			jc, err := marshalNode(c)
			if err != nil {
				return nil, err
			}
			jn.Children[v] = jc
		}
		return jn, nil
	}
	return nil, errors.Errorf("unknown node type %T", n)
}

func unmarshalNode(jn *jsonNode) (tree.Node, error) {
	if jn == nil {
		return nil, errors.New("null node")
	}
	if jn.Label != nil {
		if jn.Attribute != nil || len(jn.Children) > 0 {
			return nil, errors.Errorf("node with label %q cannot have attribute or children", *jn.Label)
		}
		return tree.NewLeaf(*jn.Label), nil
	}
	if jn.Attribute == nil {
		return nil, errors.New("node has neither label nor attribute")
	}
	if *jn.Attribute < 0 {
		return nil, errors.Errorf("invalid attribute index %d", *jn.Attribute)
	}
	if len(jn.Children) == 0 {
		return nil, errors.Errorf("node splitting on attribute %d has no children", *jn.Attribute)
	}
	n := tree.NewInternal(*jn.Attribute, jn.Name)
	for v, jc := range jn.Children {
		c, err := unmarshalNode(jc)
		if err != nil {
			return nil, errors.Wrapf(err, "child %q of attribute %d", v, *jn.Attribute)
		}
		n.Children[v] = c
	}
	return n, nil
}
