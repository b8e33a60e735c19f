package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/khmariem/id3/feature"
	"github.com/pkg/errors"
)

// Tree represents a decision tree grown from a categorical dataset. It is
// composed of its root node and the names of the columns of the dataset it
// was grown from, the outcome being the last one.
type Tree struct {
	Root       Node
	Attributes []string
}

/*
Rule is the path from the root of a tree to one of its leaves: the criteria
a sample must satisfy to reach it and the outcome predicted there.
*/
type Rule struct {
	Criteria []feature.Criterion
	Outcome  string
}

// New takes the root node and the column names and returns a tree. The
// names may be nil.
func New(root Node, attributes []string) *Tree {
	return &Tree{root, attributes}
}

// Label returns the name of the outcome the tree predicts or an empty
// string if the tree has no column names.
func (t *Tree) Label() string {
	if len(t.Attributes) == 0 {
		return ""
	}
	return t.Attributes[len(t.Attributes)-1]
}

/*
Predict takes a sample, a row with values for the columns of the original
dataset (the outcome may be omitted), and returns the outcome predicted by
the tree for it or an error if the prediction could not be made.
*/
func (t *Tree) Predict(sample []string) (string, error) {
	if t == nil || t.Root == nil {
		return "", errors.New("nil tree cannot predict samples")
	}
	n := t.Root
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Label, nil
		case *Internal:
			if node.Attribute >= len(sample) {
				return "", ErrSampleTooShort
			}
			child, ok := node.Children[sample[node.Attribute]]
			if !ok {
				return "", ErrCannotPredictFromSample
			}
			n = child
		default:
			return "", errors.Errorf("unknown node type %T", n)
		}
	}
}

/*
Test takes a slice of rows with the outcome as last value and returns three values:
 * the prediction success rate of the tree over the given rows
 * the number of failing predictions because of ErrCannotPredictFromSample errors
 * an error if a prediction could not be made for reasons other than the tree not
   being able to do so. If this is not nil, the other values will be 0.0 and 0
   respectively
*/
func (t *Tree) Test(rows [][]string) (float64, int, error) {
	if len(rows) == 0 {
		return 0.0, 0, nil
	}
	var result float64
	var errCount int
	for i, row := range rows {
		if len(row) == 0 {
			return 0.0, 0, errors.Errorf("testing row %d: empty row", i)
		}
		p, err := t.Predict(row)
		if err != nil {
			if err != ErrCannotPredictFromSample {
				return 0.0, 0, errors.Wrapf(err, "testing row %d", i)
			}
			errCount++
			continue
		}
		if p == row[len(row)-1] {
			result += 1.0
		}
	}
	return result / float64(len(rows)), errCount, nil
}

// Traverse takes a function and goes through the tree depth first, calling
// it with every node and the criteria leading to it from the root. Children
// are visited in value order. The traversing is aborted and the error
// returned as soon as the function returns one.
func (t *Tree) Traverse(f func([]feature.Criterion, Node) error) error {
	if t.Root == nil {
		return nil
	}
	return t.traverse(nil, t.Root, f)
}

func (t *Tree) traverse(path []feature.Criterion, n Node, f func([]feature.Criterion, Node) error) error {
	err := f(path, n)
	if err != nil {
		return err
	}
	in, ok := n.(*Internal)
	if !ok {
		return nil
	}
	for _, value := range sortedValues(in) {
		c := feature.Criterion{Index: in.Attribute, Name: in.Name, Value: value}
		subpath := append(append(make([]feature.Criterion, 0, len(path)+1), path...), c)
		err = t.traverse(subpath, in.Children[value], f)
		if err != nil {
			return err
		}
	}
	return nil
}

// Rules returns a rule for every leaf of the tree
func (t *Tree) Rules() []Rule {
	var rules []Rule
	t.Traverse(func(path []feature.Criterion, n Node) error {
		if l, ok := n.(*Leaf); ok {
			rules = append(rules, Rule{path, l.Label})
		}
		return nil
	})
	return rules
}

// Depth returns the number of internal nodes on the longest path from the
// root to a leaf.
func (t *Tree) Depth() int {
	var depth int
	t.Traverse(func(path []feature.Criterion, n Node) error {
		if len(path) > depth {
			depth = len(path)
		}
		return nil
	})
	return depth
}

/*
Map returns the tree as nested maps: an internal node becomes a map with the
attribute name as only key, pointing to a map from each attribute value to
the corresponding subtree; a leaf becomes its label string.
*/
func (t *Tree) Map() interface{} {
	return nodeMap(t.Root)
}

func nodeMap(n Node) interface{} {
	switch node := n.(type) {
	case *Leaf:
		return node.Label
	case *Internal:
		children := make(map[string]interface{}, len(node.Children))
		for v, c := range node.Children {
			children[v] = nodeMap(c)
		}
		return map[string]interface{}{node.attributeName(): children}
	}
	return nil
}

func (r Rule) String() string {
	cs := make([]string, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		cs = append(cs, c.String())
	}
	return fmt.Sprintf("if %s then %s", strings.Join(cs, " and "), r.Outcome)
}

func (t *Tree) String() string {
	if t.Root == nil {
		return ""
	}
	return subtreeString(t.Root)
}

func subtreeString(n Node) string {
	in, ok := n.(*Internal)
	if !ok {
		return fmt.Sprintf("%s\n", n.(*Leaf).Label)
	}
	result := fmt.Sprintf("[%s]\n", in.attributeName())
	values := sortedValues(in)
	for i, value := range values {
		for j, line := range strings.Split(subtreeString(in.Children[value]), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__ %s: %s\n", result, value, line)
			} else if i == len(values)-1 {
				result = fmt.Sprintf("%s    %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|   %s\n", result, line)
			}
		}
	}
	return result
}

func sortedValues(n *Internal) []string {
	values := make([]string, 0, len(n.Children))
	for v := range n.Children {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
