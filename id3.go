/*
Package id3 grows decision trees from categorical datasets with the ID3
algorithm: the dataset is split on the attribute with the highest
information gain and every split is grown the same way until it is pure or
runs out of attributes. Trees are not pruned.
*/
package id3

import (
	"github.com/khmariem/id3/dataset"
	"github.com/khmariem/id3/tree"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Error represents an error related with growing trees
type Error string

/*
ErrUnresolvedAttribute is the error returned when an attribute selected for
a split has no name among the attribute names given to the DecisionTree.
*/
const ErrUnresolvedAttribute = Error("unresolved attribute")

func (e Error) Error() string {
	return string(e)
}

/*
DecisionTree holds a training dataset and the settings to grow trees
from it.
*/
type DecisionTree struct {
	data   *dataset.Dataset
	names  []string
	logger *zap.Logger
}

// Option configures a DecisionTree
type Option func(*DecisionTree)

/*
WithAttributeNames sets human readable names for the columns of the
training dataset, one per column and the outcome last. Internal nodes of
grown trees carry the name of their attribute.
*/
func WithAttributeNames(names []string) Option {
	return func(dt *DecisionTree) {
		dt.names = names
	}
}

// WithLogger sets the logger that traces every split at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(dt *DecisionTree) {
		dt.logger = logger
	}
}

/*
New takes the rows of a training dataset, the outcome being the last value
of every row, and a set of options and returns a DecisionTree or an error.

A dataset.ErrInvalidDataset error is returned if the rows are empty,
have different lengths or lack attribute columns. An ErrUnresolvedAttribute
error is returned if attribute names were given and there is not exactly
one per column.
*/
func New(rows [][]string, opts ...Option) (*DecisionTree, error) {
	d, err := dataset.New(rows)
	if err != nil {
		return nil, err
	}
	dt := &DecisionTree{data: d, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(dt)
	}
	if dt.names != nil && len(dt.names) != d.Columns() {
		return nil, errors.Wrapf(ErrUnresolvedAttribute, "%d attribute names for %d columns", len(dt.names), d.Columns())
	}
	return dt, nil
}

// Dataset returns the training dataset
func (dt *DecisionTree) Dataset() *dataset.Dataset {
	return dt.data
}

// Build grows a tree from the whole training dataset
func (dt *DecisionTree) Build() (*tree.Tree, error) {
	root, err := dt.BuildTree(dt.data)
	if err != nil {
		return nil, err
	}
	return tree.New(root, dt.names), nil
}

type growth struct {
	calls int
	depth int
}

/*
BuildTree takes a dataset, the training dataset or any partition of it, and
returns the root node of the tree grown from it.

The dataset must have at least one row and one attribute column besides the
outcome, with all rows of the same length; a dataset.ErrInvalidDataset
error is returned otherwise.
*/
func (dt *DecisionTree) BuildTree(d *dataset.Dataset) (tree.Node, error) {
	if d == nil {
		return nil, errors.Wrap(dataset.ErrInvalidDataset, "nil dataset")
	}
	err := dataset.Validate(d.Rows())
	if err != nil {
		return nil, err
	}
	g := &growth{}
	root, err := dt.grow(d, 1, g)
	if err != nil {
		return nil, err
	}
	dt.logger.Debug("tree grown",
		zap.Int("rows", d.Count()),
		zap.Int("calls", g.calls),
		zap.Int("depth", g.depth),
	)
	return root, nil
}

func (dt *DecisionTree) grow(d *dataset.Dataset, depth int, g *growth) (*tree.Internal, error) {
	g.calls++
	if depth > g.depth {
		g.depth = depth
	}
	p := ArgmaxGain(d)
	if p == nil {
		return nil, errors.Wrap(dataset.ErrInvalidDataset, "no attribute left to split on")
	}
	name, err := dt.attributeName(p.Attribute)
	if err != nil {
		return nil, err
	}
	dt.logger.Debug("splitting",
		zap.Int("attribute", p.Attribute),
		zap.String("name", name),
		zap.Float64("gain", p.InformationGain()),
		zap.Int("rows", d.Count()),
		zap.Int("depth", depth),
	)
	n := tree.NewInternal(p.Attribute, name)
	for value, s := range p.Subsets {
		if s.Columns() > 1 && s.Entropy() > 0 {
			st, err := dt.grow(s, depth+1, g)
			if err != nil {
				return nil, errors.Wrapf(err, "growing attribute %d=%s", p.Attribute, value)
			}
			n.Children[value] = st
		} else {
			// pure, or out of attributes: the first row decides
			n.Children[value] = tree.NewLeaf(s.Outcome())
		}
	}
	return n, nil
}

func (dt *DecisionTree) attributeName(attribute int) (string, error) {
	if dt.names == nil {
		return "", nil
	}
	if attribute < 0 || attribute >= len(dt.names)-1 {
		return "", errors.Wrapf(ErrUnresolvedAttribute, "attribute %d", attribute)
	}
	return dt.names[attribute], nil
}
