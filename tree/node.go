package tree

import "strconv"

/*
Node is a node of the tree: either a *Leaf holding a decision or an
*Internal node splitting on an attribute.
*/
type Node interface {
	node()
}

// Leaf is a terminal node of the tree
type Leaf struct {
	// The outcome predicted for samples reaching the leaf, taken as is from
	// the training data.
	Label string
}

// Internal is a node of the tree that splits samples by the value they take
// on an attribute.
type Internal struct {
	// Index of the attribute column in the original dataset
	Attribute int
	// Human readable name of the attribute, empty when the tree was grown
	// without attribute names.
	Name string
	// The subtree for each value of the attribute seen while growing
	Children map[string]Node
}

// NewLeaf returns a leaf predicting the given label
func NewLeaf(label string) *Leaf {
	return &Leaf{label}
}

// NewInternal returns an internal node splitting on the given attribute
// without any children.
func NewInternal(attribute int, name string) *Internal {
	return &Internal{Attribute: attribute, Name: name, Children: make(map[string]Node)}
}

func (*Leaf) node()     {}
func (*Internal) node() {}

func (n *Internal) attributeName() string {
	if n.Name != "" {
		return n.Name
	}
	return strconv.Itoa(n.Attribute)
}
