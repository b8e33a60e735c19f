package id3

import (
	"math"

	"github.com/khmariem/id3/dataset"
)

/*
Partition represents a partition of a dataset according to one of its
attribute columns, with the information gain it brings to predict the
outcome.
*/
type Partition struct {
	// Index of the attribute in the original dataset
	Attribute int
	// Position of the attribute column in the partitioned dataset
	Column int
	// The subset of rows for every value of the attribute, the
	// attribute column removed
	Subsets         map[string]*dataset.Dataset
	informationGain float64
}

// InformationGain returns the reduction of entropy obtained by partitioning
func (p *Partition) InformationGain() float64 {
	return p.informationGain
}

/*
ArgmaxGain takes a dataset and returns the partition over the attribute
column with the highest information gain. Columns are evaluated in order and
a later column must be strictly better to be chosen, so the earliest one
wins ties.

The result is nil when the dataset has no attribute column left.
*/
func ArgmaxGain(d *dataset.Dataset) *Partition {
	totalEntropy := d.Entropy()
	maxGain := math.Inf(-1)
	var result *Partition
	for column := 0; column < d.Columns()-1; column++ {
		p := NewPartition(d, column, totalEntropy)
		if p.informationGain > maxGain {
			maxGain = p.informationGain
			result = p
		}
	}
	return result
}

/*
NewPartition takes a dataset, an attribute column and the entropy of the
dataset and returns the partition of the dataset over that column.
*/
func NewPartition(d *dataset.Dataset, column int, entropy float64) *Partition {
	subsets := d.GroupByValue(column)
	informationGain := entropy
	totalCount := float64(d.Count())
	for _, value := range dataset.Values(subsets) {
		s := subsets[value]
		informationGain -= s.Entropy() * float64(s.Count()) / totalCount
	}
	return &Partition{
		Attribute:       d.Attribute(column),
		Column:          column,
		Subsets:         subsets,
		informationGain: informationGain,
	}
}
