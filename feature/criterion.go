package feature

import "fmt"

/*
Criterion represents a constraint on a feature: the value a sample must
take on the column at Index for the criterion to be satisfied.
*/
type Criterion struct {
	// Index of the constrained column in the original dataset
	Index int
	// Name of the constrained feature, may be empty
	Name  string
	Value string
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating
if the sample satisfies the criterion. A sample too short to have a value
for the feature does not satisfy it.
*/
func (c Criterion) SatisfiedBy(sample []string) bool {
	if c.Index < 0 || c.Index >= len(sample) {
		return false
	}
	return sample[c.Index] == c.Value
}

func (c Criterion) String() string {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("#%d", c.Index)
	}
	return fmt.Sprintf("%s is %s", name, c.Value)
}
