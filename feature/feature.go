package feature

import "fmt"

/*
Feature represents a categorical property that can be observed: a column
of a dataset. It can only take a value among a finite set, which may be
left unknown.
*/
type Feature struct {
	name            string
	availableValues []string
}

/*
New takes a name string and a slice of available value strings and returns
a feature with the given name and available values. An empty slice of
available values means any value is accepted.
*/
func New(name string, availableValues []string) *Feature {
	return &Feature{name, availableValues}
}

// Name returns a string with the name of the feature
func (f *Feature) Name() string {
	return f.name
}

/*
Valid receives a value and returns nil if it is among the available values
of the feature, or an error describing the reason otherwise.
*/
func (f *Feature) Valid(value string) error {
	if len(f.availableValues) == 0 {
		return nil
	}
	for _, av := range f.availableValues {
		if av == value {
			return nil
		}
	}
	return fmt.Errorf("feature %s got unknown value %q", f.name, value)
}

// AvailableValues returns a string slice with the values available for the feature
func (f *Feature) AvailableValues() []string {
	return f.availableValues
}

func (f *Feature) String() string {
	return f.name
}

/*
Names takes a slice of features and returns a slice with their names in
the same order.
*/
func Names(features []*Feature) []string {
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.name)
	}
	return names
}
