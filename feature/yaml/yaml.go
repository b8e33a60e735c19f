/*
Package yaml provides methods to parse feature.Feature definitions
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/khmariem/id3/feature"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with feature definitions in YML and
returns a slice of features parsed from it or an error.
The YML is expected to be an object containing a features property. The value
for this should be an object with a property for each feature with its name
and either a list of valid values or null to accept any value. Features are
returned in the order they are declared, the last one being the outcome.
*/
func ReadFeatures(md []byte) ([]*feature.Feature, error) {
	order := struct {
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &order)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml features")
	}
	if len(order.Features) == 0 {
		return nil, errors.New("metadata has no feature information")
	}
	metadata := struct {
		Features map[string][]string
	}{}
	err = yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml feature values")
	}
	features := make([]*feature.Feature, 0, len(order.Features))
	seen := make(map[string]bool)
	for _, item := range order.Features {
		name := fmt.Sprintf("%v", item.Key)
		if seen[name] {
			return nil, errors.Errorf("feature %s declared twice", name)
		}
		seen[name] = true
		features = append(features, feature.New(name, metadata.Features[name]))
	}
	return features, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]*feature.Feature, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading features yml file %s", filepath)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = errors.Wrapf(err, "parsing features yml file %s", filepath)
	}
	return features, err
}
