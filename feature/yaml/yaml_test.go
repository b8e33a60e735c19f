package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/khmariem/id3/feature"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherMetadata = `
features:
  weather: [sunny, overcast, rain]
  temperature: [hot, mild, cool]
  humidity: [high, normal]
  wind: [weak, strong]
  day:
  decision: [yes, no]
`

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures([]byte(weatherMetadata))
	require.NoError(t, err)
	assert.Equal(t, []string{"weather", "temperature", "humidity", "wind", "day", "decision"}, feature.Names(features))
	assert.Equal(t, []string{"weak", "strong"}, features[3].AvailableValues())
	assert.Nil(t, features[4].AvailableValues())
	assert.Equal(t, []string{"yes", "no"}, features[5].AvailableValues())
}

func TestReadFeaturesErrors(t *testing.T) {
	cases := map[string]string{
		"no features":    "other: 1\n",
		"scalar feature": "features:\n  weather: sunny\n",
		"duplicate":      "features:\n  weather: [a]\n  weather: [b]\n",
		"not yml":        "features: [\n",
	}
	for name, md := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadFeatures([]byte(md))
			assert.Error(t, err)
		})
	}
}

func TestReadFeaturesFromMissingFile(t *testing.T) {
	_, err := ReadFeaturesFromFile("testdata/does-not-exist.yml")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestReadFeaturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.yml")
	require.NoError(t, os.WriteFile(path, []byte(weatherMetadata), 0644))
	features, err := ReadFeaturesFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "weather", features[0].Name())
}
