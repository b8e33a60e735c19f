package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khmariem/id3/set"
	"github.com/khmariem/id3/set/csv"
	"github.com/khmariem/id3/tree"
	treejson "github.com/khmariem/id3/tree/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = `outlook,temperature,humidity,wind,play
sunny,hot,high,weak,no
sunny,hot,high,strong,no
overcast,hot,high,weak,yes
rain,mild,high,weak,yes
rain,cool,normal,weak,yes
rain,cool,normal,strong,no
overcast,cool,normal,strong,yes
sunny,mild,high,weak,no
sunny,cool,normal,weak,yes
rain,mild,normal,weak,yes
sunny,mild,normal,strong,yes
overcast,mild,high,strong,yes
overcast,hot,normal,weak,yes
rain,mild,high,strong,no
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cliParser()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readTree(t *testing.T, path string) *tree.Tree {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	result, err := treejson.ReadJSONTree(f)
	require.NoError(t, err)
	return result
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "id3 v0.1.0\n", out)
}

func TestGrowTestPredict(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", weatherCSV)
	output := filepath.Join(dir, "tree.json")

	_, err := execute(t, "", "grow", "-i", input, "-o", output)
	require.NoError(t, err)
	grown := readTree(t, output)
	assert.Equal(t, []string{"outlook", "temperature", "humidity", "wind", "play"}, grown.Attributes)
	assert.Equal(t, map[string]interface{}{
		"outlook": map[string]interface{}{
			"overcast": "yes",
			"rain": map[string]interface{}{
				"wind": map[string]interface{}{"strong": "no", "weak": "yes"},
			},
			"sunny": map[string]interface{}{
				"humidity": map[string]interface{}{"high": "no", "normal": "yes"},
			},
		},
	}, grown.Map())

	out, err := execute(t, "", "test", "-i", input, "-t", output)
	require.NoError(t, err)
	assert.Equal(t, "1.000000 success rate, failed to make a prediction for 0 samples\n", out)

	out, err = execute(t, "", "predict", "-t", output, "sunny", "mild", "normal", "weak")
	require.NoError(t, err)
	assert.Equal(t, "play: yes\n", out)

	out, err = execute(t, "", "predict", "-t", output, "-s", "outlook=rain,wind=strong")
	require.NoError(t, err)
	assert.Equal(t, "play: no\n", out)

	_, err = execute(t, "", "predict", "-t", output, "-s", "color=red")
	assert.Error(t, err)

	_, err = execute(t, "", "predict", "-t", output, "snowy", "mild", "normal", "weak")
	assert.Error(t, err)

	out, err = execute(t, "", "predict", "-t", output, "--rules")
	require.NoError(t, err)
	assert.Equal(t, `if outlook is overcast then yes
if outlook is rain and wind is strong then no
if outlook is rain and wind is weak then yes
if outlook is sunny and humidity is high then no
if outlook is sunny and humidity is normal then yes
`, out)
}

func TestGrowFromStdinToStdout(t *testing.T) {
	out, err := execute(t, weatherCSV, "grow")
	require.NoError(t, err)
	grown, err := treejson.Unmarshal([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "play", grown.Label())
	assert.Equal(t, 2, grown.Depth())
}

func TestGrowClassFeature(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", `play,outlook,wind
no,sunny,weak
yes,overcast,weak
yes,rain,weak
no,rain,strong
`)
	output := filepath.Join(dir, "tree.json")
	_, err := execute(t, "", "grow", "-i", input, "-o", output, "-c", "play")
	require.NoError(t, err)
	grown := readTree(t, output)
	assert.Equal(t, []string{"outlook", "wind", "play"}, grown.Attributes)
	prediction, err := grown.Predict([]string{"rain", "strong"})
	require.NoError(t, err)
	assert.Equal(t, "no", prediction)

	_, err = execute(t, "", "grow", "-i", input, "-o", output, "-c", "temperature")
	assert.Error(t, err)
}

func TestGrowWithMetadata(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", weatherCSV)
	output := filepath.Join(dir, "tree.json")
	valid := writeFile(t, dir, "valid.yml", `features:
  outlook: [sunny, overcast, rain]
  temperature: [hot, mild, cool]
  humidity: [high, normal]
  wind: [weak, strong]
  play: [yes, no]
`)
	invalid := writeFile(t, dir, "invalid.yml", `features:
  outlook: [sunny, rain]
  temperature: [hot, mild, cool]
  humidity: [high, normal]
  wind: [weak, strong]
  play: [yes, no]
`)
	_, err := execute(t, "", "grow", "-i", input, "-o", output, "-m", valid)
	require.NoError(t, err)

	_, err = execute(t, "", "grow", "-i", input, "-o", output, "-m", invalid)
	assert.Error(t, err)
}

func TestFlagsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", weatherCSV)
	output := filepath.Join(dir, "tree.json")

	t.Setenv("ID3_INPUT", input)
	t.Setenv("ID3_OUTPUT", output)
	_, err := execute(t, "", "grow")
	require.NoError(t, err)
	assert.Equal(t, "play", readTree(t, output).Label())
}

func TestFlagsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", weatherCSV)
	output := filepath.Join(dir, "tree.json")
	config := writeFile(t, dir, "config.yml", "output: "+output+"\nclass-feature: wind\n")

	_, err := execute(t, "", "grow", "-i", input, "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "wind", readTree(t, output).Label())

	_, err = execute(t, "", "grow", "-i", input, "--config", filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestTestWithoutTree(t *testing.T) {
	_, err := execute(t, weatherCSV, "test")
	assert.Error(t, err)
}

func TestSetConvertsBetweenLocations(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", weatherCSV)
	db := filepath.Join(dir, "weather.db")

	_, err := execute(t, "", "set", "-i", input, "-o", db, "--output-table", "weather")
	require.NoError(t, err)

	out, err := execute(t, "", "set", "-i", db, "--table", "weather")
	require.NoError(t, err)
	assert.Equal(t, weatherCSV, out)

	output := filepath.Join(dir, "tree.json")
	_, err = execute(t, "", "grow", "-i", db, "--table", "weather", "-o", output)
	require.NoError(t, err)
	assert.Equal(t, "play", readTree(t, output).Label())

	_, err = execute(t, "", "set", "-i", db, "--table", "missing")
	assert.Error(t, err)
}

func TestSetFromStdin(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "copy.csv")
	_, err := execute(t, weatherCSV, "set", "-o", output)
	require.NoError(t, err)
	copied, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, weatherCSV, string(copied))
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", weatherCSV)
	training := filepath.Join(dir, "training.csv")
	testingPath := filepath.Join(dir, "testing.csv")

	_, err := execute(t, "", "set", "split", "-i", input, "-o", training, "-s", testingPath, "-p", "30", "--seed", "42")
	require.NoError(t, err)
	trainingSet, err := csv.ReadSetFromFilePath(training)
	require.NoError(t, err)
	testingSet, err := csv.ReadSetFromFilePath(testingPath)
	require.NoError(t, err)
	assert.Equal(t, 14, trainingSet.Count()+testingSet.Count())
	assert.Equal(t, trainingSet.Names, testingSet.Names)

	out, err := execute(t, "", "set", "split", "-i", input, "-s", testingPath, "-p", "100")
	require.NoError(t, err)
	assert.Equal(t, "outlook,temperature,humidity,wind,play\n", out)
	testingSet, err = csv.ReadSetFromFilePath(testingPath)
	require.NoError(t, err)
	assert.Equal(t, 14, testingSet.Count())
}

func TestSplitInvalidFlags(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "weather.csv", weatherCSV)
	_, err := execute(t, "", "set", "split", "-i", input)
	assert.Error(t, err)
	_, err = execute(t, "", "set", "split", "-i", input, "-s", filepath.Join(dir, "s.csv"), "-p", "0")
	assert.Error(t, err)
	_, err = execute(t, "", "set", "split", "-i", input, "-s", filepath.Join(dir, "s.csv"), "-p", "101")
	assert.Error(t, err)
}

func TestSplitSet(t *testing.T) {
	s := &set.Set{Names: []string{"outlook", "play"}}
	for i := 0; i < 100; i++ {
		s.Rows = append(s.Rows, []string{"sunny", "no"})
	}
	output, split := splitSet(s, 100, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0, output.Count())
	assert.Equal(t, 100, split.Count())

	output, split = splitSet(s, 50, rand.New(rand.NewSource(1)))
	assert.Equal(t, 100, output.Count()+split.Count())
	assert.NotZero(t, output.Count())
	assert.NotZero(t, split.Count())
	assert.Equal(t, s.Names, output.Names)
	assert.Equal(t, s.Names, split.Names)
}

func TestDelete(t *testing.T) {
	_, err := execute(t, "", "delete")
	assert.Error(t, err)

	_, err = execute(t, "", "delete", "--redis-addr", "127.0.0.1:1", "--tree-id", "weather")
	assert.Error(t, err)
}
