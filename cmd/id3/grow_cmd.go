package main

import (
	"context"
	"io"
	"os"

	"github.com/khmariem/id3"
	treejson "github.com/khmariem/id3/tree/json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type growCmdConfig struct {
	*rootCmdConfig
	setInput
	treeStorage
	output       string
	classFeature string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long: `Grow a tree from a set of data to predict a certain feature.

The tree is written in JSON to the output file (STDOUT by default) or kept
in redis when both the redis-addr and tree-id flags are set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.in = cmd.InOrStdin()
			return config.run(context.Background(), cmd.OutOrStdout())
		},
	}
	config.setInput.addFlags(cmd.Flags())
	config.treeStorage.addFlags(cmd.Flags())
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the generated tree should predict (defaults to the last column of the set)")
	return cmd
}

func (gcc *growCmdConfig) run(ctx context.Context, stdout io.Writer) error {
	trainingSet, err := gcc.readSet(ctx, gcc.rootCmdConfig, nil)
	if err != nil {
		return errors.Wrap(err, "reading training set")
	}
	if gcc.classFeature != "" {
		trainingSet, err = trainingSet.WithOutcome(gcc.classFeature)
		if err != nil {
			return err
		}
	}
	dt, err := id3.New(trainingSet.Rows, id3.WithAttributeNames(trainingSet.Names), id3.WithLogger(gcc.logger))
	if err != nil {
		return errors.Wrap(err, "growing the tree")
	}
	gcc.Logf("Growing tree from a set with %d samples and %d features to predict %s ...", trainingSet.Count(), len(trainingSet.Names)-1, trainingSet.Names[len(trainingSet.Names)-1])
	t, err := dt.Build()
	if err != nil {
		return errors.Wrap(err, "growing the tree")
	}
	gcc.Logf("Done")
	gcc.logger.Debug("grown tree", zap.Int("depth", t.Depth()), zap.Stringer("tree", t))
	if gcc.useRedis() {
		gcc.Logf("Saving tree as %s in redis at %s...", gcc.treeID, gcc.redisAddr)
		if err = gcc.saveTree(ctx, t); err != nil {
			return errors.Wrap(err, "saving tree")
		}
		if gcc.output == "" {
			return nil
		}
	}
	w := stdout
	if gcc.output != "" {
		f, err := os.Create(gcc.output)
		if err != nil {
			return errors.Wrapf(err, "creating output file %s", gcc.output)
		}
		defer f.Close()
		w = f
	}
	gcc.Logf("Writing tree in JSON...")
	if err = treejson.WriteJSONTree(t, w); err != nil {
		return errors.Wrap(err, "writing tree in JSON")
	}
	return nil
}
