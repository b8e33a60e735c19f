package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	setInput
	treeStorage
	treeInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.in = cmd.InOrStdin()
			return config.run(context.Background(), cmd.OutOrStdout())
		},
	}
	config.setInput.addFlags(cmd.Flags())
	config.treeStorage.addFlags(cmd.Flags())
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required unless the tree is kept in redis)")
	return cmd
}

func (tcc *testCmdConfig) run(ctx context.Context, stdout io.Writer) error {
	t, err := tcc.loadTree(ctx, tcc.treeInput)
	if err != nil {
		return err
	}
	testingSet, err := tcc.readSet(ctx, tcc.rootCmdConfig, t.Attributes)
	if err != nil {
		return errors.Wrap(err, "reading testing set")
	}
	tcc.Logf("Testing tree against testset with %d samples...", testingSet.Count())
	successRate, errorCount, err := t.Test(testingSet.Rows)
	if err != nil {
		return errors.Wrap(err, "testing tree")
	}
	tcc.Logf("Done")
	fmt.Fprintf(stdout, "%f success rate, failed to make a prediction for %d samples\n", successRate, errorCount)
	return nil
}
