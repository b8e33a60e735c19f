package main

import (
	"context"
	"fmt"
	"io"

	"github.com/khmariem/id3/tree"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeStorage
	treeInput  string
	values     map[string]string
	printRules bool
	printTree  bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict [value...]",
		Short: "Predict the outcome for a sample",
		Long: `Use the loaded tree to predict the outcome for a sample.

The sample values are given either as arguments, in the order of the columns
the tree was grown from, or by column name with the sample flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.run(context.Background(), cmd.OutOrStdout(), args)
		},
	}
	config.treeStorage.addFlags(cmd.Flags())
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required unless the tree is kept in redis)")
	cmd.Flags().StringToStringVarP(&(config.values), "sample", "s", nil, "values of the sample by column name, as in outlook=sunny,wind=weak")
	cmd.Flags().BoolVar(&(config.printRules), "rules", false, "print the rules of the tree")
	cmd.Flags().BoolVar(&(config.printTree), "print-tree", false, "print the tree")
	return cmd
}

func (pcc *predictCmdConfig) run(ctx context.Context, stdout io.Writer, args []string) error {
	t, err := pcc.loadTree(ctx, pcc.treeInput)
	if err != nil {
		return err
	}
	if pcc.printTree {
		fmt.Fprint(stdout, t)
	}
	if pcc.printRules {
		for _, r := range t.Rules() {
			fmt.Fprintln(stdout, r)
		}
	}
	if len(args) == 0 && len(pcc.values) == 0 {
		if pcc.printTree || pcc.printRules {
			return nil
		}
		return errors.New("no sample values were given")
	}
	sample, err := sampleFor(t, args, pcc.values)
	if err != nil {
		return err
	}
	prediction, err := t.Predict(sample)
	if err != nil {
		return errors.Wrapf(err, "predicting outcome for %v", sample)
	}
	if label := t.Label(); label != "" {
		fmt.Fprintf(stdout, "%s: %s\n", label, prediction)
	} else {
		fmt.Fprintln(stdout, prediction)
	}
	return nil
}

/*
sampleFor takes a tree, the positional values and the named values of a
sample and returns the sample as a row of the dataset the tree was grown
from. Named values override positional ones.
*/
func sampleFor(t *tree.Tree, args []string, values map[string]string) ([]string, error) {
	if len(values) == 0 {
		return args, nil
	}
	if len(t.Attributes) == 0 {
		return nil, errors.New("tree has no column names, sample values must be given as arguments")
	}
	sample := make([]string, len(t.Attributes)-1)
	copy(sample, args)
	for name, value := range values {
		i := indexOf(t.Attributes[:len(sample)], name)
		if i < 0 {
			return nil, errors.Errorf("tree has no column %s", name)
		}
		sample[i] = value
	}
	return sample, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
