package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/khmariem/id3/set"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput
	output setOutput
}

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      setOutput
	splitProbability int
	seed             int64
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long: `Copy a set of data from one location to another, converting it between
CSV files, SQLite3 and PostgreSQL tables and MongoDB collections.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.in = cmd.InOrStdin()
			config.output.out = cmd.OutOrStdout()
			return config.run(context.Background())
		},
	}
	config.setInput.addFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVarP(&(config.output.dataOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, a PostgreSQL DB connection URL or a MongoDB URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVar(&(config.output.table), "output-table", "samples", "table or collection receiving the output set when writing to a database")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) run(ctx context.Context) error {
	s, err := scc.readSet(ctx, scc.rootCmdConfig, nil)
	if err != nil {
		return errors.Wrap(err, "reading input set")
	}
	scc.Logf("Dumping input set with %d samples into output set...", s.Count())
	if err = scc.output.writeSet(ctx, scc.rootCmdConfig, s); err != nil {
		return errors.Wrap(err, "writing output set")
	}
	scc.Logf("Done")
	return nil
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long: `Split a set into an output set and a split set, for instance to grow a
tree with the first one and test it with the second one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.in = cmd.InOrStdin()
			config.output.out = cmd.OutOrStdout()
			return config.run(context.Background())
		},
	}
	cmd.Flags().StringVarP(&(config.splitOutput.dataOutput), "split-output", "s", "", "path to a CSV (.csv) or SQLite3 (.db) file, a PostgreSQL DB connection URL or a MongoDB URL to dump the split set (required)")
	cmd.Flags().StringVar(&(config.splitOutput.table), "split-table", "split_samples", "table or collection receiving the split set when writing to a database")
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of samples (defaults to 0: seeded with the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput.dataOutput == "" {
		return errors.New("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return errors.New("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}

func (scc *splitCmdConfig) run(ctx context.Context) error {
	if err := scc.Validate(); err != nil {
		return err
	}
	s, err := scc.readSet(ctx, scc.rootCmdConfig, nil)
	if err != nil {
		return errors.Wrap(err, "reading input set")
	}
	seed := scc.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	output, split := splitSet(s, scc.splitProbability, rand.New(rand.NewSource(seed)))
	if err = scc.output.writeSet(ctx, scc.rootCmdConfig, output); err != nil {
		return errors.Wrap(err, "writing output set")
	}
	if err = scc.splitOutput.writeSet(ctx, scc.rootCmdConfig, split); err != nil {
		return errors.Wrap(err, "writing split set")
	}
	scc.Logf("Input set with %d samples was split into sets with %d and %d samples", s.Count(), output.Count(), split.Count())
	return nil
}

/*
splitSet takes a set, a percent probability and a randomizer and divides the
rows of the set in two sets with the same columns, every row being assigned
to the second one with the given probability.
*/
func splitSet(s *set.Set, probability int, randomizer *rand.Rand) (*set.Set, *set.Set) {
	output := &set.Set{Names: s.Names}
	split := &set.Set{Names: s.Names}
	for _, row := range s.Rows {
		if (100 * randomizer.Float32()) >= float32(probability) {
			output.Rows = append(output.Rows, row)
		} else {
			split.Rows = append(split.Rows, row)
		}
	}
	return output, split
}
