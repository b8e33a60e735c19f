package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	v          *viper.Viper
	logger     *zap.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: viper.New(), logger: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:   "id3",
		Short: "id3 is a tool to grow decision trees",
		Long: `A tool to grow decision trees from categorical data with the ID3 algorithm,
test them, and use them to make predictions.

Every flag can also be set with an ID3_<FLAG> environment variable
(dashes replaced by underscores) or in the YAML file given with --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress and the grown tree on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with values for the flags")
	rootCmd.AddCommand(versionCmd(), setCmd(config), growCmd(config), testCmd(config), predictCmd(config), deleteCmd(config))
	return rootCmd
}

// init loads flag values from the config file and the environment for the
// flags not set on the command line, then sets the logger up.
func (rc *rootCmdConfig) init(cmd *cobra.Command) error {
	rc.v.SetEnvPrefix("ID3")
	rc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	rc.v.AutomaticEnv()
	configFile := rc.configFile
	if configFile == "" {
		configFile = rc.v.GetString("config")
	}
	if configFile != "" {
		rc.v.SetConfigFile(configFile)
		if err := rc.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", configFile)
		}
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !rc.v.IsSet(f.Name) {
			return
		}
		if serr := cmd.Flags().Set(f.Name, rc.v.GetString(f.Name)); serr != nil {
			err = errors.Wrapf(serr, "setting %s from configuration", f.Name)
		}
	})
	if err != nil {
		return err
	}
	rc.logger, err = newLogger(rc.verbose)
	return err
}
