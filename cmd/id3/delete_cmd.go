package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type deleteCmdConfig struct {
	*rootCmdConfig
	treeStorage
}

func deleteCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &deleteCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a tree kept in redis",
		Long:  `Delete the tree kept in redis under the given tree-id, if any`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.run(context.Background())
		},
	}
	config.treeStorage.addFlags(cmd.Flags())
	return cmd
}

func (dcc *deleteCmdConfig) run(ctx context.Context) error {
	dcc.Logf("Deleting tree %s from redis at %s...", dcc.treeID, dcc.redisAddr)
	if err := dcc.deleteTree(ctx); err != nil {
		return errors.Wrap(err, "deleting tree")
	}
	dcc.Logf("Done")
	return nil
}
