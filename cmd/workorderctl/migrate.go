package main

import (
	"fmt"

	"adas_workorders/internal/adapter/persistence/migrations"
	"adas_workorders/internal/infrastructure/container"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations to the relational store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := container.Build(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer c.Close()
			if c.SQL == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "store %q has no schema to migrate\n", opts.cfg.Store)
				return nil
			}
			if err := c.Migrate(ctx); err != nil {
				return err
			}
			v, err := migrations.Version(ctx, c.SQL, c.Dialect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", c.Dialect, v)
			return nil
		},
	}
}
