package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"adas_workorders/internal/config"
	"adas_workorders/internal/infrastructure/container"
	"adas_workorders/internal/infrastructure/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Store   string
	Verbose bool

	cfg    config.Config
	logger *zap.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "workorderctl",
		Short:         "Operate the ADAS work-order engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "override WORKORDER_STORE (dynamodb|sqlite|postgres|memory)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewDirectoryCommand(opts))

	return cmd
}

func (o *RootOptions) init() error {
	config.LoadDotEnv(o.EnvFile)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.Store != "" {
		cfg.Store = o.Store
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	level := cfg.LogLevel
	if o.Verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.LogFormat)
	if err != nil {
		return err
	}
	o.cfg, o.logger = cfg, logger
	return nil
}

// build connects the configured store. Relational stores are migrated first
// so a fresh database is usable straight away.
func (o *RootOptions) build(ctx context.Context) (*container.Container, error) {
	c, err := container.Build(ctx, o.cfg, o.logger)
	if err != nil {
		return nil, err
	}
	if err := c.Migrate(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return c, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
