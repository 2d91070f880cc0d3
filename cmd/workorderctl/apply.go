package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"adas_workorders/internal/adapter/http/dto/request"
	"adas_workorders/internal/adapter/http/dto/response"

	"github.com/spf13/cobra"
)

type ApplyOptions struct {
	*RootOptions
	Action string
	File   string
	Actor  string
}

func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply one inbound update read from a JSON file (or stdin)",
		Long: `Apply one inbound update read from a JSON file (or stdin with --file -).

Example:
  workorderctl apply --action shop_submit --file submit.json --actor ops`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Action, "action", "", "action name, e.g. shop_submit")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "-", "JSON payload file, - for stdin")
	cmd.Flags().StringVar(&opts.Actor, "actor", "", "actor recorded in the flow history")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}

func runApply(cmd *cobra.Command, opts *ApplyOptions) error {
	raw, err := readPayload(cmd.InOrStdin(), opts.File)
	if err != nil {
		return err
	}
	var req request.ActionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("invalid payload JSON: %w", err)
	}
	if opts.Actor != "" {
		req.Actor = opts.Actor
	}
	command, err := req.ToCommand(opts.Action)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c, err := opts.build(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.UseCase.Apply(ctx, command)
	if err := printJSON(cmd.OutOrStdout(), response.FromResult(res, command.Dropped)); err != nil {
		return err
	}
	if !res.Success {
		return res.Err
	}
	return nil
}

func readPayload(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return b, nil
}
