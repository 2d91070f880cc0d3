package main

import (
	"errors"
	"strings"

	"adas_workorders/internal/adapter/http/dto/response"
	"adas_workorders/internal/domain/entities"

	"github.com/spf13/cobra"
)

type ShowOptions struct {
	*RootOptions
	ID        string
	VIN       string
	Reference string
}

func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a work order by id, VIN or reference number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.ID+opts.VIN+opts.Reference) == "" {
				return errors.New("one of --id, --vin or --ref is required")
			}
			ctx := cmd.Context()
			c, err := opts.build(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			var wo entities.WorkOrder
			if opts.ID != "" {
				wo, err = c.UseCase.Get(ctx, opts.ID)
			} else {
				wo, err = c.UseCase.Locate(ctx, opts.VIN, opts.Reference)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), response.FromWorkOrder(wo))
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "work order id")
	cmd.Flags().StringVar(&opts.VIN, "vin", "", "vehicle identification number")
	cmd.Flags().StringVar(&opts.Reference, "ref", "", "shop reference number (RO/PO)")

	return cmd
}
