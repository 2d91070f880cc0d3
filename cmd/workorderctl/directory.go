package main

import (
	"context"
	"fmt"

	"adas_workorders/internal/domain/entities"

	"github.com/spf13/cobra"
)

// directoryWriter is implemented by stores that keep the shop and technician
// tables themselves (sqlite). DynamoDB tables are maintained out of band.
type directoryWriter interface {
	UpsertShop(ctx context.Context, s entities.Shop) error
	UpsertTechnician(ctx context.Context, t entities.Technician) error
}

func NewDirectoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory",
		Short: "Maintain the shop and technician assignment tables",
	}

	var shop entities.Shop
	addShop := &cobra.Command{
		Use:   "add-shop",
		Short: "Create or update a shop -> region mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, opts, func(ctx context.Context, w directoryWriter) error {
				return w.UpsertShop(ctx, shop)
			})
		},
	}
	addShop.Flags().StringVar(&shop.Name, "name", "", "shop name")
	addShop.Flags().StringVar(&shop.Region, "region", "", "service region")
	_ = addShop.MarkFlagRequired("name")
	_ = addShop.MarkFlagRequired("region")

	var tech entities.Technician
	addTech := &cobra.Command{
		Use:   "add-tech",
		Short: "Create or update a technician and the regions they cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDirectory(cmd, opts, func(ctx context.Context, w directoryWriter) error {
				return w.UpsertTechnician(ctx, tech)
			})
		},
	}
	addTech.Flags().StringVar(&tech.Name, "name", "", "technician name")
	addTech.Flags().StringVar(&tech.Regions, "regions", "", "comma-separated regions")
	addTech.Flags().BoolVar(&tech.Active, "active", true, "technician takes new jobs")
	_ = addTech.MarkFlagRequired("name")

	cmd.AddCommand(addShop, addTech)
	return cmd
}

func withDirectory(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, directoryWriter) error) error {
	ctx := cmd.Context()
	c, err := opts.build(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	w, ok := c.Repo.(directoryWriter)
	if !ok {
		return fmt.Errorf("store %q does not support directory updates", opts.cfg.Store)
	}
	if err := fn(ctx, w); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
