package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the study content catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search [query]",
		Short: "Search titles, subjects and descriptions; no query lists everything",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp()
			if err != nil {
				return err
			}

			items, err := app.Adapter().Catalog(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("search catalog: %w", err)
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(items))
			return nil
		},
	})
	return cmd
}
