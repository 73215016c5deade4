package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client build and the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", opts.buildInfo.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", opts.buildInfo.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", opts.buildInfo.BuildCommit())

			app, err := opts.newApp()
			if err != nil {
				return err
			}
			server, err := app.Adapter().Version(cmd.Context())
			if err != nil {
				server = "unavailable"
			}
			fmt.Fprintf(out, "Server version: %s\n", server)
			return nil
		},
	}
}
