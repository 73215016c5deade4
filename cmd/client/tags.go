package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List, create and delete tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your tags with the number of bookmarks carrying each",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.signedInApp(cmd)
				if err != nil {
					return err
				}

				state := app.Store().State()
				if len(state.Tags) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTags(state.Tags, state.Bookmarks))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.signedInApp(cmd)
				if err != nil {
					return err
				}
				if t, ok := findTag(app.Store().State().Tags, args[0]); ok {
					return fmt.Errorf("tag %q already exists as %s", t.Name, t.ID)
				}

				tag, err := app.Store().CreateTag(cmd.Context(), args[0])
				if err != nil {
					return operationError(app, err.Error())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created #%s as %s\n", tag.Name, tag.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:     "delete <tag>",
			Aliases: []string{"rm"},
			Short:   "Delete a tag by name or id and detach it from every bookmark",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := opts.signedInApp(cmd)
				if err != nil {
					return err
				}
				tag, ok := findTag(app.Store().State().Tags, args[0])
				if !ok {
					return fmt.Errorf("no tag %q", args[0])
				}

				if !app.Store().DeleteTag(cmd.Context(), tag.ID) {
					return operationError(app, "could not delete tag")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%s\n", tag.Name)
				return nil
			},
		},
	)
	return cmd
}
