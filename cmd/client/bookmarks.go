package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/study-marks/internal/client"
	"github.com/MKhiriev/study-marks/models"
)

func newBookmarksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "List, add and remove bookmarks",
	}

	cmd.AddCommand(
		newBookmarksListCmd(opts),
		newBookmarksAddCmd(opts),
		newBookmarksRemoveCmd(opts),
		newBookmarksTagCmd(opts, true),
		newBookmarksTagCmd(opts, false),
	)
	return cmd
}

func newBookmarksListCmd(opts *rootOptions) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bookmarks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.signedInApp(cmd)
			if err != nil {
				return err
			}

			state := app.Store().State()
			bookmarks := state.Bookmarks
			if tag != "" {
				t, ok := findTag(state.Tags, tag)
				if !ok {
					return fmt.Errorf("no tag %q", tag)
				}
				bookmarks = filterByTag(bookmarks, t.ID)
			}

			if len(bookmarks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderBookmarks(bookmarks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only bookmarks carrying this tag (name or id)")
	return cmd
}

func newBookmarksAddCmd(opts *rootOptions) *cobra.Command {
	var (
		tags        []string
		title       string
		description string
		url         string
	)

	cmd := &cobra.Command{
		Use:   "add <content-type> <content-id>",
		Short: "Bookmark a piece of content",
		Long: "Bookmark a piece of content. Title, description and URL are taken from the catalog\n" +
			"unless given with flags. Content types: " + contentTypeList() + ".",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentType, ok := models.ParseContentType(args[0])
			if !ok {
				return fmt.Errorf("unknown content type %q, want one of %s", args[0], contentTypeList())
			}
			contentID := strings.TrimSpace(args[1])

			app, err := opts.signedInApp(cmd)
			if err != nil {
				return err
			}
			if b, ok := app.Store().GetBookmark(contentID, contentType); ok {
				return fmt.Errorf("already bookmarked as %s", b.ID)
			}

			item := models.CatalogItem{ContentType: contentType, ContentID: contentID}
			if found, ok := lookupCatalog(cmd, app, contentType, contentID); ok {
				item = found
			}
			if title != "" {
				item.Title = title
			}
			if description != "" {
				item.Description = description
			}
			if url != "" {
				item.URL = url
			}
			if item.Title == "" {
				return fmt.Errorf("%s/%s is not in the catalog, pass --title", contentType, contentID)
			}

			created, err := app.Store().AddBookmark(cmd.Context(), item.BookmarkInput(nil, tags))
			if err != nil {
				return operationError(app, err.Error())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %q as %s\n", created.Title, created.ID)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag names to attach, created when missing")
	cmd.Flags().StringVar(&title, "title", "", "title to store")
	cmd.Flags().StringVar(&description, "description", "", "description to store")
	cmd.Flags().StringVar(&url, "url", "", "URL to store")
	return cmd
}

func newBookmarksRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <bookmark-id> | <content-type> <content-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a bookmark",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.signedInApp(cmd)
			if err != nil {
				return err
			}

			bookmarkID := args[0]
			if len(args) == 2 {
				contentType, ok := models.ParseContentType(args[0])
				if !ok {
					return fmt.Errorf("unknown content type %q", args[0])
				}
				b, ok := app.Store().GetBookmark(args[1], contentType)
				if !ok {
					return fmt.Errorf("%s/%s is not bookmarked", contentType, args[1])
				}
				bookmarkID = b.ID
			}

			if !app.Store().RemoveBookmark(cmd.Context(), bookmarkID) {
				return operationError(app, "could not remove bookmark")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed", bookmarkID)
			return nil
		},
	}
}

// newBookmarksTagCmd builds "tag" when attach is set and "untag" otherwise.
func newBookmarksTagCmd(opts *rootOptions, attach bool) *cobra.Command {
	use, short := "untag <bookmark-id> <tag>", "Detach a tag from a bookmark"
	if attach {
		use, short = "tag <bookmark-id> <tag>", "Attach a tag to a bookmark, creating the tag when missing"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.signedInApp(cmd)
			if err != nil {
				return err
			}
			store := app.Store()
			bookmarkID := args[0]

			tag, ok := findTag(store.State().Tags, args[1])
			switch {
			case !ok && !attach:
				return fmt.Errorf("no tag %q", args[1])
			case !ok:
				created, err := store.CreateTag(cmd.Context(), args[1])
				if err != nil {
					return operationError(app, err.Error())
				}
				tag = *created
			}

			if attach {
				ok = store.AddTagToBookmark(cmd.Context(), bookmarkID, tag.ID)
			} else {
				ok = store.RemoveTagFromBookmark(cmd.Context(), bookmarkID, tag.ID)
			}
			if !ok {
				return operationError(app, "could not change bookmark tags")
			}

			verb := "Detached"
			if attach {
				verb = "Attached"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%s\n", verb, tag.Name)
			return nil
		},
	}
}

func lookupCatalog(cmd *cobra.Command, app *client.App, contentType models.ContentType, contentID string) (models.CatalogItem, bool) {
	items, err := app.Adapter().Catalog(cmd.Context(), "")
	if err != nil {
		return models.CatalogItem{}, false
	}
	for _, it := range items {
		if it.ContentType == contentType && it.ContentID == contentID {
			return it, true
		}
	}
	return models.CatalogItem{}, false
}

// findTag matches by id first and then by exact name.
func findTag(tags []models.Tag, ref string) (models.Tag, bool) {
	for _, t := range tags {
		if t.ID == ref {
			return t, true
		}
	}
	ref = strings.TrimSpace(ref)
	for _, t := range tags {
		if t.Name == ref {
			return t, true
		}
	}
	return models.Tag{}, false
}

func filterByTag(bookmarks []models.Bookmark, tagID string) []models.Bookmark {
	out := make([]models.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.HasTag(tagID) {
			out = append(out, b)
		}
	}
	return out
}

func contentTypeList() string {
	names := make([]string, 0, len(models.ContentTypes))
	for _, c := range models.ContentTypes {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
