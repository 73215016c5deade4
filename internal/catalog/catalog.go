// Package catalog holds the static study content that users bookmark:
// subjects and the notes, chapters, videos and past-year papers filed under
// them. Items are identified by their content identity (type + id), which
// is what bookmarks reference.
package catalog

import (
	"slices"
	"strings"

	"github.com/MKhiriev/study-marks/models"
)

// Catalog is an immutable in-memory content index. It is safe for
// concurrent use.
type Catalog struct {
	subjects []models.Subject
	items    []models.CatalogItem
}

// New builds a catalog over the given subjects and items. Both slices are
// copied.
func New(subjects []models.Subject, items []models.CatalogItem) *Catalog {
	return &Catalog{
		subjects: slices.Clone(subjects),
		items:    slices.Clone(items),
	}
}

// Default returns the catalog shipped with the application.
func Default() *Catalog {
	return New(defaultSubjects, defaultItems)
}

// Subjects returns every subject in display order.
func (c *Catalog) Subjects() []models.Subject {
	return slices.Clone(c.subjects)
}

// Items returns every catalog item in display order.
func (c *Catalog) Items() []models.CatalogItem {
	return slices.Clone(c.items)
}

// Notes returns the items of type note.
func (c *Catalog) Notes() []models.CatalogItem {
	return c.filter(func(it models.CatalogItem) bool {
		return it.ContentType == models.Note
	})
}

// Search returns the items whose title, subject or description contains
// query, ignoring case. An empty or blank query matches everything.
func (c *Catalog) Search(query string) []models.CatalogItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Items()
	}

	return c.filter(func(it models.CatalogItem) bool {
		return strings.Contains(strings.ToLower(it.Title), q) ||
			strings.Contains(strings.ToLower(it.Subject), q) ||
			strings.Contains(strings.ToLower(it.Description), q)
	})
}

// Lookup finds the item behind a content identity.
func (c *Catalog) Lookup(contentType models.ContentType, contentID string) (models.CatalogItem, bool) {
	for _, it := range c.items {
		if it.ContentType == contentType && it.ContentID == contentID {
			return it, true
		}
	}
	return models.CatalogItem{}, false
}

func (c *Catalog) filter(keep func(models.CatalogItem) bool) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
