package models

// CatalogItem is a bookmarkable piece of study content: a note, a chapter,
// a past-year paper and so on.
type CatalogItem struct {
	ContentType ContentType `json:"content_type"`
	ContentID   string      `json:"content_id"`
	Subject     string      `json:"subject"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url,omitempty"`
}

// BookmarkInput builds the input used to bookmark the item. Display
// metadata is copied at this point and never refreshed from the catalog.
func (c CatalogItem) BookmarkInput(tagIDs []string, newTags []string) AddBookmarkInput {
	in := AddBookmarkInput{
		ContentType: c.ContentType,
		ContentID:   c.ContentID,
		Title:       c.Title,
		TagIDs:      tagIDs,
		NewTags:     newTags,
	}
	if c.Description != "" {
		d := c.Description
		in.Description = &d
	}
	if c.URL != "" {
		u := c.URL
		in.URL = &u
	}
	return in
}

// Subject is a course subject with its chapter count, shown as a catalog
// section header.
type Subject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    string `json:"level"`
	Chapters int    `json:"chapters"`
}
