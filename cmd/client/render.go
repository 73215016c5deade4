package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/study-marks/models"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func renderBookmarks(bookmarks []models.Bookmark) string {
	t := newTable("ID", "Type", "Content", "Title", "Tags", "Saved")
	for _, b := range bookmarks {
		names := make([]string, 0, len(b.Tags))
		for _, tag := range b.Tags {
			names = append(names, "#"+tag.Name)
		}
		t.Row(b.ID, string(b.ContentType), b.ContentID, b.Title, strings.Join(names, " "),
			b.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return t.Render()
}

func renderTags(tags []models.Tag, bookmarks []models.Bookmark) string {
	t := newTable("ID", "Name", "Bookmarks")
	for _, tag := range tags {
		n := len(filterByTag(bookmarks, tag.ID))
		t.Row(tag.ID, tag.Name, strconv.Itoa(n))
	}
	return t.Render()
}

func renderCatalog(items []models.CatalogItem) string {
	t := newTable("Type", "Content", "Subject", "Title")
	for _, it := range items {
		t.Row(string(it.ContentType), it.ContentID, it.Subject, it.Title)
	}
	return t.Render()
}
