package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-marks/internal/service"
	"github.com/MKhiriev/study-marks/models"
)

type catalogInput int

const (
	catalogInputNone catalogInput = iota
	catalogInputSearch
	catalogInputTags
)

// CatalogModel lists catalog content and toggles bookmarks on it.
type CatalogModel struct {
	ctx    context.Context
	store  bookmarkStore
	server serverInfo

	items   []models.CatalogItem
	idx     int
	query   string
	loading bool
	busy    bool
	status  string
	errMsg  string

	input     catalogInput
	search    textinput.Model
	tagsInput textinput.Model
}

func NewCatalogModel(ctx context.Context, store bookmarkStore, server serverInfo) *CatalogModel {
	search := textinput.New()
	search.Placeholder = "search title, subject or description"
	search.CharLimit = 100
	search.Width = 40

	tagsInput := textinput.New()
	tagsInput.Placeholder = "exam, revision"
	tagsInput.CharLimit = 200
	tagsInput.Width = 40

	return &CatalogModel{
		ctx:       ctx,
		store:     store,
		server:    server,
		search:    search,
		tagsInput: tagsInput,
	}
}

func (m *CatalogModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdLoad(m.query)
}

func (m *CatalogModel) capturing() bool { return m.input != catalogInputNone }

func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.query = msg.query
		m.items = msg.items
		m.idx = clamp(m.idx, len(m.items))
		return m, nil

	case opDoneMsg:
		if msg.page != pageCatalog {
			return m, nil
		}
		m.busy = false
		if errors.Is(msg.err, service.ErrNoCurrentUser) {
			m.status = "Log in to bookmark content"
		}
		return m, nil

	case tea.KeyMsg:
		if m.input != catalogInputNone {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *CatalogModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.search):
		m.input = catalogInputSearch
		m.search.SetValue(m.query)
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.tags):
		if _, ok := m.current(); !ok || m.busy {
			return m, nil
		}
		m.input = catalogInputTags
		m.tagsInput.SetValue("")
		m.tagsInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.toggle):
		item, ok := m.current()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		return m, m.cmdToggle(item)
	}
	return m, nil
}

func (m *CatalogModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := &m.search
	if m.input == catalogInputTags {
		active = &m.tagsInput
	}

	switch msg.String() {
	case "esc":
		m.input = catalogInputNone
		active.Blur()
		return m, nil
	case "enter":
		mode := m.input
		m.input = catalogInputNone
		active.Blur()

		if mode == catalogInputSearch {
			m.loading = true
			m.idx = 0
			return m, m.cmdLoad(strings.TrimSpace(m.search.Value()))
		}

		item, ok := m.current()
		if !ok || m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		return m, m.cmdAdd(item.BookmarkInput(nil, splitTagNames(m.tagsInput.Value())))
	}

	var cmd tea.Cmd
	*active, cmd = active.Update(msg)
	return m, cmd
}

func (m *CatalogModel) View() string {
	var b strings.Builder

	switch m.input {
	case catalogInputSearch:
		b.WriteString("Search: [" + m.search.View() + "]\n\n")
	case catalogInputTags:
		b.WriteString("Tags for new bookmark: [" + m.tagsInput.View() + "]\n\n")
	default:
		if m.query != "" {
			b.WriteString(fmt.Sprintf("Search: %q\n\n", m.query))
		}
	}

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.items) == 0:
		b.WriteString("Nothing found\n")
	default:
		b.WriteString(fmt.Sprintf("  %-3s │ %-8s │ %-16s │ %s\n", "", "Type", "Subject", "Title"))
		b.WriteString("  ────┼──────────┼──────────────────┼──────────────────────────────\n")
		for i, it := range m.items {
			mark := "[ ]"
			if m.store.IsBookmarked(it.ContentType, it.ContentID) {
				mark = markStyle.Render("[*]")
			}
			b.WriteString(fmt.Sprintf("%s %s │ %-8s │ %-16s │ %s\n",
				cursor(i == m.idx), mark, it.ContentType, fitText(it.Subject, 16), fitText(it.Title, 40)))
		}
		if it, ok := m.current(); ok && it.Description != "" {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(fitText(it.Description, 80)))
			b.WriteString("\n")
		}
	}

	if m.busy {
		b.WriteString("\nSaving...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	return renderPage("CATALOG", strings.TrimRight(b.String(), "\n"),
		"enter/space: bookmark on/off │ t: bookmark with tags │ /: search │ tab: next screen")
}

func (m *CatalogModel) current() (models.CatalogItem, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.CatalogItem{}, false
	}
	return m.items[m.idx], true
}

func (m *CatalogModel) cmdLoad(query string) tea.Cmd {
	ctx, server := m.ctx, m.server
	return func() tea.Msg {
		items, err := server.Catalog(ctx, query)
		return catalogLoadedMsg{query: query, items: items, err: err}
	}
}

// cmdToggle removes the bookmark of item if there is one and adds it
// otherwise.
func (m *CatalogModel) cmdToggle(item models.CatalogItem) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		if b, ok := store.GetBookmark(item.ContentID, item.ContentType); ok {
			store.RemoveBookmark(ctx, b.ID)
			return opDoneMsg{page: pageCatalog}
		}
		_, err := store.AddBookmark(ctx, item.BookmarkInput(nil, nil))
		return opDoneMsg{page: pageCatalog, err: err}
	}
}

func (m *CatalogModel) cmdAdd(input models.AddBookmarkInput) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		if store.IsBookmarked(input.ContentType, input.ContentID) {
			return opDoneMsg{page: pageCatalog}
		}
		_, err := store.AddBookmark(ctx, input)
		return opDoneMsg{page: pageCatalog, err: err}
	}
}

func splitTagNames(raw string) []string {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
