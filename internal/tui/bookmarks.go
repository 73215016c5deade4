package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-marks/models"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// BookmarksModel lists the user's bookmarks with their tags. It can remove
// a bookmark, copy its URL and attach or detach tags.
type BookmarksModel struct {
	ctx   context.Context
	store bookmarkStore

	state  models.StoreState
	idx    int
	busy   bool
	status string

	confirming bool

	picking bool
	tagIdx  int
}

func NewBookmarksModel(ctx context.Context, store bookmarkStore) *BookmarksModel {
	return &BookmarksModel{ctx: ctx, store: store, state: store.State()}
}

func (m *BookmarksModel) Init() tea.Cmd {
	m.state = m.store.State()
	m.idx = clamp(m.idx, len(m.state.Bookmarks))
	return nil
}

func (m *BookmarksModel) capturing() bool { return m.confirming || m.picking }

func (m *BookmarksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeStateMsg:
		m.state = msg.state
		m.idx = clamp(m.idx, len(m.state.Bookmarks))
		m.tagIdx = clamp(m.tagIdx, len(m.state.Tags))
		return m, nil

	case opDoneMsg:
		if msg.page == pageBookmarks {
			m.busy = false
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "URL copied"
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.confirming:
			return m.updateConfirm(msg)
		case m.picking:
			return m.updatePicker(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *BookmarksModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.state.Bookmarks)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok && !m.busy {
			m.confirming = true
		}
	case key.Matches(msg, keys.tags):
		if _, ok := m.current(); ok && !m.busy {
			m.status = ""
			m.picking = true
			m.tagIdx = 0
		}
	case key.Matches(msg, keys.copy):
		b, ok := m.current()
		if !ok {
			return m, nil
		}
		if b.URL == nil || *b.URL == "" {
			m.status = "Nothing to copy"
			return m, nil
		}
		url := *b.URL
		return m, func() tea.Msg { return copiedMsg{err: copyToClipboard(url)} }
	}
	return m, nil
}

func (m *BookmarksModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirming = false
		b, ok := m.current()
		if !ok {
			return m, nil
		}
		m.busy = true
		ctx, store := m.ctx, m.store
		return m, func() tea.Msg {
			store.RemoveBookmark(ctx, b.ID)
			return opDoneMsg{page: pageBookmarks}
		}
	case key.Matches(msg, keys.no):
		m.confirming = false
	}
	return m, nil
}

func (m *BookmarksModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.picking = false
	case key.Matches(msg, keys.up):
		if m.tagIdx > 0 {
			m.tagIdx--
		}
	case key.Matches(msg, keys.down):
		if m.tagIdx < len(m.state.Tags)-1 {
			m.tagIdx++
		}
	case key.Matches(msg, keys.toggle):
		b, ok := m.current()
		if !ok || m.busy || m.tagIdx >= len(m.state.Tags) {
			return m, nil
		}
		tag := m.state.Tags[m.tagIdx]
		m.busy = true
		ctx, store := m.ctx, m.store
		return m, func() tea.Msg {
			if b.HasTag(tag.ID) {
				store.RemoveTagFromBookmark(ctx, b.ID, tag.ID)
			} else {
				store.AddTagToBookmark(ctx, b.ID, tag.ID)
			}
			return opDoneMsg{page: pageBookmarks}
		}
	}
	return m, nil
}

func (m *BookmarksModel) View() string {
	if m.confirming {
		b, _ := m.current()
		return renderPage("BOOKMARKS", confirmModel{message: b.Title}.View(), "y: delete │ n/esc: cancel")
	}
	if m.picking {
		return m.viewPicker()
	}

	var b strings.Builder
	switch {
	case m.state.Loading() && len(m.state.Bookmarks) == 0:
		b.WriteString("Loading...\n")
	case len(m.state.Bookmarks) == 0:
		b.WriteString("No bookmarks yet. Add some from the catalog.\n")
	default:
		for i, bm := range m.state.Bookmarks {
			b.WriteString(fmt.Sprintf("%s %-8s %s%s\n",
				cursor(i == m.idx), bm.ContentType, fitText(bm.Title, 44), renderTagList(bm.Tags)))
		}
		if cur, ok := m.current(); ok {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(fmt.Sprintf("%s · saved %s · %s",
				valueOrDash(cur.Description), cur.CreatedAt.Local().Format("2006-01-02 15:04"), valueOrDash(cur.URL))))
			b.WriteString("\n")
		}
	}

	if m.busy {
		b.WriteString("\nSaving...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("BOOKMARKS", strings.TrimRight(b.String(), "\n"),
		"d: remove │ t: tags │ c: copy URL │ tab: next screen")
}

func (m *BookmarksModel) viewPicker() string {
	cur, _ := m.current()

	var b strings.Builder
	b.WriteString("Tags of \"" + fitText(cur.Title, 40) + "\"\n\n")
	if len(m.state.Tags) == 0 {
		b.WriteString("No tags yet. Create them on the tags screen.\n")
	}
	for i, t := range m.state.Tags {
		mark := "[ ]"
		if cur.HasTag(t.ID) {
			mark = markStyle.Render("[*]")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor(i == m.tagIdx), mark, t.Name))
	}
	if m.busy {
		b.WriteString("\nSaving...\n")
	}

	return renderPage("BOOKMARK TAGS", strings.TrimRight(b.String(), "\n"), "enter/space: attach/detach │ esc: back")
}

func (m *BookmarksModel) current() (models.Bookmark, bool) {
	if m.idx < 0 || m.idx >= len(m.state.Bookmarks) {
		return models.Bookmark{}, false
	}
	return m.state.Bookmarks[m.idx], true
}

func renderTagList(tags []models.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, "#"+t.Name)
	}
	return "  " + markStyle.Render(strings.Join(names, " "))
}
