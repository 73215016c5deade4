package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-marks/models"
)

// TagsModel lists, creates and deletes tags.
type TagsModel struct {
	ctx   context.Context
	store bookmarkStore

	state models.StoreState
	idx   int
	busy  bool

	creating   bool
	nameInput  textinput.Model
	confirming bool
}

func NewTagsModel(ctx context.Context, store bookmarkStore) *TagsModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "tag name"
	nameInput.CharLimit = 64
	nameInput.Width = 30

	return &TagsModel{ctx: ctx, store: store, state: store.State(), nameInput: nameInput}
}

func (m *TagsModel) Init() tea.Cmd {
	m.state = m.store.State()
	m.idx = clamp(m.idx, len(m.state.Tags))
	return nil
}

func (m *TagsModel) capturing() bool { return m.creating || m.confirming }

func (m *TagsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeStateMsg:
		m.state = msg.state
		m.idx = clamp(m.idx, len(m.state.Tags))
		return m, nil

	case opDoneMsg:
		if msg.page == pageTags {
			m.busy = false
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.creating:
			return m.updateCreate(msg)
		case m.confirming:
			return m.updateConfirm(msg)
		}

		switch {
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(m.state.Tags)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.newItem):
			if m.busy {
				return m, nil
			}
			m.creating = true
			m.nameInput.SetValue("")
			m.nameInput.Focus()
			return m, textinput.Blink
		case key.Matches(msg, keys.delete):
			if m.idx < len(m.state.Tags) && !m.busy {
				m.confirming = true
			}
		}
	}

	return m, nil
}

func (m *TagsModel) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.creating = false
		m.nameInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.creating = false
		m.nameInput.Blur()
		m.busy = true
		ctx, store := m.ctx, m.store
		return m, func() tea.Msg {
			_, err := store.CreateTag(ctx, name)
			return opDoneMsg{page: pageTags, err: err}
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *TagsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirming = false
		if m.idx >= len(m.state.Tags) {
			return m, nil
		}
		tagID := m.state.Tags[m.idx].ID
		m.busy = true
		ctx, store := m.ctx, m.store
		return m, func() tea.Msg {
			store.DeleteTag(ctx, tagID)
			return opDoneMsg{page: pageTags}
		}
	case key.Matches(msg, keys.no):
		m.confirming = false
	}
	return m, nil
}

func (m *TagsModel) View() string {
	if m.confirming && m.idx < len(m.state.Tags) {
		return renderPage("TAGS", confirmModel{message: m.state.Tags[m.idx].Name}.View(), "y: delete │ n/esc: cancel")
	}

	var b strings.Builder
	if m.creating {
		b.WriteString("New tag: [" + m.nameInput.View() + "]\n\n")
	}

	if len(m.state.Tags) == 0 {
		b.WriteString("No tags yet\n")
	}
	for i, t := range m.state.Tags {
		b.WriteString(fmt.Sprintf("%s %-24s %d bookmark(s)\n", cursor(i == m.idx), fitText(t.Name, 24), usage(m.state.Bookmarks, t.ID)))
	}
	if m.busy {
		b.WriteString("\nSaving...\n")
	}

	return renderPage("TAGS", strings.TrimRight(b.String(), "\n"), "n: new │ d: delete │ tab: next screen")
}

func usage(bookmarks []models.Bookmark, tagID string) int {
	n := 0
	for _, b := range bookmarks {
		if b.HasTag(tagID) {
			n++
		}
	}
	return n
}
