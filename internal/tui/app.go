package tui

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-marks/models"
)

const toastTTL = 4 * time.Second

// RootModel is a TUI router:
// 1) keeps the active page
// 2) handles global keys (quit, tab between screens, logout)
// 3) handles NavigateTo messages
// 4) feeds store snapshots to every page and notifications to the toast line
// 5) delegates all other messages to the active page
type RootModel struct {
	ctx     context.Context
	session authenticator
	server  serverInfo

	pages   map[string]tea.Model
	current string

	state    models.StoreState
	stateCh  <-chan models.StoreState
	notifyCh <-chan models.Notification
	spinner  spinner.Model

	toast    *models.Notification
	toastSeq int

	buildInfo     models.AppBuildInfo
	serverVersion string
	showBuildInfo bool

	quitByUser bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(
	ctx context.Context,
	session authenticator,
	server serverInfo,
	pages map[string]tea.Model,
	startPage string,
	state models.StoreState,
	stateCh <-chan models.StoreState,
	notifyCh <-chan models.Notification,
	buildInfo models.AppBuildInfo,
) RootModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return RootModel{
		ctx:       ctx,
		session:   session,
		server:    server,
		pages:     pages,
		current:   startPage,
		state:     state,
		stateCh:   stateCh,
		notifyCh:  notifyCh,
		spinner:   s,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{r.spinner.Tick, waitForState(r.stateCh), waitForNotification(r.notifyCh)}
	if page := r.page(); page != nil {
		cmds = append(cmds, page.Init())
	}
	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if model, cmd, handled := r.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case NavigateTo:
		return r.navigate(msg)

	case authResultMsg:
		cmd := r.delegate(msg)
		if msg.err != nil {
			return r, cmd
		}
		return r, tea.Batch(cmd, func() tea.Msg { return NavigateTo{Page: pageCatalog} })

	case storeStateMsg:
		r.state = msg.state
		var cmds []tea.Cmd
		for name, page := range r.pages {
			next, cmd := page.Update(msg)
			r.pages[name] = next
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, waitForState(r.stateCh))
		return r, tea.Batch(cmds...)

	case notificationMsg:
		n := msg.notification
		r.toast = &n
		r.toastSeq++
		seq := r.toastSeq
		return r, tea.Batch(
			waitForNotification(r.notifyCh),
			tea.Tick(toastTTL, func(time.Time) tea.Msg { return clearToastMsg{seq: seq} }),
		)

	case clearToastMsg:
		if msg.seq == r.toastSeq {
			r.toast = nil
		}
		return r, nil

	case serverVersionMsg:
		r.serverVersion = string(msg)
		return r, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd
	}

	return r, r.delegate(msg)
}

func (r RootModel) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		r.quitByUser = true
		return r, tea.Quit, true
	}

	if r.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			r.showBuildInfo = false
		}
		return r, nil, true
	}

	if c, ok := r.page().(interface{ capturing() bool }); ok && c.capturing() {
		return r, nil, false
	}

	switch {
	case key.Matches(msg, keys.quit):
		r.quitByUser = true
		return r, tea.Quit, true
	case key.Matches(msg, keys.version) && r.current == pageMenu:
		r.showBuildInfo = true
		return r, r.cmdServerVersion(), true
	case key.Matches(msg, keys.tab) && r.isMainPage():
		return r, navigateCmd(r.nextMainPage(1)), true
	case key.Matches(msg, keys.backtab) && r.isMainPage():
		return r, navigateCmd(r.nextMainPage(-1)), true
	case key.Matches(msg, keys.esc) && r.isMainPage() && !r.signedIn():
		return r, navigateCmd(pageMenu), true
	case key.Matches(msg, keys.logout) && r.isMainPage() && r.signedIn():
		r.session.Logout()
		return r, func() tea.Msg { return NavigateTo{Page: pageMenu, Payload: "Signed out"} }, true
	}

	return r, nil, false
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, exists := r.pages[nav.Page]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = nav.Page

	if nav.Payload != nil {
		return r, r.delegate(nav)
	}
	return r, next.Init()
}

func (r RootModel) delegate(msg tea.Msg) tea.Cmd {
	page := r.page()
	if page == nil {
		return nil
	}
	next, cmd := page.Update(msg)
	r.pages[r.current] = next
	return cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo, r.serverVersion))
	}

	var b strings.Builder
	b.WriteString(r.header())
	b.WriteString("\n\n")

	if page := r.page(); page != nil {
		b.WriteString(page.View())
	} else {
		b.WriteString(renderPage("STUDY MARKS", "", ""))
	}

	if r.toast != nil {
		b.WriteString("\n\n")
		line := r.toast.Title
		if r.toast.Description != "" {
			line += ": " + r.toast.Description
		}
		b.WriteString(toastStyle(r.toast.Severity).Render(line))
	}

	return appStyle.Render(b.String())
}

// header shows who is signed in and the phase of the bookmark store.
func (r RootModel) header() string {
	parts := []string{titleStyle.Render("study-marks")}

	if login := r.session.UserLogin(); login != "" {
		parts = append(parts, login)
	} else {
		parts = append(parts, helpStyle.Render("not signed in"))
	}

	if r.signedIn() {
		switch r.state.Phase {
		case models.PhaseLoading:
			parts = append(parts, r.spinner.View()+" syncing")
		case models.PhaseError:
			parts = append(parts, errorStyle.Render("offline: "+humanizeError(r.state.Err)))
		default:
			parts = append(parts, successStyle.Render("up to date"))
		}
	}

	if r.isMainPage() {
		tabs := make([]string, 0, len(mainPages))
		for _, p := range mainPages {
			if p == r.current {
				tabs = append(tabs, titleStyle.Render("["+p+"]"))
			} else {
				tabs = append(tabs, helpStyle.Render(p))
			}
		}
		parts = append(parts, strings.Join(tabs, " "))
	}

	hint := ""
	if r.isMainPage() {
		if r.signedIn() {
			hint = helpStyle.Render("  (o: log out │ q: quit)")
		} else {
			hint = helpStyle.Render("  (esc: menu │ q: quit)")
		}
	}

	return strings.Join(parts, " · ") + hint
}

func (r RootModel) page() tea.Model {
	return r.pages[r.current]
}

func (r RootModel) signedIn() bool {
	return r.session.UserLogin() != ""
}

func (r RootModel) isMainPage() bool {
	return slices.Contains(mainPages, r.current)
}

func (r RootModel) nextMainPage(step int) string {
	i := slices.Index(mainPages, r.current)
	n := len(mainPages)
	return mainPages[((i+step)%n+n)%n]
}

func (r RootModel) cmdServerVersion() tea.Cmd {
	ctx, server := r.ctx, r.server
	return func() tea.Msg {
		v, err := server.Version(ctx)
		if err != nil {
			return serverVersionMsg("unavailable")
		}
		return serverVersionMsg(v)
	}
}

type serverVersionMsg string

func navigateCmd(page string) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page} }
}

func waitForState(ch <-chan models.StoreState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return storeStateMsg{state: st}
	}
}

func waitForNotification(ch <-chan models.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{notification: n}
	}
}
