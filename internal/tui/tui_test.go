package tui

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/study-marks/internal/adapter"
	"github.com/MKhiriev/study-marks/internal/service"
	"github.com/MKhiriev/study-marks/models"
)

type fakeStore struct {
	mu        sync.Mutex
	state     models.StoreState
	calls     []string
	added     []models.AddBookmarkInput
	addErr    error
	createErr error
}

func (f *fakeStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeStore) State() models.StoreState { return f.state }

func (f *fakeStore) Subscribe() (<-chan models.StoreState, func()) {
	return make(chan models.StoreState), func() {}
}

func (f *fakeStore) AddBookmark(_ context.Context, in models.AddBookmarkInput) (*models.Bookmark, error) {
	f.record("add " + in.ContentID)
	f.added = append(f.added, in)
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.Bookmark{ID: "b-new", ContentType: in.ContentType, ContentID: in.ContentID}, nil
}

func (f *fakeStore) RemoveBookmark(_ context.Context, id string) bool {
	f.record("remove " + id)
	return true
}

func (f *fakeStore) IsBookmarked(ct models.ContentType, id string) bool {
	_, ok := f.GetBookmark(id, ct)
	return ok
}

func (f *fakeStore) GetBookmark(id string, ct models.ContentType) (models.Bookmark, bool) {
	for _, b := range f.state.Bookmarks {
		if b.Matches(ct, id) {
			return b, true
		}
	}
	return models.Bookmark{}, false
}

func (f *fakeStore) CreateTag(_ context.Context, name string) (*models.Tag, error) {
	f.record("create-tag " + name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Tag{ID: "t-new", Name: name}, nil
}

func (f *fakeStore) DeleteTag(_ context.Context, id string) bool {
	f.record("delete-tag " + id)
	return true
}

func (f *fakeStore) AddTagToBookmark(_ context.Context, b, t string) bool {
	f.record("attach " + b + " " + t)
	return true
}

func (f *fakeStore) RemoveTagFromBookmark(_ context.Context, b, t string) bool {
	f.record("detach " + b + " " + t)
	return true
}

type fakeSession struct {
	login    string
	err      error
	loggedIn []string
	logouts  int
}

func (f *fakeSession) Login(_ context.Context, login, _ string) error {
	f.loggedIn = append(f.loggedIn, "login "+login)
	if f.err == nil {
		f.login = login
	}
	return f.err
}

func (f *fakeSession) Register(_ context.Context, login, _ string) error {
	f.loggedIn = append(f.loggedIn, "register "+login)
	if f.err == nil {
		f.login = login
	}
	return f.err
}

func (f *fakeSession) Logout() {
	f.logouts++
	f.login = ""
}

func (f *fakeSession) UserLogin() string { return f.login }

type fakeServer struct {
	items   []models.CatalogItem
	queries []string
}

func (f *fakeServer) Catalog(_ context.Context, q string) ([]models.CatalogItem, error) {
	f.queries = append(f.queries, q)
	return f.items, nil
}

func (f *fakeServer) Version(context.Context) (string, error) { return "1.0.0", nil }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

var catalogItems = []models.CatalogItem{
	{ContentType: models.Note, ContentID: "phys-note-1", Subject: "Physics", Title: "Physical Quantities", URL: "https://example.com/pq"},
	{ContentType: models.PYQ, ContentID: "pyq-2023-math", Subject: "Mathematics", Title: "Paper 2023"},
}

func loadedCatalog(t *testing.T, store *fakeStore) (*CatalogModel, *fakeServer) {
	t.Helper()
	server := &fakeServer{items: catalogItems}
	m := NewCatalogModel(context.Background(), store, server)
	msg := run(t, m.Init())
	m.Update(msg)
	return m, server
}

func TestMenu_Navigates(t *testing.T) {
	m := NewMenuModel()

	m.Update(keyMsg("down"))
	_, cmd := m.Update(keyMsg("enter"))

	assert.Equal(t, NavigateTo{Page: pageRegister}, run(t, cmd))
}

func TestAuthModel_RequiresFields(t *testing.T) {
	session := &fakeSession{}
	m := NewAuthModel(context.Background(), session, modeLogin)

	_, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Login and password are required")
	assert.Empty(t, session.loggedIn)
}

func TestAuthModel_Submits(t *testing.T) {
	session := &fakeSession{}
	m := NewAuthModel(context.Background(), session, modeRegister)

	m.Update(keyMsg("alice"))
	m.Update(keyMsg("tab"))
	m.Update(keyMsg("secret1"))
	_, cmd := m.Update(keyMsg("enter"))

	msg := run(t, cmd)
	assert.Equal(t, authResultMsg{login: "alice"}, msg)
	assert.Equal(t, []string{"register alice"}, session.loggedIn)
}

func TestAuthModel_ShowsHumanError(t *testing.T) {
	m := NewAuthModel(context.Background(), &fakeSession{}, modeLogin)

	m.Update(authResultMsg{err: adapter.ErrUnauthorized})
	assert.Contains(t, m.View(), "Wrong login or password")
}

func TestCatalogModel_ToggleAddsThenRemoves(t *testing.T) {
	store := &fakeStore{}
	m, _ := loadedCatalog(t, store)

	_, cmd := m.Update(keyMsg("enter"))
	m.Update(run(t, cmd))
	require.Len(t, store.added, 1)
	assert.Equal(t, catalogItems[0].BookmarkInput(nil, nil), store.added[0])

	store.state.Bookmarks = []models.Bookmark{{ID: "b-1", ContentType: models.Note, ContentID: "phys-note-1"}}
	assert.Contains(t, m.View(), "[*]")

	_, cmd = m.Update(keyMsg(" "))
	m.Update(run(t, cmd))
	assert.Equal(t, []string{"add phys-note-1", "remove b-1"}, store.calls)
}

func TestCatalogModel_BusyIgnoresDoubleToggle(t *testing.T) {
	store := &fakeStore{}
	m, _ := loadedCatalog(t, store)

	_, first := m.Update(keyMsg("enter"))
	_, second := m.Update(keyMsg("enter"))

	assert.NotNil(t, first)
	assert.Nil(t, second)
}

func TestCatalogModel_AskLoginWhenSignedOut(t *testing.T) {
	store := &fakeStore{addErr: service.ErrNoCurrentUser}
	m, _ := loadedCatalog(t, store)

	_, cmd := m.Update(keyMsg("enter"))
	m.Update(run(t, cmd))

	assert.Contains(t, m.View(), "Log in to bookmark content")
}

func TestCatalogModel_BookmarkWithNewTags(t *testing.T) {
	store := &fakeStore{}
	m, _ := loadedCatalog(t, store)

	m.Update(keyMsg("down"))
	m.Update(keyMsg("t"))
	assert.True(t, m.capturing())
	m.Update(keyMsg("exam, , revision"))
	_, cmd := m.Update(keyMsg("enter"))
	m.Update(run(t, cmd))

	require.Len(t, store.added, 1)
	assert.Equal(t, "pyq-2023-math", store.added[0].ContentID)
	assert.Equal(t, []string{"exam", "revision"}, store.added[0].NewTags)
}

func TestCatalogModel_Search(t *testing.T) {
	m, server := loadedCatalog(t, &fakeStore{})

	m.Update(keyMsg("/"))
	m.Update(keyMsg("physics"))
	_, cmd := m.Update(keyMsg("enter"))
	m.Update(run(t, cmd))

	assert.Equal(t, []string{"", "physics"}, server.queries)
	assert.Contains(t, m.View(), `Search: "physics"`)
}

func bookmarksState() models.StoreState {
	url := "https://example.com/pq"
	return models.StoreState{
		Phase: models.PhaseReady,
		Bookmarks: []models.Bookmark{
			{ID: "b-1", ContentType: models.Note, ContentID: "phys-note-1", Title: "Physical Quantities", URL: &url,
				Tags: []models.Tag{{ID: "t-1", Name: "exam"}}},
			{ID: "b-2", ContentType: models.PYQ, ContentID: "pyq-2023-math", Title: "Paper 2023", Tags: []models.Tag{}},
		},
		Tags: []models.Tag{{ID: "t-1", Name: "exam"}, {ID: "t-2", Name: "revision"}},
	}
}

func TestBookmarksModel_RemoveAfterConfirm(t *testing.T) {
	store := &fakeStore{state: bookmarksState()}
	m := NewBookmarksModel(context.Background(), store)

	m.Update(keyMsg("down"))
	m.Update(keyMsg("d"))
	assert.Contains(t, m.View(), `Delete "Paper 2023"?`)

	_, cmd := m.Update(keyMsg("y"))
	m.Update(run(t, cmd))
	assert.Equal(t, []string{"remove b-2"}, store.calls)
}

func TestBookmarksModel_CancelRemove(t *testing.T) {
	store := &fakeStore{state: bookmarksState()}
	m := NewBookmarksModel(context.Background(), store)

	m.Update(keyMsg("d"))
	_, cmd := m.Update(keyMsg("n"))

	assert.Nil(t, cmd)
	assert.False(t, m.capturing())
	assert.Empty(t, store.calls)
}

func TestBookmarksModel_CopyURL(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	m := NewBookmarksModel(context.Background(), &fakeStore{state: bookmarksState()})

	_, cmd := m.Update(keyMsg("c"))
	m.Update(run(t, cmd))
	assert.Equal(t, "https://example.com/pq", copied)
	assert.Contains(t, m.View(), "URL copied")

	m.Update(keyMsg("down"))
	_, cmd = m.Update(keyMsg("c"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Nothing to copy")
}

func TestBookmarksModel_TagPicker(t *testing.T) {
	store := &fakeStore{state: bookmarksState()}
	m := NewBookmarksModel(context.Background(), store)

	m.Update(keyMsg("t"))
	require.True(t, m.capturing())

	_, cmd := m.Update(keyMsg("enter"))
	m.Update(run(t, cmd))
	m.Update(keyMsg("down"))
	_, cmd = m.Update(keyMsg("enter"))
	m.Update(run(t, cmd))

	assert.Equal(t, []string{"detach b-1 t-1", "attach b-1 t-2"}, store.calls)

	m.Update(keyMsg("esc"))
	assert.False(t, m.capturing())
}

func TestBookmarksModel_FollowsStoreState(t *testing.T) {
	m := NewBookmarksModel(context.Background(), &fakeStore{state: models.StoreState{Phase: models.PhaseReady}})
	assert.Contains(t, m.View(), "No bookmarks yet")

	m.Update(storeStateMsg{state: bookmarksState()})
	assert.Contains(t, m.View(), "Physical Quantities")
	assert.Contains(t, m.View(), "#exam")
}

func TestTagsModel_CreateAndDelete(t *testing.T) {
	store := &fakeStore{state: bookmarksState()}
	m := NewTagsModel(context.Background(), store)
	assert.Contains(t, m.View(), "1 bookmark(s)")

	m.Update(keyMsg("n"))
	m.Update(keyMsg("formula"))
	_, cmd := m.Update(keyMsg("enter"))
	m.Update(run(t, cmd))

	m.Update(keyMsg("down"))
	m.Update(keyMsg("d"))
	_, cmd = m.Update(keyMsg("y"))
	m.Update(run(t, cmd))

	assert.Equal(t, []string{"create-tag formula", "delete-tag t-2"}, store.calls)
}

func newTestRoot(session *fakeSession, store *fakeStore, start string) (RootModel, chan models.Notification) {
	ctx := context.Background()
	server := &fakeServer{items: catalogItems}
	notes := make(chan models.Notification, 4)
	pages := map[string]tea.Model{
		pageMenu:      NewMenuModel(),
		pageLogin:     NewAuthModel(ctx, session, modeLogin),
		pageRegister:  NewAuthModel(ctx, session, modeRegister),
		pageCatalog:   NewCatalogModel(ctx, store, server),
		pageBookmarks: NewBookmarksModel(ctx, store),
		pageTags:      NewTagsModel(ctx, store),
	}
	return NewRootModel(ctx, session, server, pages, start, store.State(), nil, notes, models.AppBuildInfo{}), notes
}

func update(r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	next, cmd := r.Update(msg)
	return next.(RootModel), cmd
}

func TestRootModel_AuthSuccessOpensCatalog(t *testing.T) {
	session := &fakeSession{}
	r, _ := newTestRoot(session, &fakeStore{}, pageLogin)

	session.login = "alice"
	r, cmd := update(r, authResultMsg{login: "alice"})
	require.NotNil(t, cmd)

	r, _ = update(r, NavigateTo{Page: pageCatalog})
	assert.Equal(t, pageCatalog, r.current)
	assert.Contains(t, r.View(), "alice")
}

func TestRootModel_TabCyclesMainPages(t *testing.T) {
	r, _ := newTestRoot(&fakeSession{login: "alice"}, &fakeStore{}, pageCatalog)

	var seen []string
	for range 3 {
		var cmd tea.Cmd
		r, cmd = update(r, keyMsg("tab"))
		nav, ok := run(t, cmd).(NavigateTo)
		require.True(t, ok)
		r, _ = update(r, nav)
		seen = append(seen, r.current)
	}

	assert.Equal(t, []string{pageBookmarks, pageTags, pageCatalog}, seen)
}

func TestRootModel_LogoutReturnsToMenu(t *testing.T) {
	session := &fakeSession{login: "alice"}
	r, _ := newTestRoot(session, &fakeStore{}, pageBookmarks)

	r, cmd := update(r, keyMsg("o"))
	assert.Equal(t, 1, session.logouts)

	r, _ = update(r, run(t, cmd))
	assert.Equal(t, pageMenu, r.current)
	assert.Contains(t, r.View(), "Signed out")
}

func TestRootModel_StateReachesEveryPage(t *testing.T) {
	r, _ := newTestRoot(&fakeSession{login: "alice"}, &fakeStore{}, pageCatalog)

	r, _ = update(r, storeStateMsg{state: bookmarksState()})

	assert.Contains(t, r.pages[pageBookmarks].View(), "Physical Quantities")
	assert.Contains(t, r.pages[pageTags].View(), "revision")
	assert.Contains(t, r.View(), "up to date")
}

func TestRootModel_ShowsLoadingAndError(t *testing.T) {
	r, _ := newTestRoot(&fakeSession{login: "alice"}, &fakeStore{}, pageCatalog)

	r, _ = update(r, storeStateMsg{state: models.StoreState{Phase: models.PhaseLoading}})
	assert.Contains(t, r.View(), "syncing")

	r, _ = update(r, storeStateMsg{state: models.StoreState{Phase: models.PhaseError, Err: errors.New("dial tcp: refused")}})
	assert.Contains(t, r.View(), "No network or the server is unavailable")
}

func TestRootModel_ToastExpiresBySequence(t *testing.T) {
	r, _ := newTestRoot(&fakeSession{login: "alice"}, &fakeStore{}, pageCatalog)

	r, _ = update(r, notificationMsg{notification: models.Notification{Title: "Bookmark added", Severity: models.SeveritySuccess}})
	r, _ = update(r, notificationMsg{notification: models.Notification{Title: "Could not remove bookmark", Severity: models.SeverityError}})
	assert.Contains(t, r.View(), "Could not remove bookmark")

	r, _ = update(r, clearToastMsg{seq: 1})
	assert.Contains(t, r.View(), "Could not remove bookmark", "stale timer keeps the newer toast")

	r, _ = update(r, clearToastMsg{seq: 2})
	assert.NotContains(t, r.View(), "Could not remove bookmark")
}

func TestRootModel_QuitKeys(t *testing.T) {
	r, _ := newTestRoot(&fakeSession{}, &fakeStore{}, pageLogin)

	// q is typed into the form
	r, _ = update(r, keyMsg("q"))
	assert.False(t, r.quitByUser)

	r, cmd := update(r, keyMsg("ctrl+c"))
	assert.True(t, r.quitByUser)
	assert.IsType(t, tea.QuitMsg{}, run(t, cmd))
}

func TestRootModel_BuildInfo(t *testing.T) {
	r, _ := newTestRoot(&fakeSession{}, &fakeStore{}, pageMenu)

	r, cmd := update(r, keyMsg("v"))
	r, _ = update(r, run(t, cmd))
	assert.Contains(t, r.View(), "1.0.0")

	r, _ = update(r, keyMsg("esc"))
	assert.False(t, r.showBuildInfo)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "abc...", fitText("abcdefghij", 6))
	assert.Equal(t, "ab", fitText("ab", 6))
	assert.Equal(t, 0, clamp(5, 0))
	assert.Equal(t, 2, clamp(5, 3))
	assert.Equal(t, []string{"a", "b"}, splitTagNames(" a,,b ,"))
	assert.True(t, slices.Contains(mainPages, pageTags))
	assert.True(t, strings.Contains(humanizeError(adapter.ErrConflict), "taken"))
}
