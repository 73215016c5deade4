package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/study-marks/internal/adapter"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/mock"
	"github.com/MKhiriev/study-marks/models"
)

// fakeIdentity is a settable IdentityProvider.
type fakeIdentity struct {
	mu     sync.Mutex
	userID string
	subs   []chan models.IdentityEvent
}

func (f *fakeIdentity) CurrentUserID() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID, f.userID != ""
}

func (f *fakeIdentity) Subscribe() (<-chan models.IdentityEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan models.IdentityEvent, 8)
	f.subs = append(f.subs, ch)
	return ch, func() {}
}

func (f *fakeIdentity) set(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userID = userID
	for _, ch := range f.subs {
		ch <- models.IdentityEvent{UserID: userID}
	}
}

// fakeRemote is an in-memory RemoteStore that scopes every call to the
// identity's current user, the way the server does.
type fakeRemote struct {
	identity *fakeIdentity

	mu        sync.Mutex
	seq       int
	clock     time.Time
	bookmarks []models.Bookmark
	tags      []models.Tag
	links     []models.BookmarkTag
	gates     map[string]chan struct{}
	tagInsert int
}

func newFakeRemote(identity *fakeIdentity) *fakeRemote {
	return &fakeRemote{
		identity: identity,
		clock:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		gates:    make(map[string]chan struct{}),
	}
}

// block makes ListBookmarks for userID wait until the returned func is
// called.
func (f *fakeRemote) block(userID string) func() {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[userID] = gate
	f.mu.Unlock()
	return func() { close(gate) }
}

func (f *fakeRemote) user() (string, error) {
	id, ok := f.identity.CurrentUserID()
	if !ok {
		return "", adapter.ErrUnauthorized
	}
	return id, nil
}

func (f *fakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRemote) ListBookmarks(context.Context) ([]models.Bookmark, error) {
	userID, err := f.user()
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	gate := f.gates[userID]
	delete(f.gates, userID)
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Bookmark
	for _, b := range f.bookmarks {
		if b.UserID != userID {
			continue
		}
		b.Tags = []models.Tag{}
		for _, l := range f.links {
			if l.BookmarkID != b.ID {
				continue
			}
			for _, t := range f.tags {
				if t.ID == l.TagID {
					b.Tags = append(b.Tags, t)
				}
			}
		}
		out = append(out, b)
	}
	slices.Reverse(out)
	return out, nil
}

func (f *fakeRemote) InsertBookmark(_ context.Context, in models.NewBookmark) (models.Bookmark, error) {
	userID, err := f.user()
	if err != nil {
		return models.Bookmark{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clock = f.clock.Add(time.Minute)
	b := models.Bookmark{
		ID:          f.nextID("b"),
		UserID:      userID,
		ContentType: in.ContentType,
		ContentID:   in.ContentID,
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		CreatedAt:   f.clock,
	}
	f.bookmarks = append(f.bookmarks, b)
	return b, nil
}

func (f *fakeRemote) DeleteBookmark(_ context.Context, bookmarkID string) error {
	userID, err := f.user()
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	before := len(f.bookmarks)
	f.bookmarks = slices.DeleteFunc(f.bookmarks, func(b models.Bookmark) bool {
		return b.ID == bookmarkID && b.UserID == userID
	})
	if len(f.bookmarks) == before {
		return fmt.Errorf("%w: bookmark not found", adapter.ErrNotFound)
	}
	f.links = slices.DeleteFunc(f.links, func(l models.BookmarkTag) bool { return l.BookmarkID == bookmarkID })
	return nil
}

func (f *fakeRemote) ListTags(context.Context) ([]models.Tag, error) {
	userID, err := f.user()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Tag
	for _, t := range f.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRemote) FindTagByName(_ context.Context, name string) (models.Tag, error) {
	userID, err := f.user()
	if err != nil {
		return models.Tag{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tags {
		if t.UserID == userID && t.Name == name {
			return t, nil
		}
	}
	return models.Tag{}, fmt.Errorf("%w: tag not found", adapter.ErrNotFound)
}

func (f *fakeRemote) InsertTag(_ context.Context, name string) (models.Tag, error) {
	userID, err := f.user()
	if err != nil {
		return models.Tag{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tagInsert++
	t := models.Tag{ID: f.nextID("t"), Name: name, UserID: userID, CreatedAt: f.clock}
	f.tags = append(f.tags, t)
	return t, nil
}

func (f *fakeRemote) DeleteTag(_ context.Context, tagID string) error {
	userID, err := f.user()
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	before := len(f.tags)
	f.tags = slices.DeleteFunc(f.tags, func(t models.Tag) bool { return t.ID == tagID && t.UserID == userID })
	if len(f.tags) == before {
		return fmt.Errorf("%w: tag not found", adapter.ErrNotFound)
	}
	f.links = slices.DeleteFunc(f.links, func(l models.BookmarkTag) bool { return l.TagID == tagID })
	return nil
}

func (f *fakeRemote) AttachTag(_ context.Context, bookmarkID, tagID string) error {
	if _, err := f.user(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.links = append(f.links, models.BookmarkTag{BookmarkID: bookmarkID, TagID: tagID})
	return nil
}

func (f *fakeRemote) DetachTag(_ context.Context, bookmarkID, tagID string) error {
	if _, err := f.user(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.links = slices.DeleteFunc(f.links, func(l models.BookmarkTag) bool {
		return l.BookmarkID == bookmarkID && l.TagID == tagID
	})
	return nil
}

// recordingNotifier keeps every notification.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []models.Notification
}

func (r *recordingNotifier) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, n)
}

func (r *recordingNotifier) severities() []models.Severity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Severity, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m.Severity)
	}
	return out
}

type storeFixture struct {
	store    *BookmarkStore
	identity *fakeIdentity
	remote   *fakeRemote
	notes    *recordingNotifier
}

func newStoreFixture(t *testing.T, userID string) storeFixture {
	t.Helper()
	identity := &fakeIdentity{userID: userID}
	remote := newFakeRemote(identity)
	notes := &recordingNotifier{}
	return storeFixture{
		store:    NewBookmarkStore(remote, identity, notes, logger.Nop()),
		identity: identity,
		remote:   remote,
		notes:    notes,
	}
}

var physicalQuantities = models.AddBookmarkInput{
	ContentType: models.Note,
	ContentID:   "phys-note-1",
	Title:       "Physical Quantities",
}

func TestBookmarkStore_InitialState(t *testing.T) {
	f := newStoreFixture(t, "u-1")

	st := f.store.State()
	assert.Equal(t, models.PhaseLoading, st.Phase)
	assert.NotNil(t, st.Bookmarks)
	assert.NotNil(t, st.Tags)
	assert.Empty(t, st.Bookmarks)
}

func TestBookmarkStore_Unauthenticated(t *testing.T) {
	f := newStoreFixture(t, "")
	ctx := context.Background()

	require.True(t, f.store.FetchAll(ctx))

	got, err := f.store.AddBookmark(ctx, physicalQuantities)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNoCurrentUser)

	tag, err := f.store.CreateTag(ctx, "exam")
	assert.Nil(t, tag)
	assert.ErrorIs(t, err, ErrNoCurrentUser)

	assert.False(t, f.store.RemoveBookmark(ctx, "b-1"))
	assert.False(t, f.store.DeleteTag(ctx, "t-1"))
	assert.False(t, f.store.AddTagToBookmark(ctx, "b-1", "t-1"))
	assert.False(t, f.store.RemoveTagFromBookmark(ctx, "b-1", "t-1"))

	st := f.store.State()
	assert.Equal(t, []models.Bookmark{}, st.Bookmarks)
	assert.Equal(t, []models.Tag{}, st.Tags)
	assert.False(t, st.Loading())
	assert.Empty(t, f.notes.severities(), "unauthenticated calls are silent")
	assert.Empty(t, f.remote.bookmarks)
}

func TestBookmarkStore_AddThenList(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()
	require.True(t, f.store.FetchAll(ctx))

	assert.False(t, f.store.IsBookmarked(models.Note, "phys-note-1"))

	got, err := f.store.AddBookmark(ctx, physicalQuantities)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, f.store.IsBookmarked(models.Note, "phys-note-1"))
	assert.False(t, f.store.IsBookmarked(models.Video, "phys-note-1"))

	require.True(t, f.store.FetchAll(ctx))
	st := f.store.State()
	require.Len(t, st.Bookmarks, 1)

	b := st.Bookmarks[0]
	assert.Equal(t, "phys-note-1", b.ContentID)
	assert.Equal(t, []models.Tag{}, b.Tags)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, models.PhaseReady, st.Phase)
	assert.Equal(t, []models.Severity{models.SeveritySuccess}, f.notes.severities())
}

func TestBookmarkStore_TagThenFilter(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()
	require.True(t, f.store.FetchAll(ctx))

	revision, err := f.store.CreateTag(ctx, "revision")
	require.NoError(t, err)
	assert.Len(t, f.store.State().Tags, 1, "created tag is appended locally")

	in := physicalQuantities
	in.ContentID = "n1"
	in.TagIDs = []string{revision.ID}
	_, err = f.store.AddBookmark(ctx, in)
	require.NoError(t, err)

	b, ok := f.store.GetBookmark("n1", models.Note)
	require.True(t, ok)

	want := []models.Tag{{ID: revision.ID, Name: "revision"}}
	if diff := cmp.Diff(want, b.Tags, cmpopts.IgnoreFields(models.Tag{}, "UserID", "CreatedAt")); diff != "" {
		t.Errorf("hydrated tags mismatch (-want +got):\n%s", diff)
	}
}

func TestBookmarkStore_ReuseOverDuplication(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()

	first := physicalQuantities
	first.NewTags = []string{"exam"}
	second := physicalQuantities
	second.ContentID = "phys-note-2"
	second.NewTags = []string{"  exam ", "", "exam"}

	_, err := f.store.AddBookmark(ctx, first)
	require.NoError(t, err)
	_, err = f.store.AddBookmark(ctx, second)
	require.NoError(t, err)

	st := f.store.State()
	require.Len(t, st.Tags, 1)
	assert.Equal(t, "exam", st.Tags[0].Name)
	assert.Equal(t, 1, f.remote.tagInsert)

	for _, b := range st.Bookmarks {
		require.Len(t, b.Tags, 1, b.ContentID)
		assert.Equal(t, st.Tags[0].ID, b.Tags[0].ID)
	}
}

func TestBookmarkStore_RemovalCompleteness(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()

	added, err := f.store.AddBookmark(ctx, physicalQuantities)
	require.NoError(t, err)

	require.True(t, f.store.RemoveBookmark(ctx, added.ID))

	_, ok := f.store.GetBookmark(added.ContentID, added.ContentType)
	assert.False(t, ok)
	assert.False(t, slices.ContainsFunc(f.store.State().Bookmarks, func(b models.Bookmark) bool {
		return b.ID == added.ID
	}))
}

func TestBookmarkStore_RemoveNonexistent(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()

	_, err := f.store.AddBookmark(ctx, physicalQuantities)
	require.NoError(t, err)
	before := f.store.State().Bookmarks

	// owned by somebody else
	f.remote.bookmarks = append(f.remote.bookmarks, models.Bookmark{ID: "b-other", UserID: "u-2"})

	assert.False(t, f.store.RemoveBookmark(ctx, "b-other"))
	assert.False(t, f.store.RemoveBookmark(ctx, "b-missing"))

	assert.Equal(t, before, f.store.State().Bookmarks)
	assert.Equal(t, models.SeverityError, f.notes.severities()[len(f.notes.severities())-1])
}

func TestBookmarkStore_TagCascade(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()

	exam, err := f.store.CreateTag(ctx, "exam")
	require.NoError(t, err)
	keep, err := f.store.CreateTag(ctx, "keep")
	require.NoError(t, err)

	b1 := physicalQuantities
	b1.TagIDs = []string{exam.ID, keep.ID}
	b2 := physicalQuantities
	b2.ContentID = "phys-note-2"
	b2.TagIDs = []string{exam.ID}

	_, err = f.store.AddBookmark(ctx, b1)
	require.NoError(t, err)
	_, err = f.store.AddBookmark(ctx, b2)
	require.NoError(t, err)

	require.True(t, f.store.DeleteTag(ctx, exam.ID))

	st := f.store.State()
	require.Len(t, st.Bookmarks, 2, "bookmarks survive tag deletion")
	for _, b := range st.Bookmarks {
		assert.False(t, b.HasTag(exam.ID), b.ContentID)
	}
	got, _ := f.store.GetBookmark("phys-note-1", models.Note)
	assert.True(t, got.HasTag(keep.ID))
	assert.Equal(t, []string{keep.ID}, tagIDs(st.Tags))
}

func TestBookmarkStore_AttachDetach(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()

	tag, err := f.store.CreateTag(ctx, "formula")
	require.NoError(t, err)
	b, err := f.store.AddBookmark(ctx, physicalQuantities)
	require.NoError(t, err)

	require.True(t, f.store.AddTagToBookmark(ctx, b.ID, tag.ID))
	got, _ := f.store.GetBookmark(b.ContentID, b.ContentType)
	assert.True(t, got.HasTag(tag.ID))

	require.True(t, f.store.RemoveTagFromBookmark(ctx, b.ID, tag.ID))
	got, _ = f.store.GetBookmark(b.ContentID, b.ContentType)
	assert.False(t, got.HasTag(tag.ID))
}

func TestBookmarkStore_NewestFirst(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		in := physicalQuantities
		in.ContentID = id
		_, err := f.store.AddBookmark(ctx, in)
		require.NoError(t, err)
	}

	var ids []string
	for _, b := range f.store.State().Bookmarks {
		ids = append(ids, b.ContentID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestBookmarkStore_UserIsolation(t *testing.T) {
	f := newStoreFixture(t, "u-a")
	ctx := context.Background()

	_, err := f.store.AddBookmark(ctx, physicalQuantities)
	require.NoError(t, err)
	require.Len(t, f.store.State().Bookmarks, 1)

	release := f.remote.block("u-b")
	f.identity.set("u-b")

	done := make(chan bool)
	go func() { done <- f.store.FetchAll(ctx) }()

	require.Eventually(t, func() bool {
		st := f.store.State()
		return st.UserID == "u-b" && st.Loading()
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, f.store.State().Bookmarks, "previous user's rows must be gone while loading")

	release()
	require.True(t, <-done)

	st := f.store.State()
	assert.Equal(t, models.PhaseReady, st.Phase)
	assert.Empty(t, st.Bookmarks)
	assert.False(t, f.store.IsBookmarked(models.Note, "phys-note-1"))
}

func TestBookmarkStore_StaleFetchDropped(t *testing.T) {
	f := newStoreFixture(t, "u-a")
	ctx := context.Background()

	_, err := f.store.AddBookmark(ctx, physicalQuantities)
	require.NoError(t, err)

	release := f.remote.block("u-a")
	staleDone := make(chan bool)
	go func() { staleDone <- f.store.FetchAll(ctx) }()

	require.Eventually(t, func() bool { return f.store.State().Loading() }, time.Second, 5*time.Millisecond)

	// the in-flight fetch captured u-a; switch before it returns
	f.identity.set("u-b")
	require.True(t, f.store.FetchAll(ctx))

	release()
	assert.False(t, <-staleDone)

	st := f.store.State()
	assert.Equal(t, "u-b", st.UserID)
	assert.Empty(t, st.Bookmarks)
	assert.Equal(t, models.PhaseReady, st.Phase)
}

func TestBookmarkStore_FetchDroppedWhenIdentityMovesOn(t *testing.T) {
	f := newStoreFixture(t, "u-a")
	ctx := context.Background()

	release := f.remote.block("u-a")
	done := make(chan bool)
	go func() { done <- f.store.FetchAll(ctx) }()

	require.Eventually(t, func() bool { return f.store.State().Loading() }, time.Second, 5*time.Millisecond)

	// nothing consumes the identity event: only the session knows
	f.identity.set("u-b")
	release()

	assert.False(t, <-done)
	assert.NotEqual(t, models.PhaseReady, f.store.State().Phase)
}

func TestBookmarkStore_RunResetsOnIdentityChange(t *testing.T) {
	f := newStoreFixture(t, "u-a")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.remote.bookmarks = append(f.remote.bookmarks,
		models.Bookmark{ID: "b-a", UserID: "u-a", ContentType: models.Note, ContentID: "n-a"},
		models.Bookmark{ID: "b-b", UserID: "u-b", ContentType: models.Note, ContentID: "n-b"},
	)

	states, stop := f.store.Subscribe()
	defer stop()

	runDone := make(chan error)
	go func() { runDone <- f.store.Run(ctx) }()

	require.Eventually(t, func() bool {
		return f.store.IsBookmarked(models.Note, "n-a")
	}, time.Second, 5*time.Millisecond)

	f.identity.set("u-b")
	require.Eventually(t, func() bool {
		return f.store.IsBookmarked(models.Note, "n-b")
	}, time.Second, 5*time.Millisecond)
	assert.False(t, f.store.IsBookmarked(models.Note, "n-a"))

	f.identity.set("")
	require.Eventually(t, func() bool {
		st := f.store.State()
		return st.UserID == "" && st.Phase == models.PhaseReady
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, f.store.State().Bookmarks)

	cancel()
	assert.NoError(t, <-runDone)

	select {
	case st := <-states:
		assert.Equal(t, "", st.UserID)
	default:
		t.Fatal("subscriber received no snapshot")
	}
}

func TestBookmarkStore_SnapshotsAreCopies(t *testing.T) {
	f := newStoreFixture(t, "u-1")
	ctx := context.Background()

	tag, err := f.store.CreateTag(ctx, "exam")
	require.NoError(t, err)
	in := physicalQuantities
	in.TagIDs = []string{tag.ID}
	_, err = f.store.AddBookmark(ctx, in)
	require.NoError(t, err)

	st := f.store.State()
	st.Bookmarks[0].Tags[0].Name = "mutated"
	st.Tags[0].Name = "mutated"

	again := f.store.State()
	assert.Equal(t, "exam", again.Bookmarks[0].Tags[0].Name)
	assert.Equal(t, "exam", again.Tags[0].Name)
}

type countingRefresher struct{ calls int }

func (c *countingRefresher) Refresh(context.Context, *BookmarkStore) { c.calls++ }

func TestBookmarkStore_WithRefresher(t *testing.T) {
	identity := &fakeIdentity{userID: "u-1"}
	remote := newFakeRemote(identity)
	refresher := &countingRefresher{}
	store := NewBookmarkStore(remote, identity, &recordingNotifier{}, logger.Nop(), WithRefresher(refresher))
	ctx := context.Background()

	b, err := store.AddBookmark(ctx, physicalQuantities)
	require.NoError(t, err)
	assert.Equal(t, "phys-note-1", b.ContentID)
	assert.Equal(t, []models.Tag{}, b.Tags)

	tag, err := store.CreateTag(ctx, "exam")
	require.NoError(t, err)
	store.AddTagToBookmark(ctx, b.ID, tag.ID)
	store.RemoveTagFromBookmark(ctx, b.ID, tag.ID)
	store.DeleteTag(ctx, tag.ID)

	assert.Equal(t, 4, refresher.calls)
	assert.False(t, store.IsBookmarked(models.Note, "phys-note-1"), "nothing refetched")
}

func TestBookmarkStore_FetchFailureKeepsData(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)
	identity := mock.NewMockIdentityProvider(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	store := NewBookmarkStore(remote, identity, notifier, logger.Nop())
	ctx := context.Background()
	boom := errors.New("network down")

	identity.EXPECT().CurrentUserID().Return("u-1", true).AnyTimes()
	gomock.InOrder(
		remote.EXPECT().ListBookmarks(ctx).Return([]models.Bookmark{{ID: "b-1", ContentType: models.Note, ContentID: "n-1"}}, nil),
		remote.EXPECT().ListTags(ctx).Return(nil, nil),
		remote.EXPECT().ListBookmarks(ctx).Return(nil, boom),
	)
	notifier.EXPECT().Notify(gomock.Cond(func(n models.Notification) bool {
		return n.Severity == models.SeverityError && n.Description == boom.Error()
	}))

	require.True(t, store.FetchAll(ctx))
	assert.False(t, store.FetchAll(ctx))

	st := store.State()
	assert.Equal(t, models.PhaseError, st.Phase)
	assert.ErrorIs(t, st.Err, boom)
	require.Len(t, st.Bookmarks, 1, "last good data is kept")
	assert.Equal(t, []models.Tag{}, st.Tags)
}

func TestBookmarkStore_AddBookmark_InsertFailureWritesNoTags(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)
	identity := mock.NewMockIdentityProvider(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	store := NewBookmarkStore(remote, identity, notifier, logger.Nop())
	ctx := context.Background()

	in := physicalQuantities
	in.TagIDs = []string{"t-1"}
	in.NewTags = []string{"exam"}

	identity.EXPECT().CurrentUserID().Return("u-1", true)
	remote.EXPECT().InsertBookmark(ctx, in.NewBookmark()).Return(models.Bookmark{}, adapter.ErrServerError)
	notifier.EXPECT().Notify(gomock.Cond(func(n models.Notification) bool {
		return n.Severity == models.SeverityError
	}))

	got, err := store.AddBookmark(ctx, in)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, adapter.ErrServerError)
}

func TestBookmarkStore_AddBookmark_TagFailuresAreOnlyLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)
	identity := mock.NewMockIdentityProvider(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	store := NewBookmarkStore(remote, identity, notifier, logger.Nop())
	ctx := context.Background()

	in := physicalQuantities
	in.NewTags = []string{"broken", "fresh"}
	in.TagIDs = []string{"t-gone"}

	created := models.Bookmark{ID: "b-1", ContentType: models.Note, ContentID: "phys-note-1", Title: in.Title}

	identity.EXPECT().CurrentUserID().Return("u-1", true).AnyTimes()
	remote.EXPECT().InsertBookmark(ctx, in.NewBookmark()).Return(created, nil)
	remote.EXPECT().FindTagByName(ctx, "broken").Return(models.Tag{}, adapter.ErrServerError)
	remote.EXPECT().FindTagByName(ctx, "fresh").Return(models.Tag{}, fmt.Errorf("%w: tag not found", adapter.ErrNotFound))
	remote.EXPECT().InsertTag(ctx, "fresh").Return(models.Tag{ID: "t-new", Name: "fresh"}, nil)
	remote.EXPECT().AttachTag(ctx, "b-1", "t-new").Return(nil)
	remote.EXPECT().AttachTag(ctx, "b-1", "t-gone").Return(adapter.ErrNotFound)
	remote.EXPECT().ListBookmarks(ctx).Return([]models.Bookmark{created}, nil)
	remote.EXPECT().ListTags(ctx).Return([]models.Tag{{ID: "t-new", Name: "fresh"}}, nil)
	notifier.EXPECT().Notify(models.Notification{Title: "Bookmark added", Description: in.Title, Severity: models.SeveritySuccess})

	got, err := store.AddBookmark(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.ID)
}

func TestBookmarkStore_CreateTagFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)
	identity := mock.NewMockIdentityProvider(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	store := NewBookmarkStore(remote, identity, notifier, logger.Nop())
	ctx := context.Background()

	identity.EXPECT().CurrentUserID().Return("u-1", true)
	remote.EXPECT().InsertTag(ctx, "exam").Return(models.Tag{}, adapter.ErrBadRequest)
	notifier.EXPECT().Notify(gomock.Any())

	tag, err := store.CreateTag(ctx, " exam ")
	assert.Nil(t, tag)
	assert.ErrorIs(t, err, adapter.ErrBadRequest)
	assert.Empty(t, store.State().Tags)
}

func TestUniqueNames(t *testing.T) {
	assert.Equal(t, []string{"exam", "revision"}, uniqueNames([]string{" exam", "", "revision", "exam ", "  "}))
	assert.Equal(t, []string{}, uniqueNames(nil))
}

func tagIDs(tags []models.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}
