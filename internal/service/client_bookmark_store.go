package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/study-marks/internal/adapter"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/models"
)

// Refresher brings the store back in sync with the remote store after a
// mutation.
type Refresher interface {
	Refresh(ctx context.Context, store *BookmarkStore)
}

// FullRefetch refreshes by reloading every bookmark and tag.
type FullRefetch struct{}

func (FullRefetch) Refresh(ctx context.Context, store *BookmarkStore) {
	store.FetchAll(ctx)
}

// BookmarkStore is the client side read-through cache of the signed-in
// user's bookmarks and tags.
//
// The remote store is authoritative. Mutations write through to it and then
// resync via the [Refresher]. Remote failures never escape: they are logged,
// reported to the [Notifier] and turned into a nil or false result.
//
// The cache belongs to exactly one user at a time. Whenever the identity
// changes the state is emptied before anything of the new user is loaded,
// and results of fetches started for a previous user are dropped.
type BookmarkStore struct {
	remote    RemoteStore
	identity  IdentityProvider
	notifier  Notifier
	refresher Refresher

	mu         sync.RWMutex
	state      models.StoreState
	generation uint64
	subs       map[int]chan models.StoreState
	nextSubID  int

	logger *logger.Logger
}

// StoreOption configures a [BookmarkStore].
type StoreOption func(*BookmarkStore)

// WithRefresher replaces the default [FullRefetch] strategy.
func WithRefresher(r Refresher) StoreOption {
	return func(s *BookmarkStore) {
		s.refresher = r
	}
}

func NewBookmarkStore(remote RemoteStore, identity IdentityProvider, notifier Notifier, logger *logger.Logger, opts ...StoreOption) *BookmarkStore {
	s := &BookmarkStore{
		remote:    remote,
		identity:  identity,
		notifier:  notifier,
		refresher: FullRefetch{},
		state:     emptyState("", models.PhaseLoading),
		subs:      make(map[int]chan models.StoreState),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func emptyState(userID string, phase models.Phase) models.StoreState {
	return models.StoreState{
		UserID:    userID,
		Bookmarks: []models.Bookmark{},
		Tags:      []models.Tag{},
		Phase:     phase,
	}
}

// State returns a snapshot of the cache.
func (s *BookmarkStore) State() models.StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Subscribe delivers a snapshot after every state change. A slow reader
// only sees the latest snapshot. cancel unregisters and closes the channel.
func (s *BookmarkStore) Subscribe() (<-chan models.StoreState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan models.StoreState, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Run resets and reloads the cache on every identity change until ctx is
// done. It performs an initial fetch for whoever is signed in at start.
func (s *BookmarkStore) Run(ctx context.Context) error {
	events, cancel := s.identity.Subscribe()
	defer cancel()

	s.FetchAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.logger.Debug().Str("user_id", ev.UserID).Msg("identity changed, resetting bookmark store")
			s.reset(ev.UserID)
			s.FetchAll(ctx)
		}
	}
}

// FetchAll replaces the cache with the current remote contents. With nobody
// signed in the cache is emptied and marked ready. On failure the previous
// data is kept, the phase becomes error and false is returned.
func (s *BookmarkStore) FetchAll(ctx context.Context) bool {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		s.reset("")
		s.mu.Lock()
		s.state.Phase = models.PhaseReady
		s.publish()
		s.mu.Unlock()
		return true
	}

	s.mu.Lock()
	if s.state.UserID != userID {
		s.state = emptyState(userID, models.PhaseLoading)
	}
	s.generation++
	gen := s.generation
	s.state.Phase = models.PhaseLoading
	s.publish()
	s.mu.Unlock()

	log := s.logger.With().Str("user_id", userID).Logger()

	bookmarks, err := s.remote.ListBookmarks(ctx)
	var tags []models.Tag
	if err == nil {
		tags, err = s.remote.ListTags(ctx)
	}

	// the identity may have moved on before the store saw the event
	current, _ := s.identity.CurrentUserID()

	s.mu.Lock()
	if gen != s.generation || s.state.UserID != userID || current != userID {
		s.mu.Unlock()
		log.Debug().Msg("dropping stale bookmark fetch")
		return false
	}

	if err != nil {
		s.state.Phase = models.PhaseError
		s.state.Err = err
		s.publish()
		s.mu.Unlock()

		log.Err(err).Msg("fetching bookmarks")
		s.notifyError("Could not load bookmarks", err)
		return false
	}

	s.state = models.StoreState{
		UserID:    userID,
		Bookmarks: hydrated(bookmarks),
		Tags:      nonNilTags(tags),
		Phase:     models.PhaseReady,
	}
	s.publish()
	s.mu.Unlock()

	log.Debug().Int("bookmarks", len(bookmarks)).Int("tags", len(tags)).Msg("bookmarks fetched")
	return true
}

// AddBookmark saves a content item and attaches the requested tags.
//
// Names in NewTags are trimmed and blanks skipped; an existing tag with the
// same name is reused, otherwise one is created. A failing tag step is only
// logged. A failing bookmark insert aborts before any tag is touched.
// Returns [ErrNoCurrentUser] without side effects when nobody is signed in.
func (s *BookmarkStore) AddBookmark(ctx context.Context, input models.AddBookmarkInput) (*models.Bookmark, error) {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return nil, ErrNoCurrentUser
	}
	log := s.logger.With().Str("user_id", userID).Logger()

	created, err := s.remote.InsertBookmark(ctx, input.NewBookmark())
	if err != nil {
		log.Err(err).Str("content_id", input.ContentID).Msg("inserting bookmark")
		s.notifyError("Could not add bookmark", err)
		return nil, err
	}
	log = log.With().Str("bookmark_id", created.ID).Logger()

	for _, name := range uniqueNames(input.NewTags) {
		tagID, err := s.resolveTag(ctx, name)
		if err != nil {
			log.Err(err).Str("tag_name", name).Msg("resolving tag, skipped")
			continue
		}
		if err = s.remote.AttachTag(ctx, created.ID, tagID); err != nil {
			log.Err(err).Str("tag_id", tagID).Msg("attaching new tag, skipped")
		}
	}
	for _, tagID := range input.TagIDs {
		if err = s.remote.AttachTag(ctx, created.ID, tagID); err != nil {
			log.Err(err).Str("tag_id", tagID).Msg("attaching tag, skipped")
		}
	}

	s.refresher.Refresh(ctx, s)
	s.notify(models.SeveritySuccess, "Bookmark added", created.Title)

	if b, found := s.bookmarkByID(created.ID); found {
		return &b, nil
	}
	if created.Tags == nil {
		created.Tags = []models.Tag{}
	}
	return &created, nil
}

// resolveTag returns the id of the user's tag called name, creating it when
// missing.
func (s *BookmarkStore) resolveTag(ctx context.Context, name string) (string, error) {
	existing, err := s.remote.FindTagByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, adapter.ErrNotFound) {
		return "", err
	}

	created, err := s.remote.InsertTag(ctx, name)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// RemoveBookmark deletes a bookmark. The local list is only touched after
// the remote delete succeeded.
func (s *BookmarkStore) RemoveBookmark(ctx context.Context, bookmarkID string) bool {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return false
	}

	if err := s.remote.DeleteBookmark(ctx, bookmarkID); err != nil {
		s.logger.Err(err).Str("user_id", userID).Str("bookmark_id", bookmarkID).Msg("deleting bookmark")
		s.notifyError("Could not remove bookmark", err)
		return false
	}

	s.mu.Lock()
	if s.state.UserID == userID {
		s.state.Bookmarks = slices.DeleteFunc(slices.Clone(s.state.Bookmarks), func(b models.Bookmark) bool {
			return b.ID == bookmarkID
		})
		s.publish()
	}
	s.mu.Unlock()

	s.notify(models.SeveritySuccess, "Bookmark removed", "")
	return true
}

// IsBookmarked reports whether the cache holds a bookmark for the content
// identity.
func (s *BookmarkStore) IsBookmarked(contentType models.ContentType, contentID string) bool {
	_, ok := s.GetBookmark(contentID, contentType)
	return ok
}

// GetBookmark looks up the cached bookmark for a content identity.
func (s *BookmarkStore) GetBookmark(contentID string, contentType models.ContentType) (models.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.state.Bookmarks {
		if b.Matches(contentType, contentID) {
			return cloneBookmark(b), true
		}
	}
	return models.Bookmark{}, false
}

// CreateTag creates a tag and appends it to the cache.
func (s *BookmarkStore) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return nil, ErrNoCurrentUser
	}

	tag, err := s.remote.InsertTag(ctx, strings.TrimSpace(name))
	if err != nil {
		s.logger.Err(err).Str("user_id", userID).Str("tag_name", name).Msg("creating tag")
		s.notifyError("Could not create tag", err)
		return nil, err
	}

	s.mu.Lock()
	if s.state.UserID == userID {
		s.state.Tags = append(slices.Clone(s.state.Tags), tag)
		s.publish()
	}
	s.mu.Unlock()

	s.notify(models.SeveritySuccess, "Tag created", tag.Name)
	return &tag, nil
}

// DeleteTag deletes a tag, drops it from the cache and refreshes so that
// bookmarks stop listing it.
func (s *BookmarkStore) DeleteTag(ctx context.Context, tagID string) bool {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return false
	}

	if err := s.remote.DeleteTag(ctx, tagID); err != nil {
		s.logger.Err(err).Str("user_id", userID).Str("tag_id", tagID).Msg("deleting tag")
		s.notifyError("Could not delete tag", err)
		return false
	}

	s.mu.Lock()
	if s.state.UserID == userID {
		s.state.Tags = slices.DeleteFunc(slices.Clone(s.state.Tags), func(t models.Tag) bool {
			return t.ID == tagID
		})
		s.publish()
	}
	s.mu.Unlock()

	s.refresher.Refresh(ctx, s)
	s.notify(models.SeveritySuccess, "Tag deleted", "")
	return true
}

// AddTagToBookmark attaches an existing tag and refreshes.
func (s *BookmarkStore) AddTagToBookmark(ctx context.Context, bookmarkID, tagID string) bool {
	return s.changeAssociation(ctx, bookmarkID, tagID, s.remote.AttachTag, "Tag added", "Could not add tag")
}

// RemoveTagFromBookmark detaches a tag and refreshes.
func (s *BookmarkStore) RemoveTagFromBookmark(ctx context.Context, bookmarkID, tagID string) bool {
	return s.changeAssociation(ctx, bookmarkID, tagID, s.remote.DetachTag, "Tag removed", "Could not remove tag")
}

func (s *BookmarkStore) changeAssociation(
	ctx context.Context,
	bookmarkID, tagID string,
	write func(ctx context.Context, bookmarkID, tagID string) error,
	okTitle, failTitle string,
) bool {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return false
	}

	if err := write(ctx, bookmarkID, tagID); err != nil {
		s.logger.Err(err).
			Str("user_id", userID).
			Str("bookmark_id", bookmarkID).
			Str("tag_id", tagID).
			Msg(strings.ToLower(failTitle))
		s.notifyError(failTitle, err)
		return false
	}

	s.refresher.Refresh(ctx, s)
	s.notify(models.SeveritySuccess, okTitle, "")
	return true
}

// reset empties the cache for userID and invalidates in-flight fetches.
func (s *BookmarkStore) reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = emptyState(userID, models.PhaseLoading)
	s.publish()
}

func (s *BookmarkStore) bookmarkByID(id string) (models.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.state.Bookmarks {
		if b.ID == id {
			return cloneBookmark(b), true
		}
	}
	return models.Bookmark{}, false
}

// snapshot must be called with mu held.
func (s *BookmarkStore) snapshot() models.StoreState {
	out := s.state
	out.Bookmarks = make([]models.Bookmark, len(s.state.Bookmarks))
	for i, b := range s.state.Bookmarks {
		out.Bookmarks[i] = cloneBookmark(b)
	}
	out.Tags = slices.Clone(s.state.Tags)
	if out.Tags == nil {
		out.Tags = []models.Tag{}
	}
	return out
}

// publish must be called with mu held.
func (s *BookmarkStore) publish() {
	if len(s.subs) == 0 {
		return
	}

	snap := s.snapshot()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s *BookmarkStore) notify(severity models.Severity, title, description string) {
	s.notifier.Notify(models.Notification{Title: title, Description: description, Severity: severity})
}

func (s *BookmarkStore) notifyError(title string, err error) {
	s.notify(models.SeverityError, title, err.Error())
}

// hydrated orders bookmarks newest first and guarantees a non-nil Tags
// slice on each.
func hydrated(bookmarks []models.Bookmark) []models.Bookmark {
	out := make([]models.Bookmark, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = cloneBookmark(b)
	}
	slices.SortStableFunc(out, func(a, b models.Bookmark) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func cloneBookmark(b models.Bookmark) models.Bookmark {
	b.Tags = nonNilTags(slices.Clone(b.Tags))
	return b
}

func nonNilTags(tags []models.Tag) []models.Tag {
	if tags == nil {
		return []models.Tag{}
	}
	return tags
}

func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
