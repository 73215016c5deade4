// Package identity tracks who is signed in on the client and tells
// interested components when that changes.
package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/study-marks/internal/adapter"
	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/internal/utils"
	"github.com/MKhiriev/study-marks/models"
)

// Session is the client side identity provider. The bearer token lives in
// the adapter; the session only remembers whose token it is.
//
// Every successful Login or Register and every Logout of a signed-in user
// publishes a [models.IdentityEvent] to all subscribers. Subscribers that
// fall behind only see the latest event.
//
// Logging in while signed in first signs the current user out, so the
// session never names a user other than the one the adapter's token
// belongs to.
type Session struct {
	adapter adapter.ServerAdapter

	// authMu serialises Login and Register.
	authMu sync.Mutex

	mu     sync.RWMutex
	userID string
	login  string
	subs   map[int]chan models.IdentityEvent
	nextID int

	logger *logger.Logger
}

func NewSession(adapter adapter.ServerAdapter, logger *logger.Logger) *Session {
	return &Session{
		adapter: adapter,
		subs:    make(map[int]chan models.IdentityEvent),
		logger:  logger,
	}
}

// CurrentUserID returns the signed-in user, if any.
func (s *Session) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.userID != ""
}

// UserLogin returns the login of the signed-in user, or "".
func (s *Session) UserLogin() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.login
}

// Subscribe registers for identity events. The returned cancel function
// unregisters and closes the channel; it is safe to call more than once.
func (s *Session) Subscribe() (<-chan models.IdentityEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan models.IdentityEvent, 1)
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

// Login authenticates with an existing account. A failed attempt leaves
// the session signed out.
func (s *Session) Login(ctx context.Context, login, password string) error {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	s.Logout()
	resp, err := s.adapter.Login(ctx, models.User{Login: strings.TrimSpace(login), Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return s.signedIn(resp)
}

// Register creates an account and signs in with it.
func (s *Session) Register(ctx context.Context, login, password string) error {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	s.Logout()
	resp, err := s.adapter.Register(ctx, models.User{Login: strings.TrimSpace(login), Password: password})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return s.signedIn(resp)
}

// Logout forgets the current user and token. It is a no-op when nobody is
// signed in.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return
	}

	s.logger.Info().Str("user_id", s.userID).Msg("signed out")
	s.adapter.SetToken("")
	s.userID, s.login = "", ""
	s.publish(models.IdentityEvent{})
}

func (s *Session) signedIn(resp models.AuthResponse) error {
	userID := resp.UserID
	if userID == "" {
		var err error
		if userID, err = utils.ParseUserIDFromJWT(s.adapter.Token()); err != nil {
			return fmt.Errorf("reading user from token: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID, s.login = userID, resp.Login
	s.logger.Info().Str("user_id", userID).Msg("signed in")
	s.publish(models.IdentityEvent{UserID: userID})
	return nil
}

// publish must be called with mu held.
func (s *Session) publish(ev models.IdentityEvent) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// replace the stale pending event
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
