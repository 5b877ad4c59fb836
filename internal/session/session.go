package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"connectrealm/internal/auth"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/user"
)

// heartbeatInterval is how often a signed-in session refreshes last_seen.
const heartbeatInterval = 5 * time.Minute

// Session tracks the signed-in user for one client connection. It resolves
// an existing token at startup, follows sign-in/out events from the auth
// service, and keeps the account's last_seen fresh while signed in.
type Session struct {
	auth  auth.Service
	users user.UserService
	token string

	mu        sync.RWMutex
	current   *dbmysql.User
	isLoading bool

	unsubscribe func()
	cancel      context.CancelFunc
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

func NewSession(authSvc auth.Service, users user.UserService, token string) *Session {
	return &Session{
		auth:      authSvc,
		users:     users,
		token:     token,
		isLoading: true,
	}
}

// Init resolves the stored token, subscribes to auth changes, and starts
// the heartbeat. A failed probe means signed-out, never an error: the
// session always comes up usable. isLoading flips to false exactly once.
func (s *Session) Init(ctx context.Context) {
	u, err := s.auth.CurrentUser(ctx, s.token)
	if err != nil {
		u = nil
	}
	if u != nil {
		// A restored session counts as activity right away, not only when
		// the first heartbeat tick fires.
		if err := s.users.TouchLastSeen(ctx, u.ID); err != nil {
			log.Warn().Err(err).Str("user_id", u.ID).Msg("last seen update failed")
		}
	}

	s.mu.Lock()
	s.current = u
	s.isLoading = false
	s.mu.Unlock()

	s.unsubscribe = s.auth.OnChange(func(u *dbmysql.User) {
		s.mu.Lock()
		s.current = u
		s.mu.Unlock()
	})

	hbCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.heartbeat(hbCtx)
}

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *dbmysql.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

func (s *Session) SignedIn() bool {
	return s.CurrentUser() != nil
}

// Close stops the heartbeat and detaches from auth events. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.wg.Wait()
	})
}

func (s *Session) heartbeat(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u := s.CurrentUser()
			if u == nil {
				continue
			}
			if err := s.users.TouchLastSeen(ctx, u.ID); err != nil {
				log.Warn().Err(err).Str("user_id", u.ID).Msg("heartbeat write failed")
			}
		}
	}
}
