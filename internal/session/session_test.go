package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"connectrealm/internal/auth"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
	"connectrealm/internal/user"
)

type stubAuth struct {
	currentUser func(ctx context.Context, token string) (*dbmysql.User, error)

	mu        sync.Mutex
	listeners []auth.ChangeListener
}

func (s *stubAuth) SignUp(context.Context, string, string, string, string) (*auth.Credentials, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) SignIn(context.Context, string, string) (*auth.Credentials, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuth) SignOut(context.Context, string) error { return nil }

func (s *stubAuth) CurrentUser(ctx context.Context, token string) (*dbmysql.User, error) {
	return s.currentUser(ctx, token)
}

func (s *stubAuth) UpdatePassword(context.Context, string, string, string) error { return nil }

func (s *stubAuth) ResetPassword(context.Context, string, string) error { return nil }

func (s *stubAuth) OnChange(listener auth.ChangeListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
	return func() {}
}

func (s *stubAuth) fire(u *dbmysql.User) {
	s.mu.Lock()
	listeners := append([]auth.ChangeListener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(u)
	}
}

type stubUsers struct {
	user.UserService

	mu      sync.Mutex
	touched []string
}

func (s *stubUsers) TouchLastSeen(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = append(s.touched, userID)
	return nil
}

func (s *stubUsers) touchedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.touched...)
}

func TestInitWithValidToken(t *testing.T) {
	account := &dbmysql.User{ID: "u1", Handle: "gopher"}
	authSvc := &stubAuth{
		currentUser: func(_ context.Context, token string) (*dbmysql.User, error) {
			require.Equal(t, "good-token", token)
			return account, nil
		},
	}

	users := &stubUsers{}
	s := NewSession(authSvc, users, "good-token")
	require.True(t, s.IsLoading())

	s.Init(context.Background())
	defer s.Close()

	require.False(t, s.IsLoading())
	require.Equal(t, account, s.CurrentUser())
	require.True(t, s.SignedIn())

	// Restoring a session refreshes last_seen immediately, ahead of the
	// first heartbeat tick.
	require.Equal(t, []string{"u1"}, users.touchedIDs())
}

func TestInitFailureMeansSignedOut(t *testing.T) {
	authSvc := &stubAuth{
		currentUser: func(context.Context, string) (*dbmysql.User, error) {
			return nil, store.ErrTransport
		},
	}

	users := &stubUsers{}
	s := NewSession(authSvc, users, "stale-token")
	s.Init(context.Background())
	defer s.Close()

	require.False(t, s.IsLoading())
	require.Nil(t, s.CurrentUser())
	require.False(t, s.SignedIn())
	require.Empty(t, users.touchedIDs())
}

func TestAuthChangeReplacesCurrentUser(t *testing.T) {
	authSvc := &stubAuth{
		currentUser: func(context.Context, string) (*dbmysql.User, error) {
			return nil, store.ErrAuthRequired
		},
	}

	s := NewSession(authSvc, &stubUsers{}, "")
	s.Init(context.Background())
	defer s.Close()

	require.Nil(t, s.CurrentUser())

	account := &dbmysql.User{ID: "u1"}
	authSvc.fire(account)
	require.Equal(t, account, s.CurrentUser())

	authSvc.fire(nil)
	require.Nil(t, s.CurrentUser())
}

func TestCloseIdempotent(t *testing.T) {
	authSvc := &stubAuth{
		currentUser: func(context.Context, string) (*dbmysql.User, error) {
			return nil, store.ErrAuthRequired
		},
	}

	s := NewSession(authSvc, &stubUsers{}, "")
	s.Init(context.Background())

	s.Close()
	s.Close()
}
