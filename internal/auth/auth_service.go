package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"connectrealm/internal/common"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
	"connectrealm/internal/user"
)

// Credentials is a signed-in identity: the user row plus the bearer token
// that proves it.
type Credentials struct {
	User  *dbmysql.User `json:"user"`
	Token string        `json:"token"`
}

// ChangeListener observes sign-in and sign-out. On sign-out the user is nil.
type ChangeListener func(user *dbmysql.User)

type Service interface {
	SignUp(ctx context.Context, handle, email, password, displayName string) (*Credentials, error)
	SignIn(ctx context.Context, handleOrEmail, password string) (*Credentials, error)
	SignOut(ctx context.Context, userID string) error
	// CurrentUser resolves a bearer token to its user, or ErrAuthRequired.
	CurrentUser(ctx context.Context, token string) (*dbmysql.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// ResetPassword sets a fresh password for the account with the given
	// email. Token delivery is the caller's concern.
	ResetPassword(ctx context.Context, email, newPassword string) error
	// OnChange registers a listener fired on every sign-in and sign-out.
	OnChange(listener ChangeListener) func()
}

type authService struct {
	users    user.UserRepository
	profiles user.ProfileRepository
	tokens   *common.TokenManager

	mu        sync.Mutex
	listeners map[int]ChangeListener
	nextID    int
}

func NewService(users user.UserRepository, profiles user.ProfileRepository, tokens *common.TokenManager) Service {
	return &authService{
		users:     users,
		profiles:  profiles,
		tokens:    tokens,
		listeners: make(map[int]ChangeListener),
	}
}

func (s *authService) SignUp(ctx context.Context, handle, email, password, displayName string) (*Credentials, error) {
	if err := common.ValidateHandle(handle); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.users.HandleExists(ctx, handle)
	if err != nil {
		return nil, store.Classify(err)
	}
	if exists {
		return nil, fmt.Errorf("%w: handle %q is taken", store.ErrConflict, handle)
	}

	hash, err := common.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = handle
	}
	u := &dbmysql.User{
		ID:           uuid.New().String(),
		Handle:       handle,
		PasswordHash: hash,
		DisplayName:  &displayName,
		ProfileType:  dbmysql.ProfilePersonal,
		Metadata:     dbmysql.JSONMap{},
	}
	if email != "" {
		u.Email = &email
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, store.Classify(err)
	}
	if err := s.profiles.Create(ctx, &dbmysql.Profile{UserID: u.ID}); err != nil {
		return nil, store.Classify(err)
	}

	token, err := s.tokens.Generate(u.ID, u.Handle)
	if err != nil {
		return nil, err
	}

	s.notify(u)
	return &Credentials{User: u, Token: token}, nil
}

func (s *authService) SignIn(ctx context.Context, handleOrEmail, password string) (*Credentials, error) {
	u, err := s.users.ByHandle(ctx, handleOrEmail)
	if err != nil {
		if !store.IsNotFound(store.Classify(err)) {
			return nil, store.Classify(err)
		}
		u, err = s.users.ByEmail(ctx, handleOrEmail)
		if err != nil {
			if store.IsNotFound(store.Classify(err)) {
				return nil, fmt.Errorf("%w: invalid credentials", store.ErrUnauthorized)
			}
			return nil, store.Classify(err)
		}
	}

	if err := common.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", store.ErrUnauthorized)
	}

	token, err := s.tokens.Generate(u.ID, u.Handle)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastSeen(ctx, u.ID, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID).Msg("last seen update failed on sign-in")
	}

	s.notify(u)
	return &Credentials{User: u, Token: token}, nil
}

// SignOut is stateless server-side: tokens expire on their own. It exists
// so listeners hear about the transition.
func (s *authService) SignOut(ctx context.Context, userID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}
	s.notify(nil)
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*dbmysql.User, error) {
	if token == "" {
		return nil, store.ErrAuthRequired
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrAuthRequired, err)
	}

	u, err := s.users.ByID(ctx, claims.UserID)
	if err != nil {
		return nil, store.Classify(err)
	}
	return u, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}
	if err := common.ValidatePassword(newPassword); err != nil {
		return err
	}

	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return store.Classify(err)
	}
	if err := common.CheckPassword(u.PasswordHash, currentPassword); err != nil {
		return fmt.Errorf("%w: current password is wrong", store.ErrUnauthorized)
	}

	hash, err := common.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return store.Classify(s.users.Update(ctx, u))
}

func (s *authService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if err := common.ValidatePassword(newPassword); err != nil {
		return err
	}

	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return store.Classify(err)
	}

	hash, err := common.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return store.Classify(s.users.Update(ctx, u))
}

func (s *authService) OnChange(listener ChangeListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *authService) notify(u *dbmysql.User) {
	s.mu.Lock()
	listeners := make([]ChangeListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(u)
	}
}
