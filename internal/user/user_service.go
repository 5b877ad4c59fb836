package user

import (
	"context"
	"fmt"
	"time"

	"connectrealm/internal/common"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

// UserWithProfile joins the account row with its long-form extension.
type UserWithProfile struct {
	dbmysql.User
	Profile *dbmysql.Profile `json:"profile,omitempty"`
}

// Stats holds the derived profile counters.
type Stats struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Handle      *string
	AvatarURL   *string
	Headline    *string
	Bio         *string
	Location    *string
	Website     *string
	Skills      []string
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*UserWithProfile, error)
	GetByHandle(ctx context.Context, handle string) (*UserWithProfile, error)
	UpdateProfile(ctx context.Context, actorID, targetID string, update ProfileUpdate) (*UserWithProfile, error)
	Search(ctx context.Context, query string, limit int) ([]*dbmysql.User, error)
	GetStats(ctx context.Context, userID string) (*Stats, error)
	TouchLastSeen(ctx context.Context, userID string) error
}

type userService struct {
	users    UserRepository
	profiles ProfileRepository
}

func NewUserService(users UserRepository, profiles ProfileRepository) UserService {
	return &userService{users: users, profiles: profiles}
}

func (s *userService) GetByID(ctx context.Context, id string) (*UserWithProfile, error) {
	u, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, store.Classify(err)
	}
	return s.withProfile(ctx, u), nil
}

func (s *userService) GetByHandle(ctx context.Context, handle string) (*UserWithProfile, error) {
	u, err := s.users.ByHandle(ctx, handle)
	if err != nil {
		return nil, store.Classify(err)
	}
	return s.withProfile(ctx, u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, actorID, targetID string, update ProfileUpdate) (*UserWithProfile, error) {
	// Ownership gate before any write; the store enforces this again via
	// user-scoped filters.
	if actorID == "" {
		return nil, store.ErrAuthRequired
	}
	if actorID != targetID {
		return nil, fmt.Errorf("%w: cannot edit another user's profile", store.ErrUnauthorized)
	}

	u, err := s.users.ByID(ctx, targetID)
	if err != nil {
		return nil, store.Classify(err)
	}

	if update.Handle != nil && *update.Handle != u.Handle {
		if err := common.ValidateHandle(*update.Handle); err != nil {
			return nil, err
		}
		taken, err := s.users.HandleExists(ctx, *update.Handle)
		if err != nil {
			return nil, store.Classify(err)
		}
		if taken {
			return nil, fmt.Errorf("%w: handle already taken", store.ErrConflict)
		}
		u.Handle = *update.Handle
	}
	if update.DisplayName != nil {
		u.DisplayName = update.DisplayName
	}
	if update.AvatarURL != nil {
		u.AvatarURL = update.AvatarURL
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, store.Classify(err)
	}

	profile, err := s.profiles.ByUserID(ctx, targetID)
	if store.IsNotFound(err) {
		profile = &dbmysql.Profile{UserID: targetID}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, store.Classify(err)
		}
	} else if err != nil {
		return nil, store.Classify(err)
	}

	if update.Headline != nil {
		profile.Headline = update.Headline
	}
	if update.Bio != nil {
		profile.Bio = update.Bio
	}
	if update.Location != nil {
		profile.Location = update.Location
	}
	if update.Website != nil {
		profile.Website = update.Website
	}
	if update.Skills != nil {
		profile.Skills = update.Skills
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, store.Classify(err)
	}

	return &UserWithProfile{User: *u, Profile: profile}, nil
}

func (s *userService) Search(ctx context.Context, query string, limit int) ([]*dbmysql.User, error) {
	if query == "" {
		return []*dbmysql.User{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, err := s.users.Search(ctx, query, limit)
	if err != nil {
		return nil, store.Classify(err)
	}
	if users == nil {
		users = []*dbmysql.User{}
	}
	return users, nil
}

func (s *userService) GetStats(ctx context.Context, userID string) (*Stats, error) {
	posts, err := s.users.CountPosts(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}
	followers, err := s.users.CountFollowers(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}
	following, err := s.users.CountFollowing(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}
	return &Stats{Posts: posts, Followers: followers, Following: following}, nil
}

func (s *userService) TouchLastSeen(ctx context.Context, userID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}
	return store.Classify(s.users.UpdateLastSeen(ctx, userID, time.Now().UTC()))
}

// withProfile attaches the profile row when present; a missing profile is
// not an error.
func (s *userService) withProfile(ctx context.Context, u *dbmysql.User) *UserWithProfile {
	out := &UserWithProfile{User: *u}
	if profile, err := s.profiles.ByUserID(ctx, u.ID); err == nil {
		out.Profile = profile
	}
	return out
}
