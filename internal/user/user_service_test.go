package user

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

func newUserFixture(t *testing.T) (*gomock.Controller, *MockUserRepository, *MockProfileRepository, UserService) {
	ctrl := gomock.NewController(t)
	users := NewMockUserRepository(ctrl)
	profiles := NewMockProfileRepository(ctrl)
	svc := NewUserService(users, profiles)
	return ctrl, users, profiles, svc
}

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates account and profile rows", func(t *testing.T) {
		ctrl, users, profiles, svc := newUserFixture(t)
		defer ctrl.Finish()

		users.EXPECT().ByID(ctx, "u1").
			Return(&dbmysql.User{ID: "u1", Handle: "gopher"}, nil)
		users.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *dbmysql.User) error {
				require.NotNil(t, u.DisplayName)
				require.Equal(t, "Go Pher", *u.DisplayName)
				return nil
			})
		profiles.EXPECT().ByUserID(ctx, "u1").
			Return(&dbmysql.Profile{UserID: "u1"}, nil)
		profiles.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *dbmysql.Profile) error {
				require.NotNil(t, p.Headline)
				require.Equal(t, "gopher wrangler", *p.Headline)
				require.Equal(t, dbmysql.StringList{"go", "sql"}, p.Skills)
				return nil
			})

		out, err := svc.UpdateProfile(ctx, "u1", "u1", ProfileUpdate{
			DisplayName: strPtr("Go Pher"),
			Headline:    strPtr("gopher wrangler"),
			Skills:      []string{"go", "sql"},
		})
		require.NoError(t, err)
		require.Equal(t, "gopher", out.Handle)
		require.NotNil(t, out.Profile)
	})

	t.Run("foreign profile rejected before any query", func(t *testing.T) {
		ctrl, _, _, svc := newUserFixture(t)
		defer ctrl.Finish()

		_, err := svc.UpdateProfile(ctx, "u1", "u2", ProfileUpdate{DisplayName: strPtr("x")})
		require.ErrorIs(t, err, store.ErrUnauthorized)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		ctrl, _, _, svc := newUserFixture(t)
		defer ctrl.Finish()

		_, err := svc.UpdateProfile(ctx, "", "u1", ProfileUpdate{})
		require.ErrorIs(t, err, store.ErrAuthRequired)
	})

	t.Run("taken handle is a conflict", func(t *testing.T) {
		ctrl, users, _, svc := newUserFixture(t)
		defer ctrl.Finish()

		users.EXPECT().ByID(ctx, "u1").
			Return(&dbmysql.User{ID: "u1", Handle: "gopher"}, nil)
		users.EXPECT().HandleExists(ctx, "ferret").Return(true, nil)

		_, err := svc.UpdateProfile(ctx, "u1", "u1", ProfileUpdate{Handle: strPtr("ferret")})
		require.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("missing profile row created on first edit", func(t *testing.T) {
		ctrl, users, profiles, svc := newUserFixture(t)
		defer ctrl.Finish()

		users.EXPECT().ByID(ctx, "u1").
			Return(&dbmysql.User{ID: "u1", Handle: "gopher"}, nil)
		users.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		profiles.EXPECT().ByUserID(ctx, "u1").
			Return(nil, gorm.ErrRecordNotFound)
		profiles.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		profiles.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		out, err := svc.UpdateProfile(ctx, "u1", "u1", ProfileUpdate{Bio: strPtr("hi")})
		require.NoError(t, err)
		require.NotNil(t, out.Profile)
	})
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query short-circuits", func(t *testing.T) {
		ctrl, _, _, svc := newUserFixture(t)
		defer ctrl.Finish()

		users, err := svc.Search(ctx, "", 20)
		require.NoError(t, err)
		require.NotNil(t, users)
		require.Empty(t, users)
	})

	t.Run("out-of-range limit clamped", func(t *testing.T) {
		ctrl, users, _, svc := newUserFixture(t)
		defer ctrl.Finish()

		users.EXPECT().Search(ctx, "go", 20).
			Return([]*dbmysql.User{{ID: "u1", Handle: "gopher"}}, nil)

		found, err := svc.Search(ctx, "go", 500)
		require.NoError(t, err)
		require.Len(t, found, 1)
	})

	t.Run("nil result normalized to empty slice", func(t *testing.T) {
		ctrl, users, _, svc := newUserFixture(t)
		defer ctrl.Finish()

		users.EXPECT().Search(ctx, "zz", 20).Return(nil, nil)

		found, err := svc.Search(ctx, "zz", 20)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Empty(t, found)
	})
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	ctrl, users, _, svc := newUserFixture(t)
	defer ctrl.Finish()

	users.EXPECT().CountPosts(ctx, "u1").Return(int64(7), nil)
	users.EXPECT().CountFollowers(ctx, "u1").Return(int64(3), nil)
	users.EXPECT().CountFollowing(ctx, "u1").Return(int64(4), nil)

	stats, err := svc.GetStats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, &Stats{Posts: 7, Followers: 3, Following: 4}, stats)
}
