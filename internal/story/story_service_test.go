package story

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/social"
	"connectrealm/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newStoryFixture(t *testing.T, now time.Time) (*gomock.Controller, *MockStoryRepository, *social.MockFollowRepository, *storyService) {
	ctrl := gomock.NewController(t)
	stories := NewMockStoryRepository(ctrl)
	follows := social.NewMockFollowRepository(ctrl)
	svc := &storyService{
		stories: stories,
		follows: follows,
		now:     fixedClock(now),
	}
	return ctrl, stories, follows, svc
}

func TestCreateStorySetsExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ctrl, stories, _, svc := newStoryFixture(t, now)
	defer ctrl.Finish()

	stories.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, s *dbmysql.Story) error {
			require.Equal(t, now, s.CreatedAt)
			require.Equal(t, now.Add(24*time.Hour), s.ExpiresAt)
			return nil
		})

	story, err := svc.CreateStory(ctx, "u1", "m1", nil)
	require.NoError(t, err)
	require.Equal(t, now.Add(24*time.Hour), story.ExpiresAt)
}

func TestActiveStoriesIncludesSelf(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ctrl, stories, follows, svc := newStoryFixture(t, now)
	defer ctrl.Finish()

	follows.EXPECT().FolloweeIDs(ctx, "u1").Return([]string{"u2", "u3"}, nil)
	stories.EXPECT().
		ActiveByUsers(ctx, []string{"u2", "u3", "u1"}, now).
		Return([]*dbmysql.Story{{ID: "s1", UserID: "u2"}}, nil)

	active, err := svc.ActiveStories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestViewStory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("increments for another viewer", func(t *testing.T) {
		ctrl, stories, _, svc := newStoryFixture(t, now)
		defer ctrl.Finish()

		stories.EXPECT().ByID(ctx, "s1").
			Return(&dbmysql.Story{ID: "s1", UserID: "u2", ExpiresAt: now.Add(time.Hour)}, nil)
		stories.EXPECT().IncrementViews(ctx, "s1").Return(nil)

		require.NoError(t, svc.ViewStory(ctx, "u1", "s1"))
	})

	t.Run("owner view does not count", func(t *testing.T) {
		ctrl, stories, _, svc := newStoryFixture(t, now)
		defer ctrl.Finish()

		stories.EXPECT().ByID(ctx, "s1").
			Return(&dbmysql.Story{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}, nil)

		require.NoError(t, svc.ViewStory(ctx, "u1", "s1"))
	})

	t.Run("expired story is gone", func(t *testing.T) {
		ctrl, stories, _, svc := newStoryFixture(t, now)
		defer ctrl.Finish()

		stories.EXPECT().ByID(ctx, "s1").
			Return(&dbmysql.Story{ID: "s1", UserID: "u2", ExpiresAt: now.Add(-time.Minute)}, nil)

		require.ErrorIs(t, svc.ViewStory(ctx, "u1", "s1"), store.ErrNotFound)
	})
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ctrl, stories, _, svc := newStoryFixture(t, now)
	defer ctrl.Finish()

	stories.EXPECT().DeleteExpired(ctx, now).Return(int64(7), nil)

	purged, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(7), purged)
}

func TestDeleteStoryForeignOwner(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ctrl, stories, _, svc := newStoryFixture(t, now)
	defer ctrl.Finish()

	stories.EXPECT().DeleteOwned(ctx, "s1", "u1").Return(int64(0), nil)

	require.ErrorIs(t, svc.DeleteStory(ctx, "u1", "s1"), store.ErrNotFound)
}
