package social

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

func newSocialFixture(t *testing.T) (*gomock.Controller, *MockFollowRepository, *MockLikeRepository, *MockCommentRepository, *MockCounterRepository, SocialService) {
	ctrl := gomock.NewController(t)
	follows := NewMockFollowRepository(ctrl)
	likes := NewMockLikeRepository(ctrl)
	comments := NewMockCommentRepository(ctrl)
	counters := NewMockCounterRepository(ctrl)
	svc := NewSocialService(follows, likes, comments, counters)
	return ctrl, follows, likes, comments, counters, svc
}

func TestFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl, follows, _, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		follows.EXPECT().
			Create(ctx, &dbmysql.Follow{FollowerID: "u1", FolloweeID: "u2"}).
			Return(nil)

		require.NoError(t, svc.Follow(ctx, "u1", "u2"))
	})

	t.Run("self follow rejected", func(t *testing.T) {
		ctrl, _, _, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		err := svc.Follow(ctx, "u1", "u1")
		require.ErrorIs(t, err, store.ErrInvalidOperation)
	})

	t.Run("duplicate follow surfaces conflict", func(t *testing.T) {
		ctrl, follows, _, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		follows.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := svc.Follow(ctx, "u1", "u2")
		require.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("anonymous actor", func(t *testing.T) {
		ctrl, _, _, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		require.ErrorIs(t, svc.Follow(ctx, "", "u2"), store.ErrAuthRequired)
	})
}

func TestUnfollowAbsentEdge(t *testing.T) {
	ctx := context.Background()
	ctrl, follows, _, _, _, svc := newSocialFixture(t)
	defer ctrl.Finish()

	follows.EXPECT().Delete(ctx, "u1", "u2").Return(int64(0), nil)

	require.NoError(t, svc.Unfollow(ctx, "u1", "u2"))
}

func TestLike(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps post counter", func(t *testing.T) {
		ctrl, _, likes, _, counters, svc := newSocialFixture(t)
		defer ctrl.Finish()

		likes.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		counters.EXPECT().AdjustLikes(ctx, "p1", 1).Return(nil)

		require.NoError(t, svc.Like(ctx, "u1", TargetPost, "p1"))
	})

	t.Run("duplicate is a no-op", func(t *testing.T) {
		ctrl, _, likes, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		likes.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		require.NoError(t, svc.Like(ctx, "u1", TargetPost, "p1"))
	})

	t.Run("non-post target leaves counters alone", func(t *testing.T) {
		ctrl, _, likes, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		likes.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		require.NoError(t, svc.Like(ctx, "u1", "comment", "c1"))
	})
}

func TestUnlike(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements only when a row was deleted", func(t *testing.T) {
		ctrl, _, likes, _, counters, svc := newSocialFixture(t)
		defer ctrl.Finish()

		likes.EXPECT().Delete(ctx, "u1", TargetPost, "p1").Return(int64(1), nil)
		counters.EXPECT().AdjustLikes(ctx, "p1", -1).Return(nil)

		require.NoError(t, svc.Unlike(ctx, "u1", TargetPost, "p1"))
	})

	t.Run("repeat unlike never touches the counter", func(t *testing.T) {
		ctrl, _, likes, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		likes.EXPECT().Delete(ctx, "u1", TargetPost, "p1").Return(int64(0), nil)

		require.NoError(t, svc.Unlike(ctx, "u1", TargetPost, "p1"))
	})
}

func TestLikedPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("maps liked ids", func(t *testing.T) {
		ctrl, _, likes, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		likes.EXPECT().
			LikedTargets(ctx, "u1", TargetPost, []string{"p1", "p2", "p3"}).
			Return([]string{"p2"}, nil)

		liked, err := svc.LikedPosts(ctx, "u1", []string{"p1", "p2", "p3"})
		require.NoError(t, err)
		require.True(t, liked["p2"])
		require.False(t, liked["p1"])
		require.False(t, liked["p3"])
	})

	t.Run("anonymous viewer skips the query", func(t *testing.T) {
		ctrl, _, _, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		liked, err := svc.LikedPosts(ctx, "", []string{"p1"})
		require.NoError(t, err)
		require.Empty(t, liked)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and bumps counter", func(t *testing.T) {
		ctrl, _, _, comments, counters, svc := newSocialFixture(t)
		defer ctrl.Finish()

		comments.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *dbmysql.Comment) error {
				require.NotEmpty(t, c.ID)
				require.Equal(t, "p1", c.PostID)
				require.Equal(t, "u1", c.UserID)
				require.Nil(t, c.ParentID)
				return nil
			})
		counters.EXPECT().AdjustComments(ctx, "p1", 1).Return(nil)

		comment, err := svc.AddComment(ctx, "u1", "p1", "nice shot", nil)
		require.NoError(t, err)
		require.Equal(t, "nice shot", comment.Content)
	})

	t.Run("blank content rejected", func(t *testing.T) {
		ctrl, _, _, _, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		_, err := svc.AddComment(ctx, "u1", "p1", "   ", nil)
		require.Error(t, err)
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner delete decrements counter", func(t *testing.T) {
		ctrl, _, _, comments, counters, svc := newSocialFixture(t)
		defer ctrl.Finish()

		comments.EXPECT().ByID(ctx, "c1").Return(&dbmysql.Comment{ID: "c1", PostID: "p1", UserID: "u1"}, nil)
		comments.EXPECT().DeleteOwned(ctx, "c1", "u1").Return(int64(1), nil)
		counters.EXPECT().AdjustComments(ctx, "p1", -1).Return(nil)

		require.NoError(t, svc.DeleteComment(ctx, "u1", "c1"))
	})

	t.Run("foreign comment is unauthorized", func(t *testing.T) {
		ctrl, _, _, comments, _, svc := newSocialFixture(t)
		defer ctrl.Finish()

		comments.EXPECT().ByID(ctx, "c1").Return(&dbmysql.Comment{ID: "c1", PostID: "p1", UserID: "other"}, nil)
		comments.EXPECT().DeleteOwned(ctx, "c1", "u1").Return(int64(0), nil)

		require.ErrorIs(t, svc.DeleteComment(ctx, "u1", "c1"), store.ErrUnauthorized)
	})
}

func TestCommentTree(t *testing.T) {
	parent := "c1"
	comments := []*dbmysql.Comment{
		{ID: "c1", PostID: "p1", UserID: "u1", Content: "root"},
		{ID: "c2", PostID: "p1", UserID: "u2", ParentID: &parent, Content: "reply"},
		{ID: "c3", PostID: "p1", UserID: "u3", Content: "another root"},
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 2)
	require.Equal(t, "c1", tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	require.Equal(t, "c2", tree[0].Replies[0].ID)
	require.Empty(t, tree[1].Replies)
}
