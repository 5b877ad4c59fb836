package post

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/social"
	"connectrealm/internal/user"
)

type stubSocial struct {
	social.SocialService
	liked map[string]bool
}

func (s *stubSocial) LikedPosts(_ context.Context, _ string, _ []string) (map[string]bool, error) {
	return s.liked, nil
}

func newPostFixture(t *testing.T) (*gomock.Controller, *MockPostRepository, *user.MockUserRepository, *stubSocial, PostService) {
	ctrl := gomock.NewController(t)
	posts := NewMockPostRepository(ctrl)
	users := user.NewMockUserRepository(ctrl)
	follows := social.NewMockFollowRepository(ctrl)
	socials := &stubSocial{liked: map[string]bool{}}
	svc := NewPostService(posts, users, follows, socials)
	return ctrl, posts, users, socials, svc
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("caption stored when present", func(t *testing.T) {
		ctrl, posts, _, _, svc := newPostFixture(t)
		defer ctrl.Finish()

		posts.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *dbmysql.Post) error {
				require.NotNil(t, p.Caption)
				require.Equal(t, "hello", *p.Caption)
				return nil
			})

		_, err := svc.CreatePost(ctx, "u1", "hello", dbmysql.PostContent{Text: "body"}, dbmysql.VisibilityPublic)
		require.NoError(t, err)
	})

	t.Run("blank caption stays absent", func(t *testing.T) {
		ctrl, posts, _, _, svc := newPostFixture(t)
		defer ctrl.Finish()

		posts.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *dbmysql.Post) error {
				require.Nil(t, p.Caption)
				return nil
			})

		_, err := svc.CreatePost(ctx, "u1", "", dbmysql.PostContent{Text: "body"}, dbmysql.VisibilityPublic)
		require.NoError(t, err)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		ctrl, _, _, _, svc := newPostFixture(t)
		defer ctrl.Finish()

		_, err := svc.CreatePost(ctx, "", "hello", dbmysql.PostContent{}, dbmysql.VisibilityPublic)
		require.Error(t, err)
	})
}

func TestGetPostAuthorSummary(t *testing.T) {
	ctx := context.Background()

	display := "Go Pher"
	tests := []struct {
		name        string
		author      *dbmysql.User
		wantDisplay string
	}{
		{
			name:        "display name carried over",
			author:      &dbmysql.User{ID: "u2", Handle: "gopher", DisplayName: &display},
			wantDisplay: "Go Pher",
		},
		{
			name:        "absent display name renders empty",
			author:      &dbmysql.User{ID: "u2", Handle: "gopher"},
			wantDisplay: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, posts, users, socials, svc := newPostFixture(t)
			defer ctrl.Finish()

			posts.EXPECT().ByID(ctx, "p1").
				Return(&dbmysql.Post{ID: "p1", UserID: "u2"}, nil)
			users.EXPECT().ByIDs(ctx, []string{"u2"}).
				Return([]*dbmysql.User{tt.author}, nil)
			socials.liked = map[string]bool{"p1": true}

			view, err := svc.GetPost(ctx, "u1", "p1")
			require.NoError(t, err)
			require.NotNil(t, view.Author)
			require.Equal(t, tt.wantDisplay, view.Author.DisplayName)
			require.True(t, view.UserHasLiked)
		})
	}
}
