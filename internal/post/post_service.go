package post

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/social"
	"connectrealm/internal/store"
	"connectrealm/internal/user"
)

// AuthorSummary is the slim user projection embedded in feed rows.
type AuthorSummary struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
}

// PostView is a post decorated for a specific viewer.
type PostView struct {
	dbmysql.Post
	Author       *AuthorSummary `json:"author,omitempty"`
	UserHasLiked bool           `json:"user_has_liked"`
}

// FeedPage carries one page of the feed plus the exact total, so clients
// can decide whether another page exists.
type FeedPage struct {
	Posts   []*PostView `json:"posts"`
	Total   int64       `json:"total"`
	HasMore bool        `json:"has_more"`
}

type PostUpdate struct {
	Caption    *string
	Content    *dbmysql.PostContent
	Visibility *dbmysql.PostVisibility
}

type PostService interface {
	CreatePost(ctx context.Context, userID, caption string, content dbmysql.PostContent, visibility dbmysql.PostVisibility) (*dbmysql.Post, error)
	GetPost(ctx context.Context, viewerID, postID string) (*PostView, error)
	Feed(ctx context.Context, viewerID string, page store.Page) (*FeedPage, error)
	UserPosts(ctx context.Context, viewerID, userID string, page store.Page) (*FeedPage, error)
	UpdatePost(ctx context.Context, userID, postID string, update PostUpdate) error
	DeletePost(ctx context.Context, userID, postID string) error
	TogglePin(ctx context.Context, userID, postID string, pinned bool) error
}

type postService struct {
	posts   PostRepository
	users   user.UserRepository
	follows social.FollowRepository
	socials social.SocialService
}

func NewPostService(posts PostRepository, users user.UserRepository, follows social.FollowRepository, socials social.SocialService) PostService {
	return &postService{
		posts:   posts,
		users:   users,
		follows: follows,
		socials: socials,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID, caption string, content dbmysql.PostContent, visibility dbmysql.PostVisibility) (*dbmysql.Post, error) {
	if userID == "" {
		return nil, store.ErrAuthRequired
	}
	if strings.TrimSpace(caption) == "" && strings.TrimSpace(content.Text) == "" && len(content.MediaIDs) == 0 {
		return nil, errors.New("post cannot be empty")
	}
	if visibility == "" {
		visibility = dbmysql.VisibilityPublic
	}

	post := &dbmysql.Post{
		ID:         uuid.New().String(),
		UserID:     userID,
		Content:    content,
		Visibility: visibility,
		CreatedAt:  time.Now().UTC(),
	}
	if caption != "" {
		post.Caption = &caption
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, store.Classify(err)
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, viewerID, postID string) (*PostView, error) {
	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		return nil, store.Classify(err)
	}

	views, err := s.decorate(ctx, viewerID, []*dbmysql.Post{post})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Feed returns posts by the viewer and everyone they follow, newest first.
func (s *postService) Feed(ctx context.Context, viewerID string, page store.Page) (*FeedPage, error) {
	if viewerID == "" {
		return nil, store.ErrAuthRequired
	}

	authorIDs, err := s.follows.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, store.Classify(err)
	}
	authorIDs = append(authorIDs, viewerID)

	posts, total, err := s.posts.Feed(ctx, authorIDs, page)
	if err != nil {
		return nil, store.Classify(err)
	}

	views, err := s.decorate(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: views, Total: total, HasMore: page.HasMore(total)}, nil
}

func (s *postService) UserPosts(ctx context.Context, viewerID, userID string, page store.Page) (*FeedPage, error) {
	posts, total, err := s.posts.ByUser(ctx, userID, page)
	if err != nil {
		return nil, store.Classify(err)
	}

	views, err := s.decorate(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: views, Total: total, HasMore: page.HasMore(total)}, nil
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID string, update PostUpdate) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	fields := map[string]interface{}{"updated_at": time.Now().UTC()}
	if update.Caption != nil {
		fields["caption"] = *update.Caption
	}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.Visibility != nil {
		fields["visibility"] = *update.Visibility
	}

	affected, err := s.posts.UpdateOwned(ctx, postID, userID, fields)
	if err != nil {
		return store.Classify(err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	deleted, err := s.posts.DeleteOwned(ctx, postID, userID)
	if err != nil {
		return store.Classify(err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *postService) TogglePin(ctx context.Context, userID, postID string, pinned bool) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	affected, err := s.posts.UpdateOwned(ctx, postID, userID, map[string]interface{}{"is_pinned": pinned})
	if err != nil {
		return store.Classify(err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// decorate batch-loads author summaries and the viewer's like marks in two
// queries regardless of page size.
func (s *postService) decorate(ctx context.Context, viewerID string, posts []*dbmysql.Post) ([]*PostView, error) {
	views := make([]*PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	authorSet := make(map[string]struct{}, len(posts))
	postIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		authorSet[p.UserID] = struct{}{}
		postIDs = append(postIDs, p.ID)
	}
	authorIDs := make([]string, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := s.users.ByIDs(ctx, authorIDs)
	if err != nil {
		return nil, store.Classify(err)
	}
	byID := make(map[string]*dbmysql.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	liked, err := s.socials.LikedPosts(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		view := &PostView{Post: *p, UserHasLiked: liked[p.ID]}
		if a, ok := byID[p.UserID]; ok {
			view.Author = &AuthorSummary{
				ID:          a.ID,
				Handle:      a.Handle,
				DisplayName: deref(a.DisplayName),
				AvatarURL:   deref(a.AvatarURL),
				IsVerified:  a.IsVerified,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
