package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

// TargetPost is the like target type whose counters are denormalized onto
// the posts table.
const TargetPost = "post"

type SocialService interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Followers(ctx context.Context, userID string) ([]string, error)
	Following(ctx context.Context, userID string) ([]string, error)

	Like(ctx context.Context, userID, targetType, targetID string) error
	Unlike(ctx context.Context, userID, targetType, targetID string) error
	Likes(ctx context.Context, targetType, targetID string) ([]string, error)
	LikedPosts(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)

	AddComment(ctx context.Context, userID, postID, content string, parentID *string) (*dbmysql.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID string) error
	Comments(ctx context.Context, postID string) ([]*dbmysql.Comment, error)
	CommentTree(ctx context.Context, postID string) ([]*CommentNode, error)
}

type socialService struct {
	follows  FollowRepository
	likes    LikeRepository
	comments CommentRepository
	counters CounterRepository
}

func NewSocialService(follows FollowRepository, likes LikeRepository, comments CommentRepository, counters CounterRepository) SocialService {
	return &socialService{
		follows:  follows,
		likes:    likes,
		comments: comments,
		counters: counters,
	}
}

// Follow inserts a directed edge. Unlike Like, a duplicate follow is an
// error: the conflict propagates to the caller.
func (s *socialService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" {
		return store.ErrAuthRequired
	}
	if followerID == followeeID {
		return fmt.Errorf("%w: cannot follow yourself", store.ErrInvalidOperation)
	}

	follow := &dbmysql.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	return store.Classify(s.follows.Create(ctx, follow))
}

// Unfollow deletes the edge; absence of a matching row is not an error.
func (s *socialService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if followerID == "" {
		return store.ErrAuthRequired
	}
	_, err := s.follows.Delete(ctx, followerID, followeeID)
	return store.Classify(err)
}

func (s *socialService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	ok, err := s.follows.Exists(ctx, followerID, followeeID)
	return ok, store.Classify(err)
}

func (s *socialService) Followers(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.follows.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *socialService) Following(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.follows.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Like is idempotent: a unique-constraint conflict means the edge already
// exists and is treated as success without touching the counter.
func (s *socialService) Like(ctx context.Context, userID, targetType, targetID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	like := &dbmysql.Like{
		ID:         uuid.New().String(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if err := s.likes.Create(ctx, like); err != nil {
		if store.IsConflict(err) {
			return nil
		}
		return store.Classify(err)
	}

	if targetType == TargetPost {
		if err := s.counters.AdjustLikes(ctx, targetID, 1); err != nil {
			return store.Classify(err)
		}
	}
	return nil
}

// Unlike removes the edge; the counter is only decremented when a row was
// actually deleted, so repeated unlikes cannot drive it down.
func (s *socialService) Unlike(ctx context.Context, userID, targetType, targetID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	deleted, err := s.likes.Delete(ctx, userID, targetType, targetID)
	if err != nil {
		return store.Classify(err)
	}
	if deleted > 0 && targetType == TargetPost {
		if err := s.counters.AdjustLikes(ctx, targetID, -1); err != nil {
			return store.Classify(err)
		}
	}
	return nil
}

func (s *socialService) Likes(ctx context.Context, targetType, targetID string) ([]string, error) {
	ids, err := s.likes.UserIDsForTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *socialService) LikedPosts(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if userID == "" || len(postIDs) == 0 {
		return liked, nil
	}
	ids, err := s.likes.LikedTargets(ctx, userID, TargetPost, postIDs)
	if err != nil {
		return nil, store.Classify(err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// AddComment inserts a comment and bumps the post's comment counter. When
// parentID is set it is trusted to reference a comment on the same post.
func (s *socialService) AddComment(ctx context.Context, userID, postID, content string, parentID *string) (*dbmysql.Comment, error) {
	if userID == "" {
		return nil, store.ErrAuthRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("comment content cannot be empty")
	}

	comment := &dbmysql.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
		Metadata: dbmysql.JSONMap{},
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, store.Classify(err)
	}

	if err := s.counters.AdjustComments(ctx, postID, 1); err != nil {
		return nil, store.Classify(err)
	}
	return comment, nil
}

func (s *socialService) DeleteComment(ctx context.Context, actorID, commentID string) error {
	if actorID == "" {
		return store.ErrAuthRequired
	}

	comment, err := s.comments.ByID(ctx, commentID)
	if err != nil {
		return store.Classify(err)
	}

	deleted, err := s.comments.DeleteOwned(ctx, commentID, actorID)
	if err != nil {
		return store.Classify(err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: comment belongs to another user", store.ErrUnauthorized)
	}

	return store.Classify(s.counters.AdjustComments(ctx, comment.PostID, -1))
}

func (s *socialService) Comments(ctx context.Context, postID string) ([]*dbmysql.Comment, error) {
	comments, err := s.comments.ByPost(ctx, postID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if comments == nil {
		comments = []*dbmysql.Comment{}
	}
	return comments, nil
}

func (s *socialService) CommentTree(ctx context.Context, postID string) ([]*CommentNode, error) {
	comments, err := s.Comments(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}
