package social

import (
	"context"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *dbmysql.Follow) error
	// Delete reports how many rows it removed; zero is not an error.
	Delete(ctx context.Context, followerID, followeeID string) (int64, error)
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
	FolloweeIDs(ctx context.Context, userID string) ([]string, error)
}

type LikeRepository interface {
	Create(ctx context.Context, like *dbmysql.Like) error
	Delete(ctx context.Context, userID, targetType, targetID string) (int64, error)
	Exists(ctx context.Context, userID, targetType, targetID string) (bool, error)
	UserIDsForTarget(ctx context.Context, targetType, targetID string) ([]string, error)
	// LikedTargets filters targetIDs down to those the user has liked.
	LikedTargets(ctx context.Context, userID, targetType string, targetIDs []string) ([]string, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *dbmysql.Comment) error
	ByID(ctx context.Context, id string) (*dbmysql.Comment, error)
	// DeleteOwned removes the comment only when the actor owns it.
	DeleteOwned(ctx context.Context, commentID, userID string) (int64, error)
	ByPost(ctx context.Context, postID string) ([]*dbmysql.Comment, error)
}

// CounterRepository adjusts the denormalized counters on posts. All social
// counter writes go through here and nowhere else.
type CounterRepository interface {
	AdjustLikes(ctx context.Context, postID string, delta int) error
	AdjustComments(ctx context.Context, postID string, delta int) error
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *dbmysql.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&dbmysql.Follow{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("followee_id = ?", userID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *followRepository) FolloweeIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	return ids, err
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *dbmysql.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, targetType, targetID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&dbmysql.Like{})
	return res.RowsAffected, res.Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, targetType, targetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) UserIDsForTarget(ctx context.Context, targetType, targetID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *likeRepository) LikedTargets(ctx context.Context, userID, targetType string, targetIDs []string) ([]string, error) {
	if len(targetIDs) == 0 {
		return []string{}, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Pluck("target_id", &ids).Error
	return ids, err
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ByID(ctx context.Context, id string) (*dbmysql.Comment, error) {
	var comment dbmysql.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, commentID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&dbmysql.Comment{})
	return res.RowsAffected, res.Error
}

func (r *commentRepository) ByPost(ctx context.Context, postID string) ([]*dbmysql.Comment, error) {
	var comments []*dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) AdjustLikes(ctx context.Context, postID string, delta int) error {
	return r.adjust(ctx, postID, "likes_count", delta)
}

func (r *counterRepository) AdjustComments(ctx context.Context, postID string, delta int) error {
	return r.adjust(ctx, postID, "comments_count", delta)
}

func (r *counterRepository) adjust(ctx context.Context, postID, column string, delta int) error {
	// GREATEST keeps the counter from going negative on decrement
	return r.db.WithContext(ctx).
		Model(&dbmysql.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr("GREATEST(0, "+column+" + ?)", delta)).Error
}
