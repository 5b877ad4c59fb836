package post

import (
	"context"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

type PostRepository interface {
	Create(ctx context.Context, post *dbmysql.Post) error
	ByID(ctx context.Context, id string) (*dbmysql.Post, error)
	// Feed returns posts by the given authors, newest first, plus the exact
	// total so callers can compute whether more pages exist.
	Feed(ctx context.Context, authorIDs []string, page store.Page) ([]*dbmysql.Post, int64, error)
	ByUser(ctx context.Context, userID string, page store.Page) ([]*dbmysql.Post, int64, error)
	UpdateOwned(ctx context.Context, postID, userID string, fields map[string]interface{}) (int64, error)
	// DeleteOwned removes the post together with its likes and comments.
	DeleteOwned(ctx context.Context, postID, userID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ByID(ctx context.Context, id string) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Feed(ctx context.Context, authorIDs []string, page store.Page) ([]*dbmysql.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []*dbmysql.Post{}, 0, nil
	}

	base := r.db.WithContext(ctx).Model(&dbmysql.Post{}).Where("user_id IN ?", authorIDs)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*dbmysql.Post
	err := base.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ByUser(ctx context.Context, userID string, page store.Page) ([]*dbmysql.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&dbmysql.Post{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*dbmysql.Post
	err := base.
		Order("is_pinned DESC, created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) UpdateOwned(ctx context.Context, postID, userID string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Post{}).
		Where("id = ? AND user_id = ?", postID, userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *postRepository) DeleteOwned(ctx context.Context, postID, userID string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", postID, userID).Delete(&dbmysql.Post{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		if deleted == 0 {
			return nil
		}
		if err := tx.Where("target_type = ? AND target_id = ?", "post", postID).Delete(&dbmysql.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", postID).Delete(&dbmysql.Comment{}).Error
	})
	return deleted, err
}
