package story

import (
	"context"
	"time"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
)

type StoryRepository interface {
	Create(ctx context.Context, story *dbmysql.Story) error
	ByID(ctx context.Context, id string) (*dbmysql.Story, error)
	ActiveByUsers(ctx context.Context, userIDs []string, now time.Time) ([]*dbmysql.Story, error)
	ByUser(ctx context.Context, userID string, now time.Time) ([]*dbmysql.Story, error)
	IncrementViews(ctx context.Context, storyID string) error
	DeleteOwned(ctx context.Context, storyID, userID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *dbmysql.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *storyRepository) ByID(ctx context.Context, id string) (*dbmysql.Story, error) {
	var story dbmysql.Story
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&story).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) ActiveByUsers(ctx context.Context, userIDs []string, now time.Time) ([]*dbmysql.Story, error) {
	if len(userIDs) == 0 {
		return []*dbmysql.Story{}, nil
	}
	var stories []*dbmysql.Story
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND expires_at > ?", userIDs, now).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

func (r *storyRepository) ByUser(ctx context.Context, userID string, now time.Time) ([]*dbmysql.Story, error) {
	var stories []*dbmysql.Story
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, err
}

func (r *storyRepository) IncrementViews(ctx context.Context, storyID string) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.Story{}).
		Where("id = ?", storyID).
		UpdateColumn("viewers_count", gorm.Expr("viewers_count + 1")).Error
}

func (r *storyRepository) DeleteOwned(ctx context.Context, storyID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", storyID, userID).
		Delete(&dbmysql.Story{})
	return res.RowsAffected, res.Error
}

func (r *storyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&dbmysql.Story{})
	return res.RowsAffected, res.Error
}
