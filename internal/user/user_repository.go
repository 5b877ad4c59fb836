package user

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
)

type UserRepository interface {
	Create(ctx context.Context, user *dbmysql.User) error
	ByID(ctx context.Context, id string) (*dbmysql.User, error)
	ByHandle(ctx context.Context, handle string) (*dbmysql.User, error)
	ByEmail(ctx context.Context, email string) (*dbmysql.User, error)
	ByIDs(ctx context.Context, ids []string) ([]*dbmysql.User, error)
	Update(ctx context.Context, user *dbmysql.User) error
	UpdateLastSeen(ctx context.Context, id string, at time.Time) error
	Search(ctx context.Context, query string, limit int) ([]*dbmysql.User, error)
	HandleExists(ctx context.Context, handle string) (bool, error)

	// Aggregates for profile stats
	CountPosts(ctx context.Context, userID string) (int64, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) ByID(ctx context.Context, id string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByHandle(ctx context.Context, handle string) (*dbmysql.User, error) {
	var user dbmysql.User
	// handle lookup is case-insensitive
	err := r.db.WithContext(ctx).
		Where("LOWER(handle) = ?", strings.ToLower(handle)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByIDs(ctx context.Context, ids []string) ([]*dbmysql.User, error) {
	if len(ids) == 0 {
		return []*dbmysql.User{}, nil
	}
	var users []*dbmysql.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateLastSeen(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.User{}).
		Where("id = ?", id).
		Update("last_seen_at", at).Error
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]*dbmysql.User, error) {
	var users []*dbmysql.User
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("handle LIKE ? OR display_name LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.User{}).
		Where("LOWER(handle) = ?", strings.ToLower(handle)).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) CountPosts(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
