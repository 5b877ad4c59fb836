package user

import (
	"context"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *dbmysql.Profile) error
	ByUserID(ctx context.Context, userID string) (*dbmysql.Profile, error)
	Update(ctx context.Context, profile *dbmysql.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *dbmysql.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) ByUserID(ctx context.Context, userID string) (*dbmysql.Profile, error) {
	var profile dbmysql.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *dbmysql.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
