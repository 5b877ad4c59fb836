package media

import (
	"context"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
)

type MediaRepository interface {
	Create(ctx context.Context, media *dbmysql.Media) error
	ByID(ctx context.Context, id string) (*dbmysql.Media, error)
	ByPost(ctx context.Context, postID string) ([]*dbmysql.Media, error)
	AttachToPost(ctx context.Context, mediaID, ownerID, postID string) (int64, error)
	SetStatus(ctx context.Context, mediaID string, status dbmysql.TranscodingStatus) error
	DeleteOwned(ctx context.Context, mediaID, ownerID string) (int64, error)

	CreateVideo(ctx context.Context, video *dbmysql.Video) error
	VideoByMedia(ctx context.Context, mediaID string) (*dbmysql.Video, error)
	UpdateVideo(ctx context.Context, mediaID string, fields map[string]interface{}) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *dbmysql.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) ByID(ctx context.Context, id string) (*dbmysql.Media, error) {
	var media dbmysql.Media
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) ByPost(ctx context.Context, postID string) ([]*dbmysql.Media, error) {
	var media []*dbmysql.Media
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&media).Error
	return media, err
}

func (r *mediaRepository) AttachToPost(ctx context.Context, mediaID, ownerID, postID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Media{}).
		Where("id = ? AND owner_id = ?", mediaID, ownerID).
		Update("post_id", postID)
	return res.RowsAffected, res.Error
}

func (r *mediaRepository) SetStatus(ctx context.Context, mediaID string, status dbmysql.TranscodingStatus) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.Media{}).
		Where("id = ?", mediaID).
		Update("transcoding_status", status).Error
}

func (r *mediaRepository) DeleteOwned(ctx context.Context, mediaID, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", mediaID, ownerID).
		Delete(&dbmysql.Media{})
	return res.RowsAffected, res.Error
}

func (r *mediaRepository) CreateVideo(ctx context.Context, video *dbmysql.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *mediaRepository) VideoByMedia(ctx context.Context, mediaID string) (*dbmysql.Video, error) {
	var video dbmysql.Video
	err := r.db.WithContext(ctx).Where("media_id = ?", mediaID).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *mediaRepository) UpdateVideo(ctx context.Context, mediaID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.Video{}).
		Where("media_id = ?", mediaID).
		Updates(fields).Error
}
