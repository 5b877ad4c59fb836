package verse

import (
	"context"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

type VerseRepository interface {
	Create(ctx context.Context, verse *dbmysql.Verse) error
	ByID(ctx context.Context, id string) (*dbmysql.Verse, error)
	// Visible returns public verses plus the viewer's own private ones.
	Visible(ctx context.Context, viewerID string, page store.Page) ([]*dbmysql.Verse, int64, error)
	ByUser(ctx context.Context, userID string) ([]*dbmysql.Verse, error)
	UpdateOwned(ctx context.Context, verseID, userID string, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, verseID, userID string) (int64, error)
}

type verseRepository struct {
	db *gorm.DB
}

func NewVerseRepository(db *gorm.DB) VerseRepository {
	return &verseRepository{db: db}
}

func (r *verseRepository) Create(ctx context.Context, verse *dbmysql.Verse) error {
	return r.db.WithContext(ctx).Create(verse).Error
}

func (r *verseRepository) ByID(ctx context.Context, id string) (*dbmysql.Verse, error) {
	var verse dbmysql.Verse
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&verse).Error
	if err != nil {
		return nil, err
	}
	return &verse, nil
}

func (r *verseRepository) Visible(ctx context.Context, viewerID string, page store.Page) ([]*dbmysql.Verse, int64, error) {
	base := r.db.WithContext(ctx).Model(&dbmysql.Verse{})
	if viewerID == "" {
		base = base.Where("is_public = ?", true)
	} else {
		base = base.Where("is_public = ? OR user_id = ?", true, viewerID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var verses []*dbmysql.Verse
	err := base.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&verses).Error
	if err != nil {
		return nil, 0, err
	}
	return verses, total, nil
}

func (r *verseRepository) ByUser(ctx context.Context, userID string) ([]*dbmysql.Verse, error) {
	var verses []*dbmysql.Verse
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&verses).Error
	return verses, err
}

func (r *verseRepository) UpdateOwned(ctx context.Context, verseID, userID string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Verse{}).
		Where("id = ? AND user_id = ?", verseID, userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *verseRepository) DeleteOwned(ctx context.Context, verseID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", verseID, userID).
		Delete(&dbmysql.Verse{})
	return res.RowsAffected, res.Error
}
