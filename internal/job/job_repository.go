package job

import (
	"context"
	"time"

	"gorm.io/gorm"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

type JobRepository interface {
	CreateCompany(ctx context.Context, company *dbmysql.Company) error
	CompanyByID(ctx context.Context, id string) (*dbmysql.Company, error)

	Create(ctx context.Context, job *dbmysql.Job) error
	ByID(ctx context.Context, id string) (*dbmysql.Job, error)
	// Search matches title/location against the query, unexpired jobs only.
	Search(ctx context.Context, query string, now time.Time, page store.Page) ([]*dbmysql.Job, int64, error)
	List(ctx context.Context, now time.Time, page store.Page) ([]*dbmysql.Job, int64, error)
	DeleteOwned(ctx context.Context, jobID, posterID string) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) CreateCompany(ctx context.Context, company *dbmysql.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *jobRepository) CompanyByID(ctx context.Context, id string) (*dbmysql.Company, error) {
	var company dbmysql.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *jobRepository) Create(ctx context.Context, job *dbmysql.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) ByID(ctx context.Context, id string) (*dbmysql.Job, error) {
	var job dbmysql.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func unexpired(q *gorm.DB, now time.Time) *gorm.DB {
	return q.Where("expires_at IS NULL OR expires_at > ?", now)
}

func (r *jobRepository) Search(ctx context.Context, query string, now time.Time, page store.Page) ([]*dbmysql.Job, int64, error) {
	pattern := "%" + query + "%"
	base := unexpired(r.db.WithContext(ctx).Model(&dbmysql.Job{}), now).
		Where("title LIKE ? OR location LIKE ?", pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []*dbmysql.Job
	err := base.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) List(ctx context.Context, now time.Time, page store.Page) ([]*dbmysql.Job, int64, error) {
	base := unexpired(r.db.WithContext(ctx).Model(&dbmysql.Job{}), now)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []*dbmysql.Job
	err := base.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) DeleteOwned(ctx context.Context, jobID, posterID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND poster_id = ?", jobID, posterID).
		Delete(&dbmysql.Job{})
	return res.RowsAffected, res.Error
}
