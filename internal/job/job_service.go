package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

type JobPage struct {
	Jobs    []*dbmysql.Job `json:"jobs"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"has_more"`
}

type JobInput struct {
	CompanyID      *string
	Title          string
	Description    *string
	Location       *string
	EmploymentType *string
	SalaryRange    dbmysql.JSONMap
	Requirements   dbmysql.StringList
	ExpiresAt      *time.Time
}

type JobService interface {
	CreateCompany(ctx context.Context, actorID, name string, handle, description, website *string) (*dbmysql.Company, error)
	GetCompany(ctx context.Context, companyID string) (*dbmysql.Company, error)
	CreateJob(ctx context.Context, posterID string, in JobInput) (*dbmysql.Job, error)
	GetJob(ctx context.Context, jobID string) (*dbmysql.Job, error)
	SearchJobs(ctx context.Context, query string, page store.Page) (*JobPage, error)
	ListJobs(ctx context.Context, page store.Page) (*JobPage, error)
	DeleteJob(ctx context.Context, posterID, jobID string) error
}

type jobService struct {
	jobs JobRepository
	now  func() time.Time
}

func NewJobService(jobs JobRepository) JobService {
	return &jobService{
		jobs: jobs,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *jobService) CreateCompany(ctx context.Context, actorID, name string, handle, description, website *string) (*dbmysql.Company, error) {
	if actorID == "" {
		return nil, store.ErrAuthRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("company name cannot be empty")
	}

	company := &dbmysql.Company{
		ID:          uuid.New().String(),
		Name:        name,
		Handle:      handle,
		Description: description,
		Website:     website,
	}
	if err := s.jobs.CreateCompany(ctx, company); err != nil {
		return nil, store.Classify(err)
	}
	return company, nil
}

func (s *jobService) GetCompany(ctx context.Context, companyID string) (*dbmysql.Company, error) {
	company, err := s.jobs.CompanyByID(ctx, companyID)
	if err != nil {
		return nil, store.Classify(err)
	}
	return company, nil
}

func (s *jobService) CreateJob(ctx context.Context, posterID string, in JobInput) (*dbmysql.Job, error) {
	if posterID == "" {
		return nil, store.ErrAuthRequired
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("job title cannot be empty")
	}
	if in.CompanyID != nil {
		if _, err := s.jobs.CompanyByID(ctx, *in.CompanyID); err != nil {
			return nil, store.Classify(err)
		}
	}

	job := &dbmysql.Job{
		ID:             uuid.New().String(),
		CompanyID:      in.CompanyID,
		PosterID:       &posterID,
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		EmploymentType: in.EmploymentType,
		SalaryRange:    in.SalaryRange,
		Requirements:   in.Requirements,
		ExpiresAt:      in.ExpiresAt,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, store.Classify(err)
	}
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID string) (*dbmysql.Job, error) {
	job, err := s.jobs.ByID(ctx, jobID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if job.ExpiresAt != nil && !job.ExpiresAt.After(s.now()) {
		return nil, store.ErrNotFound
	}
	return job, nil
}

func (s *jobService) SearchJobs(ctx context.Context, query string, page store.Page) (*JobPage, error) {
	if strings.TrimSpace(query) == "" {
		return &JobPage{Jobs: []*dbmysql.Job{}}, nil
	}

	jobs, total, err := s.jobs.Search(ctx, query, s.now(), page)
	if err != nil {
		return nil, store.Classify(err)
	}
	if jobs == nil {
		jobs = []*dbmysql.Job{}
	}
	return &JobPage{Jobs: jobs, Total: total, HasMore: page.HasMore(total)}, nil
}

func (s *jobService) ListJobs(ctx context.Context, page store.Page) (*JobPage, error) {
	jobs, total, err := s.jobs.List(ctx, s.now(), page)
	if err != nil {
		return nil, store.Classify(err)
	}
	if jobs == nil {
		jobs = []*dbmysql.Job{}
	}
	return &JobPage{Jobs: jobs, Total: total, HasMore: page.HasMore(total)}, nil
}

func (s *jobService) DeleteJob(ctx context.Context, posterID, jobID string) error {
	if posterID == "" {
		return store.ErrAuthRequired
	}

	deleted, err := s.jobs.DeleteOwned(ctx, jobID, posterID)
	if err != nil {
		return store.Classify(err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return nil
}
