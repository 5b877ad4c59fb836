package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/job"
)

type createCompanyRequest struct {
	Name        string  `json:"name"`
	Handle      *string `json:"handle"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
}

type createJobRequest struct {
	CompanyID      *string            `json:"company_id"`
	Title          string             `json:"title"`
	Description    *string            `json:"description"`
	Location       *string            `json:"location"`
	EmploymentType *string            `json:"employment_type"`
	SalaryRange    dbmysql.JSONMap    `json:"salary_range"`
	Requirements   dbmysql.StringList `json:"requirements"`
	ExpiresAt      *time.Time         `json:"expires_at"`
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.jobs.CreateCompany(r.Context(), CallerID(r.Context()), req.Name, req.Handle, req.Description, req.Website)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.jobs.GetCompany(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, company)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.jobs.CreateJob(r.Context(), CallerID(r.Context()), job.JobInput{
		CompanyID:      req.CompanyID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryRange:    req.SalaryRange,
		Requirements:   req.Requirements,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.jobs.GetJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, j)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query != "" {
		page, err := s.jobs.SearchJobs(r.Context(), query, pageFromQuery(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respond(w, http.StatusOK, page)
		return
	}
	page, err := s.jobs.ListJobs(r.Context(), pageFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.jobs.DeleteJob(r.Context(), CallerID(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}
