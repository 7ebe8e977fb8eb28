package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job lifecycle states
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Accepted employment types
var EmploymentTypes = map[string]bool{
	"Full-time":  true,
	"Part-time":  true,
	"Contract":   true,
	"Internship": true,
	"Remote":     true,
}

type Job struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	SkillsRequired []string  `json:"skills_required"`
	EmploymentType string    `json:"employment_type,omitempty"`
	Location       string    `json:"location,omitempty"`
	Salary         string    `json:"salary,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Education      string    `json:"education,omitempty"`
	Status         string    `json:"status"` // open | closed
	PostedBy       string    `json:"posted_by"`
	Views          int64     `json:"views"`
	Clicks         int64     `json:"clicks"`
	PostedAt       time.Time `json:"posted_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Joined poster data for list/detail responses
	PosterName    *string `json:"poster_name,omitempty"`
	PosterCompany *string `json:"poster_company,omitempty"`
}

// JobFilter is the listing predicate. Zero values mean "no filter".
// ViewerID, when set, excludes jobs the viewer already applied to.
type JobFilter struct {
	Search         string
	Location       string
	EmploymentType string
	Skills         []string
	ViewerID       string
	Page           int
	Limit          int
}

// JobPage is the pagination envelope for job listings.
type JobPage struct {
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
	Jobs  []Job `json:"jobs"`
}

// JobUpdate carries the field-level patch for PUT /jobs/:id.
// Nil pointers and nil slices are left unchanged.
type JobUpdate struct {
	Title          *string
	Description    *string
	SkillsRequired []string
	EmploymentType *string
	Location       *string
	Salary         *string
	Experience     *string
	Education      *string
	Status         *string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	FetchByPoster(ctx context.Context, posterID string, limit, offset int) ([]Job, int64, error)
	FetchRecommended(ctx context.Context, viewerID string, skills []string, limit int) ([]Job, error)
	Update(ctx context.Context, id int64, upd *JobUpdate) (*Job, error)
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	IncrementClicks(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, posterID string, job *Job) error
	GetJobDetails(ctx context.Context, id int64, viewerID string) (*JobDetail, error)
	ListJobs(ctx context.Context, filter JobFilter) (*JobPage, error)
	ListPostedJobs(ctx context.Context, posterID string, page, limit int) (*JobPage, error)
	RecommendedJobs(ctx context.Context, viewerID string) ([]Job, error)
	UpdateJob(ctx context.Context, posterID string, id int64, upd *JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, posterID string, id int64) error
}
