package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicate is returned when a unique constraint rejects a write,
// e.g. two racing applies for the same (job, applicant) pair.
var ErrDuplicate = errors.New("duplicate entry")

// Application status constants. An application starts as pending and
// moves to exactly one of accepted or rejected. Withdrawal is only
// possible while pending; it removes the row entirely.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application is a single (job, applicant) entry. The applications
// table is the single source of truth: a user's applied jobs and a
// job's applicant list are both derived from it by query.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	Status      string    `json:"status"` // pending | accepted | rejected
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for applicant listings
	ApplicantName   *string  `json:"applicant_name,omitempty"`
	ApplicantEmail  *string  `json:"applicant_email,omitempty"`
	ApplicantSkills []string `json:"applicant_skills,omitempty"`
	ApplicantPhoto  *string  `json:"applicant_photo,omitempty"`
	ApplicantResume *string  `json:"applicant_resume,omitempty"`
	JobTitle        *string  `json:"job_title,omitempty"`
}

// AppliedJob is a job joined with the viewer's own application entry,
// as returned by GET /users/applied.
type AppliedJob struct {
	Job
	ApplicationStatus string    `json:"application_status"`
	AppliedAt         time.Time `json:"applied_at"`
}

// JobDetail is a job plus its applicant entries. Applicants are only
// populated when the viewer owns the job.
type JobDetail struct {
	Job        *Job          `json:"job"`
	Applicants []Application `json:"applicants,omitempty"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByJobAndApplicant(ctx context.Context, jobID int64, applicantID string) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByPosterID(ctx context.Context, posterID string) ([]Application, error)
	Exists(ctx context.Context, jobID int64, applicantID string) (bool, error)
	UpdateStatus(ctx context.Context, jobID int64, applicantID string, status string) error
	Delete(ctx context.Context, jobID int64, applicantID string) error
	FetchAppliedJobs(ctx context.Context, applicantID string) ([]AppliedJob, error)
}

// SavedJobRepository manages the applicant's saved-jobs set.
type SavedJobRepository interface {
	Save(ctx context.Context, userID string, jobID int64) error
	Remove(ctx context.Context, userID string, jobID int64) error
	Exists(ctx context.Context, userID string, jobID int64) (bool, error)
	FetchJobs(ctx context.Context, userID string) ([]Job, error)
}

type ApplicationUsecase interface {
	// Applicant operations
	Apply(ctx context.Context, jobID int64, applicantID string) error
	Withdraw(ctx context.Context, jobID int64, applicantID string) error

	// Recruiter operations
	ListJobApplicants(ctx context.Context, posterID string, jobID int64) ([]Application, error)
	ListAllApplicants(ctx context.Context, posterID string) ([]Application, error)
	UpdateStatus(ctx context.Context, posterID string, jobID int64, applicantID string, status string) (*Application, error)
}
