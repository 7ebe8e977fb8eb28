package usecase

import (
	"context"
	"errors"
	"strings"

	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"
	"designhire-backend/pkg/logger"
)

const (
	defaultPageSize      = 9
	recommendedJobsLimit = 6
)

type jobUsecase struct {
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
	userRepo        domain.UserRepository
}

func NewJobUsecase(jobRepo domain.JobRepository, appRepo domain.ApplicationRepository, userRepo domain.UserRepository) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:         jobRepo,
		applicationRepo: appRepo,
		userRepo:        userRepo,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, posterID string, job *domain.Job) error {
	// Business Validation
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.Description) == "" || len(job.SkillsRequired) == 0 {
		return apperror.BadRequest("Please enter all the fields")
	}
	if job.EmploymentType != "" && !domain.EmploymentTypes[job.EmploymentType] {
		return apperror.BadRequest("Invalid employment type")
	}

	job.PostedBy = posterID
	job.Status = domain.JobStatusOpen

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetJobDetails returns the job and bumps its view counter. Applicant
// entries are attached only when the viewer owns the job.
func (u *jobUsecase) GetJobDetails(ctx context.Context, id int64, viewerID string) (*domain.JobDetail, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	// View counting is best effort; the fetch succeeds regardless.
	if err := u.jobRepo.IncrementViews(ctx, id); err != nil {
		logger.Log.Warn("failed to increment job views", "job_id", id, "error", err)
	}

	detail := &domain.JobDetail{Job: job}
	if viewerID != "" && viewerID == job.PostedBy {
		applicants, err := u.applicationRepo.GetByJobID(ctx, id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		detail.Applicants = applicants
	}
	return detail, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.JobPage, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)
	offset := (page - 1) * limit

	jobs, total, err := u.jobRepo.Fetch(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.JobPage{
		Page:  page,
		Pages: totalPages(total, limit),
		Total: total,
		Jobs:  jobs,
	}, nil
}

func (u *jobUsecase) ListPostedJobs(ctx context.Context, posterID string, page, limit int) (*domain.JobPage, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	jobs, total, err := u.jobRepo.FetchByPoster(ctx, posterID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.JobPage{
		Page:  page,
		Pages: totalPages(total, limit),
		Total: total,
		Jobs:  jobs,
	}, nil
}

// RecommendedJobs matches the viewer's skill set against open jobs,
// excluding anything already applied to. Plain set intersection plus
// recency; no scoring.
func (u *jobUsecase) RecommendedJobs(ctx context.Context, viewerID string) ([]domain.Job, error) {
	user, err := u.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	if len(user.Skills) == 0 {
		return nil, nil
	}

	jobs, err := u.jobRepo.FetchRecommended(ctx, viewerID, user.Skills, recommendedJobsLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, posterID string, id int64, upd *domain.JobUpdate) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.PostedBy != posterID {
		return nil, apperror.Forbidden("Not authorized to update this job")
	}

	if upd.Status != nil && *upd.Status != domain.JobStatusOpen && *upd.Status != domain.JobStatusClosed {
		return nil, apperror.BadRequest("Status must be 'open' or 'closed'")
	}
	if upd.EmploymentType != nil && !domain.EmploymentTypes[*upd.EmploymentType] {
		return nil, apperror.BadRequest("Invalid employment type")
	}

	updated, err := u.jobRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, posterID string, id int64) error {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if job.PostedBy != posterID {
		return apperror.Forbidden("Not authorized to delete this job")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// normalizePage clamps page/limit to sane values, applying the
// listing defaults (page 1, 9 per page).
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

// totalPages is ceil(total/limit) with a floor of 0.
func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
