package usecase

import (
	"context"
	"errors"
	"fmt"

	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"
	"designhire-backend/pkg/logger"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
	}
}

// Apply creates a pending application for the given job. The
// duplicate pre-check is backed by the unique index on
// (job_id, applicant_id), so racing apply calls cannot both land.
func (uc *applicationUsecase) Apply(ctx context.Context, jobID int64, applicantID string) error {
	// 1. Validate job exists
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		return apperror.NotFound("Job not found")
	}

	// 2. Check for duplicate application
	exists, err := uc.applicationRepo.Exists(ctx, jobID, applicantID)
	if err != nil {
		return apperror.Internal(err)
	}
	if exists {
		return apperror.Conflict("You have already applied for this job")
	}

	// 3. Create application with status pending
	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      domain.ApplicationStatusPending,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("You have already applied for this job")
		}
		return apperror.Internal(err)
	}

	// 4. Count the apply click. Non-fatal: the application stands even
	// if the counter bump fails.
	if err := uc.jobRepo.IncrementClicks(ctx, jobID); err != nil {
		logger.Log.Warn("failed to increment job clicks", "job_id", jobID, "error", err)
	}

	return nil
}

// Withdraw removes a pending application. Decided applications
// (accepted or rejected) are terminal and cannot be withdrawn.
func (uc *applicationUsecase) Withdraw(ctx context.Context, jobID int64, applicantID string) error {
	// 1. Validate job exists
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		return apperror.NotFound("Job not found")
	}

	// 2. Fetch the application entry
	app, err := uc.applicationRepo.GetByJobAndApplicant(ctx, jobID, applicantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}

	// 3. Only pending applications can be withdrawn
	if app.Status != domain.ApplicationStatusPending {
		return apperror.Conflict(fmt.Sprintf("Cannot withdraw application with status: %s", app.Status))
	}

	// 4. Remove the entry; re-applying becomes possible again
	if err := uc.applicationRepo.Delete(ctx, jobID, applicantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// ListJobApplicants returns a job's applicant entries (owner only).
func (uc *applicationUsecase) ListJobApplicants(ctx context.Context, posterID string, jobID int64) ([]domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.PostedBy != posterID {
		return nil, apperror.Forbidden("Not authorized to view applicants")
	}

	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListAllApplicants flattens applicant entries across every job the
// recruiter posted.
func (uc *applicationUsecase) ListAllApplicants(ctx context.Context, posterID string) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetByPosterID(ctx, posterID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateStatus lets the job owner accept or reject an application.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, posterID string, jobID int64, applicantID string, status string) (*domain.Application, error) {
	// 1. Validate target status
	if status != domain.ApplicationStatusAccepted && status != domain.ApplicationStatusRejected {
		return nil, apperror.BadRequest("Status must be 'accepted' or 'rejected'")
	}

	// 2. Validate job exists and caller owns it
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.PostedBy != posterID {
		return nil, apperror.Forbidden("Not authorized to update this application")
	}

	// 3. Update the entry in place
	if err := uc.applicationRepo.UpdateStatus(ctx, jobID, applicantID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Applicant not found for this job")
		}
		return nil, apperror.Internal(err)
	}

	app, err := uc.applicationRepo.GetByJobAndApplicant(ctx, jobID, applicantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}
