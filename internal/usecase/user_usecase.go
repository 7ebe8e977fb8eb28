package usecase

import (
	"context"
	"errors"

	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"
)

type userUsecase struct {
	userRepo        domain.UserRepository
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
	savedJobRepo    domain.SavedJobRepository
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	savedRepo domain.SavedJobRepository,
) domain.UserUsecase {
	return &userUsecase{
		userRepo:        userRepo,
		jobRepo:         jobRepo,
		applicationRepo: appRepo,
		savedJobRepo:    savedRepo,
	}
}

// GetProfile assembles the self-profile. The applied, saved and posted
// lists are derived from their own tables on every call, so they can
// never drift from the application rows.
func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	profile := &domain.UserProfile{User: user}

	switch user.UserType {
	case domain.UserTypeApplicant:
		applied, err := uc.applicationRepo.FetchAppliedJobs(ctx, userID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		profile.AppliedJobs = make([]domain.Job, 0, len(applied))
		for _, aj := range applied {
			profile.AppliedJobs = append(profile.AppliedJobs, aj.Job)
		}

		saved, err := uc.savedJobRepo.FetchJobs(ctx, userID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		profile.SavedJobs = saved
	case domain.UserTypeRecruiter:
		posted, _, err := uc.jobRepo.FetchByPoster(ctx, userID, allPostedJobs, 0)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		profile.PostedJobs = posted
	}
	return profile, nil
}

// allPostedJobs is the fetch limit used when the posted list is not
// paginated, e.g. inside the profile response.
const allPostedJobs = 1000

func (uc *userUsecase) GetPublicProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user.PublicProfile(), nil
}

// UpdateProfile applies a field-level patch. Fields outside the user's
// role are dropped silently, matching the behaviour of the profile form.
func (uc *userUsecase) UpdateProfile(ctx context.Context, userID string, upd *domain.ProfileUpdate) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	switch user.UserType {
	case domain.UserTypeApplicant:
		upd.CompanyName = nil
		upd.CompanyWebsite = nil
		upd.CompanyLocation = nil
	case domain.UserTypeRecruiter:
		upd.Skills = nil
		upd.ResumeURL = nil
	}

	if upd.UserName != nil && *upd.UserName != user.UserName {
		if _, err := uc.userRepo.GetByUserName(ctx, *upd.UserName); err == nil {
			return nil, apperror.Conflict("Username already exists")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
	}

	updated, err := uc.userRepo.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

func (uc *userUsecase) SaveJob(ctx context.Context, userID string, jobID int64) error {
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}

	exists, err := uc.savedJobRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return apperror.Internal(err)
	}
	if exists {
		return apperror.Conflict("Job already saved")
	}

	if err := uc.savedJobRepo.Save(ctx, userID, jobID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *userUsecase) UnsaveJob(ctx context.Context, userID string, jobID int64) error {
	if err := uc.savedJobRepo.Remove(ctx, userID, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found in saved list")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *userUsecase) GetSavedJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	jobs, err := uc.savedJobRepo.FetchJobs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (uc *userUsecase) GetAppliedJobs(ctx context.Context, userID string) ([]domain.AppliedJob, error) {
	jobs, err := uc.applicationRepo.FetchAppliedJobs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}
