package usecase_test

import (
	"context"
	"testing"

	"designhire-backend/internal/domain"
	"designhire-backend/internal/usecase"
	"designhire-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func openJob(id int64, postedBy string) *domain.Job {
	return &domain.Job{ID: id, Title: "Product Designer", Status: domain.JobStatusOpen, PostedBy: postedBy}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create pending application and count the click", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("Exists", ctx, int64(1), "user1").Return(false, nil)
		appRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.JobID == 1 && a.ApplicantID == "user1" && a.Status == domain.ApplicationStatusPending
		})).Return(nil)
		jobRepo.On("IncrementClicks", ctx, int64(1)).Return(nil)

		err := uc.Apply(ctx, 1, "user1")
		assert.NoError(t, err)
		appRepo.AssertExpectations(t)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Should fail when job does not exist", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		err := uc.Apply(ctx, 99, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})

	t.Run("Should reject duplicate application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("Exists", ctx, int64(1), "user1").Return(true, nil)

		err := uc.Apply(ctx, 1, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You have already applied for this job")
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject duplicate caught by the unique index", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("Exists", ctx, int64(1), "user1").Return(false, nil)
		appRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		err := uc.Apply(ctx, 1, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You have already applied for this job")
	})

	t.Run("Should succeed even when the click counter fails", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("Exists", ctx, int64(1), "user1").Return(false, nil)
		appRepo.On("Create", ctx, mock.Anything).Return(nil)
		jobRepo.On("IncrementClicks", ctx, int64(1)).Return(assert.AnError)

		err := uc.Apply(ctx, 1, "user1")
		assert.NoError(t, err)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete a pending application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("GetByJobAndApplicant", ctx, int64(1), "user1").
			Return(&domain.Application{JobID: 1, ApplicantID: "user1", Status: domain.ApplicationStatusPending}, nil)
		appRepo.On("Delete", ctx, int64(1), "user1").Return(nil)

		err := uc.Withdraw(ctx, 1, "user1")
		assert.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("Should refuse to withdraw a decided application", func(t *testing.T) {
		for _, status := range []string{domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected} {
			appRepo := new(MockApplicationRepo)
			jobRepo := new(MockJobRepo)
			uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

			jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
			appRepo.On("GetByJobAndApplicant", ctx, int64(1), "user1").
				Return(&domain.Application{JobID: 1, ApplicantID: "user1", Status: status}, nil)

			err := uc.Withdraw(ctx, 1, "user1")
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "Cannot withdraw application with status: "+status)
			appRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Should fail when no application exists", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("GetByJobAndApplicant", ctx, int64(1), "user1").Return(nil, domain.ErrNotFound)

		err := uc.Withdraw(ctx, 1, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Application not found")
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should accept an application as the job owner", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("UpdateStatus", ctx, int64(1), "user1", domain.ApplicationStatusAccepted).Return(nil)
		appRepo.On("GetByJobAndApplicant", ctx, int64(1), "user1").
			Return(&domain.Application{JobID: 1, ApplicantID: "user1", Status: domain.ApplicationStatusAccepted}, nil)

		app, err := uc.UpdateStatus(ctx, "recruiter1", 1, "user1", domain.ApplicationStatusAccepted)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
	})

	t.Run("Should reject an invalid target status", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		_, err := uc.UpdateStatus(ctx, "recruiter1", 1, "user1", "pending")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Status must be 'accepted' or 'rejected'")
	})

	t.Run("Should forbid non-owners", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)

		_, err := uc.UpdateStatus(ctx, "intruder", 1, "user1", domain.ApplicationStatusAccepted)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Should 404 when the applicant never applied", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("UpdateStatus", ctx, int64(1), "ghost", domain.ApplicationStatusRejected).Return(domain.ErrNotFound)

		_, err := uc.UpdateStatus(ctx, "recruiter1", 1, "ghost", domain.ApplicationStatusRejected)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Applicant not found for this job")
	})
}

func TestListJobApplicants(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid viewing applicants of someone else's job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)

		_, err := uc.ListJobApplicants(ctx, "intruder", 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Not authorized to view applicants")
	})

	t.Run("Should return applicant entries for the owner", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		appRepo.On("GetByJobID", ctx, int64(1)).
			Return([]domain.Application{{JobID: 1, ApplicantID: "user1"}}, nil)

		apps, err := uc.ListJobApplicants(ctx, "recruiter1", 1)
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
	})
}
