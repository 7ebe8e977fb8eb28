package usecase_test

import (
	"context"
	"testing"

	"designhire-backend/internal/domain"
	"designhire-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserUC(userRepo *MockUserRepo, jobRepo *MockJobRepo, appRepo *MockApplicationRepo, savedRepo *MockSavedJobRepo) domain.UserUsecase {
	return usecase.NewUserUsecase(userRepo, jobRepo, appRepo, savedRepo)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should derive applied and saved lists for an applicant", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		savedRepo := new(MockSavedJobRepo)
		uc := newUserUC(userRepo, jobRepo, appRepo, savedRepo)

		userRepo.On("GetByID", ctx, "user1").
			Return(&domain.User{ID: "user1", UserType: domain.UserTypeApplicant}, nil)
		appRepo.On("FetchAppliedJobs", ctx, "user1").
			Return([]domain.AppliedJob{{Job: domain.Job{ID: 1}, ApplicationStatus: domain.ApplicationStatusPending}}, nil)
		savedRepo.On("FetchJobs", ctx, "user1").Return([]domain.Job{{ID: 2}}, nil)

		profile, err := uc.GetProfile(ctx, "user1")
		assert.NoError(t, err)
		assert.Len(t, profile.AppliedJobs, 1)
		assert.Len(t, profile.SavedJobs, 1)
		assert.Empty(t, profile.PostedJobs)
		jobRepo.AssertNotCalled(t, "FetchByPoster", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should derive the posted list for a recruiter", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		savedRepo := new(MockSavedJobRepo)
		uc := newUserUC(userRepo, jobRepo, appRepo, savedRepo)

		userRepo.On("GetByID", ctx, "recruiter1").
			Return(&domain.User{ID: "recruiter1", UserType: domain.UserTypeRecruiter}, nil)
		jobRepo.On("FetchByPoster", ctx, "recruiter1", mock.Anything, 0).
			Return([]domain.Job{{ID: 1}, {ID: 2}}, int64(2), nil)

		profile, err := uc.GetProfile(ctx, "recruiter1")
		assert.NoError(t, err)
		assert.Len(t, profile.PostedJobs, 2)
		appRepo.AssertNotCalled(t, "FetchAppliedJobs", mock.Anything, mock.Anything)
	})
}

func TestGetPublicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should strip the password hash", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newUserUC(userRepo, new(MockJobRepo), new(MockApplicationRepo), new(MockSavedJobRepo))

		userRepo.On("GetByID", ctx, "user1").
			Return(&domain.User{ID: "user1", Name: "Jane", PasswordHash: "hash", CompanyWebsite: "internal"}, nil)

		user, err := uc.GetPublicProfile(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, "Jane", user.Name)
		assert.Empty(t, user.PasswordHash)
	})
}

func TestUpdateProfileRoleScoping(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }

	t.Run("Should drop recruiter fields for applicants", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newUserUC(userRepo, new(MockJobRepo), new(MockApplicationRepo), new(MockSavedJobRepo))

		userRepo.On("GetByID", ctx, "user1").
			Return(&domain.User{ID: "user1", UserType: domain.UserTypeApplicant, UserName: "janedoe"}, nil)
		userRepo.On("UpdateProfile", ctx, "user1", mock.MatchedBy(func(u *domain.ProfileUpdate) bool {
			return u.CompanyName == nil && len(u.Skills) == 1
		})).Return(&domain.User{ID: "user1"}, nil)

		_, err := uc.UpdateProfile(ctx, "user1", &domain.ProfileUpdate{
			Skills:      []string{"Figma"},
			CompanyName: str("Acme"),
		})
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should drop applicant fields for recruiters", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newUserUC(userRepo, new(MockJobRepo), new(MockApplicationRepo), new(MockSavedJobRepo))

		userRepo.On("GetByID", ctx, "recruiter1").
			Return(&domain.User{ID: "recruiter1", UserType: domain.UserTypeRecruiter, UserName: "acmehr"}, nil)
		userRepo.On("UpdateProfile", ctx, "recruiter1", mock.MatchedBy(func(u *domain.ProfileUpdate) bool {
			return u.Skills == nil && u.ResumeURL == nil && u.CompanyName != nil
		})).Return(&domain.User{ID: "recruiter1"}, nil)

		_, err := uc.UpdateProfile(ctx, "recruiter1", &domain.ProfileUpdate{
			Skills:      []string{"Figma"},
			ResumeURL:   str("resume.pdf"),
			CompanyName: str("Acme"),
		})
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should reject a username already in use", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newUserUC(userRepo, new(MockJobRepo), new(MockApplicationRepo), new(MockSavedJobRepo))

		userRepo.On("GetByID", ctx, "user1").
			Return(&domain.User{ID: "user1", UserType: domain.UserTypeApplicant, UserName: "janedoe"}, nil)
		userRepo.On("GetByUserName", ctx, "taken").Return(&domain.User{ID: "other"}, nil)

		_, err := uc.UpdateProfile(ctx, "user1", &domain.ProfileUpdate{UserName: str("taken")})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Username already exists")
	})
}

func TestSaveJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should save an existing job once", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		savedRepo := new(MockSavedJobRepo)
		uc := newUserUC(new(MockUserRepo), jobRepo, new(MockApplicationRepo), savedRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		savedRepo.On("Exists", ctx, "user1", int64(1)).Return(false, nil)
		savedRepo.On("Save", ctx, "user1", int64(1)).Return(nil)

		err := uc.SaveJob(ctx, "user1", 1)
		assert.NoError(t, err)
		savedRepo.AssertExpectations(t)
	})

	t.Run("Should reject saving twice", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		savedRepo := new(MockSavedJobRepo)
		uc := newUserUC(new(MockUserRepo), jobRepo, new(MockApplicationRepo), savedRepo)

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(1, "recruiter1"), nil)
		savedRepo.On("Exists", ctx, "user1", int64(1)).Return(true, nil)

		err := uc.SaveJob(ctx, "user1", 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job already saved")
		savedRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail for a missing job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newUserUC(new(MockUserRepo), jobRepo, new(MockApplicationRepo), new(MockSavedJobRepo))

		jobRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		err := uc.SaveJob(ctx, "user1", 99)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})
}

func TestUnsaveJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should 404 when the job was never saved", func(t *testing.T) {
		savedRepo := new(MockSavedJobRepo)
		uc := newUserUC(new(MockUserRepo), new(MockJobRepo), new(MockApplicationRepo), savedRepo)

		savedRepo.On("Remove", ctx, "user1", int64(1)).Return(domain.ErrNotFound)

		err := uc.UnsaveJob(ctx, "user1", 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found in saved list")
	})
}
