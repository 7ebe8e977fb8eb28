package usecase_test

import (
	"context"
	"os"
	"testing"

	"designhire-backend/internal/domain"
	"designhire-backend/pkg/email"
	"designhire-backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, id string, upd *domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) FetchByPoster(ctx context.Context, posterID string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, posterID, limit, offset)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) FetchRecommended(ctx context.Context, viewerID string, skills []string, limit int) ([]domain.Job, error) {
	args := m.Called(ctx, viewerID, skills, limit)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, id int64, upd *domain.JobUpdate) (*domain.Job, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) IncrementViews(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) IncrementClicks(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByJobAndApplicant(ctx context.Context, jobID int64, applicantID string) (*domain.Application, error) {
	args := m.Called(ctx, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	var apps []domain.Application
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.Application)
	}
	return apps, args.Error(1)
}
func (m *MockApplicationRepo) GetByPosterID(ctx context.Context, posterID string) ([]domain.Application, error) {
	args := m.Called(ctx, posterID)
	var apps []domain.Application
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.Application)
	}
	return apps, args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, jobID int64, applicantID string) (bool, error) {
	args := m.Called(ctx, jobID, applicantID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, jobID int64, applicantID string, status string) error {
	return m.Called(ctx, jobID, applicantID, status).Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, jobID int64, applicantID string) error {
	return m.Called(ctx, jobID, applicantID).Error(0)
}
func (m *MockApplicationRepo) FetchAppliedJobs(ctx context.Context, applicantID string) ([]domain.AppliedJob, error) {
	args := m.Called(ctx, applicantID)
	var jobs []domain.AppliedJob
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.AppliedJob)
	}
	return jobs, args.Error(1)
}

type MockSavedJobRepo struct {
	mock.Mock
}

func (m *MockSavedJobRepo) Save(ctx context.Context, userID string, jobID int64) error {
	return m.Called(ctx, userID, jobID).Error(0)
}
func (m *MockSavedJobRepo) Remove(ctx context.Context, userID string, jobID int64) error {
	return m.Called(ctx, userID, jobID).Error(0)
}
func (m *MockSavedJobRepo) Exists(ctx context.Context, userID string, jobID int64) (bool, error) {
	args := m.Called(ctx, userID, jobID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSavedJobRepo) FetchJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	args := m.Called(ctx, userID)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(toEmail string, data email.ResetEmailData) error {
	return m.Called(toEmail, data).Error(0)
}
func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}
