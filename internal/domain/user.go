package domain

import (
	"context"
	"time"
)

// User roles. The role is fixed at signup and gates every
// role-specific operation.
const (
	UserTypeApplicant = "applicant"
	UserTypeRecruiter = "recruiter"
)

type User struct {
	ID           string    `json:"id"` // UUID
	Name         string    `json:"name"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserType     string    `json:"user_type"` // applicant | recruiter
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Applicant-specific fields
	Skills    []string `json:"skills"`
	ResumeURL string   `json:"resume_url"`

	// Recruiter-specific fields
	CompanyName     string `json:"company_name,omitempty"`
	CompanyWebsite  string `json:"company_website,omitempty"`
	CompanyLocation string `json:"company_location,omitempty"`

	ProfilePicURL string `json:"profile_pic_url"`
}

// PublicProfile strips everything that should not leave the server
// for a profile viewed by another user.
func (u *User) PublicProfile() *User {
	return &User{
		ID:            u.ID,
		Name:          u.Name,
		UserName:      u.UserName,
		Email:         u.Email,
		UserType:      u.UserType,
		Bio:           u.Bio,
		Skills:        u.Skills,
		ResumeURL:     u.ResumeURL,
		ProfilePicURL: u.ProfilePicURL,
	}
}

// UserProfile is the self-profile response: the user plus the job
// lists that are derived from the applications / saved_jobs / jobs
// tables rather than stored on the user row.
type UserProfile struct {
	User        *User `json:"user"`
	AppliedJobs []Job `json:"applied_jobs"`
	SavedJobs   []Job `json:"saved_jobs"`
	PostedJobs  []Job `json:"posted_jobs"`
}

// ProfileUpdate carries the field-level patch for PATCH /users/profile.
// Nil pointers mean "leave unchanged". Which fields are honored depends
// on the user's role.
type ProfileUpdate struct {
	Name            *string
	UserName        *string
	Bio             *string
	Skills          []string // applicant only
	CompanyName     *string  // recruiter only
	CompanyWebsite  *string  // recruiter only
	CompanyLocation *string  // recruiter only
	ProfilePicURL   *string
	ResumeURL       *string // applicant only
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUserName(ctx context.Context, userName string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, upd *ProfileUpdate) (*User, error)
}

type AuthUsecase interface {
	SignUp(ctx context.Context, input *SignUpInput) (*User, string, error)
	SignIn(ctx context.Context, userName, password string) (*User, string, error)
	ForgotPassword(ctx context.Context, email string) error
}

// SignUpInput is the validated signup payload.
type SignUpInput struct {
	Name     string
	UserName string
	Email    string
	Password string
	UserType string
	Bio      string
	Skills   []string
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	GetPublicProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, upd *ProfileUpdate) (*User, error)

	SaveJob(ctx context.Context, userID string, jobID int64) error
	UnsaveJob(ctx context.Context, userID string, jobID int64) error
	GetSavedJobs(ctx context.Context, userID string) ([]Job, error)
	GetAppliedJobs(ctx context.Context, userID string) ([]AppliedJob, error)
}
