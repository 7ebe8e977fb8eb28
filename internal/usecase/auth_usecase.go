package usecase

import (
	"context"
	"errors"
	"strings"

	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"
	"designhire-backend/pkg/auth"
	"designhire-backend/pkg/email"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// ResetMailer delivers password-reset tokens. Satisfied by
// *email.EmailService.
type ResetMailer interface {
	SendPasswordReset(toEmail string, data email.ResetEmailData) error
	IsConfigured() bool
}

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
	mailer   ResetMailer
	validate *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager, mailer ResetMailer, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		validate: validate,
	}
}

// SignUp registers a new account. The role is fixed here and never
// changes afterwards.
func (uc *authUsecase) SignUp(ctx context.Context, input *domain.SignUpInput) (*domain.User, string, error) {
	// 1. Validate role and required fields
	if input.UserType != domain.UserTypeApplicant && input.UserType != domain.UserTypeRecruiter {
		return nil, "", apperror.BadRequest("Invalid user type. Must be applicant or recruiter.")
	}
	if input.Name == "" || input.UserName == "" || input.Email == "" || input.Password == "" {
		return nil, "", apperror.BadRequest("Please enter all the fields")
	}
	if len(input.Password) < 6 {
		return nil, "", apperror.BadRequest("Password must be at least 6 characters")
	}
	if err := uc.validate.Var(input.Email, "required,email"); err != nil {
		return nil, "", apperror.BadRequest("Please provide a valid email")
	}

	// 2. Uniqueness checks
	if _, err := uc.userRepo.GetByUserName(ctx, input.UserName); err == nil {
		return nil, "", apperror.Conflict("Username already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", apperror.Internal(err)
	}
	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", apperror.Conflict("Email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", apperror.Internal(err)
	}

	// 3. Hash password and persist
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		UserName:     strings.ToLower(strings.TrimSpace(input.UserName)),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		UserType:     input.UserType,
		Bio:          input.Bio,
		Skills:       input.Skills,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", apperror.Internal(err)
	}

	// 4. Issue session token
	token, err := uc.tokens.Generate(user.ID, user.UserType)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

// SignIn authenticates by username and password.
func (uc *authUsecase) SignIn(ctx context.Context, userName, password string) (*domain.User, string, error) {
	if userName == "" || password == "" {
		return nil, "", apperror.BadRequest("Please enter all the fields")
	}

	user, err := uc.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", apperror.NotFound("User not found")
		}
		return nil, "", apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.BadRequest("Invalid password")
	}

	token, err := uc.tokens.Generate(user.ID, user.UserType)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

// ForgotPassword issues a reset token and mails it to the account's
// address. The token is never returned over the API.
func (uc *authUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	if err := uc.validate.Var(emailAddr, "required,email"); err != nil {
		return apperror.BadRequest("Please provide a valid email")
	}

	user, err := uc.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User with this email does not exist")
		}
		return apperror.Internal(err)
	}

	token, err := uc.tokens.Generate(user.ID, user.UserType)
	if err != nil {
		return apperror.Internal(err)
	}

	if !uc.mailer.IsConfigured() {
		return apperror.Internal(errors.New("email service not configured"))
	}
	if err := uc.mailer.SendPasswordReset(user.Email, email.ResetEmailData{
		Name:       user.Name,
		ResetToken: token,
	}); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
