package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"designhire-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const userColumns = `id, name, user_name, email, password_hash, user_type, bio, skills,
	resume_url, profile_pic_url, company_name, company_website, company_location, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, user_name, email, password_hash, user_type, bio, skills,
			resume_url, profile_pic_url, company_name, company_website, company_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.UserName, user.Email, user.PasswordHash, user.UserType,
		user.Bio, pq.Array(user.Skills), user.ResumeURL, user.ProfilePicURL,
		user.CompanyName, user.CompanyWebsite, user.CompanyLocation,
		user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepo) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return r.getBy(ctx, "user_name", strings.ToLower(userName))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", strings.ToLower(email))
}

func (r *userRepo) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	var u domain.User
	err := r.db.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Name, &u.UserName, &u.Email, &u.PasswordHash, &u.UserType, &u.Bio,
		pq.Array(&u.Skills), &u.ResumeURL, &u.ProfilePicURL,
		&u.CompanyName, &u.CompanyWebsite, &u.CompanyLocation,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies a field-level patch. Only non-nil fields make
// it into the SET clause; the caller has already scoped the patch to
// the user's role.
func (r *userRepo) UpdateProfile(ctx context.Context, id string, upd *domain.ProfileUpdate) (*domain.User, error) {
	sets := []string{"updated_at = $2"}
	args := []interface{}{id, time.Now()}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.UserName != nil {
		add("user_name", strings.ToLower(*upd.UserName))
	}
	if upd.Bio != nil {
		add("bio", *upd.Bio)
	}
	if upd.Skills != nil {
		add("skills", pq.Array(upd.Skills))
	}
	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.CompanyWebsite != nil {
		add("company_website", *upd.CompanyWebsite)
	}
	if upd.CompanyLocation != nil {
		add("company_location", *upd.CompanyLocation)
	}
	if upd.ProfilePicURL != nil {
		add("profile_pic_url", *upd.ProfilePicURL)
	}
	if upd.ResumeURL != nil {
		add("resume_url", *upd.ResumeURL)
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), userColumns)

	var u domain.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.UserName, &u.Email, &u.PasswordHash, &u.UserType, &u.Bio,
		pq.Array(&u.Skills), &u.ResumeURL, &u.ProfilePicURL,
		&u.CompanyName, &u.CompanyWebsite, &u.CompanyLocation,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
