package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"designhire-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, applicant_id, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	now := time.Now()
	app.AppliedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.JobID, app.ApplicantID, app.Status, app.AppliedAt, app.UpdatedAt,
	).Scan(&app.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return domain.ErrDuplicate
	}
	return err
}

func (r *applicationRepo) GetByJobAndApplicant(ctx context.Context, jobID int64, applicantID string) (*domain.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, status, applied_at, updated_at
		FROM applications
		WHERE job_id = $1 AND applicant_id = $2`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, jobID, applicantID).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.AppliedAt, &app.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByJobID retrieves a job's applicant entries with joined applicant data
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.applied_at, a.updated_at,
			u.name, u.email, u.skills, u.profile_pic_url, u.resume_url
		FROM applications a
		LEFT JOIN users u ON a.applicant_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.AppliedAt, &app.UpdatedAt,
			&app.ApplicantName, &app.ApplicantEmail, pq.Array(&app.ApplicantSkills),
			&app.ApplicantPhoto, &app.ApplicantResume,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, nil
}

// GetByPosterID flattens applicant entries across every job the
// recruiter posted, newest application first.
func (r *applicationRepo) GetByPosterID(ctx context.Context, posterID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.applied_at, a.updated_at,
			u.name, u.email, u.skills, u.profile_pic_url, u.resume_url,
			j.title
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON a.applicant_id = u.id
		WHERE j.posted_by = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, posterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.AppliedAt, &app.UpdatedAt,
			&app.ApplicantName, &app.ApplicantEmail, pq.Array(&app.ApplicantSkills),
			&app.ApplicantPhoto, &app.ApplicantResume, &app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID int64, applicantID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, applicantID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, jobID int64, applicantID string, status string) error {
	query := `UPDATE applications SET status = $3, updated_at = $4 WHERE job_id = $1 AND applicant_id = $2`
	result, err := r.db.Exec(ctx, query, jobID, applicantID, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FetchAppliedJobs joins the viewer's applications with the jobs they
// point at, carrying the per-application status and timestamp.
func (r *applicationRepo) FetchAppliedJobs(ctx context.Context, applicantID string) ([]domain.AppliedJob, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name, u.company_name, a.status, a.applied_at
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON j.posted_by = u.id
		WHERE a.applicant_id = $1
		ORDER BY j.posted_at DESC`, jobColumns)

	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.AppliedJob
	for rows.Next() {
		var aj domain.AppliedJob
		if err := rows.Scan(
			&aj.ID, &aj.Title, &aj.Description, pq.Array(&aj.SkillsRequired), &aj.EmploymentType,
			&aj.Location, &aj.Salary, &aj.Experience, &aj.Education, &aj.Status, &aj.PostedBy,
			&aj.Views, &aj.Clicks, &aj.PostedAt, &aj.UpdatedAt,
			&aj.PosterName, &aj.PosterCompany, &aj.ApplicationStatus, &aj.AppliedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, aj)
	}
	return jobs, nil
}

func (r *applicationRepo) Delete(ctx context.Context, jobID int64, applicantID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE job_id = $1 AND applicant_id = $2`, jobID, applicantID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
