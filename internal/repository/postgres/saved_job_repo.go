package postgres

import (
	"context"
	"fmt"
	"time"

	"designhire-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type savedJobRepo struct {
	db *pgxpool.Pool
}

func NewSavedJobRepository(db *pgxpool.Pool) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Save(ctx context.Context, userID string, jobID int64) error {
	query := `
		INSERT INTO saved_jobs (user_id, job_id, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, job_id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, userID, jobID, time.Now())
	return err
}

func (r *savedJobRepo) Remove(ctx context.Context, userID string, jobID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *savedJobRepo) Exists(ctx context.Context, userID string, jobID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, jobID).Scan(&exists)
	return exists, err
}

func (r *savedJobRepo) FetchJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name, u.company_name
		FROM saved_jobs s
		JOIN jobs j ON s.job_id = j.id
		LEFT JOIN users u ON j.posted_by = u.id
		WHERE s.user_id = $1
		ORDER BY s.saved_at DESC`, jobColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows, true)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}
