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

const jobColumns = `j.id, j.title, j.description, j.skills_required, j.employment_type, j.location,
	j.salary, j.experience, j.education, j.status, j.posted_by, j.views, j.clicks, j.posted_at, j.updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row, withPoster bool) (*domain.Job, error) {
	var j domain.Job
	dest := []interface{}{
		&j.ID, &j.Title, &j.Description, pq.Array(&j.SkillsRequired), &j.EmploymentType,
		&j.Location, &j.Salary, &j.Experience, &j.Education, &j.Status, &j.PostedBy,
		&j.Views, &j.Clicks, &j.PostedAt, &j.UpdatedAt,
	}
	if withPoster {
		dest = append(dest, &j.PosterName, &j.PosterCompany)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (title, description, skills_required, employment_type, location,
			salary, experience, education, status, posted_by, views, clicks, posted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, 0, $11, $12)
		RETURNING id`

	now := time.Now()
	job.PostedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}

	return r.db.QueryRow(ctx, query,
		job.Title, job.Description, pq.Array(job.SkillsRequired), job.EmploymentType,
		job.Location, job.Salary, job.Experience, job.Education, job.Status, job.PostedBy,
		job.PostedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name, u.company_name
		FROM jobs j
		LEFT JOIN users u ON j.posted_by = u.id
		WHERE j.id = $1`, jobColumns)

	job, err := scanJob(r.db.QueryRow(ctx, query, id), true)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// buildFilter renders the listing predicate into a WHERE clause.
// Open jobs only; the remaining conditions are attached as given.
func buildFilter(f domain.JobFilter) (string, []interface{}) {
	conds := []string{"j.status = 'open'"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, fmt.Sprintf("(j.title ILIKE %s OR j.description ILIKE %s)", p, p))
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		conds = append(conds, fmt.Sprintf("j.location ILIKE %s", arg("%"+l+"%")))
	}
	if t := strings.TrimSpace(f.EmploymentType); t != "" {
		conds = append(conds, fmt.Sprintf("j.employment_type = %s", arg(t)))
	}
	if len(f.Skills) > 0 {
		conds = append(conds, fmt.Sprintf("j.skills_required @> %s", arg(pq.Array(f.Skills))))
	}
	if f.ViewerID != "" {
		conds = append(conds, fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.applicant_id = %s)",
			arg(f.ViewerID)))
	}

	return strings.Join(conds, " AND "), args
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	where, args := buildFilter(filter)

	query := fmt.Sprintf(`
		SELECT %s, u.name, u.company_name
		FROM jobs j
		LEFT JOIN users u ON j.posted_by = u.id
		WHERE %s
		ORDER BY j.posted_at DESC
		LIMIT $%d OFFSET $%d`, jobColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows, true)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs j WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) FetchByPoster(ctx context.Context, posterID string, limit, offset int) ([]domain.Job, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM jobs j
		WHERE j.posted_by = $1
		ORDER BY j.posted_at DESC
		LIMIT $2 OFFSET $3`, jobColumns)

	rows, err := r.db.Query(ctx, query, posterID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows, false)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE posted_by = $1`, posterID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// FetchRecommended returns open jobs whose required skills overlap the
// viewer's skill set, excluding jobs the viewer already applied to.
func (r *jobRepo) FetchRecommended(ctx context.Context, viewerID string, skills []string, limit int) ([]domain.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name, u.company_name
		FROM jobs j
		LEFT JOIN users u ON j.posted_by = u.id
		WHERE j.status = 'open'
		  AND j.skills_required && $1
		  AND NOT EXISTS (SELECT 1 FROM applications a WHERE a.job_id = j.id AND a.applicant_id = $2)
		ORDER BY j.posted_at DESC
		LIMIT $3`, jobColumns)

	rows, err := r.db.Query(ctx, query, pq.Array(skills), viewerID, limit)
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

// Update applies a field-level patch; only non-nil fields are written.
func (r *jobRepo) Update(ctx context.Context, id int64, upd *domain.JobUpdate) (*domain.Job, error) {
	sets := []string{"updated_at = $2"}
	args := []interface{}{id, time.Now()}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.SkillsRequired != nil {
		add("skills_required", pq.Array(upd.SkillsRequired))
	}
	if upd.EmploymentType != nil {
		add("employment_type", *upd.EmploymentType)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Salary != nil {
		add("salary", *upd.Salary)
	}
	if upd.Experience != nil {
		add("experience", *upd.Experience)
	}
	if upd.Education != nil {
		add("education", *upd.Education)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}

	query := fmt.Sprintf(`UPDATE jobs j SET %s WHERE j.id = $1 RETURNING %s`,
		strings.Join(sets, ", "), jobColumns)

	job, err := scanJob(r.db.QueryRow(ctx, query, args...), false)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a job and its dependents in one transaction, so a
// half-applied cascade can never be observed.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM saved_jobs WHERE job_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *jobRepo) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *jobRepo) IncrementClicks(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET clicks = clicks + 1 WHERE id = $1`, id)
	return err
}
