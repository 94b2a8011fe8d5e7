package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, company_id, branch_id, customer_id, technician_id, title, notes,
	starts_at, ends_at, status, created_at, updated_at`

// JobRepo implementación de JobRepository sobre PostgreSQL.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persiste un nuevo trabajo.
func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.CompanyID, job.BranchID, job.CustomerID, job.TechnicianID,
		job.Title, job.Notes, job.StartsAt, job.EndsAt, job.Status,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	var j entity.Job
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.CompanyID, &j.BranchID, &j.CustomerID, &j.TechnicianID,
		&j.Title, &j.Notes, &j.StartsAt, &j.EndsAt, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &j, nil
}

// ListByCompany lista trabajos con filtros opcionales; campos vacíos del filtro no restringen.
func (r *JobRepo) ListByCompany(companyID string, filter repository.JobFilter, limit, offset int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE company_id = $1
			AND ($2 = '' OR branch_id = $2)
			AND ($3 = '' OR technician_id = $3)
			AND ($4 = '' OR customer_id = $4)
			AND ($5 = '' OR status = $5)
		ORDER BY starts_at DESC LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(context.Background(), query,
		companyID, filter.BranchID, filter.TechnicianID, filter.CustomerID, filter.Status,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.BranchID, &j.CustomerID, &j.TechnicianID,
			&j.Title, &j.Notes, &j.StartsAt, &j.EndsAt, &j.Status,
			&j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}

// Update actualiza un trabajo.
func (r *JobRepo) Update(job *entity.Job) error {
	query := `
		UPDATE jobs SET branch_id = $2, customer_id = $3, technician_id = $4, title = $5,
			notes = $6, starts_at = $7, ends_at = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.BranchID, job.CustomerID, job.TechnicianID, job.Title,
		job.Notes, job.StartsAt, job.EndsAt, job.Status, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete elimina un trabajo por ID.
func (r *JobRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
