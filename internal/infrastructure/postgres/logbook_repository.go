package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

var _ repository.LogbookRepository = (*LogbookRepo)(nil)

// LogbookRepo implementación de LogbookRepository sobre PostgreSQL.
type LogbookRepo struct {
	q Querier
}

// NewLogbookRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLogbookRepository(q Querier) *LogbookRepo {
	return &LogbookRepo{q: q}
}

// Create persiste un reporte de incidente.
func (r *LogbookRepo) Create(report *entity.LogbookReport) error {
	query := `
		INSERT INTO logbook_reports (id, branch_id, customer_id, subject, description, reporter_name, photo_file, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		report.ID, report.BranchID, report.CustomerID, report.Subject, report.Description,
		report.ReporterName, report.PhotoFile, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert logbook report: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte por ID.
func (r *LogbookRepo) GetByID(id string) (*entity.LogbookReport, error) {
	query := `
		SELECT id, branch_id, customer_id, subject, description, reporter_name, photo_file, created_at
		FROM logbook_reports WHERE id = $1`
	var rep entity.LogbookReport
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rep.ID, &rep.BranchID, &rep.CustomerID, &rep.Subject, &rep.Description,
		&rep.ReporterName, &rep.PhotoFile, &rep.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get logbook report: %w", err)
	}
	return &rep, nil
}

// ListByBranch lista reportes de una sucursal, más recientes primero.
func (r *LogbookRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.LogbookReport, error) {
	query := `
		SELECT id, branch_id, customer_id, subject, description, reporter_name, photo_file, created_at
		FROM logbook_reports WHERE branch_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list logbook reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.LogbookReport
	for rows.Next() {
		var rep entity.LogbookReport
		if err := rows.Scan(&rep.ID, &rep.BranchID, &rep.CustomerID, &rep.Subject,
			&rep.Description, &rep.ReporterName, &rep.PhotoFile, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan logbook report: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
