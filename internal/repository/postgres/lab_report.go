package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
)

type labReportRepository struct {
	BaseRepository
}

func NewLabReportRepository(base BaseRepository) repository.LabReportRepository {
	return &labReportRepository{base}
}

func (r *labReportRepository) ListByUser(ctx context.Context, userID string) ([]*model.LabReportRow, error) {
	query := `
		SELECT id, user_id, name, date, status, fileurl, testresults, created_at
		FROM health_lab_reports WHERE user_id = $1 ORDER BY date
	`
	var rows []*model.LabReportRow
	if err := r.selectRows(ctx, "health_lab_reports", "select", &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list lab reports: %w", err)
	}
	return rows, nil
}

func (r *labReportRepository) Get(ctx context.Context, userID string, id uuid.UUID) (*model.LabReportRow, error) {
	query := `
		SELECT id, user_id, name, date, status, fileurl, testresults, created_at
		FROM health_lab_reports WHERE id = $1 AND user_id = $2
	`
	var row model.LabReportRow
	found, err := r.getRow(ctx, "health_lab_reports", "select", &row, query, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lab report: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

func (r *labReportRepository) Insert(ctx context.Context, row *model.LabReportRow) error {
	query := `
		INSERT INTO health_lab_reports (id, user_id, name, date, status, fileurl, testresults, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if err := r.exec(ctx, "health_lab_reports", "insert", query,
		row.ID, row.UserID, row.Name, row.Date, row.Status, row.FileURL, row.TestResults, row.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert lab report: %w", err)
	}
	return nil
}

func (r *labReportRepository) Update(ctx context.Context, row *model.LabReportRow) error {
	query := `
		UPDATE health_lab_reports
		SET name = $1, date = $2, status = $3, fileurl = $4, testresults = $5
		WHERE id = $6 AND user_id = $7
	`
	if err := r.exec(ctx, "health_lab_reports", "update", query,
		row.Name, row.Date, row.Status, row.FileURL, row.TestResults, row.ID, row.UserID,
	); err != nil {
		return fmt.Errorf("failed to update lab report: %w", err)
	}
	return nil
}

func (r *labReportRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM health_lab_reports WHERE id = $1 AND user_id = $2`
	if err := r.exec(ctx, "health_lab_reports", "delete", query, id, userID); err != nil {
		return fmt.Errorf("failed to delete lab report: %w", err)
	}
	return nil
}
