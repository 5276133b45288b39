package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
)

type medicationRepository struct {
	BaseRepository
}

func NewMedicationRepository(base BaseRepository) repository.MedicationRepository {
	return &medicationRepository{base}
}

func (r *medicationRepository) ListByUser(ctx context.Context, userID string) ([]*model.MedicationRow, error) {
	query := `
		SELECT id, user_id, name, dosage, frequency, start_date, end_date, notes, created_at
		FROM medications WHERE user_id = $1 ORDER BY created_at
	`
	var rows []*model.MedicationRow
	if err := r.selectRows(ctx, "medications", "select", &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return rows, nil
}

func (r *medicationRepository) Insert(ctx context.Context, row *model.MedicationRow) error {
	query := `
		INSERT INTO medications (id, user_id, name, dosage, frequency, start_date, end_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if err := r.exec(ctx, "medications", "insert", query,
		row.ID, row.UserID, row.Name, row.Dosage, row.Frequency, row.StartDate, row.EndDate, row.Notes, row.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM medications WHERE id = $1 AND user_id = $2`
	if err := r.exec(ctx, "medications", "delete", query, id, userID); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}
