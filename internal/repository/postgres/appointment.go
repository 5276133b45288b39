package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) ListByUser(ctx context.Context, patientID string) ([]*model.AppointmentRow, error) {
	query := `
		SELECT id, patient_id, provider_type, specialty, consultation_type, delivery_method,
		       scheduled_date, scheduled_time, status, notes, created_at, updated_at
		FROM appointments WHERE patient_id = $1
		ORDER BY scheduled_date, scheduled_time
	`
	var rows []*model.AppointmentRow
	if err := r.selectRows(ctx, "appointments", "select", &rows, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return rows, nil
}

func (r *appointmentRepository) Get(ctx context.Context, patientID string, id uuid.UUID) (*model.AppointmentRow, error) {
	query := `
		SELECT id, patient_id, provider_type, specialty, consultation_type, delivery_method,
		       scheduled_date, scheduled_time, status, notes, created_at, updated_at
		FROM appointments WHERE id = $1 AND patient_id = $2
	`
	var row model.AppointmentRow
	found, err := r.getRow(ctx, "appointments", "select", &row, query, id, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

func (r *appointmentRepository) Insert(ctx context.Context, row *model.AppointmentRow) error {
	query := `
		INSERT INTO appointments (id, patient_id, provider_type, specialty, consultation_type,
		                          delivery_method, scheduled_date, scheduled_time, status, notes,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if err := r.exec(ctx, "appointments", "insert", query,
		row.ID, row.PatientID, row.ProviderType, row.Specialty, row.ConsultationType,
		row.DeliveryMethod, row.ScheduledDate, row.ScheduledTime, row.Status, row.Notes,
		row.CreatedAt, row.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) error {
	query := `
		UPDATE appointments
		SET status = $1, notes = COALESCE($2, notes), updated_at = $3
		WHERE id = $4
	`
	if err := r.exec(ctx, "appointments", "update", query, status, notes, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}
