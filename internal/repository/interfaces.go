package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/model"
)

// All repository interfaces in one file. Lookups that find no row return
// (nil, nil): absence is a typed result used to branch insert-vs-update, not
// an error. Any other failure wraps as a persistence error.
type (
	// ProfileRepository handles the account-level profiles table, keyed by
	// the user id itself.
	ProfileRepository interface {
		Get(ctx context.Context, id string) (*model.ProfileRow, error)
		Insert(ctx context.Context, row *model.ProfileRow) error
		Update(ctx context.Context, row *model.ProfileRow) error
	}

	PersonalInfoRepository interface {
		GetByUser(ctx context.Context, userID string) (*model.PersonalInfoRow, error)
		Insert(ctx context.Context, row *model.PersonalInfoRow) error
		Update(ctx context.Context, row *model.PersonalInfoRow) error
	}

	VitalsRepository interface {
		GetByUser(ctx context.Context, userID string) (*model.VitalsRow, error)
		Insert(ctx context.Context, row *model.VitalsRow) error
		Update(ctx context.Context, row *model.VitalsRow) error
	}

	LifestyleRepository interface {
		GetByUser(ctx context.Context, userID string) (*model.LifestyleRow, error)
		Insert(ctx context.Context, row *model.LifestyleRow) error
		Update(ctx context.Context, row *model.LifestyleRow) error
	}

	MedicationRepository interface {
		ListByUser(ctx context.Context, userID string) ([]*model.MedicationRow, error)
		Insert(ctx context.Context, row *model.MedicationRow) error
		Delete(ctx context.Context, userID string, id uuid.UUID) error
	}

	LabReportRepository interface {
		ListByUser(ctx context.Context, userID string) ([]*model.LabReportRow, error)
		Get(ctx context.Context, userID string, id uuid.UUID) (*model.LabReportRow, error)
		Insert(ctx context.Context, row *model.LabReportRow) error
		Update(ctx context.Context, row *model.LabReportRow) error
		Delete(ctx context.Context, userID string, id uuid.UUID) error
	}

	MetricsRepository interface {
		GetByUser(ctx context.Context, userID string) (*model.MetricsRow, error)
		Insert(ctx context.Context, row *model.MetricsRow) error
		Update(ctx context.Context, row *model.MetricsRow) error
	}

	AppointmentRepository interface {
		ListByUser(ctx context.Context, patientID string) ([]*model.AppointmentRow, error)
		Get(ctx context.Context, patientID string, id uuid.UUID) (*model.AppointmentRow, error)
		Insert(ctx context.Context, row *model.AppointmentRow) error
		UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) error
	}
)
