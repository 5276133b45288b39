package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicationRow mirrors the medications table. Dates are stored as ISO date
// strings, matching the portal's original column contract.
type MedicationRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Dosage    *string   `db:"dosage"`
	Frequency *string   `db:"frequency"`
	StartDate *string   `db:"start_date"`
	EndDate   *string   `db:"end_date"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}

// Medication is a tracked drug regimen.
type Medication struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Notes     string    `json:"notes"`
}

// NewMedicationRequest is the payload for adding a medication.
type NewMedicationRequest struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	StartDate string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

func MedicationFromRow(row *MedicationRow) *Medication {
	if row == nil {
		return nil
	}
	return &Medication{
		ID:        row.ID,
		Name:      row.Name,
		Dosage:    strOrEmpty(row.Dosage),
		Frequency: strOrEmpty(row.Frequency),
		StartDate: strOrEmpty(row.StartDate),
		EndDate:   strOrEmpty(row.EndDate),
		Notes:     strOrEmpty(row.Notes),
	}
}

func (m *Medication) Row(userID string, now time.Time) *MedicationRow {
	return &MedicationRow{
		ID:        m.ID,
		UserID:    userID,
		Name:      m.Name,
		Dosage:    strOrNil(m.Dosage),
		Frequency: strOrNil(m.Frequency),
		StartDate: strOrNil(m.StartDate),
		EndDate:   strOrNil(m.EndDate),
		Notes:     strOrNil(m.Notes),
		CreatedAt: now,
	}
}
