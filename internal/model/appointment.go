package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "Pending"
	AppointmentStatusConfirmed   AppointmentStatus = "Confirmed"
	AppointmentStatusCancelled   AppointmentStatus = "Cancelled"
	AppointmentStatusCompleted   AppointmentStatus = "Completed"
	AppointmentStatusNoShow      AppointmentStatus = "No-Show"
	AppointmentStatusRescheduled AppointmentStatus = "Rescheduled"
)

// allowedTransitions encodes the one-way status machine. Cancelled, Completed
// and No-Show are terminal; a cancelled appointment is never resurrected.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:     {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed:   {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow, AppointmentStatusRescheduled},
	AppointmentStatusRescheduled: {AppointmentStatusConfirmed, AppointmentStatusCancelled},
}

// CanTransition reports whether the status machine permits from → to.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// AppointmentRow mirrors the appointments table.
type AppointmentRow struct {
	ID               uuid.UUID `db:"id"`
	PatientID        string    `db:"patient_id"`
	ProviderType     string    `db:"provider_type"`
	Specialty        *string   `db:"specialty"`
	ConsultationType *string   `db:"consultation_type"`
	DeliveryMethod   *string   `db:"delivery_method"`
	ScheduledDate    string    `db:"scheduled_date"`
	ScheduledTime    string    `db:"scheduled_time"`
	Status           string    `db:"status"`
	Notes            *string   `db:"notes"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Appointment is a booked consultation.
type Appointment struct {
	ID               uuid.UUID         `json:"id"`
	ProviderType     string            `json:"providerType"`
	Specialty        string            `json:"specialty"`
	ConsultationType string            `json:"consultationType"`
	DeliveryMethod   string            `json:"deliveryMethod"`
	ScheduledDate    string            `json:"scheduledDate"`
	ScheduledTime    string            `json:"scheduledTime"`
	Status           AppointmentStatus `json:"status"`
	Notes            string            `json:"notes"`
}

// BookAppointmentRequest is the payload from the booking wizard.
type BookAppointmentRequest struct {
	ProviderType     string `json:"providerType" binding:"required"`
	Specialty        string `json:"specialty"`
	ConsultationType string `json:"consultationType"`
	DeliveryMethod   string `json:"deliveryMethod" binding:"omitempty,oneof=video in-person phone"`
	ScheduledDate    string `json:"scheduledDate" binding:"required,datetime=2006-01-02"`
	ScheduledTime    string `json:"scheduledTime" binding:"required,datetime=15:04"`
	Notes            string `json:"notes" binding:"max=1000"`
}

// UpdateAppointmentStatusRequest carries a requested status transition.
type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=Pending Confirmed Cancelled Completed No-Show Rescheduled"`
}

func AppointmentFromRow(row *AppointmentRow) *Appointment {
	if row == nil {
		return nil
	}
	return &Appointment{
		ID:               row.ID,
		ProviderType:     row.ProviderType,
		Specialty:        strOrEmpty(row.Specialty),
		ConsultationType: strOrEmpty(row.ConsultationType),
		DeliveryMethod:   strOrEmpty(row.DeliveryMethod),
		ScheduledDate:    row.ScheduledDate,
		ScheduledTime:    row.ScheduledTime,
		Status:           AppointmentStatus(row.Status),
		Notes:            strOrEmpty(row.Notes),
	}
}

func (a *Appointment) Row(patientID string, now time.Time) *AppointmentRow {
	return &AppointmentRow{
		ID:               a.ID,
		PatientID:        patientID,
		ProviderType:     a.ProviderType,
		Specialty:        strOrNil(a.Specialty),
		ConsultationType: strOrNil(a.ConsultationType),
		DeliveryMethod:   strOrNil(a.DeliveryMethod),
		ScheduledDate:    a.ScheduledDate,
		ScheduledTime:    a.ScheduledTime,
		Status:           string(a.Status),
		Notes:            strOrNil(a.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// StartTime combines the scheduled date and time. Unparseable rows return the
// zero time, which sorts them out of upcoming consideration.
func (a *Appointment) StartTime() time.Time {
	t, err := time.Parse(DateLayout+" "+TimeLayout, a.ScheduledDate+" "+a.ScheduledTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UpcomingAppointment picks the earliest Confirmed appointment still in the
// future, or nil when none qualifies.
func UpcomingAppointment(appointments []*Appointment, now time.Time) *Appointment {
	var upcoming *Appointment
	for _, appt := range appointments {
		if appt.Status != AppointmentStatusConfirmed {
			continue
		}
		start := appt.StartTime()
		if start.IsZero() || !start.After(now) {
			continue
		}
		if upcoming == nil || start.Before(upcoming.StartTime()) {
			upcoming = appt
		}
	}
	return upcoming
}
