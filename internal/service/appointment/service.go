package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/portal-api/internal/email"
	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

// Bootstrapper guarantees the owning profile row exists before a write. Book
// also uses the profile's email for the confirmation message.
type Bootstrapper interface {
	Ensure(ctx context.Context, userID string) (bool, error)
	Get(ctx context.Context, userID string) (*model.Profile, error)
}

type AppointmentService interface {
	List(ctx context.Context, patientID string) ([]*model.Appointment, error)
	Get(ctx context.Context, patientID string, id uuid.UUID) (*model.Appointment, error)
	Book(ctx context.Context, patientID string, req model.BookAppointmentRequest) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, patientID string, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error)
	Cancel(ctx context.Context, patientID string, id uuid.UUID, reason string) error
	Upcoming(ctx context.Context, patientID string) (*model.Appointment, error)
}

type Service struct {
	repo     repository.AppointmentRepository
	profiles Bootstrapper
	mailer   email.Service
	notifier notifier.Notifier
}

func NewService(repo repository.AppointmentRepository, profiles Bootstrapper, mailer email.Service, n notifier.Notifier) *Service {
	return &Service{repo: repo, profiles: profiles, mailer: mailer, notifier: n}
}

func (s *Service) List(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	rows, err := s.repo.ListByUser(ctx, patientID)
	if err != nil {
		return nil, apperrors.Persistence("appointment list", err)
	}
	appointments := make([]*model.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, model.AppointmentFromRow(row))
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, patientID string, id uuid.UUID) (*model.Appointment, error) {
	row, err := s.repo.Get(ctx, patientID, id)
	if err != nil {
		return nil, apperrors.Persistence("appointment lookup", err)
	}
	if row == nil {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return model.AppointmentFromRow(row), nil
}

// Book creates a Pending appointment from the wizard payload and sends a
// best-effort confirmation email; a mail failure never fails the booking.
func (s *Service) Book(ctx context.Context, patientID string, req model.BookAppointmentRequest) (*model.Appointment, error) {
	if err := s.bootstrap(ctx, patientID); err != nil {
		return nil, s.fail(ctx, patientID, "book", err)
	}

	appointment := &model.Appointment{
		ID:               uuid.New(),
		ProviderType:     req.ProviderType,
		Specialty:        req.Specialty,
		ConsultationType: req.ConsultationType,
		DeliveryMethod:   req.DeliveryMethod,
		ScheduledDate:    req.ScheduledDate,
		ScheduledTime:    req.ScheduledTime,
		Status:           model.AppointmentStatusPending,
		Notes:            req.Notes,
	}
	if err := s.repo.Insert(ctx, appointment.Row(patientID, time.Now())); err != nil {
		return nil, s.fail(ctx, patientID, "book", apperrors.Persistence("appointment insert", err))
	}

	s.sendConfirmation(ctx, patientID, appointment)
	s.notify(ctx, patientID, notifier.Success("appointment", "book"))
	return appointment, nil
}

// UpdateStatus applies a one-way status transition. Terminal states are never
// left; in particular a cancelled appointment is not resurrected.
func (s *Service) UpdateStatus(ctx context.Context, patientID string, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	row, err := s.repo.Get(ctx, patientID, id)
	if err != nil {
		return nil, s.fail(ctx, patientID, "update_status", apperrors.Persistence("appointment lookup", err))
	}
	if row == nil {
		return nil, s.fail(ctx, patientID, "update_status", apperrors.NotFound("appointment", nil))
	}

	current := model.AppointmentStatus(row.Status)
	if !current.CanTransition(status) {
		return nil, s.fail(ctx, patientID, "update_status",
			apperrors.BadRequest(fmt.Sprintf("cannot change appointment from %s to %s", current, status), nil))
	}

	if err := s.repo.UpdateStatus(ctx, id, string(status), nil); err != nil {
		return nil, s.fail(ctx, patientID, "update_status", apperrors.Persistence("appointment update", err))
	}

	updated := model.AppointmentFromRow(row)
	updated.Status = status
	s.notify(ctx, patientID, notifier.Success("appointment", "update_status"))
	return updated, nil
}

func (s *Service) Cancel(ctx context.Context, patientID string, id uuid.UUID, reason string) error {
	row, err := s.repo.Get(ctx, patientID, id)
	if err != nil {
		return s.fail(ctx, patientID, "cancel", apperrors.Persistence("appointment lookup", err))
	}
	if row == nil {
		return s.fail(ctx, patientID, "cancel", apperrors.NotFound("appointment", nil))
	}

	current := model.AppointmentStatus(row.Status)
	if !current.CanTransition(model.AppointmentStatusCancelled) {
		return s.fail(ctx, patientID, "cancel",
			apperrors.BadRequest(fmt.Sprintf("cannot cancel a %s appointment", current), nil))
	}

	var notes *string
	if reason != "" {
		notes = &reason
	}
	if err := s.repo.UpdateStatus(ctx, id, string(model.AppointmentStatusCancelled), notes); err != nil {
		return s.fail(ctx, patientID, "cancel", apperrors.Persistence("appointment update", err))
	}

	s.notify(ctx, patientID, notifier.Success("appointment", "cancel"))
	return nil
}

// Upcoming returns the earliest Confirmed appointment still in the future, or
// a not-found error when none qualifies.
func (s *Service) Upcoming(ctx context.Context, patientID string) (*model.Appointment, error) {
	appointments, err := s.List(ctx, patientID)
	if err != nil {
		return nil, err
	}
	upcoming := model.UpcomingAppointment(appointments, time.Now())
	if upcoming == nil {
		return nil, apperrors.NotFound("upcoming appointment", nil)
	}
	return upcoming, nil
}

func (s *Service) sendConfirmation(ctx context.Context, patientID string, appt *model.Appointment) {
	if s.mailer == nil {
		return
	}
	profile, err := s.profiles.Get(ctx, patientID)
	if err != nil || profile.Email == "" {
		log.Debug().Str("patient_id", patientID).Msg("no email on profile, skipping confirmation")
		return
	}
	if err := s.mailer.SendAppointmentConfirmation(ctx, profile.Email, appt); err != nil {
		log.Warn().Err(err).Str("patient_id", patientID).Msg("confirmation email failed")
	}
}

func (s *Service) bootstrap(ctx context.Context, userID string) error {
	ok, err := s.profiles.Ensure(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Persistence("profile bootstrap", errors.New("profile row could not be created"))
	}
	return nil
}

func (s *Service) notify(ctx context.Context, userID string, n notifier.Notification) {
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, userID, n)
	}
}

func (s *Service) fail(ctx context.Context, userID, action string, err error) error {
	s.notify(ctx, userID, notifier.Failure("appointment", action, err.Error()))
	return err
}
