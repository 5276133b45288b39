package medication

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

// Bootstrapper guarantees the owning profile row exists before a write.
type Bootstrapper interface {
	Ensure(ctx context.Context, userID string) (bool, error)
}

type MedicationService interface {
	List(ctx context.Context, userID string) ([]*model.Medication, error)
	Add(ctx context.Context, userID string, req model.NewMedicationRequest) (*model.Medication, error)
	Remove(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo     repository.MedicationRepository
	profiles Bootstrapper
	notifier notifier.Notifier
}

func NewService(repo repository.MedicationRepository, profiles Bootstrapper, n notifier.Notifier) *Service {
	return &Service{repo: repo, profiles: profiles, notifier: n}
}

func (s *Service) List(ctx context.Context, userID string) ([]*model.Medication, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("medication list", err)
	}
	medications := make([]*model.Medication, 0, len(rows))
	for _, row := range rows {
		medications = append(medications, model.MedicationFromRow(row))
	}
	return medications, nil
}

func (s *Service) Add(ctx context.Context, userID string, req model.NewMedicationRequest) (*model.Medication, error) {
	if err := s.bootstrap(ctx, userID); err != nil {
		return nil, s.fail(ctx, userID, "add", err)
	}

	medication := &model.Medication{
		ID:        uuid.New(),
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	}
	if err := s.repo.Insert(ctx, medication.Row(userID, time.Now())); err != nil {
		return nil, s.fail(ctx, userID, "add", apperrors.Persistence("medication insert", err))
	}

	s.notify(ctx, userID, notifier.Success("medication", "add"))
	return medication, nil
}

func (s *Service) Remove(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.fail(ctx, userID, "remove", apperrors.Persistence("medication delete", err))
	}
	s.notify(ctx, userID, notifier.Success("medication", "remove"))
	return nil
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
	s.notify(ctx, userID, notifier.Failure("medication", action, err.Error()))
	return err
}
