package healthrecord

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

// Bootstrapper guarantees the owning profile row exists before a dependent
// section is written.
type Bootstrapper interface {
	Ensure(ctx context.Context, userID string) (bool, error)
}

type HealthRecordService interface {
	GetPersonalInfo(ctx context.Context, userID string) (*model.PersonalInfo, error)
	UpdatePersonalInfo(ctx context.Context, userID string, patch model.PersonalInfoPatch) (*model.PersonalInfo, error)
	GetVitals(ctx context.Context, userID string) (*model.VitalsInfo, error)
	UpdateVitals(ctx context.Context, userID string, patch model.VitalsPatch) (*model.VitalsInfo, error)
	GetLifestyle(ctx context.Context, userID string) (*model.LifestyleInfo, error)
	UpdateLifestyle(ctx context.Context, userID string, patch model.LifestylePatch) (*model.LifestyleInfo, error)
}

type Service struct {
	personalRepo  repository.PersonalInfoRepository
	vitalsRepo    repository.VitalsRepository
	lifestyleRepo repository.LifestyleRepository
	profiles      Bootstrapper
	notifier      notifier.Notifier
}

func NewService(
	personalRepo repository.PersonalInfoRepository,
	vitalsRepo repository.VitalsRepository,
	lifestyleRepo repository.LifestyleRepository,
	profiles Bootstrapper,
	n notifier.Notifier,
) *Service {
	return &Service{
		personalRepo:  personalRepo,
		vitalsRepo:    vitalsRepo,
		lifestyleRepo: lifestyleRepo,
		profiles:      profiles,
		notifier:      n,
	}
}

func (s *Service) GetPersonalInfo(ctx context.Context, userID string) (*model.PersonalInfo, error) {
	row, err := s.personalRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("personal info lookup", err)
	}
	if row == nil {
		return &model.PersonalInfo{}, nil
	}
	return model.PersonalInfoFromRow(row), nil
}

// UpdatePersonalInfo upserts the singleton demographic section. Unsupplied
// fields keep their previous values; absent rows start from the zero record.
func (s *Service) UpdatePersonalInfo(ctx context.Context, userID string, patch model.PersonalInfoPatch) (*model.PersonalInfo, error) {
	if err := s.bootstrap(ctx, userID); err != nil {
		return nil, s.fail(ctx, userID, "personal_info", "update", err)
	}

	existing, err := s.personalRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, userID, "personal_info", "update", apperrors.Persistence("personal info lookup", err))
	}

	previous := model.PersonalInfo{}
	rowID := uuid.New()
	if existing != nil {
		previous = *model.PersonalInfoFromRow(existing)
		rowID = existing.ID
	}
	merged := model.MergePersonalInfo(patch, previous)

	if existing != nil {
		err = s.personalRepo.Update(ctx, merged.Row(rowID, userID))
	} else {
		err = s.personalRepo.Insert(ctx, merged.Row(rowID, userID))
	}
	if err != nil {
		return nil, s.fail(ctx, userID, "personal_info", "update", apperrors.Persistence("personal info upsert", err))
	}

	s.notify(ctx, userID, notifier.Success("personal_info", "update"))
	return &merged, nil
}

func (s *Service) GetVitals(ctx context.Context, userID string) (*model.VitalsInfo, error) {
	row, err := s.vitalsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("vitals lookup", err)
	}
	if row == nil {
		return &model.VitalsInfo{}, nil
	}
	return model.VitalsFromRow(row), nil
}

// UpdateVitals upserts the biometric snapshot. BMI is always recomputed from
// the merged height and weight before the row is written; a patch touching
// only one of the two derives against the other's previous value.
func (s *Service) UpdateVitals(ctx context.Context, userID string, patch model.VitalsPatch) (*model.VitalsInfo, error) {
	if err := s.bootstrap(ctx, userID); err != nil {
		return nil, s.fail(ctx, userID, "vitals", "update", err)
	}

	existing, err := s.vitalsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, userID, "vitals", "update", apperrors.Persistence("vitals lookup", err))
	}

	previous := model.VitalsInfo{}
	rowID := uuid.New()
	if existing != nil {
		previous = *model.VitalsFromRow(existing)
		rowID = existing.ID
	}
	merged := model.MergeVitals(patch, previous)

	if existing != nil {
		err = s.vitalsRepo.Update(ctx, merged.Row(rowID, userID))
	} else {
		err = s.vitalsRepo.Insert(ctx, merged.Row(rowID, userID))
	}
	if err != nil {
		return nil, s.fail(ctx, userID, "vitals", "update", apperrors.Persistence("vitals upsert", err))
	}

	s.notify(ctx, userID, notifier.Success("vitals", "update"))
	return &merged, nil
}

func (s *Service) GetLifestyle(ctx context.Context, userID string) (*model.LifestyleInfo, error) {
	row, err := s.lifestyleRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("lifestyle lookup", err)
	}
	if row == nil {
		return &model.LifestyleInfo{}, nil
	}
	return model.LifestyleFromRow(row), nil
}

func (s *Service) UpdateLifestyle(ctx context.Context, userID string, patch model.LifestylePatch) (*model.LifestyleInfo, error) {
	if err := s.bootstrap(ctx, userID); err != nil {
		return nil, s.fail(ctx, userID, "lifestyle", "update", err)
	}

	existing, err := s.lifestyleRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, userID, "lifestyle", "update", apperrors.Persistence("lifestyle lookup", err))
	}

	previous := model.LifestyleInfo{}
	rowID := uuid.New()
	if existing != nil {
		previous = *model.LifestyleFromRow(existing)
		rowID = existing.ID
	}
	merged := model.MergeLifestyle(patch, previous)

	if existing != nil {
		err = s.lifestyleRepo.Update(ctx, merged.Row(rowID, userID))
	} else {
		err = s.lifestyleRepo.Insert(ctx, merged.Row(rowID, userID))
	}
	if err != nil {
		return nil, s.fail(ctx, userID, "lifestyle", "update", apperrors.Persistence("lifestyle upsert", err))
	}

	s.notify(ctx, userID, notifier.Success("lifestyle", "update"))
	return &merged, nil
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

func (s *Service) fail(ctx context.Context, userID, resource, action string, err error) error {
	s.notify(ctx, userID, notifier.Failure(resource, action, err.Error()))
	return err
}
