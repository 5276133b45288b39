package metric

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

// Bootstrapper guarantees the owning profile row exists before a write.
type Bootstrapper interface {
	Ensure(ctx context.Context, userID string) (bool, error)
}

type MetricService interface {
	GetAll(ctx context.Context, userID string) (map[string]model.MetricData, error)
	GetSeries(ctx context.Context, userID, name string) (*model.MetricData, error)
	AddReading(ctx context.Context, userID string, req model.NewReadingRequest) (map[string]model.MetricData, error)
}

// Service manages the metrics blob: every series for a user lives in one JSON
// column. Fine for a single-writer portal; a multi-writer extension would
// need to split the blob into rows first.
type Service struct {
	repo     repository.MetricsRepository
	profiles Bootstrapper
	notifier notifier.Notifier
}

func NewService(repo repository.MetricsRepository, profiles Bootstrapper, n notifier.Notifier) *Service {
	return &Service{repo: repo, profiles: profiles, notifier: n}
}

// GetAll returns the user's metric map, defaults when nothing is persisted or
// the stored blob fails its shape guard.
func (s *Service) GetAll(ctx context.Context, userID string) (map[string]model.MetricData, error) {
	row, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("metrics lookup", err)
	}
	metrics, ok := model.MetricsFromRow(row)
	if !ok {
		log.Warn().Str("user_id", userID).Msg("metrics blob failed shape guard, using defaults")
	}
	return metrics, nil
}

func (s *Service) GetSeries(ctx context.Context, userID, name string) (*model.MetricData, error) {
	metrics, err := s.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	data, ok := metrics[name]
	if !ok {
		return nil, apperrors.NotFound("metric", nil)
	}
	return &data, nil
}

// AddReading appends a reading to the named series and persists the whole
// blob, keeping every series sorted ascending by date.
func (s *Service) AddReading(ctx context.Context, userID string, req model.NewReadingRequest) (map[string]model.MetricData, error) {
	if err := s.bootstrap(ctx, userID); err != nil {
		return nil, s.fail(ctx, userID, "add_reading", err)
	}

	row, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, userID, "add_reading", apperrors.Persistence("metrics lookup", err))
	}
	metrics, ok := model.MetricsFromRow(row)
	if !ok {
		log.Warn().Str("user_id", userID).Msg("metrics blob failed shape guard, using defaults")
	}

	metrics = model.AppendReading(metrics, req.Metric, model.MetricReading{Date: req.Date, Value: req.Value})

	encoded, err := json.Marshal(metrics)
	if err != nil {
		return nil, s.fail(ctx, userID, "add_reading", apperrors.Internal(err))
	}

	if row != nil {
		row.Metrics = encoded
		row.UpdatedAt = time.Now()
		err = s.repo.Update(ctx, row)
	} else {
		err = s.repo.Insert(ctx, &model.MetricsRow{
			ID:        uuid.New(),
			UserID:    userID,
			Metrics:   encoded,
			UpdatedAt: time.Now(),
		})
	}
	if err != nil {
		return nil, s.fail(ctx, userID, "add_reading", apperrors.Persistence("metrics upsert", err))
	}

	s.notify(ctx, userID, notifier.Success("metrics", "add_reading"))
	return metrics, nil
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
	s.notify(ctx, userID, notifier.Failure("metrics", action, err.Error()))
	return err
}
