package profile

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error)
	Ensure(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo     repository.ProfileRepository
	notifier notifier.Notifier
	ensured  *cache.Cache
}

func NewService(repo repository.ProfileRepository, n notifier.Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: n,
		ensured:  cache.New(15*time.Minute, time.Hour),
	}
}

// Get returns the user's profile, or a default record when none exists yet.
func (s *Service) Get(ctx context.Context, userID string) (*model.Profile, error) {
	row, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("profile lookup", err)
	}
	if row == nil {
		return &model.Profile{ID: userID}, nil
	}
	return model.ProfileFromRow(row), nil
}

// Update upserts the profile: update-in-place of the supplied fields when a
// row exists, insert otherwise. Safe to call repeatedly; the existence check
// is the idempotence mechanism. Two concurrent updates from the same user can
// still race into duplicate inserts, the store-side uniqueness this layer
// deliberately does not own.
func (s *Service) Update(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error) {
	existing, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, userID, "update", apperrors.Persistence("profile lookup", err))
	}

	previous := model.Profile{ID: userID}
	if existing != nil {
		previous = *model.ProfileFromRow(existing)
	}
	merged := model.MergeProfile(patch, previous)
	merged.UpdatedAt = time.Now()

	if existing != nil {
		err = s.repo.Update(ctx, merged.Row())
	} else {
		merged.CreatedAt = merged.UpdatedAt
		err = s.repo.Insert(ctx, merged.Row())
	}
	if err != nil {
		return nil, s.fail(ctx, userID, "update", apperrors.Persistence("profile upsert", err))
	}

	s.ensured.SetDefault(userID, struct{}{})
	s.notify(ctx, userID, notifier.Success("profile", "update"))
	return &merged, nil
}

// Ensure idempotently guarantees a profile row exists before a dependent
// write. It returns true when a profile provably exists, pre-existing or just
// created; false only when the creation attempt itself failed. Safe to call
// from sibling services in any order.
func (s *Service) Ensure(ctx context.Context, userID string) (bool, error) {
	if _, hit := s.ensured.Get(userID); hit {
		return true, nil
	}

	existing, err := s.repo.Get(ctx, userID)
	if err != nil {
		return false, apperrors.Persistence("profile lookup", err)
	}
	if existing != nil {
		s.ensured.SetDefault(userID, struct{}{})
		return true, nil
	}

	row := model.MinimalProfile(userID, time.Now()).Row()
	if err := s.repo.Insert(ctx, row); err != nil {
		return false, apperrors.Persistence("profile bootstrap", err)
	}
	s.ensured.SetDefault(userID, struct{}{})
	return true, nil
}

func (s *Service) notify(ctx context.Context, userID string, n notifier.Notification) {
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, userID, n)
	}
}

func (s *Service) fail(ctx context.Context, userID, action string, err error) error {
	s.notify(ctx, userID, notifier.Failure("profile", action, err.Error()))
	return err
}
