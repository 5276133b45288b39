package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
)

type profileRepository struct {
	BaseRepository
}

func NewProfileRepository(base BaseRepository) repository.ProfileRepository {
	return &profileRepository{base}
}

func (r *profileRepository) Get(ctx context.Context, id string) (*model.ProfileRow, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, has_completed_profile, created_at, updated_at
		FROM profiles WHERE id = $1
	`
	var row model.ProfileRow
	found, err := r.getRow(ctx, "profiles", "select", &row, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

func (r *profileRepository) Insert(ctx context.Context, row *model.ProfileRow) error {
	query := `
		INSERT INTO profiles (id, first_name, last_name, email, phone, has_completed_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if err := r.exec(ctx, "profiles", "insert", query,
		row.ID,
		row.FirstName,
		row.LastName,
		row.Email,
		row.Phone,
		row.HasCompletedProfile,
		row.CreatedAt,
		row.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, row *model.ProfileRow) error {
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, email = $3, phone = $4, has_completed_profile = $5, updated_at = $6
		WHERE id = $7
	`
	if err := r.exec(ctx, "profiles", "update", query,
		row.FirstName,
		row.LastName,
		row.Email,
		row.Phone,
		row.HasCompletedProfile,
		time.Now(),
		row.ID,
	); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
