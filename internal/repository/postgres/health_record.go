package postgres

import (
	"context"
	"fmt"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
)

// Repositories for the singleton health-record sections. Each table holds at
// most one row per user; the services enforce that with an existence check
// before branching insert-vs-update.

type personalInfoRepository struct {
	BaseRepository
}

func NewPersonalInfoRepository(base BaseRepository) repository.PersonalInfoRepository {
	return &personalInfoRepository{base}
}

func (r *personalInfoRepository) GetByUser(ctx context.Context, userID string) (*model.PersonalInfoRow, error) {
	query := `
		SELECT id, user_id, full_name, age, gender, marital_status, children, address
		FROM health_personal_info WHERE user_id = $1 LIMIT 1
	`
	var row model.PersonalInfoRow
	found, err := r.getRow(ctx, "health_personal_info", "select", &row, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get personal info: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

func (r *personalInfoRepository) Insert(ctx context.Context, row *model.PersonalInfoRow) error {
	query := `
		INSERT INTO health_personal_info (id, user_id, full_name, age, gender, marital_status, children, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if err := r.exec(ctx, "health_personal_info", "insert", query,
		row.ID, row.UserID, row.FullName, row.Age, row.Gender, row.MaritalStatus, row.Children, row.Address,
	); err != nil {
		return fmt.Errorf("failed to insert personal info: %w", err)
	}
	return nil
}

func (r *personalInfoRepository) Update(ctx context.Context, row *model.PersonalInfoRow) error {
	query := `
		UPDATE health_personal_info
		SET full_name = $1, age = $2, gender = $3, marital_status = $4, children = $5, address = $6
		WHERE id = $7
	`
	if err := r.exec(ctx, "health_personal_info", "update", query,
		row.FullName, row.Age, row.Gender, row.MaritalStatus, row.Children, row.Address, row.ID,
	); err != nil {
		return fmt.Errorf("failed to update personal info: %w", err)
	}
	return nil
}

type vitalsRepository struct {
	BaseRepository
}

func NewVitalsRepository(base BaseRepository) repository.VitalsRepository {
	return &vitalsRepository{base}
}

func (r *vitalsRepository) GetByUser(ctx context.Context, userID string) (*model.VitalsRow, error) {
	query := `
		SELECT id, user_id, height, weight, bmi, blood_group
		FROM health_vitals WHERE user_id = $1 LIMIT 1
	`
	var row model.VitalsRow
	found, err := r.getRow(ctx, "health_vitals", "select", &row, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vitals: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

func (r *vitalsRepository) Insert(ctx context.Context, row *model.VitalsRow) error {
	query := `
		INSERT INTO health_vitals (id, user_id, height, weight, bmi, blood_group)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if err := r.exec(ctx, "health_vitals", "insert", query,
		row.ID, row.UserID, row.Height, row.Weight, row.BMI, row.BloodGroup,
	); err != nil {
		return fmt.Errorf("failed to insert vitals: %w", err)
	}
	return nil
}

func (r *vitalsRepository) Update(ctx context.Context, row *model.VitalsRow) error {
	query := `
		UPDATE health_vitals
		SET height = $1, weight = $2, bmi = $3, blood_group = $4
		WHERE id = $5
	`
	if err := r.exec(ctx, "health_vitals", "update", query,
		row.Height, row.Weight, row.BMI, row.BloodGroup, row.ID,
	); err != nil {
		return fmt.Errorf("failed to update vitals: %w", err)
	}
	return nil
}

type lifestyleRepository struct {
	BaseRepository
}

func NewLifestyleRepository(base BaseRepository) repository.LifestyleRepository {
	return &lifestyleRepository{base}
}

func (r *lifestyleRepository) GetByUser(ctx context.Context, userID string) (*model.LifestyleRow, error) {
	query := `
		SELECT id, user_id, activity_level, smoking_status, alcohol_consumption
		FROM health_lifestyle WHERE user_id = $1 LIMIT 1
	`
	var row model.LifestyleRow
	found, err := r.getRow(ctx, "health_lifestyle", "select", &row, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lifestyle: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

func (r *lifestyleRepository) Insert(ctx context.Context, row *model.LifestyleRow) error {
	query := `
		INSERT INTO health_lifestyle (id, user_id, activity_level, smoking_status, alcohol_consumption)
		VALUES ($1, $2, $3, $4, $5)
	`
	if err := r.exec(ctx, "health_lifestyle", "insert", query,
		row.ID, row.UserID, row.ActivityLevel, row.SmokingStatus, row.AlcoholConsumption,
	); err != nil {
		return fmt.Errorf("failed to insert lifestyle: %w", err)
	}
	return nil
}

func (r *lifestyleRepository) Update(ctx context.Context, row *model.LifestyleRow) error {
	query := `
		UPDATE health_lifestyle
		SET activity_level = $1, smoking_status = $2, alcohol_consumption = $3
		WHERE id = $4
	`
	if err := r.exec(ctx, "health_lifestyle", "update", query,
		row.ActivityLevel, row.SmokingStatus, row.AlcoholConsumption, row.ID,
	); err != nil {
		return fmt.Errorf("failed to update lifestyle: %w", err)
	}
	return nil
}
