package postgres

import (
	"context"
	"fmt"

	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/repository"
)

type metricsRepository struct {
	BaseRepository
}

func NewMetricsRepository(base BaseRepository) repository.MetricsRepository {
	return &metricsRepository{base}
}

func (r *metricsRepository) GetByUser(ctx context.Context, userID string) (*model.MetricsRow, error) {
	query := `
		SELECT id, user_id, metrics, updated_at
		FROM health_metrics WHERE user_id = $1 LIMIT 1
	`
	var row model.MetricsRow
	found, err := r.getRow(ctx, "health_metrics", "select", &row, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

func (r *metricsRepository) Insert(ctx context.Context, row *model.MetricsRow) error {
	query := `
		INSERT INTO health_metrics (id, user_id, metrics, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if err := r.exec(ctx, "health_metrics", "insert", query,
		row.ID, row.UserID, row.Metrics, row.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert metrics: %w", err)
	}
	return nil
}

func (r *metricsRepository) Update(ctx context.Context, row *model.MetricsRow) error {
	query := `
		UPDATE health_metrics SET metrics = $1, updated_at = $2 WHERE id = $3
	`
	if err := r.exec(ctx, "health_metrics", "update", query,
		row.Metrics, row.UpdatedAt, row.ID,
	); err != nil {
		return fmt.Errorf("failed to update metrics: %w", err)
	}
	return nil
}
