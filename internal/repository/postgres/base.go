package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carebridge/portal-api/pkg/metrics"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// getRow runs a single-row lookup and maps the no-rows case to (found=false,
// err=nil). Absence is a typed result in this layer, never an error.
func (r *BaseRepository) getRow(ctx context.Context, table, op string, dest interface{}, query string, args ...interface{}) (bool, error) {
	start := time.Now()
	err := r.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		r.observe(table, op, start, nil)
		return false, nil
	}
	r.observe(table, op, start, err)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *BaseRepository) selectRows(ctx context.Context, table, op string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := r.db.SelectContext(ctx, dest, query, args...)
	r.observe(table, op, start, err)
	return err
}

func (r *BaseRepository) exec(ctx context.Context, table, op, query string, args ...interface{}) error {
	start := time.Now()
	_, err := r.db.ExecContext(ctx, query, args...)
	r.observe(table, op, start, err)
	return err
}

func (r *BaseRepository) observe(table, op string, start time.Time, err error) {
	r.metrics.ObserveStore(table, op, time.Since(start).Seconds(), err)
}
