package metric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/portal-api/internal/model"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

type fakeBootstrapper struct{ ok bool }

func (f *fakeBootstrapper) Ensure(ctx context.Context, userID string) (bool, error) {
	return f.ok, nil
}

type fakeMetricsRepo struct {
	row     *model.MetricsRow
	inserts int
	updates int
}

func (f *fakeMetricsRepo) GetByUser(ctx context.Context, userID string) (*model.MetricsRow, error) {
	return f.row, nil
}

func (f *fakeMetricsRepo) Insert(ctx context.Context, row *model.MetricsRow) error {
	f.inserts++
	f.row = row
	return nil
}

func (f *fakeMetricsRepo) Update(ctx context.Context, row *model.MetricsRow) error {
	f.updates++
	f.row = row
	return nil
}

func newTestService() (*Service, *fakeMetricsRepo) {
	repo := &fakeMetricsRepo{}
	return NewService(repo, &fakeBootstrapper{ok: true}, notifier.Nop{}), repo
}

func TestGetAllReturnsDefaultsWhenAbsent(t *testing.T) {
	svc, _ := newTestService()

	metrics, err := svc.GetAll(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultMetrics(), metrics)
}

func TestGetAllAbsorbsCorruptBlob(t *testing.T) {
	svc, repo := newTestService()
	repo.row = &model.MetricsRow{UserID: "user-1", Metrics: []byte(`["not","a","map"]`)}

	metrics, err := svc.GetAll(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultMetrics(), metrics)
}

func TestGetSeriesUnknownMetric(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetSeries(context.Background(), "user-1", "bodyTemperature")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetSeriesKnownMetric(t *testing.T) {
	svc, _ := newTestService()

	data, err := svc.GetSeries(context.Background(), "user-1", model.MetricHeartRate)
	require.NoError(t, err)
	assert.Equal(t, "bpm", data.Unit)
	assert.Empty(t, data.Readings)
}

func TestAddReadingInsertsThenUpdates(t *testing.T) {
	svc, repo := newTestService()

	metrics, err := svc.AddReading(context.Background(), "user-1", model.NewReadingRequest{
		Metric: model.MetricHeartRate, Date: "2025-01-10", Value: 74,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.inserts)
	require.Len(t, metrics[model.MetricHeartRate].Readings, 1)

	metrics, err = svc.AddReading(context.Background(), "user-1", model.NewReadingRequest{
		Metric: model.MetricHeartRate, Date: "2025-01-01", Value: 70,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)

	readings := metrics[model.MetricHeartRate].Readings
	require.Len(t, readings, 2)
	assert.Equal(t, "2025-01-01", readings[0].Date)
	assert.Equal(t, "2025-01-10", readings[1].Date)
}

func TestAddReadingPersistsSortedBlob(t *testing.T) {
	svc, repo := newTestService()

	for _, date := range []string{"2025-01-10", "2025-01-01", "2025-01-05"} {
		_, err := svc.AddReading(context.Background(), "user-1", model.NewReadingRequest{
			Metric: model.MetricGlucose, Date: date, Value: 100,
		})
		require.NoError(t, err)
	}

	stored, ok := model.MetricsFromRow(repo.row)
	require.True(t, ok)
	readings := stored[model.MetricGlucose].Readings
	require.Len(t, readings, 3)
	assert.Equal(t, "2025-01-01", readings[0].Date)
	assert.Equal(t, "2025-01-05", readings[1].Date)
	assert.Equal(t, "2025-01-10", readings[2].Date)
}

func TestAddReadingBootstrapFailure(t *testing.T) {
	repo := &fakeMetricsRepo{}
	svc := NewService(repo, &fakeBootstrapper{ok: false}, notifier.Nop{})

	_, err := svc.AddReading(context.Background(), "user-1", model.NewReadingRequest{
		Metric: model.MetricWeight, Date: "2025-01-01", Value: 70,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsPersistence(err))
	assert.Equal(t, 0, repo.inserts)
}
