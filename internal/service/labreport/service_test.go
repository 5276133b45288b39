package labreport

import (
	"context"
	"testing"

	"github.com/google/uuid"
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

type fakeLabReportRepo struct {
	rows    map[uuid.UUID]*model.LabReportRow
	deletes int
}

func newFakeLabReportRepo() *fakeLabReportRepo {
	return &fakeLabReportRepo{rows: make(map[uuid.UUID]*model.LabReportRow)}
}

func (f *fakeLabReportRepo) ListByUser(ctx context.Context, userID string) ([]*model.LabReportRow, error) {
	var rows []*model.LabReportRow
	for _, row := range f.rows {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeLabReportRepo) Get(ctx context.Context, userID string, id uuid.UUID) (*model.LabReportRow, error) {
	row := f.rows[id]
	if row == nil || row.UserID != userID {
		return nil, nil
	}
	return row, nil
}

func (f *fakeLabReportRepo) Insert(ctx context.Context, row *model.LabReportRow) error {
	f.rows[row.ID] = row
	return nil
}

func (f *fakeLabReportRepo) Update(ctx context.Context, row *model.LabReportRow) error {
	f.rows[row.ID] = row
	return nil
}

func (f *fakeLabReportRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	f.deletes++
	delete(f.rows, id)
	return nil
}

func newTestService() (*Service, *fakeLabReportRepo) {
	repo := newFakeLabReportRepo()
	return NewService(repo, &fakeBootstrapper{ok: true}, notifier.Nop{}), repo
}

func TestAddFlagsResultsAndDerivesStatus(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.Add(context.Background(), "user-1", model.NewLabReportRequest{
		Name: "Blood pressure panel",
		Date: "2025-03-01",
		TestResults: []model.LabTestResult{
			{TestName: "Systolic", Value: 130, ReferenceRange: model.ReferenceRange{Low: 90, High: 120}},
			{TestName: "Diastolic", Value: 80, ReferenceRange: model.ReferenceRange{Low: 60, High: 90}},
		},
	})
	require.NoError(t, err)

	assert.True(t, report.TestResults[0].IsAbnormal)
	assert.False(t, report.TestResults[1].IsAbnormal)
	assert.Equal(t, model.ReportStatusAbnormal, report.Status)
}

func TestAddEmptyReportIsPending(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.Add(context.Background(), "user-1", model.NewLabReportRequest{
		Name:   "Awaiting results",
		Date:   "2025-03-01",
		Status: model.ReportStatusNormal,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusPending, report.Status)
}

func TestAddBootstrapFailure(t *testing.T) {
	repo := newFakeLabReportRepo()
	svc := NewService(repo, &fakeBootstrapper{ok: false}, notifier.Nop{})

	_, err := svc.Add(context.Background(), "user-1", model.NewLabReportRequest{Name: "x", Date: "2025-03-01"})
	require.Error(t, err)
	assert.True(t, apperrors.IsPersistence(err))
	assert.Empty(t, repo.rows)
}

func TestAddResultClearsPendingStatus(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.Add(context.Background(), "user-1", model.NewLabReportRequest{
		Name: "CBC",
		Date: "2025-03-01",
	})
	require.NoError(t, err)
	require.Equal(t, model.ReportStatusPending, report.Status)

	updated, err := svc.AddResult(context.Background(), "user-1", report.ID, model.NewLabResultRequest{
		TestName:       "Hemoglobin",
		Value:          14,
		ReferenceRange: model.ReferenceRange{Low: 12, High: 17},
	})
	require.NoError(t, err)

	require.Len(t, updated.TestResults, 1)
	assert.False(t, updated.TestResults[0].IsAbnormal)
	assert.Equal(t, model.ReportStatusNormal, updated.Status)
}

func TestAddResultFlagsAbnormalValue(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.Add(context.Background(), "user-1", model.NewLabReportRequest{
		Name: "Glucose",
		Date: "2025-03-01",
	})
	require.NoError(t, err)

	updated, err := svc.AddResult(context.Background(), "user-1", report.ID, model.NewLabResultRequest{
		TestName:       "Fasting glucose",
		Value:          160,
		ReferenceRange: model.ReferenceRange{Low: 70, High: 140},
	})
	require.NoError(t, err)

	assert.True(t, updated.TestResults[0].IsAbnormal)
	assert.Equal(t, model.ReportStatusAbnormal, updated.Status)
}

func TestAddResultUnknownReport(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddResult(context.Background(), "user-1", uuid.New(), model.NewLabResultRequest{TestName: "x"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddResultScopedToOwner(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.Add(context.Background(), "user-1", model.NewLabReportRequest{Name: "CBC", Date: "2025-03-01"})
	require.NoError(t, err)

	_, err = svc.AddResult(context.Background(), "user-2", report.ID, model.NewLabResultRequest{TestName: "x"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListSortsByDateAndAbsorbsCorruptResults(t *testing.T) {
	svc, repo := newTestService()

	repo.rows[uuid.New()] = &model.LabReportRow{
		ID: uuid.New(), UserID: "user-1", Name: "later", Date: "2025-03-10",
		Status: model.ReportStatusNormal, TestResults: []byte(`{"corrupt":true}`),
	}
	repo.rows[uuid.New()] = &model.LabReportRow{
		ID: uuid.New(), UserID: "user-1", Name: "earlier", Date: "2025-03-01",
		Status: model.ReportStatusNormal, TestResults: []byte(`[{"testName":"LDL","value":95}]`),
	}

	reports, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "earlier", reports[0].Name)
	assert.Len(t, reports[0].TestResults, 1)
	assert.Equal(t, "later", reports[1].Name)
	assert.Empty(t, reports[1].TestResults)
}

func TestRemove(t *testing.T) {
	svc, repo := newTestService()

	report, err := svc.Add(context.Background(), "user-1", model.NewLabReportRequest{Name: "CBC", Date: "2025-03-01"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), "user-1", report.ID))
	assert.Equal(t, 1, repo.deletes)
	assert.Empty(t, repo.rows)
}
