package medication

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

type fakeBootstrapper struct {
	calls int
	ok    bool
}

func (f *fakeBootstrapper) Ensure(ctx context.Context, userID string) (bool, error) {
	f.calls++
	return f.ok, nil
}

type fakeMedicationRepo struct {
	rows map[uuid.UUID]*model.MedicationRow
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{rows: make(map[uuid.UUID]*model.MedicationRow)}
}

func (f *fakeMedicationRepo) ListByUser(ctx context.Context, userID string) ([]*model.MedicationRow, error) {
	var rows []*model.MedicationRow
	for _, row := range f.rows {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeMedicationRepo) Insert(ctx context.Context, row *model.MedicationRow) error {
	f.rows[row.ID] = row
	return nil
}

func (f *fakeMedicationRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if row, ok := f.rows[id]; ok && row.UserID == userID {
		delete(f.rows, id)
	}
	return nil
}

func TestAddBootstrapsProfileFirst(t *testing.T) {
	repo := newFakeMedicationRepo()
	boot := &fakeBootstrapper{ok: true}
	svc := NewService(repo, boot, notifier.Nop{})

	med, err := svc.Add(context.Background(), "user-1", model.NewMedicationRequest{
		Name:      "Metformin",
		Dosage:    "500mg",
		Frequency: "twice daily",
		StartDate: "2025-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, boot.calls)
	assert.Equal(t, "Metformin", med.Name)
	require.Contains(t, repo.rows, med.ID)
	assert.Nil(t, repo.rows[med.ID].EndDate)
}

func TestAddBootstrapFailureSkipsInsert(t *testing.T) {
	repo := newFakeMedicationRepo()
	svc := NewService(repo, &fakeBootstrapper{ok: false}, notifier.Nop{})

	_, err := svc.Add(context.Background(), "user-1", model.NewMedicationRequest{Name: "Metformin"})
	require.Error(t, err)
	assert.True(t, apperrors.IsPersistence(err))
	assert.Empty(t, repo.rows)
}

func TestListScopedToUser(t *testing.T) {
	repo := newFakeMedicationRepo()
	svc := NewService(repo, &fakeBootstrapper{ok: true}, notifier.Nop{})

	_, err := svc.Add(context.Background(), "user-1", model.NewMedicationRequest{Name: "Metformin"})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "user-2", model.NewMedicationRequest{Name: "Lisinopril"})
	require.NoError(t, err)

	meds, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Metformin", meds[0].Name)
}

func TestRemoveOnlyOwnRows(t *testing.T) {
	repo := newFakeMedicationRepo()
	svc := NewService(repo, &fakeBootstrapper{ok: true}, notifier.Nop{})

	med, err := svc.Add(context.Background(), "user-1", model.NewMedicationRequest{Name: "Metformin"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), "user-2", med.ID))
	assert.Contains(t, repo.rows, med.ID)

	require.NoError(t, svc.Remove(context.Background(), "user-1", med.ID))
	assert.NotContains(t, repo.rows, med.ID)
}
