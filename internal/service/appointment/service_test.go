package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/portal-api/internal/email"
	"github.com/carebridge/portal-api/internal/model"
	apperrors "github.com/carebridge/portal-api/pkg/errors"
	"github.com/carebridge/portal-api/pkg/notifier"
)

type fakeBootstrapper struct {
	profile *model.Profile
}

func (f *fakeBootstrapper) Ensure(ctx context.Context, userID string) (bool, error) {
	return true, nil
}

func (f *fakeBootstrapper) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if f.profile != nil {
		return f.profile, nil
	}
	return &model.Profile{ID: userID}, nil
}

type fakeAppointmentRepo struct {
	rows map[uuid.UUID]*model.AppointmentRow
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{rows: make(map[uuid.UUID]*model.AppointmentRow)}
}

func (f *fakeAppointmentRepo) ListByUser(ctx context.Context, patientID string) ([]*model.AppointmentRow, error) {
	var rows []*model.AppointmentRow
	for _, row := range f.rows {
		if row.PatientID == patientID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeAppointmentRepo) Get(ctx context.Context, patientID string, id uuid.UUID) (*model.AppointmentRow, error) {
	row := f.rows[id]
	if row == nil || row.PatientID != patientID {
		return nil, nil
	}
	return row, nil
}

func (f *fakeAppointmentRepo) Insert(ctx context.Context, row *model.AppointmentRow) error {
	f.rows[row.ID] = row
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) error {
	row := f.rows[id]
	row.Status = status
	if notes != nil {
		row.Notes = notes
	}
	return nil
}

type recordingMailer struct {
	sent []string
}

func (r *recordingMailer) SendAppointmentConfirmation(ctx context.Context, to string, appt *model.Appointment) error {
	r.sent = append(r.sent, to)
	return nil
}

func newTestService() (*Service, *fakeAppointmentRepo) {
	repo := newFakeAppointmentRepo()
	return NewService(repo, &fakeBootstrapper{}, email.Nop{}, notifier.Nop{}), repo
}

func bookRequest() model.BookAppointmentRequest {
	return model.BookAppointmentRequest{
		ProviderType:   "doctor",
		Specialty:      "cardiology",
		DeliveryMethod: "video",
		ScheduledDate:  "2030-06-15",
		ScheduledTime:  "14:30",
	}
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	svc, repo := newTestService()

	appt, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	require.Contains(t, repo.rows, appt.ID)
	assert.Equal(t, "patient-1", repo.rows[appt.ID].PatientID)
}

func TestBookSendsConfirmationToProfileEmail(t *testing.T) {
	repo := newFakeAppointmentRepo()
	mailer := &recordingMailer{}
	boot := &fakeBootstrapper{profile: &model.Profile{ID: "patient-1", Email: "ada@example.com"}}
	svc := NewService(repo, boot, mailer, notifier.Nop{})

	_, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@example.com"}, mailer.sent)
}

func TestBookSkipsConfirmationWithoutEmail(t *testing.T) {
	repo := newFakeAppointmentRepo()
	mailer := &recordingMailer{}
	svc := NewService(repo, &fakeBootstrapper{}, mailer, notifier.Nop{})

	_, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	svc, _ := newTestService()

	appt, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(context.Background(), "patient-1", appt.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, confirmed.Status)

	completed, err := svc.UpdateStatus(context.Background(), "patient-1", appt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, _ := newTestService()

	appt, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)

	// Pending cannot jump straight to Completed.
	_, err = svc.UpdateStatus(context.Background(), "patient-1", appt.ID, model.AppointmentStatusCompleted)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCancelledAppointmentStaysCancelled(t *testing.T) {
	svc, _ := newTestService()

	appt, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), "patient-1", appt.ID, "feeling better"))

	_, err = svc.UpdateStatus(context.Background(), "patient-1", appt.ID, model.AppointmentStatusConfirmed)
	require.Error(t, err)
}

func TestCancelStoresReason(t *testing.T) {
	svc, repo := newTestService()

	appt, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), "patient-1", appt.ID, "conflict"))

	row := repo.rows[appt.ID]
	assert.Equal(t, string(model.AppointmentStatusCancelled), row.Status)
	require.NotNil(t, row.Notes)
	assert.Equal(t, "conflict", *row.Notes)
}

func TestGetScopedToPatient(t *testing.T) {
	svc, _ := newTestService()

	appt, err := svc.Book(context.Background(), "patient-1", bookRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "patient-2", appt.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpcomingPicksEarliestConfirmed(t *testing.T) {
	svc, repo := newTestService()

	later := &model.Appointment{ID: uuid.New(), ProviderType: "doctor", ScheduledDate: "2030-07-01", ScheduledTime: "09:00", Status: model.AppointmentStatusConfirmed}
	sooner := &model.Appointment{ID: uuid.New(), ProviderType: "doctor", ScheduledDate: "2030-06-20", ScheduledTime: "09:00", Status: model.AppointmentStatusConfirmed}
	pending := &model.Appointment{ID: uuid.New(), ProviderType: "doctor", ScheduledDate: "2030-06-10", ScheduledTime: "09:00", Status: model.AppointmentStatusPending}
	for _, a := range []*model.Appointment{later, sooner, pending} {
		require.NoError(t, repo.Insert(context.Background(), a.Row("patient-1", time.Now())))
	}

	upcoming, err := svc.Upcoming(context.Background(), "patient-1")
	require.NoError(t, err)
	assert.Equal(t, sooner.ID, upcoming.ID)
}

func TestUpcomingNoneQualifies(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Upcoming(context.Background(), "patient-1")
	assert.True(t, apperrors.IsNotFound(err))
}
