package plans

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	planRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
	"github.com/m04kA/TRV-PlanService/pkg/ptr"
)

type fakePlanRepo struct {
	plan    *domain.Plan
	getErr  error
	created *domain.Plan

	cancelCalled   bool
	cancelComment  string
	cancelByType   domain.CanceledByType
	cancelByID     int64
	cancelAt       time.Time
	cancelErr      error
	completeCalled bool
	completeAt     time.Time
	completeErr    error
}

func (f *fakePlanRepo) Create(ctx context.Context, p *domain.Plan) (*domain.Plan, error) {
	f.created = p
	out := *p
	out.ID = 42
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	return &out, nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.plan, nil
}

func (f *fakePlanRepo) GetBySpecialistWithFilter(ctx context.Context, filter domain.SpecialistPlansFilter) ([]*domain.Plan, error) {
	return []*domain.Plan{f.plan}, nil
}

func (f *fakePlanRepo) UpdateStep(ctx context.Context, id int64, upd planRepo.StepUpdate) error {
	return nil
}

func (f *fakePlanRepo) CancelAppointment(ctx context.Context, id int64, comment string, byType domain.CanceledByType, byID int64, canceledAt time.Time) error {
	f.cancelCalled = true
	f.cancelComment = comment
	f.cancelByType = byType
	f.cancelByID = byID
	f.cancelAt = canceledAt
	return f.cancelErr
}

func (f *fakePlanRepo) CompleteAppointment(ctx context.Context, id int64, comment string, completedAt time.Time) error {
	f.completeCalled = true
	f.completeAt = completedAt
	return f.completeErr
}

type fakeCalendarClient struct {
	deleteCalled  bool
	deletedEvent  string
	deleteErr     error
	deleteCallers []int64
}

func (f *fakeCalendarClient) DeleteEvent(ctx context.Context, specialistID int64, eventID string) error {
	f.deleteCalled = true
	f.deletedEvent = eventID
	f.deleteCallers = append(f.deleteCallers, specialistID)
	return f.deleteErr
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC)

func activePlan() *domain.Plan {
	return &domain.Plan{
		ID:                    42,
		TravelerName:          "Ivan",
		TravelerEmail:         "ivan@example.com",
		SpecialistID:          ptr.Ptr(int64(7)),
		Status:                domain.PlanStatusInProgress,
		AppointmentStatus:     domain.AppointmentStatusActive,
		PaymentStatus:         domain.PaymentStatusPaid,
		AppointmentStart:      ptr.Ptr(time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)),
		AppointmentEnd:        ptr.Ptr(time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)),
		GoogleCalendarEventID: ptr.Ptr("evt_1"),
	}
}

func newTestService(repo *fakePlanRepo, calendar *fakeCalendarClient) *Service {
	return NewService(repo, calendar, &fakeTimeProvider{now: testNow}, nopLogger{})
}

func TestCreate(t *testing.T) {
	repo := &fakePlanRepo{}
	svc := newTestService(repo, &fakeCalendarClient{})

	resp, err := svc.Create(context.Background(), &models.CreatePlanRequest{
		TravelerName:  "  Ivan  ",
		TravelerEmail: "ivan@example.com",
	})
	require.NoError(t, err)

	// Обе оси статусов стартуют с draft, оплата — с pending
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Ivan", resp.TravelerName)
	assert.Equal(t, string(domain.PlanStatusDraft), resp.Status)
	assert.Equal(t, string(domain.AppointmentStatusDraft), resp.AppointmentStatus)
	assert.Equal(t, string(domain.PaymentStatusPending), resp.PaymentStatus)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(&fakePlanRepo{}, &fakeCalendarClient{})

	tests := []struct {
		name string
		req  *models.CreatePlanRequest
	}{
		{name: "empty name", req: &models.CreatePlanRequest{TravelerName: "  ", TravelerEmail: "a@b.c"}},
		{name: "name too long", req: &models.CreatePlanRequest{TravelerName: strings.Repeat("x", 201), TravelerEmail: "a@b.c"}},
		{name: "empty email", req: &models.CreatePlanRequest{TravelerName: "Ivan", TravelerEmail: ""}},
		{name: "email without at", req: &models.CreatePlanRequest{TravelerName: "Ivan", TravelerEmail: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_ForeignPlanIndistinguishableFromMissing(t *testing.T) {
	repo := &fakePlanRepo{plan: activePlan()}
	svc := newTestService(repo, &fakeCalendarClient{})

	// Свой план возвращается
	resp, err := svc.GetByID(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)

	// Чужой план — 404, как и несуществующий
	_, err = svc.GetByID(context.Background(), 42, 99)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	repo.getErr = planRepo.ErrPlanNotFound
	_, err = svc.GetByID(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestCancel(t *testing.T) {
	repo := &fakePlanRepo{plan: activePlan()}
	calendar := &fakeCalendarClient{}
	svc := newTestService(repo, calendar)

	err := svc.Cancel(context.Background(), 42, &models.CancelPlanRequest{
		SpecialistID: 7,
		Comment:      "семейные обстоятельства",
	})
	require.NoError(t, err)

	// Событие календаря удалено, инициатор отмены зафиксирован
	assert.True(t, calendar.deleteCalled)
	assert.Equal(t, "evt_1", calendar.deletedEvent)
	require.True(t, repo.cancelCalled)
	assert.Equal(t, domain.CanceledBySpecialist, repo.cancelByType)
	assert.Equal(t, int64(7), repo.cancelByID)
	assert.Equal(t, testNow, repo.cancelAt)
	assert.Equal(t, "семейные обстоятельства", repo.cancelComment)
}

func TestCancel_CalendarFailureDoesNotBlock(t *testing.T) {
	repo := &fakePlanRepo{plan: activePlan()}
	calendar := &fakeCalendarClient{deleteErr: errors.New("calendar down")}
	svc := newTestService(repo, calendar)

	err := svc.Cancel(context.Background(), 42, &models.CancelPlanRequest{SpecialistID: 7})
	require.NoError(t, err)
	assert.True(t, repo.cancelCalled)
}

func TestCancel_Guards(t *testing.T) {
	t.Run("foreign plan", func(t *testing.T) {
		repo := &fakePlanRepo{plan: activePlan()}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Cancel(context.Background(), 42, &models.CancelPlanRequest{SpecialistID: 99})
		assert.ErrorIs(t, err, ErrPlanNotFound)
		assert.False(t, repo.cancelCalled)
	})

	t.Run("not active", func(t *testing.T) {
		for _, status := range []domain.AppointmentStatus{
			domain.AppointmentStatusDraft,
			domain.AppointmentStatusCancelled,
			domain.AppointmentStatusCompleted,
		} {
			p := activePlan()
			p.AppointmentStatus = status
			repo := &fakePlanRepo{plan: p}
			calendar := &fakeCalendarClient{}
			svc := newTestService(repo, calendar)

			err := svc.Cancel(context.Background(), 42, &models.CancelPlanRequest{SpecialistID: 7})
			assert.ErrorIs(t, err, ErrNotActive, "status %s", status)
			assert.False(t, repo.cancelCalled)
			assert.False(t, calendar.deleteCalled)
		}
	})

	t.Run("comment too long", func(t *testing.T) {
		repo := &fakePlanRepo{plan: activePlan()}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Cancel(context.Background(), 42, &models.CancelPlanRequest{
			SpecialistID: 7,
			Comment:      strings.Repeat("x", 501),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("lost race to concurrent cancel", func(t *testing.T) {
		repo := &fakePlanRepo{plan: activePlan(), cancelErr: planRepo.ErrPlanNotActive}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Cancel(context.Background(), 42, &models.CancelPlanRequest{SpecialistID: 7})
		assert.ErrorIs(t, err, ErrNotActive)
	})
}

func TestComplete(t *testing.T) {
	repo := &fakePlanRepo{plan: activePlan()}
	svc := newTestService(repo, &fakeCalendarClient{})

	err := svc.Complete(context.Background(), 42, &models.CompletePlanRequest{
		SpecialistID: 7,
		Comment:      "консультация прошла успешно",
	})
	require.NoError(t, err)
	require.True(t, repo.completeCalled)
	assert.Equal(t, testNow, repo.completeAt)
}

func TestComplete_Guards(t *testing.T) {
	t.Run("not active", func(t *testing.T) {
		p := activePlan()
		p.AppointmentStatus = domain.AppointmentStatusCancelled
		repo := &fakePlanRepo{plan: p}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Complete(context.Background(), 42, &models.CompletePlanRequest{SpecialistID: 7})
		assert.ErrorIs(t, err, ErrNotActive)
		assert.False(t, repo.completeCalled)
	})

	t.Run("no end time", func(t *testing.T) {
		p := activePlan()
		p.AppointmentEnd = nil
		repo := &fakePlanRepo{plan: p}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Complete(context.Background(), 42, &models.CompletePlanRequest{SpecialistID: 7})
		assert.ErrorIs(t, err, ErrNoEndTime)
		assert.False(t, repo.completeCalled)
	})

	t.Run("too early", func(t *testing.T) {
		p := activePlan()
		p.AppointmentEnd = ptr.Ptr(testNow.Add(time.Hour))
		repo := &fakePlanRepo{plan: p}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Complete(context.Background(), 42, &models.CompletePlanRequest{SpecialistID: 7})
		assert.ErrorIs(t, err, ErrTooEarly)
		assert.False(t, repo.completeCalled)
	})

	t.Run("exactly at end time is allowed", func(t *testing.T) {
		p := activePlan()
		p.AppointmentEnd = ptr.Ptr(testNow)
		repo := &fakePlanRepo{plan: p}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Complete(context.Background(), 42, &models.CompletePlanRequest{SpecialistID: 7})
		require.NoError(t, err)
		assert.True(t, repo.completeCalled)
	})

	t.Run("foreign plan", func(t *testing.T) {
		repo := &fakePlanRepo{plan: activePlan()}
		svc := newTestService(repo, &fakeCalendarClient{})

		err := svc.Complete(context.Background(), 42, &models.CompletePlanRequest{SpecialistID: 99})
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}
