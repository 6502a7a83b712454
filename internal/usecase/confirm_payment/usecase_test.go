package confirm_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/internal/infra/redislock"
	planRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	"github.com/m04kA/TRV-PlanService/internal/integrations/calendarservice"
	"github.com/m04kA/TRV-PlanService/pkg/ptr"
)

type fakePlanRepo struct {
	plan       *domain.Plan
	getErr     error
	markPaidOK bool
	markErr    error

	markPaidCalls  int
	storedEventID  string
	storedLink     string
	setEventErr    error
	setEventCalled bool
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.plan, nil
}

func (f *fakePlanRepo) MarkPaid(ctx context.Context, id int64, paymentIntentID string, paidAt time.Time) (bool, error) {
	f.markPaidCalls++
	if f.markErr != nil {
		return false, f.markErr
	}
	return f.markPaidOK, nil
}

func (f *fakePlanRepo) SetCalendarEvent(ctx context.Context, id int64, eventID string, meetingLink string) error {
	f.setEventCalled = true
	if f.setEventErr != nil {
		return f.setEventErr
	}
	f.storedEventID = eventID
	f.storedLink = meetingLink
	return nil
}

type fakeSpecialistRepo struct {
	specialist *domain.Specialist
	err        error
}

func (f *fakeSpecialistRepo) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.specialist, nil
}

type fakeCalendarClient struct {
	connected    bool
	connectedErr error
	event        *calendarservice.EventResponse
	createErr    error

	createCalls int
}

func (f *fakeCalendarClient) IsConnected(ctx context.Context, specialistID int64) (bool, error) {
	return f.connected, f.connectedErr
}

func (f *fakeCalendarClient) CreateEvent(ctx context.Context, specialistID int64, event *calendarservice.EventRequest) (*calendarservice.EventResponse, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.event, nil
}

type failingLocker struct{}

func (failingLocker) WithPlanLock(ctx context.Context, planID int64, fn func(ctx context.Context) error) error {
	return redislock.ErrLockNotAcquired
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingPlan() *domain.Plan {
	return &domain.Plan{
		ID:                42,
		TravelerName:      "Ivan",
		TravelerEmail:     "ivan@example.com",
		SpecialistID:      ptr.Ptr(int64(7)),
		Status:            domain.PlanStatusInProgress,
		AppointmentStatus: domain.AppointmentStatusDraft,
		PaymentStatus:     domain.PaymentStatusPending,
		AppointmentStart:  ptr.Ptr(time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)),
		AppointmentEnd:    ptr.Ptr(time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)),
	}
}

func connectedSpecialist() *domain.Specialist {
	return &domain.Specialist{
		ID:                7,
		Timezone:          "UTC",
		Status:            domain.SpecialistStatusActive,
		CalendarConnected: true,
	}
}

func validRequest() *Request {
	return &Request{
		SessionReference: "cs_test_123",
		PlanID:           42,
		PaymentIntentID:  "pi_test_456",
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakePlanRepo{}, &fakeSpecialistRepo{}, &fakeCalendarClient{}, redislock.NoopLocker{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionReference: "cs_1", PlanID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SessionReference: "", PlanID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_FirstConfirmationActivatesAndCreatesEvent(t *testing.T) {
	repo := &fakePlanRepo{plan: pendingPlan(), markPaidOK: true}
	calendar := &fakeCalendarClient{
		connected: true,
		event:     &calendarservice.EventResponse{EventID: "evt_1", MeetingLink: "https://meet.example.com/x"},
	}
	uc := NewUseCase(repo, &fakeSpecialistRepo{specialist: connectedSpecialist()}, calendar, redislock.NoopLocker{}, nopLogger{})

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, result.Activated)
	assert.True(t, result.EventCreated)
	assert.Equal(t, 1, repo.markPaidCalls)
	assert.Equal(t, "evt_1", repo.storedEventID)
	assert.Equal(t, "https://meet.example.com/x", repo.storedLink)
}

func TestExecute_RepeatNotificationIsNoop(t *testing.T) {
	paid := pendingPlan()
	paid.PaymentStatus = domain.PaymentStatusPaid
	paid.AppointmentStatus = domain.AppointmentStatusActive
	paid.GoogleCalendarEventID = ptr.Ptr("evt_1")

	repo := &fakePlanRepo{plan: paid, markPaidOK: false}
	calendar := &fakeCalendarClient{connected: true}
	uc := NewUseCase(repo, &fakeSpecialistRepo{specialist: connectedSpecialist()}, calendar, redislock.NoopLocker{}, nopLogger{})

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Состояние не меняется, событие не пересоздается
	assert.False(t, result.Activated)
	assert.False(t, result.EventCreated)
	assert.Equal(t, 0, calendar.createCalls)
	assert.False(t, repo.setEventCalled)
}

func TestExecute_RepeatNotificationRetriesMissingEvent(t *testing.T) {
	// Оплачен, но событие так и не создалось: прошлый webhook упал на календаре
	paid := pendingPlan()
	paid.PaymentStatus = domain.PaymentStatusPaid
	paid.AppointmentStatus = domain.AppointmentStatusActive

	repo := &fakePlanRepo{plan: paid, markPaidOK: false}
	calendar := &fakeCalendarClient{
		connected: true,
		event:     &calendarservice.EventResponse{EventID: "evt_retry", MeetingLink: "https://meet.example.com/r"},
	}
	uc := NewUseCase(repo, &fakeSpecialistRepo{specialist: connectedSpecialist()}, calendar, redislock.NoopLocker{}, nopLogger{})

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, result.Activated)
	assert.True(t, result.EventCreated)
	assert.Equal(t, "evt_retry", repo.storedEventID)
}

func TestExecute_EventCreationFailureLeavesPlanActive(t *testing.T) {
	repo := &fakePlanRepo{plan: pendingPlan(), markPaidOK: true}
	calendar := &fakeCalendarClient{connected: true, createErr: calendarservice.ErrCalendarService}
	uc := NewUseCase(repo, &fakeSpecialistRepo{specialist: connectedSpecialist()}, calendar, redislock.NoopLocker{}, nopLogger{})

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Активация не откатывается: план остаётся active без события
	assert.True(t, result.Activated)
	assert.False(t, result.EventCreated)
	assert.False(t, repo.setEventCalled)
}

func TestExecute_SpecialistWithoutCalendarSkipsEvent(t *testing.T) {
	specialist := connectedSpecialist()
	specialist.CalendarConnected = false

	repo := &fakePlanRepo{plan: pendingPlan(), markPaidOK: true}
	calendar := &fakeCalendarClient{}
	uc := NewUseCase(repo, &fakeSpecialistRepo{specialist: specialist}, calendar, redislock.NoopLocker{}, nopLogger{})

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, result.Activated)
	assert.False(t, result.EventCreated)
	assert.Equal(t, 0, calendar.createCalls)
}

func TestExecute_PlanWithoutAppointmentDetailsSkipsEvent(t *testing.T) {
	plan := pendingPlan()
	plan.AppointmentStart = nil
	plan.AppointmentEnd = nil

	repo := &fakePlanRepo{plan: plan, markPaidOK: true}
	calendar := &fakeCalendarClient{connected: true}
	uc := NewUseCase(repo, &fakeSpecialistRepo{specialist: connectedSpecialist()}, calendar, redislock.NoopLocker{}, nopLogger{})

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, result.Activated)
	assert.False(t, result.EventCreated)
	assert.Equal(t, 0, calendar.createCalls)
}

func TestExecute_PlanNotFound(t *testing.T) {
	repo := &fakePlanRepo{getErr: planRepo.ErrPlanNotFound}
	uc := NewUseCase(repo, &fakeSpecialistRepo{}, &fakeCalendarClient{}, redislock.NoopLocker{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.Equal(t, 0, repo.markPaidCalls)
}

func TestExecute_DuplicateInFlight(t *testing.T) {
	repo := &fakePlanRepo{plan: pendingPlan(), markPaidOK: true}
	uc := NewUseCase(repo, &fakeSpecialistRepo{}, &fakeCalendarClient{}, failingLocker{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateInFlight)
	assert.Equal(t, 0, repo.markPaidCalls)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	repo := &fakePlanRepo{plan: pendingPlan(), markErr: errors.New("connection reset")}
	uc := NewUseCase(repo, &fakeSpecialistRepo{}, &fakeCalendarClient{}, redislock.NoopLocker{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
