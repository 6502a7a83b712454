package select_slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	planRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	getAvailability "github.com/m04kA/TRV-PlanService/internal/usecase/get_availability"
)

type fakePlanRepo struct {
	plan      *domain.Plan
	getErr    error
	updateErr error

	updateCalled bool
	updatedID    int64
	update       planRepo.StepUpdate
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.plan, nil
}

func (f *fakePlanRepo) UpdateStep(ctx context.Context, id int64, upd planRepo.StepUpdate) error {
	f.updateCalled = true
	f.updatedID = id
	f.update = upd
	return f.updateErr
}

type fakeAvailability struct {
	responses map[string]*getAvailability.Response
	err       error
	requests  []*getAvailability.Request
}

func (f *fakeAvailability) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if req.SelectedDate != nil {
		if resp, ok := f.responses[*req.SelectedDate]; ok {
			return resp, nil
		}
	}
	return &getAvailability.Response{Timezone: "UTC", Slots: []getAvailability.Slot{}}, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var slotStart = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

func draftPlan() *domain.Plan {
	return &domain.Plan{
		ID:                42,
		TravelerName:      "Ivan",
		TravelerEmail:     "ivan@example.com",
		Status:            domain.PlanStatusDraft,
		AppointmentStatus: domain.AppointmentStatusDraft,
		PaymentStatus:     domain.PaymentStatusPending,
	}
}

func availabilityWithSlot() *fakeAvailability {
	return &fakeAvailability{
		responses: map[string]*getAvailability.Response{
			"2026-03-12": {
				SpecialistID:    7,
				DurationMinutes: 60,
				Timezone:        "UTC",
				Slots: []getAvailability.Slot{
					{
						Start:           slotStart,
						End:             slotStart.Add(time.Hour),
						Date:            "2026-03-12",
						Time:            "09:00",
						TimeEnd:         "10:00",
						DurationMinutes: 60,
					},
				},
			},
		},
	}
}

func validRequest() *Request {
	return &Request{
		PlanID:          42,
		SpecialistID:    7,
		DurationMinutes: 60,
		Start:           slotStart,
	}
}

func TestExecute(t *testing.T) {
	repo := &fakePlanRepo{plan: draftPlan()}
	uc := NewUseCase(repo, availabilityWithSlot(), fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.PlanID)
	assert.Equal(t, "2026-03-12 09:00", resp.SelectedTimeSlot)
	assert.Equal(t, slotStart, resp.AppointmentStart)
	assert.Equal(t, slotStart.Add(time.Hour), resp.AppointmentEnd)

	// План переведён в in_progress, слот и специалист закреплены
	require.True(t, repo.updateCalled)
	assert.Equal(t, int64(42), repo.updatedID)
	require.NotNil(t, repo.update.Status)
	assert.Equal(t, domain.PlanStatusInProgress, *repo.update.Status)
	require.NotNil(t, repo.update.SpecialistID)
	assert.Equal(t, int64(7), *repo.update.SpecialistID)
	require.NotNil(t, repo.update.AppointmentStart)
	assert.Equal(t, slotStart, *repo.update.AppointmentStart)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakePlanRepo{}, availabilityWithSlot(), fakeTxManager{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "zero plan id", mutate: func(r *Request) { r.PlanID = 0 }},
		{name: "zero specialist id", mutate: func(r *Request) { r.SpecialistID = 0 }},
		{name: "zero duration", mutate: func(r *Request) { r.DurationMinutes = 0 }},
		{name: "zero start", mutate: func(r *Request) { r.Start = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	repo := &fakePlanRepo{plan: draftPlan()}
	availability := availabilityWithSlot()
	uc := NewUseCase(repo, availability, fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.Start = slotStart.Add(30 * time.Minute)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.False(t, repo.updateCalled)

	// Соседние даты тоже проверены: UTC-дата может не совпадать с локальной
	require.Len(t, availability.requests, 3)
	assert.Equal(t, "2026-03-12", *availability.requests[0].SelectedDate)
	assert.Equal(t, "2026-03-11", *availability.requests[1].SelectedDate)
	assert.Equal(t, "2026-03-13", *availability.requests[2].SelectedDate)
}

func TestExecute_DurationMismatch(t *testing.T) {
	repo := &fakePlanRepo{plan: draftPlan()}
	uc := NewUseCase(repo, availabilityWithSlot(), fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.DurationMinutes = 90

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AdjacentLocalDate(t *testing.T) {
	// Слот 23:00 по Токио 12-го марта — это 14:00 UTC 12-го,
	// но слот 00:00 по Токио 13-го будет 15:00 UTC 12-го:
	// локальная дата слота опережает UTC-дату запроса
	tokyoStart := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	availability := &fakeAvailability{
		responses: map[string]*getAvailability.Response{
			"2026-03-13": {
				Timezone: "Asia/Tokyo",
				Slots: []getAvailability.Slot{
					{
						Start:           tokyoStart,
						End:             tokyoStart.Add(time.Hour),
						Date:            "2026-03-13",
						Time:            "00:00",
						TimeEnd:         "01:00",
						DurationMinutes: 60,
					},
				},
			},
		},
	}
	repo := &fakePlanRepo{plan: draftPlan()}
	uc := NewUseCase(repo, availability, fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.Start = tokyoStart

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-13 00:00", resp.SelectedTimeSlot)
}

func TestExecute_ReselectionDenied(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.AppointmentStatusActive,
		domain.AppointmentStatusCancelled,
		domain.AppointmentStatusCompleted,
	} {
		p := draftPlan()
		p.AppointmentStatus = status
		repo := &fakePlanRepo{plan: p}
		uc := NewUseCase(repo, availabilityWithSlot(), fakeTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrAppointmentAlreadyActive, "status %s", status)
		assert.False(t, repo.updateCalled, "status %s", status)
	}
}

func TestExecute_PlanNotFound(t *testing.T) {
	repo := &fakePlanRepo{getErr: planRepo.ErrPlanNotFound}
	uc := NewUseCase(repo, availabilityWithSlot(), fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestExecute_AvailabilityErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "specialist not found", err: getAvailability.ErrSpecialistNotFound, wantErr: ErrSpecialistNotFound},
		{name: "no working hours", err: getAvailability.ErrNoWorkingHours, wantErr: ErrSpecialistMisconfigured},
		{name: "no timezone", err: getAvailability.ErrNoTimezone, wantErr: ErrSpecialistMisconfigured},
		{name: "invalid timezone", err: getAvailability.ErrInvalidTimezone, wantErr: ErrSpecialistMisconfigured},
		{name: "unexpected failure", err: errors.New("db down"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePlanRepo{plan: draftPlan()}
			uc := NewUseCase(repo, &fakeAvailability{err: tt.err}, fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, repo.updateCalled)
		})
	}
}
