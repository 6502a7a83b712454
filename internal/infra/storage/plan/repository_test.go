package plan

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/pkg/ptr"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func planRow(id int64) *sqlmock.Rows {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(planColumns).AddRow(
		id,                // id
		"Ivan",            // traveler_name
		"ivan@example.com", // traveler_email
		nil,               // traveler_phone
		int64(7),          // specialist_id
		nil,               // destination_id
		"in_progress",     // status
		"active",          // appointment_status
		"paid",            // payment_status
		nil,               // selected_time_slot
		now,               // appointment_start
		now.Add(time.Hour), // appointment_end
		"evt_1",           // google_calendar_event_id
		nil,               // meeting_link
		"pi_123",          // payment_intent_id
		now,               // paid_at
		nil,               // cancellation_comment
		nil,               // canceled_by_type
		nil,               // canceled_by_id
		nil,               // canceled_at
		nil,               // completion_comment
		nil,               // completed_at
		now,               // created_at
		now,               // updated_at
	)
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM plans WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(planRow(42))

	p, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, domain.AppointmentStatusActive, p.AppointmentStatus)
	assert.Equal(t, domain.PaymentStatusPaid, p.PaymentStatus)
	require.NotNil(t, p.SpecialistID)
	assert.Equal(t, int64(7), *p.SpecialistID)
	require.NotNil(t, p.GoogleCalendarEventID)
	assert.Equal(t, "evt_1", *p.GoogleCalendarEventID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM plans").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(planColumns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestMarkPaid(t *testing.T) {
	paidAt := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

	t.Run("first payment applies", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		// Условие payment_status <> 'paid' обязано попасть в запрос:
		// именно оно делает обработку уведомления идемпотентной
		mock.ExpectExec("UPDATE plans SET .+ WHERE id = \\$\\d+ AND payment_status <> \\$\\d+").
			WillReturnResult(sqlmock.NewResult(0, 1))

		applied, err := repo.MarkPaid(context.Background(), 42, "pi_123", paidAt)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate payment is a no-op", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE plans SET .+ AND payment_status <> \\$\\d+").
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.MarkPaid(context.Background(), 42, "pi_123", paidAt)
		require.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestCancelAppointment(t *testing.T) {
	canceledAt := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

	t.Run("active appointment is cancelled", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		// Вместе с отменой очищаются событие календаря и ссылка на встречу,
		// guard по appointment_status = 'active' защищает от конкурирующих переходов
		mock.ExpectExec("UPDATE plans SET .+ WHERE id = \\$\\d+ AND appointment_status = \\$\\d+").
			WithArgs(
				domain.AppointmentStatusCancelled,
				"client request",
				domain.CanceledBySpecialist,
				int64(7),
				canceledAt,
				nil, // completion_comment
				nil, // completed_at
				nil, // google_calendar_event_id
				nil, // meeting_link
				int64(42),
				domain.AppointmentStatusActive,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CancelAppointment(context.Background(), 42, "client request", domain.CanceledBySpecialist, 7, canceledAt)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE plans SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CancelAppointment(context.Background(), 42, "", domain.CanceledBySpecialist, 7, canceledAt)
		assert.ErrorIs(t, err, ErrPlanNotActive)
	})
}

func TestCompleteAppointment(t *testing.T) {
	completedAt := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	t.Run("active appointment is completed", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE plans SET .+ WHERE id = \\$\\d+ AND appointment_status = \\$\\d+").
			WithArgs(
				domain.AppointmentStatusCompleted,
				"all good",
				completedAt,
				int64(42),
				domain.AppointmentStatusActive,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CompleteAppointment(context.Background(), 42, "all good", completedAt)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not active", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE plans SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CompleteAppointment(context.Background(), 42, "", completedAt)
		assert.ErrorIs(t, err, ErrPlanNotActive)
	})
}

func TestUpdateStep(t *testing.T) {
	t.Run("only provided fields are updated", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE plans SET updated_at = NOW\\(\\), specialist_id = \\$\\d+, status = \\$\\d+ WHERE id = \\$\\d+").
			WithArgs(int64(7), domain.PlanStatusPending, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStep(context.Background(), 42, StepUpdate{
			SpecialistID: ptr.Ptr(int64(7)),
			Status:       ptr.Ptr(domain.PlanStatusPending),
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing plan", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE plans SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStep(context.Background(), 404, StepUpdate{TravelerName: ptr.Ptr("Ivan")})
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO plans .+ RETURNING id, created_at, updated_at").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	p, err := repo.Create(context.Background(), &domain.Plan{
		TravelerName:      "Ivan",
		TravelerEmail:     "ivan@example.com",
		Status:            domain.PlanStatusDraft,
		AppointmentStatus: domain.AppointmentStatusDraft,
		PaymentStatus:     domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, now, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
