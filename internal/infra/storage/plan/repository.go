package plan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/pkg/dbmetrics"
	"github.com/m04kA/TRV-PlanService/pkg/psqlbuilder"
)

// planColumns полный набор колонок таблицы plans в порядке сканирования
var planColumns = []string{
	"id",
	"traveler_name",
	"traveler_email",
	"traveler_phone",
	"specialist_id",
	"destination_id",
	"status",
	"appointment_status",
	"payment_status",
	"selected_time_slot",
	"appointment_start",
	"appointment_end",
	"google_calendar_event_id",
	"meeting_link",
	"payment_intent_id",
	"paid_at",
	"cancellation_comment",
	"canceled_by_type",
	"canceled_by_id",
	"canceled_at",
	"completion_comment",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с планами поездок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория планов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый план в статусе draft по обеим осям
func (r *Repository) Create(ctx context.Context, p *domain.Plan) (*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("plans").
		Columns(
			"traveler_name",
			"traveler_email",
			"traveler_phone",
			"specialist_id",
			"destination_id",
			"status",
			"appointment_status",
			"payment_status",
		).
		Values(
			p.TravelerName,
			p.TravelerEmail,
			p.TravelerPhone,
			p.SpecialistID,
			p.DestinationID,
			p.Status,
			p.AppointmentStatus,
			p.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает план по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(planColumns...).
		From("plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPlan(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan plan: %v", ErrScanRow, err)
	}

	return p, nil
}

// GetBySpecialistWithFilter получает планы специалиста с фильтрацией
// по статусу встречи и периоду (по appointment_start)
func (r *Repository) GetBySpecialistWithFilter(ctx context.Context, filter domain.SpecialistPlansFilter) ([]*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(planColumns...).
		From("plans").
		Where(squirrel.Eq{"specialist_id": filter.SpecialistID})

	if filter.AppointmentStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_status": *filter.AppointmentStatus})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_start": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_start": *filter.EndDate})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_start ASC NULLS LAST, created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpecialistWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpecialistWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	plans := make([]*domain.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySpecialistWithFilter - scan plan: %v", ErrScanRow, err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySpecialistWithFilter - rows error: %v", ErrScanRow, err)
	}

	return plans, nil
}

// StepUpdate набор полей, изменяемых на шагах мастера планирования
// nil-поля не трогаются
type StepUpdate struct {
	TravelerName     *string
	TravelerEmail    *string
	TravelerPhone    *string
	SpecialistID     *int64
	DestinationID    *int64
	Status           *domain.PlanStatus
	SelectedTimeSlot *string
	AppointmentStart *time.Time
	AppointmentEnd   *time.Time
}

// UpdateStep применяет изменения шага мастера к плану
func (r *Repository) UpdateStep(ctx context.Context, id int64, upd StepUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("plans").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.TravelerName != nil {
		updateBuilder = updateBuilder.Set("traveler_name", *upd.TravelerName)
	}
	if upd.TravelerEmail != nil {
		updateBuilder = updateBuilder.Set("traveler_email", *upd.TravelerEmail)
	}
	if upd.TravelerPhone != nil {
		updateBuilder = updateBuilder.Set("traveler_phone", *upd.TravelerPhone)
	}
	if upd.SpecialistID != nil {
		updateBuilder = updateBuilder.Set("specialist_id", *upd.SpecialistID)
	}
	if upd.DestinationID != nil {
		updateBuilder = updateBuilder.Set("destination_id", *upd.DestinationID)
	}
	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", *upd.Status)
	}
	if upd.SelectedTimeSlot != nil {
		updateBuilder = updateBuilder.Set("selected_time_slot", *upd.SelectedTimeSlot)
	}
	if upd.AppointmentStart != nil {
		updateBuilder = updateBuilder.Set("appointment_start", *upd.AppointmentStart)
	}
	if upd.AppointmentEnd != nil {
		updateBuilder = updateBuilder.Set("appointment_end", *upd.AppointmentEnd)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStep - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStep - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStep - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

// MarkPaid атомарно помечает план оплаченным и активирует встречу
// Условие payment_status <> 'paid' закрывает гонку дублирующихся
// уведомлений об оплате: второе уведомление не пройдет условие
// Возвращает true, если обновление применилось (первая оплата)
func (r *Repository) MarkPaid(ctx context.Context, id int64, paymentIntentID string, paidAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("plans").
		Set("payment_status", domain.PaymentStatusPaid).
		Set("paid_at", paidAt).
		Set("payment_intent_id", paymentIntentID).
		Set("appointment_status", domain.AppointmentStatusActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"payment_status": domain.PaymentStatusPaid}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// SetCalendarEvent сохраняет идентификатор события календаря и ссылку на встречу
func (r *Repository) SetCalendarEvent(ctx context.Context, id int64, eventID string, meetingLink string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("plans").
		Set("google_calendar_event_id", eventID).
		Set("meeting_link", meetingLink).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCalendarEvent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEvent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEvent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

// CancelAppointment переводит встречу в cancelled одним условным обновлением
// Guard по appointment_status = 'active' гарантирует, что конкурирующая
// отмена или завершение не перезапишутся
// Вместе со статусом фиксируются данные отмены и очищаются поля завершения,
// ссылка на событие календаря и ссылка на встречу
func (r *Repository) CancelAppointment(
	ctx context.Context,
	id int64,
	comment string,
	byType domain.CanceledByType,
	byID int64,
	canceledAt time.Time,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("plans").
		Set("appointment_status", domain.AppointmentStatusCancelled).
		Set("cancellation_comment", comment).
		Set("canceled_by_type", byType).
		Set("canceled_by_id", byID).
		Set("canceled_at", canceledAt).
		Set("completion_comment", nil).
		Set("completed_at", nil).
		Set("google_calendar_event_id", nil).
		Set("meeting_link", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"appointment_status": domain.AppointmentStatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelAppointment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelAppointment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelAppointment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPlanNotActive
	}

	return nil
}

// CompleteAppointment переводит встречу в completed
// Событие календаря не трогается: оно остается историческим следом встречи
func (r *Repository) CompleteAppointment(ctx context.Context, id int64, comment string, completedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("plans").
		Set("appointment_status", domain.AppointmentStatusCompleted).
		Set("completion_comment", comment).
		Set("completed_at", completedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"appointment_status": domain.AppointmentStatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CompleteAppointment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CompleteAppointment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CompleteAppointment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPlanNotActive
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row rowScanner) (*domain.Plan, error) {
	var p domain.Plan
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.TravelerName,
		&p.TravelerEmail,
		&p.TravelerPhone,
		&p.SpecialistID,
		&p.DestinationID,
		&p.Status,
		&p.AppointmentStatus,
		&p.PaymentStatus,
		&p.SelectedTimeSlot,
		&p.AppointmentStart,
		&p.AppointmentEnd,
		&p.GoogleCalendarEventID,
		&p.MeetingLink,
		&p.PaymentIntentID,
		&p.PaidAt,
		&p.CancellationComment,
		&p.CanceledByType,
		&p.CanceledByID,
		&p.CanceledAt,
		&p.CompletionComment,
		&p.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
