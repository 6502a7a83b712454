package specialist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/pkg/dbmetrics"
	"github.com/m04kA/TRV-PlanService/pkg/psqlbuilder"
	"github.com/m04kA/TRV-PlanService/pkg/types"
)

// Repository репозиторий для работы со специалистами и их рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает специалиста вместе с его рабочими часами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"timezone",
		"status",
		"calendar_connected",
		"created_at",
		"updated_at",
	).
		From("specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Specialist
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Timezone,
		&s.Status,
		&s.CalendarConnected,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan specialist: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	hours, err := r.getWorkingHours(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	s.WorkingHours = hours

	return &s, nil
}

// ReplaceWorkingHours заменяет рабочие часы специалиста целиком
// Обновление профиля всегда присылает полный набор окон, поэтому
// старые окна удаляются и вставляются новые
// Вызывается внутри транзакции (executor берётся из контекста)
func (r *Repository) ReplaceWorkingHours(ctx context.Context, specialistID int64, hours []domain.WorkingHour) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns("specialist_id", "start_time", "end_time")

	for _, h := range hours {
		insertBuilder = insertBuilder.Values(specialistID, h.StartTime, h.EndTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getWorkingHours(ctx context.Context, executor DBExecutor, specialistID int64) ([]domain.WorkingHour, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"specialist_id",
		"start_time",
		"end_time",
	).
		From("working_hours").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WorkingHour, 0)
	for rows.Next() {
		var h domain.WorkingHour
		var startTime, endTime string

		if err := rows.Scan(&h.ID, &h.SpecialistID, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("%w: getWorkingHours - scan working hour: %v", ErrScanRow, err)
		}

		// Время в БД хранится как time (HH:MM:SS), секунды отбрасываются
		start, err := types.NewTimeStringFromString(startTime)
		if err != nil {
			return nil, fmt.Errorf("%w: getWorkingHours - parse start_time: %v", ErrScanRow, err)
		}
		end, err := types.NewTimeStringFromString(endTime)
		if err != nil {
			return nil, fmt.Errorf("%w: getWorkingHours - parse end_time: %v", ErrScanRow, err)
		}

		h.StartTime = start
		h.EndTime = end
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}
