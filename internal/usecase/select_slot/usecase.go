package select_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	planRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	getAvailability "github.com/m04kA/TRV-PlanService/internal/usecase/get_availability"
	"github.com/m04kA/TRV-PlanService/pkg/ptr"
)

// UseCase use case выбора слота встречи на шаге мастера планирования
// Слот проверяется против актуальной доступности специалиста и
// закрепляется за планом в сериализуемой транзакции
type UseCase struct {
	planRepo     PlanRepository
	availability AvailabilityProvider
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	planRepo PlanRepository,
	availability AvailabilityProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		planRepo:     planRepo,
		availability: availability,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case выбора слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectSlot: plan=%d, specialist=%d, start=%s, duration=%d",
		req.PlanID, req.SpecialistID, req.Start.Format("2006-01-02T15:04:05Z07:00"), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем доступность выбранного слота
	// Дата запрашивается точечно, чтобы не пересчитывать весь горизонт
	selectedDate := req.Start.UTC().Format(domain.DateFormat)
	availabilityResp, err := uc.availability.Execute(ctx, &getAvailability.Request{
		SpecialistID:    req.SpecialistID,
		DurationMinutes: req.DurationMinutes,
		SelectedDate:    ptr.Ptr(selectedDate),
	})
	if err != nil {
		return nil, uc.mapAvailabilityError(err)
	}

	matched := matchSlot(availabilityResp.Slots, req.Start, req.DurationMinutes)
	if matched == nil {
		// Дата в UTC может отставать от локальной даты специалиста на день
		// (или опережать её): перепроверяем соседнюю локальную дату
		matched, err = uc.matchAdjacentDate(ctx, req, availabilityResp.Timezone)
		if err != nil {
			return nil, err
		}
	}
	if matched == nil {
		uc.logger.Warn("SelectSlot: slot %s not available for specialist=%d",
			req.Start.Format("2006-01-02T15:04"), req.SpecialistID)
		return nil, ErrSlotNotAvailable
	}

	// 3. Закрепляем слот за планом в сериализуемой транзакции
	var result *Response
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		plan, err := uc.planRepo.GetByID(txCtx, req.PlanID)
		if err != nil {
			if errors.Is(err, planRepo.ErrPlanNotFound) {
				uc.logger.Warn("SelectSlot: plan id=%d not found", req.PlanID)
				return ErrPlanNotFound
			}
			uc.logger.Error("SelectSlot: failed to get plan id=%d: %v", req.PlanID, err)
			return fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
		}

		// Перевыбор слота разрешён только до активации встречи
		if plan.AppointmentStatus != domain.AppointmentStatusDraft {
			uc.logger.Warn("SelectSlot: plan id=%d appointment_status=%s, reselection denied",
				req.PlanID, plan.AppointmentStatus)
			return ErrAppointmentAlreadyActive
		}

		slotLabel := fmt.Sprintf("%s %s", matched.Date, matched.Time)
		upd := planRepo.StepUpdate{
			SpecialistID:     ptr.Ptr(req.SpecialistID),
			Status:           ptr.Ptr(domain.PlanStatusInProgress),
			SelectedTimeSlot: ptr.Ptr(slotLabel),
			AppointmentStart: ptr.Ptr(matched.Start),
			AppointmentEnd:   ptr.Ptr(matched.End),
		}

		if err := uc.planRepo.UpdateStep(txCtx, req.PlanID, upd); err != nil {
			uc.logger.Error("SelectSlot: failed to update plan id=%d: %v", req.PlanID, err)
			return fmt.Errorf("%w: failed to update plan: %v", ErrInternal, err)
		}

		result = &Response{
			PlanID:           req.PlanID,
			SelectedTimeSlot: slotLabel,
			AppointmentStart: matched.Start,
			AppointmentEnd:   matched.End,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SelectSlot: plan id=%d slot fixed at %s", req.PlanID, result.SelectedTimeSlot)
	return result, nil
}

// matchAdjacentDate повторяет проверку для локальной даты специалиста,
// когда она не совпадает с UTC-датой начала слота
func (uc *UseCase) matchAdjacentDate(ctx context.Context, req *Request, timezone string) (*getAvailability.Slot, error) {
	for _, dayShift := range []int{-1, 1} {
		shifted := req.Start.UTC().AddDate(0, 0, dayShift).Format(domain.DateFormat)
		resp, err := uc.availability.Execute(ctx, &getAvailability.Request{
			SpecialistID:    req.SpecialistID,
			DurationMinutes: req.DurationMinutes,
			SelectedDate:    ptr.Ptr(shifted),
		})
		if err != nil {
			return nil, uc.mapAvailabilityError(err)
		}
		if matched := matchSlot(resp.Slots, req.Start, req.DurationMinutes); matched != nil {
			return matched, nil
		}
	}
	return nil, nil
}

func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, getAvailability.ErrSpecialistNotFound):
		return ErrSpecialistNotFound
	case errors.Is(err, getAvailability.ErrNoWorkingHours),
		errors.Is(err, getAvailability.ErrNoTimezone),
		errors.Is(err, getAvailability.ErrInvalidTimezone):
		return ErrSpecialistMisconfigured
	default:
		uc.logger.Error("SelectSlot: availability check failed: %v", err)
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}

// matchSlot ищет слот с точным совпадением начала и длительности
func matchSlot(slots []getAvailability.Slot, start time.Time, durationMinutes int) *getAvailability.Slot {
	for i := range slots {
		if slots[i].Start.Equal(start) && slots[i].DurationMinutes == durationMinutes {
			return &slots[i]
		}
	}
	return nil
}

func validateRequest(req *Request) error {
	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planID must be positive", ErrInvalidInput)
	}
	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	return nil
}
