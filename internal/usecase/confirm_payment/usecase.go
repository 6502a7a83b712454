package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/internal/infra/redislock"
	planRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	"github.com/m04kA/TRV-PlanService/internal/integrations/calendarservice"
)

// UseCase use case обработки уведомления об успешной оплате
//
// Идемпотентность обеспечивается двумя слоями:
//   - распределённая блокировка по плану отсекает одновременные дубли
//   - условное обновление payment_status в БД отсекает повторные
//     уведомления, пришедшие после первого успешного
type UseCase struct {
	planRepo       PlanRepository
	specialistRepo SpecialistRepository
	calendarClient CalendarClient
	locker         Locker
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	planRepo PlanRepository,
	specialistRepo SpecialistRepository,
	calendarClient CalendarClient,
	locker Locker,
	logger Logger,
) *UseCase {
	return &UseCase{
		planRepo:       planRepo,
		specialistRepo: specialistRepo,
		calendarClient: calendarClient,
		locker:         locker,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute обрабатывает уведомление об оплате
//
// Переход paid/active не откатывается при сбое создания события календаря:
// деньги уже списаны, план остаётся active без события — это принятое
// деградированное состояние, требующее ручного вмешательства
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	uc.logger.Info("ConfirmPayment: session=%s, plan=%d, intent=%s",
		req.SessionReference, req.PlanID, req.PaymentIntentID)

	// 1. Валидация входных данных
	if req.PlanID <= 0 {
		return nil, fmt.Errorf("%w: planID must be positive", ErrInvalidInput)
	}
	if req.SessionReference == "" {
		return nil, fmt.Errorf("%w: sessionReference is required", ErrInvalidInput)
	}

	var result *Result

	// 2. Обработка под блокировкой по плану
	err := uc.locker.WithPlanLock(ctx, req.PlanID, func(lockCtx context.Context) error {
		r, err := uc.process(lockCtx, req)
		if err != nil {
			return err
		}
		result = r
		return nil
	})

	if err != nil {
		if errors.Is(err, redislock.ErrLockNotAcquired) {
			// Параллельный дубль уже обрабатывает этот план
			uc.logger.Info("ConfirmPayment: duplicate in flight for plan=%d, session=%s",
				req.PlanID, req.SessionReference)
			return nil, ErrDuplicateInFlight
		}
		return nil, err
	}

	return result, nil
}

func (uc *UseCase) process(ctx context.Context, req *Request) (*Result, error) {
	// 3. Находим план из метаданных уведомления
	plan, err := uc.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			// Кривой webhook: логируем и выходим, провайдеру нельзя отвечать ошибкой
			uc.logger.Warn("ConfirmPayment: plan id=%d from webhook metadata not found", req.PlanID)
			return nil, ErrPlanNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 4. Атомарный переход paid + active (условие в SQL закрывает гонку)
	activated, err := uc.planRepo.MarkPaid(ctx, req.PlanID, req.PaymentIntentID, now)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to mark plan id=%d paid: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: failed to mark paid: %v", ErrInternal, err)
	}

	if !activated {
		// Повторное уведомление: состояние не меняем
		uc.logger.Info("ConfirmPayment: plan id=%d already paid, session=%s is a repeat",
			req.PlanID, req.SessionReference)

		if plan.HasCalendarEvent() {
			return &Result{Activated: false, EventCreated: false}, nil
		}
		// События нет — прошлое уведомление могло упасть на его создании,
		// безопасно попробовать ещё раз
		uc.logger.Info("ConfirmPayment: plan id=%d paid but has no calendar event, retrying creation", req.PlanID)
	} else {
		uc.logger.Info("ConfirmPayment: plan id=%d activated, payment_intent=%s", req.PlanID, req.PaymentIntentID)
	}

	// 5. Создаем событие календаря (best-effort, без отката оплаты)
	eventCreated := uc.createCalendarEvent(ctx, plan)

	return &Result{Activated: activated, EventCreated: eventCreated}, nil
}

// createCalendarEvent создает событие встречи во внешнем календаре специалиста
// Любой сбой оставляет план active без события: деградация, а не ошибка
func (uc *UseCase) createCalendarEvent(ctx context.Context, plan *domain.Plan) bool {
	if plan.SpecialistID == nil || plan.AppointmentStart == nil || plan.AppointmentEnd == nil {
		uc.logger.Warn("ConfirmPayment: plan id=%d has no appointment details, skipping calendar event", plan.ID)
		return false
	}

	specialist, err := uc.specialistRepo.GetByID(ctx, *plan.SpecialistID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to get specialist id=%d for plan id=%d: %v",
			*plan.SpecialistID, plan.ID, err)
		return false
	}

	if !specialist.CalendarConnected {
		uc.logger.Info("ConfirmPayment: specialist id=%d has no calendar, plan id=%d stays without event",
			specialist.ID, plan.ID)
		return false
	}

	connected, err := uc.calendarClient.IsConnected(ctx, specialist.ID)
	if err != nil || !connected {
		uc.logger.Warn("ConfirmPayment: calendar not reachable for specialist id=%d, plan id=%d: %v",
			specialist.ID, plan.ID, err)
		return false
	}

	event, err := uc.calendarClient.CreateEvent(ctx, specialist.ID, &calendarservice.EventRequest{
		Start:         *plan.AppointmentStart,
		End:           *plan.AppointmentEnd,
		AttendeeName:  plan.TravelerName,
		AttendeeEmail: plan.TravelerEmail,
		AttendeePhone: plan.TravelerPhone,
	})
	if err != nil {
		// План остаётся active без события — ручное вмешательство
		uc.logger.Error("ConfirmPayment: calendar event creation failed for plan id=%d (plan stays active without event): %v",
			plan.ID, err)
		return false
	}

	if err := uc.planRepo.SetCalendarEvent(ctx, plan.ID, event.EventID, event.MeetingLink); err != nil {
		uc.logger.Error("ConfirmPayment: failed to store calendar event %s for plan id=%d: %v",
			event.EventID, plan.ID, err)
		return false
	}

	uc.logger.Info("ConfirmPayment: calendar event %s stored for plan id=%d", event.EventID, plan.ID)
	return true
}
