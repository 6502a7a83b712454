package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	specialistRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/specialist"
	"github.com/m04kA/TRV-PlanService/internal/integrations/calendarservice"
)

// UseCase use case для расчёта доступных слотов специалиста
type UseCase struct {
	specialistRepo SpecialistRepository
	calendarClient CalendarClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	specialistRepo SpecialistRepository,
	calendarClient CalendarClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		specialistRepo: specialistRepo,
		calendarClient: calendarClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case расчёта доступности
//
// Ошибки конфигурации специалиста (нет рабочих часов, нет часового пояса)
// возвращаются вызывающей стороне. Любой сбой самого расчёта деградирует
// в пустой список: запрос доступности не должен ломать страницу бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: specialist=%d, duration=%d, date=%v",
		req.SpecialistID, req.DurationMinutes, req.SelectedDate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем специалиста с рабочими часами
	specialist, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("GetAvailability: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("GetAvailability: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	if !specialist.IsActive() {
		uc.logger.Warn("GetAvailability: specialist id=%d is inactive", req.SpecialistID)
		return nil, ErrSpecialistNotFound
	}

	// 3. Проверяем конфигурацию специалиста
	if err := validateSpecialistConfig(specialist); err != nil {
		uc.logger.Warn("GetAvailability: specialist id=%d misconfigured: %v", req.SpecialistID, err)
		return nil, err
	}

	loc, err := time.LoadLocation(specialist.Timezone)
	if err != nil {
		uc.logger.Warn("GetAvailability: specialist id=%d has invalid timezone %q: %v",
			req.SpecialistID, specialist.Timezone, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, specialist.Timezone)
	}

	// 4. Определяем горизонт бронирования в поясе специалиста
	// Самая ранняя доступная дата — послезавтра: встречи на сегодня
	// и завтра не предлагаются
	now := uc.timeProvider.Now()
	today := localMidnight(now, loc)
	earliest := today.AddDate(0, 0, domain.MinAdvanceDays)

	emptyResponse := &Response{
		SpecialistID:    req.SpecialistID,
		DurationMinutes: req.DurationMinutes,
		Timezone:        specialist.Timezone,
		Slots:           []Slot{},
	}

	// 5. Определяем даты для обработки
	var dates []time.Time
	if req.SelectedDate != nil {
		selected, err := time.ParseInLocation(domain.DateFormat, *req.SelectedDate, loc)
		if err != nil {
			// Кривое значение даты никогда не поднимается к вызывающему:
			// логируем и отдаём пустую доступность
			uc.logger.Warn("GetAvailability: unparseable date %q for specialist=%d: %v",
				*req.SelectedDate, req.SpecialistID, err)
			return emptyResponse, nil
		}

		if selected.Before(earliest) {
			uc.logger.Info("GetAvailability: date %s is before earliest bookable %s, specialist=%d",
				*req.SelectedDate, earliest.Format(domain.DateFormat), req.SpecialistID)
			return emptyResponse, nil
		}

		dates = []time.Time{selected}
	} else {
		horizon := today.AddDate(0, 0, domain.BookingHorizonDays)
		for d := earliest; !d.After(horizon); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	}

	// 6. Connected-режим: расчёт делегируется календарному сервису,
	// который дополнительно исключает занятые интервалы внешнего календаря
	if specialist.CalendarConnected {
		slots, ok := uc.delegatedSlots(ctx, specialist, req)
		if ok {
			uc.logger.Info("GetAvailability: connected mode, %d slots for specialist=%d",
				len(slots), req.SpecialistID)
			return &Response{
				SpecialistID:    req.SpecialistID,
				DurationMinutes: req.DurationMinutes,
				Timezone:        specialist.Timezone,
				Slots:           slots,
			}, nil
		}
		// Сбой календарного сервиса деградирует к локальному расчёту
		uc.logger.Warn("GetAvailability: falling back to local mode for specialist=%d", req.SpecialistID)
	}

	// 7. Локальный режим: чистый расчёт из рабочих часов
	allSlots := make([]domain.AvailabilitySlot, 0)
	for _, date := range dates {
		slots, err := generateSlotsForDate(date, specialist.WorkingHours, req.DurationMinutes, loc)
		if err != nil {
			// Сломанный расчёт не должен ронять страницу бронирования
			uc.logger.Error("GetAvailability: slot generation failed for specialist=%d, date=%s: %v",
				req.SpecialistID, date.Format(domain.DateFormat), err)
			return emptyResponse, nil
		}
		allSlots = append(allSlots, slots...)
	}

	uc.logger.Info("GetAvailability: local mode, %d slots for specialist=%d",
		len(allSlots), req.SpecialistID)

	return &Response{
		SpecialistID:    req.SpecialistID,
		DurationMinutes: req.DurationMinutes,
		Timezone:        specialist.Timezone,
		Slots:           fromDomainSlots(allSlots),
	}, nil
}

// delegatedSlots запрашивает доступность у календарного сервиса
// Рабочие часы, длительность, пояс и выбранная дата передаются без изменений
// Возвращает ok=false при любом сбое (вызывающая сторона уходит в локальный режим)
func (uc *UseCase) delegatedSlots(ctx context.Context, specialist *domain.Specialist, req *Request) ([]Slot, bool) {
	connected, err := uc.calendarClient.IsConnected(ctx, specialist.ID)
	if err != nil {
		uc.logger.Warn("GetAvailability: connection check failed for specialist=%d: %v", specialist.ID, err)
		return nil, false
	}
	if !connected {
		// Флаг в профиле устарел: привязку могли отозвать на стороне сервиса
		uc.logger.Info("GetAvailability: specialist=%d marked connected but calendar link is gone", specialist.ID)
		return nil, false
	}

	windows := make([]calendarservice.WorkingHourWindow, len(specialist.WorkingHours))
	for i, h := range specialist.WorkingHours {
		windows[i] = calendarservice.WorkingHourWindow{
			StartTime: h.StartTime.String(),
			EndTime:   h.EndTime.String(),
		}
	}

	slots, err := uc.calendarClient.GetAvailableSlots(ctx, &calendarservice.AvailabilityRequest{
		SpecialistID:    specialist.ID,
		Timezone:        specialist.Timezone,
		DurationMinutes: req.DurationMinutes,
		WorkingHours:    windows,
		SelectedDate:    req.SelectedDate,
	})
	if err != nil {
		uc.logger.Warn("GetAvailability: delegated computation failed for specialist=%d: %v", specialist.ID, err)
		return nil, false
	}

	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			Start:           s.Start,
			End:             s.End,
			Date:            s.Date,
			Time:            s.Time,
			TimeEnd:         s.TimeEnd,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return result, true
}
