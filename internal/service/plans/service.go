package plans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	planRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

// Service сервис для работы с планами поездок
type Service struct {
	planRepo       PlanRepository
	calendarClient CalendarClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса планов
func NewService(
	planRepo PlanRepository,
	calendarClient CalendarClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		planRepo:       planRepo,
		calendarClient: calendarClient,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Create создает черновик плана при старте мастера планирования
// Обе оси статусов стартуют с draft, оплата - с pending
func (s *Service) Create(ctx context.Context, req *models.CreatePlanRequest) (*models.PlanResponse, error) {
	s.logger.Info("Create: creating plan for traveler=%s", req.TravelerEmail)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: invalid request for traveler=%s: %v", req.TravelerEmail, err)
		return nil, err
	}

	p := &domain.Plan{
		TravelerName:      strings.TrimSpace(req.TravelerName),
		TravelerEmail:     strings.TrimSpace(req.TravelerEmail),
		TravelerPhone:     req.TravelerPhone,
		DestinationID:     req.DestinationID,
		Status:            domain.PlanStatusDraft,
		AppointmentStatus: domain.AppointmentStatusDraft,
		PaymentStatus:     domain.PaymentStatusPending,
	}

	created, err := s.planRepo.Create(ctx, p)
	if err != nil {
		s.logger.Error("Create: repository error for traveler=%s: %v", req.TravelerEmail, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created plan id=%d", created.ID)
	return models.FromDomainPlan(created), nil
}

// GetByID получает план по ID для специалиста
// Чужие и несуществующие планы неотличимы для вызывающего
func (s *Service) GetByID(ctx context.Context, id int64, specialistID int64) (*models.PlanResponse, error) {
	s.logger.Info("GetByID: fetching plan id=%d for specialist=%d", id, specialistID)

	p, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("GetByID: plan id=%d not found", id)
			return nil, ErrPlanNotFound
		}
		s.logger.Error("GetByID: repository error for plan id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !p.BelongsToSpecialist(specialistID) {
		s.logger.Warn("GetByID: plan id=%d does not belong to specialist=%d", id, specialistID)
		return nil, ErrPlanNotFound
	}

	s.logger.Info("GetByID: successfully fetched plan id=%d", id)
	return models.FromDomainPlan(p), nil
}

// GetSpecialistPlans получает планы специалиста с фильтрацией
// Поддерживает фильтр по статусу встречи и периоду по appointment_start
func (s *Service) GetSpecialistPlans(ctx context.Context, req *models.GetSpecialistPlansRequest) (*models.PlanListResponse, error) {
	logMsg := fmt.Sprintf("GetSpecialistPlans: fetching plans for specialist=%d", req.SpecialistID)
	if req.AppointmentStatus != nil {
		logMsg += fmt.Sprintf(", appointmentStatus=%s", *req.AppointmentStatus)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSpecialistPlans: invalid appointmentStatus=%s for specialist=%d", *req.AppointmentStatus, req.SpecialistID)
		return nil, fmt.Errorf("%w: invalid appointment status", ErrInvalidInput)
	}

	result, err := s.planRepo.GetBySpecialistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSpecialistPlans: repository error for specialist=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: GetSpecialistPlans - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpecialistPlans: successfully fetched %d plans for specialist=%d", len(result), req.SpecialistID)
	return models.FromDomainPlanList(result), nil
}

// UpdateStep применяет изменения шага мастера к плану
// nil-поля не изменяются; ось встречи этим методом не трогается
func (s *Service) UpdateStep(ctx context.Context, id int64, req *models.UpdateStepRequest) (*models.PlanResponse, error) {
	s.logger.Info("UpdateStep: updating plan id=%d", id)

	upd, err := buildStepUpdate(req)
	if err != nil {
		s.logger.Warn("UpdateStep: invalid request for plan id=%d: %v", id, err)
		return nil, err
	}

	if err := s.planRepo.UpdateStep(ctx, id, upd); err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("UpdateStep: plan id=%d not found", id)
			return nil, ErrPlanNotFound
		}
		s.logger.Error("UpdateStep: repository error for plan id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStep - repository error: %v", ErrInternal, err)
	}

	updated, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStep: failed to fetch updated plan id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStep - fetch after update: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStep: successfully updated plan id=%d", id)
	return models.FromDomainPlan(updated), nil
}

// Cancel отменяет встречу по инициативе специалиста
// Событие календаря удаляется best-effort: его недоступность не блокирует отмену
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelPlanRequest) error {
	s.logger.Info("Cancel: cancelling plan id=%d by specialist=%d", id, req.SpecialistID)

	if len(req.Comment) > domain.MaxCommentLength {
		s.logger.Warn("Cancel: comment too long for plan id=%d", id)
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	// 1. Получаем план и проверяем принадлежность специалисту
	p, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("Cancel: plan id=%d not found", id)
			return ErrPlanNotFound
		}
		s.logger.Error("Cancel: repository error for plan id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !p.BelongsToSpecialist(req.SpecialistID) {
		s.logger.Warn("Cancel: plan id=%d does not belong to specialist=%d", id, req.SpecialistID)
		return ErrPlanNotFound
	}

	// 2. Отменить можно только активную встречу
	if !p.CanBeCancelled() {
		s.logger.Warn("Cancel: plan id=%d has appointment status=%s, cannot cancel", id, p.AppointmentStatus)
		return ErrNotActive
	}

	// 3. Удаляем событие календаря (best-effort)
	if p.HasCalendarEvent() {
		if err := s.calendarClient.DeleteEvent(ctx, req.SpecialistID, *p.GoogleCalendarEventID); err != nil {
			s.logger.Warn("Cancel: failed to delete calendar event=%s for plan id=%d: %v",
				*p.GoogleCalendarEventID, id, err)
		} else {
			s.logger.Info("Cancel: deleted calendar event=%s for plan id=%d", *p.GoogleCalendarEventID, id)
		}
	}

	// 4. Отменяем встречу (условный UPDATE страхует от гонки со вторым запросом)
	now := s.timeProvider.Now()
	if err := s.planRepo.CancelAppointment(ctx, id, req.Comment, domain.CanceledBySpecialist, req.SpecialistID, now); err != nil {
		if errors.Is(err, planRepo.ErrPlanNotActive) {
			s.logger.Warn("Cancel: plan id=%d no longer active", id)
			return ErrNotActive
		}
		s.logger.Error("Cancel: repository error for plan id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled plan id=%d", id)
	return nil
}

// Complete завершает прошедшую встречу
// Завершить можно только активную встречу с наступившим временем окончания
func (s *Service) Complete(ctx context.Context, id int64, req *models.CompletePlanRequest) error {
	s.logger.Info("Complete: completing plan id=%d by specialist=%d", id, req.SpecialistID)

	if len(req.Comment) > domain.MaxCommentLength {
		s.logger.Warn("Complete: comment too long for plan id=%d", id)
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	// 1. Получаем план и проверяем принадлежность специалисту
	p, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			s.logger.Warn("Complete: plan id=%d not found", id)
			return ErrPlanNotFound
		}
		s.logger.Error("Complete: repository error for plan id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if !p.BelongsToSpecialist(req.SpecialistID) {
		s.logger.Warn("Complete: plan id=%d does not belong to specialist=%d", id, req.SpecialistID)
		return ErrPlanNotFound
	}

	// 2. Проверяем состояние встречи
	if !p.IsAppointmentActive() {
		s.logger.Warn("Complete: plan id=%d has appointment status=%s, cannot complete", id, p.AppointmentStatus)
		return ErrNotActive
	}
	if p.AppointmentEnd == nil {
		s.logger.Warn("Complete: plan id=%d has no appointment end time", id)
		return ErrNoEndTime
	}

	now := s.timeProvider.Now()
	if now.Before(*p.AppointmentEnd) {
		s.logger.Warn("Complete: plan id=%d appointment ends at %s, too early to complete",
			id, p.AppointmentEnd.Format("2006-01-02 15:04"))
		return ErrTooEarly
	}

	// 3. Завершаем встречу (ссылка на событие календаря сохраняется)
	if err := s.planRepo.CompleteAppointment(ctx, id, req.Comment, now); err != nil {
		if errors.Is(err, planRepo.ErrPlanNotActive) {
			s.logger.Warn("Complete: plan id=%d no longer active", id)
			return ErrNotActive
		}
		s.logger.Error("Complete: repository error for plan id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed plan id=%d", id)
	return nil
}

// validateCreateRequest проверяет запрос на создание плана
func validateCreateRequest(req *models.CreatePlanRequest) error {
	name := strings.TrimSpace(req.TravelerName)
	if name == "" {
		return fmt.Errorf("%w: traveler name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxTravelerNameLength {
		return fmt.Errorf("%w: traveler name exceeds %d characters", ErrInvalidInput, domain.MaxTravelerNameLength)
	}

	email := strings.TrimSpace(req.TravelerEmail)
	if email == "" {
		return fmt.Errorf("%w: traveler email is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid traveler email", ErrInvalidInput)
	}

	return nil
}

// buildStepUpdate конвертирует запрос шага мастера в изменение для репозитория
func buildStepUpdate(req *models.UpdateStepRequest) (planRepo.StepUpdate, error) {
	upd := planRepo.StepUpdate{
		TravelerName:  req.TravelerName,
		TravelerEmail: req.TravelerEmail,
		TravelerPhone: req.TravelerPhone,
		SpecialistID:  req.SpecialistID,
		DestinationID: req.DestinationID,
	}

	if req.TravelerName != nil {
		name := strings.TrimSpace(*req.TravelerName)
		if name == "" {
			return planRepo.StepUpdate{}, fmt.Errorf("%w: traveler name cannot be empty", ErrInvalidInput)
		}
		if len(name) > domain.MaxTravelerNameLength {
			return planRepo.StepUpdate{}, fmt.Errorf("%w: traveler name exceeds %d characters", ErrInvalidInput, domain.MaxTravelerNameLength)
		}
		upd.TravelerName = &name
	}

	if req.TravelerEmail != nil {
		email := strings.TrimSpace(*req.TravelerEmail)
		if email == "" || !strings.Contains(email, "@") {
			return planRepo.StepUpdate{}, fmt.Errorf("%w: invalid traveler email", ErrInvalidInput)
		}
		upd.TravelerEmail = &email
	}

	if req.Status != nil {
		status, err := models.ToDomainPlanStatus(*req.Status)
		if err != nil {
			return planRepo.StepUpdate{}, fmt.Errorf("%w: invalid plan status", ErrInvalidInput)
		}
		upd.Status = &status
	}

	return upd, nil
}
