package specialists

import (
	"context"
	"errors"
	"fmt"

	specialistRepo "github.com/m04kA/TRV-PlanService/internal/infra/storage/specialist"
	"github.com/m04kA/TRV-PlanService/internal/service/specialists/models"
)

// Service сервис для работы с профилями специалистов
type Service struct {
	specialistRepo SpecialistRepository
	txManager      TxManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса специалистов
func NewService(
	specialistRepo SpecialistRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		specialistRepo: specialistRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetByID получает профиль специалиста вместе с рабочими часами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SpecialistResponse, error) {
	s.logger.Info("GetByID: fetching specialist id=%d", id)

	specialist, err := s.specialistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("GetByID: specialist id=%d not found", id)
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("GetByID: repository error for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched specialist id=%d with %d working hours",
		id, len(specialist.WorkingHours))
	return models.FromDomainSpecialist(specialist), nil
}

// UpdateWorkingHours заменяет рабочие часы специалиста целиком
// Запрос всегда присылает полный набор окон; окна через полночь допустимы,
// пересечения окон не схлопываются
func (s *Service) UpdateWorkingHours(ctx context.Context, id int64, req *models.UpdateWorkingHoursRequest) (*models.SpecialistResponse, error) {
	s.logger.Info("UpdateWorkingHours: updating working hours for specialist id=%d, windows=%d",
		id, len(req.WorkingHours))

	hours, err := req.ToDomainWorkingHours()
	if err != nil {
		s.logger.Warn("UpdateWorkingHours: invalid working hours for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: invalid time format, expected HH:MM", ErrInvalidInput)
	}

	// Замена происходит в одной транзакции: delete + insert атомарны
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.specialistRepo.GetByID(txCtx, id); err != nil {
			return err
		}
		return s.specialistRepo.ReplaceWorkingHours(txCtx, id, hours)
	})
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("UpdateWorkingHours: specialist id=%d not found", id)
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("UpdateWorkingHours: transaction error for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - transaction error: %v", ErrInternal, err)
	}

	updated, err := s.specialistRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateWorkingHours: failed to fetch updated specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - fetch after update: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: successfully updated specialist id=%d", id)
	return models.FromDomainSpecialist(updated), nil
}
