package get_specialist_plans

import (
	"fmt"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

// ToServiceRequest собирает запрос сервиса из query-параметров
// startDate/endDate — YYYY-MM-DD, интерпретируются как границы суток UTC
func ToServiceRequest(specialistID int64, status, startDateStr, endDateStr string) (*models.GetSpecialistPlansRequest, error) {
	req := &models.GetSpecialistPlansRequest{
		SpecialistID: specialistID,
	}

	if status != "" {
		req.AppointmentStatus = &status
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %v", err)
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %v", err)
		}
		// Конец периода включает весь день
		endOfDay := endDate.Add(24*time.Hour - time.Second)
		req.EndDate = &endOfDay
	}

	return req, nil
}
