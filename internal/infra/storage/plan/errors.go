package plan

import "errors"

var (
	// ErrPlanNotFound возвращается, когда план не найден
	ErrPlanNotFound = errors.New("plan.repository: plan not found")

	// ErrPlanNotActive возвращается, когда условное обновление не прошло
	// из-за того, что встреча не находится в статусе active
	ErrPlanNotActive = errors.New("plan.repository: appointment is not active")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("plan.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("plan.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("plan.repository: failed to scan row")
)
