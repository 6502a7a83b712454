package select_slot

import "errors"

var (
	// ErrPlanNotFound возвращается, когда план не найден
	ErrPlanNotFound = errors.New("select_slot: plan not found")

	// ErrAppointmentAlreadyActive возвращается при попытке перевыбрать слот
	// у плана с уже активной или завершённой встречей
	ErrAppointmentAlreadyActive = errors.New("select_slot: appointment is already booked")

	// ErrSlotNotAvailable возвращается, когда выбранный слот не входит
	// в актуальную доступность специалиста
	ErrSlotNotAvailable = errors.New("select_slot: slot is not available")

	// ErrSpecialistNotFound возвращается, когда специалист не найден или неактивен
	ErrSpecialistNotFound = errors.New("select_slot: specialist not found")

	// ErrSpecialistMisconfigured возвращается, когда у специалиста нет
	// рабочих часов или часового пояса
	ErrSpecialistMisconfigured = errors.New("select_slot: specialist is not configured for booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("select_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("select_slot: internal error")
)
