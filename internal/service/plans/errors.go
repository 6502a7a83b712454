package plans

import "errors"

var (
	// ErrPlanNotFound возвращается, когда план не найден или не принадлежит специалисту
	// Чужие планы не раскрываются: для вызывающего они неотличимы от несуществующих
	ErrPlanNotFound = errors.New("plans service: plan not found")

	// ErrNotActive возвращается при попытке отменить или завершить неактивную встречу
	ErrNotActive = errors.New("plans service: only active appointments can be modified")

	// ErrNoEndTime возвращается при попытке завершить встречу без времени окончания
	ErrNoEndTime = errors.New("plans service: appointment has no end time")

	// ErrTooEarly возвращается при попытке завершить встречу до её окончания
	ErrTooEarly = errors.New("plans service: appointment has not ended yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("plans service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("plans service: internal error")
)
