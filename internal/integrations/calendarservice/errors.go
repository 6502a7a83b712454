package calendarservice

import "errors"

var (
	// ErrNotConnected возвращается, когда у специалиста не подключен внешний календарь
	ErrNotConnected = errors.New("calendarservice client: calendar is not connected")

	// ErrEventNotFound возвращается, когда событие уже отсутствует в календаре
	// Для удаления это не фатальная ошибка: событие могли удалить руками
	ErrEventNotFound = errors.New("calendarservice client: event not found")

	// ErrCalendarService возвращается при ошибке календарного сервиса
	ErrCalendarService = errors.New("calendarservice client: provider failure")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarservice client: invalid response")
)
