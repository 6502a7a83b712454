package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM or HH:MM:SS")
)

// TimeString строковое представление времени суток в формате HH:MM
// Используется для рабочих часов и времени слотов (время без даты)
// При парсинге принимает также HH:MM:SS (секунды отбрасываются)
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	normalized, err := ts.normalize()
	if err != nil {
		return "", err
	}
	return normalized, nil
}

// normalize приводит значение к формату HH:MM, отбрасывая секунды при их наличии
func (t TimeString) normalize() (TimeString, error) {
	if parsed, err := time.Parse("15:04", string(t)); err == nil {
		return TimeString(parsed.Format("15:04")), nil
	}
	if parsed, err := time.Parse("15:04:05", string(t)); err == nil {
		return TimeString(parsed.Format("15:04")), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	_, err := t.normalize()
	return err
}

// IsZero проверяет, что значение не заполнено
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// ToMinutes возвращает количество минут с начала суток
func (t TimeString) ToMinutes() (int, error) {
	normalized, err := t.normalize()
	if err != nil {
		return 0, err
	}
	parsed, err := time.Parse("15:04", string(normalized))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes вперёд
// Переход через полночь заворачивается (23:30 + 60 минут = 00:30)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.ToMinutes()
	if err != nil {
		return "", err
	}

	total = (total + minutes) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore проверяет, что время строго раньше other
// Некорректные значения считаются не-раньше (ошибка формата ловится в Validate)
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.ToMinutes()
	if err != nil {
		return false
	}
	b, err := other.ToMinutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.ToMinutes()
	if err != nil {
		return false
	}
	b, err := other.ToMinutes()
	if err != nil {
		return false
	}
	return a > b
}
