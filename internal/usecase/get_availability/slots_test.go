package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TRV-PlanService/internal/domain"
)

func TestGenerateSlotsForWindow_StandardDay(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	w := domain.WorkingHour{StartTime: "09:00", EndTime: "17:00"}

	slots, err := generateSlotsForWindow(date, w, 60, loc)
	require.NoError(t, err)

	// Часовые кандидаты 09:00..16:00, последний заканчивается ровно в 17:00
	require.Len(t, slots, 8)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "10:00", slots[0].TimeEnd)
	assert.Equal(t, "16:00", slots[7].Time)
	assert.Equal(t, "17:00", slots[7].TimeEnd)

	for _, s := range slots {
		assert.Equal(t, "2026-03-12", s.Date)
		assert.Equal(t, 60, s.DurationMinutes)
		assert.Equal(t, time.Hour, s.End.Sub(s.Start))
	}
}

func TestGenerateSlotsForWindow_DurationNotFittingLastHour(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	w := domain.WorkingHour{StartTime: "09:00", EndTime: "17:00"}

	slots, err := generateSlotsForWindow(date, w, 90, loc)
	require.NoError(t, err)

	// 16:00 + 90 минут выходит за 17:00, последний кандидат — 15:00
	require.Len(t, slots, 7)
	assert.Equal(t, "15:00", slots[6].Time)
	assert.Equal(t, "16:30", slots[6].TimeEnd)
}

func TestGenerateSlotsForWindow_WindowNotOnHourBoundary(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	w := domain.WorkingHour{StartTime: "09:30", EndTime: "12:00"}

	slots, err := generateSlotsForWindow(date, w, 30, loc)
	require.NoError(t, err)

	// Граница 09:00 раньше начала окна и пропускается, первый кандидат 10:00
	require.Len(t, slots, 2)
	assert.Equal(t, "10:00", slots[0].Time)
	assert.Equal(t, "11:00", slots[1].Time)
}

func TestGenerateSlotsForWindow_Overnight(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	w := domain.WorkingHour{StartTime: "22:00", EndTime: "06:00"}

	slots, err := generateSlotsForWindow(date, w, 60, loc)
	require.NoError(t, err)

	// Конец окна на следующий день: кандидаты 22:00..05:00
	require.Len(t, slots, 8)
	assert.Equal(t, "22:00", slots[0].Time)
	assert.Equal(t, "2026-03-12", slots[0].Date)
	assert.Equal(t, "05:00", slots[7].Time)
	assert.Equal(t, "2026-03-13", slots[7].Date)

	// Абсолютные метки монотонно возрастают через полночь
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].Start.After(slots[i-1].Start))
	}
}

func TestGenerateSlotsForWindow_WindowShorterThanDuration(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	w := domain.WorkingHour{StartTime: "09:00", EndTime: "10:00"}

	slots, err := generateSlotsForWindow(date, w, 120, loc)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsForWindow_TimezoneConversion(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow") // UTC+3, без переходов
	require.NoError(t, err)

	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	w := domain.WorkingHour{StartTime: "09:00", EndTime: "11:00"}

	slots, err := generateSlotsForWindow(date, w, 60, loc)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// Строки локальные, абсолютные метки в UTC
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, time.Date(2026, 3, 12, 6, 0, 0, 0, time.UTC), slots[0].Start)
}

func TestGenerateSlotsForDate_OverlappingWindowsNotDeduplicated(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	hours := []domain.WorkingHour{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "10:00", EndTime: "13:00"},
	}

	slots, err := generateSlotsForDate(date, hours, 60, loc)
	require.NoError(t, err)

	// 3 кандидата из первого окна + 3 из второго, пересечение даёт дубли
	require.Len(t, slots, 6)

	seen := map[string]int{}
	for _, s := range slots {
		seen[s.Time]++
	}
	assert.Equal(t, 2, seen["10:00"])
	assert.Equal(t, 2, seen["11:00"])
}

func TestGenerateSlotsForDate_InvalidWindow(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	hours := []domain.WorkingHour{
		{StartTime: "bad", EndTime: "17:00"},
	}

	_, err := generateSlotsForDate(date, hours, 60, loc)
	require.Error(t, err)
}
