package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
)

type contextKey string

// SpecialistIDKey ключ контекста с ID аутентифицированного специалиста
const SpecialistIDKey contextKey = "specialistID"

// HeaderSpecialistID заголовок аутентификации специалиста
// Проверкой подписи занимается API gateway, сервис доверяет заголовку
const HeaderSpecialistID = "X-Specialist-ID"

// Auth проверяет наличие заголовка X-Specialist-ID и кладёт ID в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(HeaderSpecialistID)
		if idStr == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-Specialist-ID")
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-Specialist-ID")
			return
		}

		ctx := context.WithValue(r.Context(), SpecialistIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SpecialistIDFromContext извлекает ID специалиста из контекста
func SpecialistIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(SpecialistIDKey).(int64)
	return id, ok
}
