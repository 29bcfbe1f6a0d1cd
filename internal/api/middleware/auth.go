package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/VTC-PlanningService/internal/api/handlers"
)

type contextKey string

const driverIDKey contextKey = "driverID"

// HeaderDriverID заголовок аутентификации водителя
// Проверку подписи выполняет API gateway, сюда заголовок приходит уже проверенным
const HeaderDriverID = "X-Driver-ID"

// Auth извлекает ID водителя из заголовка X-Driver-ID и кладет его в контекст
// Запросы без валидного заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderDriverID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-Driver-ID")
			return
		}

		driverID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || driverID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-Driver-ID")
			return
		}

		ctx := context.WithValue(r.Context(), driverIDKey, driverID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDriverID возвращает ID водителя из контекста запроса
func GetDriverID(ctx context.Context) (int64, bool) {
	driverID, ok := ctx.Value(driverIDKey).(int64)
	return driverID, ok
}
