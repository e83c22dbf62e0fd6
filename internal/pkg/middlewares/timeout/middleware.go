package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware ограничивает время запроса. Истекший контекст видят и вызовы шлюза из обработчика
// (accept, смена статуса). timeout <= 0 выключает ограничение.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// дедлайн клиента короче нашего - оставляем его
			if deadline, ok := r.Context().Deadline(); ok && time.Until(deadline) < timeout {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
