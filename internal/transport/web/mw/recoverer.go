package mw

import (
	"log"
	"net/http"
	"runtime/debug"
)

// Recoverer перехватывает панику в обработчике, пишет лог со стеком
// и возвращает 500 в общем конверте.
func Recoverer(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					reqID := RequestIDFromCtx(r.Context())
					l.Printf("lvl=error req_id=%s panic=%v uri=%s method=%s\nstack:\n%s",
						reqID, rec, r.RequestURI, r.Method, string(debug.Stack()))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":{"code":1500,"text":"unexpected"}}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
