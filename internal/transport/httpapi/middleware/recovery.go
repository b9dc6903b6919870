package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// Recovery returns a panic recovery middleware. The log line carries the
// same request identity the logger middleware attaches, and the response
// keeps the API's JSON error shape.
func Recovery(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					attrs := []any{
						"error", fmt.Sprintf("%v", rec),
						"path", r.URL.Path,
						"method", r.Method,
						"stack", string(debug.Stack()),
					}
					if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
						attrs = append(attrs, "request_id", reqID)
					}
					if username, ok := GetUsernameFromContext(r.Context()); ok {
						attrs = append(attrs, "username", username)
					}
					log.Error("Panic recovered", attrs...)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
