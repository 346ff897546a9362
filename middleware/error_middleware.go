package middleware

import (
	"encoding/json"
	"log"
	"mapify-server/utils/errors"
	"net/http"
	"runtime/debug"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ErrorMiddleware recovers panics as ErrInternal and logs the route of every
// response that ends in a server error.
func ErrorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if p := recover(); p != nil {
					log.Printf("Panic recovered on %s %s: %v\n%s", r.Method, r.URL.Path, p, debug.Stack())
					WriteError(rec, errors.ErrInternal)
				}
				if rec.status >= 500 {
					log.Printf("%s %s answered %d", r.Method, r.URL.Path, rec.status)
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

// WriteError writes err as a JSON APIError. Errors that are not APIErrors
// become 500s, whose details are logged but not sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*errors.APIError)
	if !ok {
		apiErr = errors.Wrap(err, "UNKNOWN_ERROR", "Unexpected error", errors.ErrInternal.Status)
	}
	if apiErr.Status >= 500 {
		log.Printf("Server error %s (Details: %s)", apiErr.Error(), apiErr.Details)
	}
	body := apiErr
	if apiErr.Status == http.StatusInternalServerError && apiErr.Details != "" {
		body = errors.NewAPIError(apiErr.Code, apiErr.Message, apiErr.Status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(body)
}
