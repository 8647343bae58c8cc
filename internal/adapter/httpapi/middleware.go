package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// AuthMiddleware validates the bearer token on every request.
// If the token is missing or invalid, it responds 401 without reaching
// the next handler. The health endpoint stays open for probes.
func AuthMiddleware(validToken string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isHealthPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			writeErrorMessage(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing authorization header")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token != validToken {
			writeErrorMessage(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isHealthPath(path string) bool {
	return path == "/health" || path == "/api/v1/health"
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per handled request with structured fields.
func RequestLogger(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Info("request handled")
	})
}
