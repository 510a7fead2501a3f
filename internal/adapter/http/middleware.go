package adapthttp

import (
	"net/http"
	"time"

	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

const sessionCookie = "session"

type portalHandler func(w http.ResponseWriter, r *http.Request, sess domain.Session)

// requirePortal resolves the session cookie to a descriptor of the given
// portal before calling next.
func (s *Server) requirePortal(portal domain.Portal, next portalHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slot := sessionSlot(r)
		if slot == "" {
			s.writeFailure(w, r, domain.ErrLoginRequired)
			return
		}
		sess, err := s.auth.Require(r.Context(), slot, portal)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		next(w, r, sess)
	})
}

// sessionSlot returns the session token carried by r, or "". The empty slot
// is the process default and is never reachable over HTTP.
func sessionSlot(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
