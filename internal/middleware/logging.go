package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/metconstats/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every request once it has been served, with its status and duration.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !log.IsLevelEnabled(log.TraceLevel) {
				next.ServeHTTP(w, r)
				return
			}

			begin := time.Now()
			resp := &responseWriter{w, http.StatusOK}
			next.ServeHTTP(resp, r)

			log.WithFields(log.Fields{
				"method":   r.Method,
				"route":    routeName(r),
				"path":     r.URL.Path,
				"client":   pkg.ClientIP(r),
				"status":   resp.statusCode,
				"duration": time.Since(begin).String(),
			}).Trace(" ====> request")
		})
	}
}
