package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/metconstats/internal/telemetry/metrics"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking handler into a 500. The panic is logged with its
// stack, counted, and reported to sentry (a no-op when sentry is not set up).
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				log.WithFields(log.Fields{
					"method": req.Method,
					"route":  routeName(req),
				}).Errorf("panic serving %s: %v\n%s", req.URL.Path, recovered, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				if hub := sentry.CurrentHub(); hub.Client() != nil {
					hub.CaptureException(fmt.Errorf("panic serving %s: %v", req.URL.Path, recovered))
				}

				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
