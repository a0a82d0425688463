package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes bounds what is read from an unconsumed body; past that the
// connection is not worth keeping alive.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest discards what the handler left of the request body (up to
// maxDrainBytes) and closes it, so the keep-alive connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
