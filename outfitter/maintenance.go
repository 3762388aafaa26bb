package outfitter

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/cairn/http/resp"
	"github.com/xy-planning-network/cairn/logger"
)

// MaintModeHandler responds to every request with 503 Service Unavailable,
// steering clients to retry after ten minutes.
//
// Clients accepting JSON receive a failure envelope naming the contact email.
// New swaps in a MaintModeHandler when the MAINT_MODE env var is true.
func MaintModeHandler(l logger.Logger, contact string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "600")

		if !strings.Contains(r.Header.Get("Accept"), "application/json") {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		e := resp.Fail("Down for maintenance, please try again soon.").WithField("contact", contact)
		b, err := e.Body()
		if err != nil {
			if l != nil {
				l.Error(err.Error(), nil)
			}

			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write(b)
	})
}
