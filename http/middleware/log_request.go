package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/logger"
)

// LogRequest logs the request's method, requested URL, originating IP address
// and user agent using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// If logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			cairn.Mask(q, "password")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if val := r.Context().Value(cairn.IpAddrKey); val != nil {
				strs = append([]string{val.(string)}, strs...)
			}
			if ua := r.UserAgent(); ua != "" {
				strs = append(strs, ua)
			}

			ls.Info(strings.Join(strs, " "), nil)
			h.ServeHTTP(w, r)
		})
	}
}
