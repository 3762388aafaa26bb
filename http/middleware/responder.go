package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/http/resp"
)

// InjectResponder stores a *resp.Responder in the *http.Request.Context
// under cairn.ResponderKey, thereby making it available to handlers
// through resp.FromContext.
//
// If rp is nil, NoopAdapter returns and this middleware does nothing.
func InjectResponder(rp *resp.Responder) Adapter {
	if rp == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), cairn.ResponderKey, rp)))
		})
	}
}
