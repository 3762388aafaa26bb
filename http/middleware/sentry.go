package middleware

import (
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/cairn"
)

// ReportPanic recovers and reports panics to Sentry
// by wrapping the handler in sentryhttp.Handle.
//
// In development, panics surface directly, so NoopAdapter returns.
func ReportPanic(env cairn.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return sh.Handle
}
