/*
The middleware package defines what a middleware is in cairn and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- Idempotent
- InjectIPAddress
- InjectResponder
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain;
the outfitter package configures one. Otherwise, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
		middleware.InjectResponder(responder),
	}
*/
package middleware
