package outfitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/http/middleware"
	"github.com/xy-planning-network/cairn/http/resp"
	"github.com/xy-planning-network/cairn/http/session"
	"github.com/xy-planning-network/cairn/logger"
)

// An OutfitterOption configures an *Outfitter either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some OutfitterOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithSessionStore is an example of the first.
// An unexported field on the passed in *Outfitter is updated with the enclosed value.
//
// WithResponder is an example of the second.
// An unexported field on the passed in *Outfitter
// is updated only when the closure it returns is called.
type OutfitterOption func(o *Outfitter) (OptFollowup, error)
type OptFollowup func() error

// WithContext exposes the provided context.Context to the cairn app.
func WithContext(ctx context.Context) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.ctx = ctx
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using context %T", ctx), nil)
		}

		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
// WithEnv then exposes that Environment to the cairn app.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) OutfitterOption {
	e := cairn.Environment(envVar)
	err := e.Valid()
	if err == nil {
		return func(o *Outfitter) (OptFollowup, error) {
			o.env = e
			if setupLog != nil {
				setupLog.Debug(fmt.Sprintf("using env %s", e), nil)
			}

			return nil, nil
		}
	}

	return func(o *Outfitter) (OptFollowup, error) {
		o.env = cairn.EnvVarOrEnv(envVar, cairn.Development)
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using env %s", o.env), nil)
		}

		return nil, nil
	}
}

// WithHandler mounts h as the root http.Handler of the cairn app.
//
// New wraps h in a middleware stack,
// either the default one or the stack given to WithMiddlewares.
func WithHandler(h http.Handler) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.handler = h
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using handler %T", h), nil)
		}

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the cairn app.
func WithLogger(l logger.Logger) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.l = l
		if setupLog == nil {
			setupLog = l
		}

		setupLog.Debug(fmt.Sprintf("using logger %T", l), nil)

		return nil, nil
	}
}

// WithMiddlewares replaces the default middleware stack
// with the provided middleware.Adapters.
//
// Adapters wrap the handler mounted by WithHandler in order,
// the first Adapter fielding each request first.
func WithMiddlewares(mws ...middleware.Adapter) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.mws = mws
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using %d middlewares", len(mws)), nil)
		}

		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the cairn app.
func WithResponder(d *resp.Responder) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		return func() error {
			o.Responder = d
			if setupLog != nil {
				setupLog.Debug("using responder", nil)
			}

			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the cairn app.
//
// New mounts the middleware-wrapped handler on the server,
// overwriting any http.Server.Handler already set.
func WithServer(s *http.Server) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.srv = s
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using server %T", s), nil)
		}

		return nil, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the cairn app.
func WithSessionStore(store session.SessionStorer) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		o.sessions = store
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using session store %T", store), nil)
		}

		return nil, nil
	}
}

// WithURL parses the provided string into the base URL
// the cairn app operates at and exposes it to the app.
//
// An unparseable value falls back to http://localhost:3000.
func WithURL(u string) OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			parsed, _ = url.ParseRequestURI(defaultBaseURL)
		}

		o.url = parsed
		if setupLog != nil {
			setupLog.Debug(fmt.Sprintf("using base URL %s", parsed), nil)
		}

		return nil, nil
	}
}
