package outfitter

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/http/middleware"
	"github.com/xy-planning-network/cairn/http/resp"
	"github.com/xy-planning-network/cairn/http/session"
	"github.com/xy-planning-network/cairn/logger"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	AppTitleEnvVar   = "APP_TITLE"
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultAppTitle  = "cairn"
	defaultContactUs = "hello@xyplanningnetwork.com"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Maintenance mode defaults
	maintModeEnvVar = "MAINT_MODE"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// setupLog emits breadcrumbs while an *Outfitter is under construction.
var setupLog logger.Logger

// defaultOpts are the default configurations of an *Outfitter,
// applied before the options supplied to New.
func defaultOpts() []OutfitterOption {
	return []OutfitterOption{
		WithContext(context.Background()),
		WithEnv(environmentEnvVar),
		WithLogger(defaultLogger()),
		WithURL(os.Getenv(BaseURLEnvVar)),
		defaultSessionStore(),
		defaultResponder(),
	}
}

// defaultLogger constructs a logger.Logger configured for use throughout the cairn app.
//
// Confer the LOG_LEVEL, ENVIRONMENT and SENTRY_DSN env vars for usage.
func defaultLogger() logger.Logger {
	ll := logger.NewLogLevel(os.Getenv(logLevelEnvVar))
	if ll == logger.LogLevelUnk {
		ll = logger.LogLevelInfo
	}

	return logger.New(logger.WithLevel(ll))
}

// defaultMiddlewares is the middleware stack wrapping the handler mounted by WithHandler.
//
// Each request is rate limited, upgraded to HTTPS, tagged with an ID and IP address,
// logged, and stocked with the session and Responder before reaching the handler.
func defaultMiddlewares(o *Outfitter) []middleware.Adapter {
	return []middleware.Adapter{
		middleware.ReportPanic(o.env),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.ForceHTTPS(o.env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(o.l),
		middleware.InjectSession(o.sessions),
		middleware.InjectResponder(o.Responder),
	}
}

// defaultResponder configures the *resp.Responder used by http.Handlers.
func defaultResponder() OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		return func() error {
			args := []resp.ResponderOptFn{
				resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErr, o.contact)),
				resp.WithCtxKeys(cairn.RequestIDKey),
				resp.WithLogger(o.l),
				resp.WithRootUrl(o.url.String()),
			}

			o.Responder = resp.NewResponder(args...)
			return nil
		}, nil
	}
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// defaultSessionStore relies on three env vars:
//   - APP_TITLE
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
//
// When both keys are unset in an Environment that can stub services,
// sessions are backed by a stub instead.
func defaultSessionStore() OutfitterOption {
	return func(o *Outfitter) (OptFollowup, error) {
		return func() error {
			if o.sessions != nil {
				return nil
			}

			ak, ek := os.Getenv(SessionAuthKeyEnvVar), os.Getenv(SessionEncryptKeyEnvVar)
			if ak == "" && ek == "" && o.env.CanUseServiceStub() {
				o.sessions = session.NewStubService()
				if setupLog != nil {
					setupLog.Debug("using stub session store", nil)
				}

				return nil
			}

			if ak == "" || ek == "" {
				return fmt.Errorf("%s and %s must be set", SessionAuthKeyEnvVar, SessionEncryptKeyEnvVar)
			}

			appName := strings.ToLower(cairn.EnvVarOrString(AppTitleEnvVar, defaultAppTitle))
			appName = regexp.MustCompile(`[,':]`).ReplaceAllString(appName, "")
			appName = regexp.MustCompile(`\s`).ReplaceAllString(appName, "-")

			cfg := session.Config{
				AuthKey:     ak,
				EncryptKey:  ek,
				Env:         o.env,
				SessionName: "cairn-" + appName,
			}

			args := []session.ServiceOpt{
				session.WithCookie(),
				session.WithMaxAge(3600 * 24 * 7),
			}

			store, err := session.NewStoreService(cfg, args...)
			if err != nil {
				return err
			}

			o.sessions = store
			return nil
		}, nil
	}
}

// defaultServer constructs a default *http.Server.
//
// Confer the PORT and SERVER_*_TIMEOUT env vars for usage.
func defaultServer(ctx context.Context) *http.Server {
	port := cairn.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  cairn.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  cairn.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: cairn.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
