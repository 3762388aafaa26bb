package outfitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/http/middleware"
	"github.com/xy-planning-network/cairn/http/resp"
	"github.com/xy-planning-network/cairn/http/session"
	"github.com/xy-planning-network/cairn/logger"
)

// An Outfitter manages and exposes all components of a cairn app to one another.
type Outfitter struct {
	*resp.Responder

	contact  string
	ctx      context.Context
	env      cairn.Environment
	handler  http.Handler
	l        logger.Logger
	mws      []middleware.Adapter
	sessions session.SessionStorer
	srv      *http.Server
	url      *url.URL
}

// New constructs an Outfitter from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...OutfitterOption) (*Outfitter, error) {
	o := new(Outfitter)
	o.contact = cairn.EnvVarOrString(ContactUsEnvVar, defaultContactUs)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Outfitter under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *Outfitter
	// until either (1) user supplied OutfitterOptions or (2) default OutfitterOptions
	// configure the *Outfitter first.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(o)
		if err != nil {
			return o, fmt.Errorf("%w: %s", cairn.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", cairn.ErrBadConfig, err)
		}
	}

	if o.handler == nil {
		o.handler = http.NotFoundHandler()
	}

	if o.srv == nil {
		o.srv = defaultServer(o.ctx)
	}

	if o.mws == nil {
		o.mws = defaultMiddlewares(o)
	}

	o.handler = middleware.Chain(o.handler, o.mws...)
	if cairn.EnvVarOrBool(maintModeEnvVar, false) {
		o.handler = MaintModeHandler(o.l, o.contact)
	}

	o.srv.Handler = o.handler

	return o, nil
}

func (o *Outfitter) EmitEnv() cairn.Environment              { return o.env }
func (o *Outfitter) EmitLogger() logger.Logger               { return o.l }
func (o *Outfitter) EmitSessionStore() session.SessionStorer { return o.sessions }

// Guide begins the web server.
//
// These, and (*Outfitter).Shutdown, stop Guide:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (o *Outfitter) Guide() error {
	var cancel context.CancelFunc
	o.ctx, cancel = context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		s := <-ch
		o.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
		cancel()
	}()

	go func() {
		o.l.Info(fmt.Sprintf("running web server at %s", o.srv.Addr), nil)
		o.srv.Handler = o.handler
		if err := o.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			o.l.Error(err.Error(), nil)
		}
	}()

	<-o.ctx.Done()
	return o.Shutdown()
}

// Shutdown shutdowns the web server.
func (o *Outfitter) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	o.l.Info("shutting down web server", nil)
	err := o.srv.Shutdown(shutdownCtx)
	if err == http.ErrServerClosed {
		o.l.Info("web server shutdown successfully", nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	o.l.Info("web server shutdown successfully", nil)
	return nil
}
