package resp

import (
	"net/url"

	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the error message to use for error Flashes.
//
// We recommend using session.ContactUsErr as a template.
func WithContactErrMsg(msg string) func(*Responder) {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithCtxKeys sets the cairn.Keys whose context values Json folds into payloads.
//
// Zero-value and duplicate keys are elided.
func WithCtxKeys(keys ...cairn.Key) func(*Responder) {
	return func(d *Responder) {
		d.injectors = append(d.injectors, KeysInjector{Keys: cairn.ByKey(keys).UniqueSort()})
	}
}

// WithInjector adds the custom ContextInjector to those Json runs over every payload.
func WithInjector(i ContextInjector) func(*Responder) {
	return func(d *Responder) {
		if i == nil {
			i = NoopInjector{}
		}
		d.injectors = append(d.injectors, i)
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures a default.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for redirecting.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) func(*Responder) {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}
