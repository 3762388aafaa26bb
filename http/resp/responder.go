package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/cairn"
	"github.com/xy-planning-network/cairn/http/session"
	"github.com/xy-planning-network/cairn/logger"
)

const responderFrames = 0

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Json
//	Redirect
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
// Meaning, one needs only application-wide configuration of how HTTP responses should look.
// Our suggestion does not exclude creating diverse Responders
// for non-overlapping segments of an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions. While one can create functions of the same type,
// the Responder and Response structs do not expose much - if anything - to interact with.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Error message to use for "contact us" style client-side error messages,
	// i.e., those set in a session.Flash
	contactErrMsg string

	// Root URL the responder is listening on, also used when in an error state
	rootUrl *url.URL

	// Injectors folding values from the *http.Request.Context into JSON payloads
	injectors []ContextInjector
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
//
// TODO(dlk): make setting root url required arg? + cannot redirect in err state w/o
func NewResponder(opts ...ResponderOptFn) *Responder {
	// ranging over opts may or may not overwrite defaults
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	// NOTE(dlk): fields set with cairn.NewFieldsContext always flow into payloads.
	d.injectors = append(d.injectors, FieldsInjector{})

	return d
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// Use in exceptional circumstances when no Redirect or Json can occur.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	defer r.Body.Close()
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	var msg string
	if err != nil {
		msg = err.Error()
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	http.Error(w, msg, code)
}

// Json responds with the *Envelope set by Data() compiled into its JSON payload
// and sets appropriate headers.
//
// For an Envelope built with Success("ok").WithField("answer", 42),
// the JSON payload will look like this:
//
//	{
//		"success": true,
//		"message": "ok",
//		"answer": 42
//	}
//
// Values stored in the *http.Request.Context under keys named by WithCtxKeys
// or set with cairn.NewFieldsContext join the payload under their own keys.
// Keys already claimed by the Envelope are left untouched.
//
// When no Data() is supplied, Json responds with whatever the context contributes,
// at its barest an empty JSON object.
//
// The default response status code is 200; Json never picks a status code
// from the shape of the Envelope, use Code() to set one.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.closeBody {
		defer r.Body.Close()
	}

	if rr.code == 0 {
		if err := Code(http.StatusOK)(*doer, rr); err != nil {
			return err
		}
	}

	payload := make(map[string]any)
	if rr.env != nil {
		payload = rr.env.Compile()
	}

	for _, i := range doer.injectors {
		i.Inject(payload, r.Context())
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	if rr.closeBody {
		defer r.Body.Close()
	}

	// NOTE(dlk): because of the default ToRoot(),
	// this check safeguards against bugs in the above.
	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE(dlk): code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		// TODO(dlk): use 303?
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// Session retrieves the session set in the context as a session.CairnSessionable.
//
// If middleware.InjectSession did not run or the context.Context has no
// value for cairn.SessionKey, ErrNotFound returns.
func (doer Responder) Session(ctx context.Context) (session.CairnSessionable, error) {
	val := ctx.Value(cairn.SessionKey)
	if val == nil {
		return nil, fmt.Errorf("%w: no session found with %q", ErrNotFound, cairn.SessionKey)
	}

	s, ok := val.(session.CairnSessionable)
	if !ok {
		return nil, fmt.Errorf("%w: is not session.CairnSessionable, is %T", ErrInvalid, val)
	}

	return s, nil
}

// FromContext retrieves the *Responder set in the context by middleware.InjectResponder.
//
// If middleware.InjectResponder did not run or the context.Context has no
// value for cairn.ResponderKey, ErrNotFound returns.
func FromContext(ctx context.Context) (*Responder, error) {
	val := ctx.Value(cairn.ResponderKey)
	if val == nil {
		return nil, fmt.Errorf("%w: no responder found with %q", ErrNotFound, cairn.ResponderKey)
	}

	d, ok := val.(*Responder)
	if !ok {
		return nil, fmt.Errorf("%w: is not *resp.Responder, is %T", ErrInvalid, val)
	}

	return d, nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// do closes the *http.Request.Body, which no calling code can read from again.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless attempts to retry calling functional options until all do not return errors or,
// a set of options unable to not return errors is reached.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		closeBody: true,
		w:         w,
		r:         r,
	}

	var err error
	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err = opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	var i int
	for i < len(redos) {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			// NOTE(dlk): because doer.redo mutates the length of redos,
			// confirm we are running up against a set of functions
			// that will not return anything other than errors by checking
			// the length of redos has not changed since calling doer.redo.
			i = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	// NOTE(dlk): wrapup errors to send back
	if len(redos) != 0 {
		for i, opt := range redos {
			nested := opt(*doer, resp)
			if i == 0 {
				continue
			}
			err = fmt.Errorf("%w: %s", nested, err)
		}
	}

	if err != nil {
		return resp, err
	}

	return resp, nil
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}
