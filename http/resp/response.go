package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/cairn/http/session"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
//
// Notably, a Response holds the *Envelope whose compiled payload answers
// the HTTP request.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	env       *Envelope
	url       *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided *Envelope for writing to the client.
//
// Used with Responder.Json.
func Data(e *Envelope) Fn {
	return func(_ Responder, r *Response) error {
		r.env = e
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			var data map[string]any
			if r.env != nil {
				data = r.env.Compile()
			}
			d.logger.Error(e.Error(), newLogContext(r.r, e, data))
		}

		if err := Code(http.StatusInternalServerError)(d, r); err != nil {
			return err
		}

		return nil
	}
}

// Flash sets a flash message in the session with the passed in class and msg.
func Flash(flash session.Flash) Fn {
	return func(d Responder, r *Response) error {
		s, err := d.Session(r.r.Context())
		if err != nil {
			return err
		}

		s.SetFlash(r.w, r.r, flash)
		return nil
	}
}

// GenericErr combines Err() and Flash() to log the passed in error
// and set a generic error flash in the session
// using either the string set by WithContactErrMsg or session.DefaultErrMsg.
func GenericErr(e error) Fn {
	return func(d Responder, r *Response) error {
		if err := Err(e)(d, r); err != nil {
			return err
		}

		msg := session.DefaultErrMsg
		if d.contactErrMsg != "" {
			msg = d.contactErrMsg
		}
		if err := Flash(session.Flash{Class: session.FlashError, Msg: msg})(d, r); err != nil {
			return err
		}

		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return Params(map[string]string{key: val})
}

// Params adds the query parameters to the response's URL.
//
// Used with Responder.Redirect.
func Params(params map[string]string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		for key, val := range params {
			q.Add(key, val)
		}
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// ToRoot calls Url with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		r.url = d.rootUrl
		return nil
	}
}

// Url parses the raw URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}
		r.url = parsed
		return nil
	}
}

// Warn sets a flash warning in the session and logs the warning.
func Warn(msg string) Fn {
	return func(d Responder, r *Response) error {
		var data map[string]any
		if r.env != nil {
			data = r.env.Compile()
		}
		d.logger.Warn(msg, newLogContext(r.r, nil, data))

		if err := Flash(session.Flash{Class: session.FlashWarning, Msg: msg})(d, r); err != nil {
			return err
		}

		return nil
	}
}
