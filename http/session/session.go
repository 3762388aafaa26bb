package session

import (
	"net/http"
	"net/url"

	gorilla "github.com/gorilla/sessions"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey  = "cairn-session-gorilla"      // used by Service
	oldInputKey = sessionKey + "-old-input"    // used by Session
	errMsgsKey  = sessionKey + "-err-messages" // used by Session
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The InputSessionable wraps methods for stashing a rejected submission
// and retrieving it exactly once on the follow-up request,
// the redirect-after-failed-validation flow.
type InputSessionable interface {
	ErrorMessages(w http.ResponseWriter, r *http.Request) []string
	OldInput(w http.ResponseWriter, r *http.Request) url.Values
	SetErrorMessages(w http.ResponseWriter, r *http.Request, msgs []string) error
	SetOldInput(w http.ResponseWriter, r *http.Request, vals url.Values) error
}

// The CairnSessionable composes session's major interfaces.
type CairnSessionable interface {
	FlashSessionable
	InputSessionable
	Sessionable
}

// A Session provides all functionality for managing a fully featured session.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session as an implementation of CairnSessionable
// from a *gorilla.Session.
//
// Typical usage is to pass in the value retrieved from a http.Request.Context.
func NewSession(g *gorilla.Session) CairnSessionable { return Session{s: g} }

func (s Session) ClearFlashes(w http.ResponseWriter, r *http.Request) {
	_ = s.Flashes(w, r)
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// ErrorMessages retrieves the error messages stored in the session by SetErrorMessages.
//
// Like Flashes, the messages are removed once accessed.
func (s Session) ErrorMessages(w http.ResponseWriter, r *http.Request) []string {
	raw, ok := s.s.Values[errMsgsKey]
	if !ok {
		return nil
	}

	delete(s.s.Values, errMsgsKey)
	msgs, ok := raw.([]string)
	if !ok {
		return nil
	}

	if err := s.Save(w, r); err != nil {
		return nil
	}

	return msgs
}

// Flashes retrieves []Flash stored in the session.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	raw := s.s.Flashes()
	fs := make([]Flash, 0)
	for _, r := range raw {
		f, ok := r.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}
	if len(fs) > 0 {
		// NOTE(dlk): Flashes are removed after they are accessed,
		// but the session needs to be saved for them to be finally removed
		if err := s.Save(w, r); err != nil {
			return nil
		}
	}

	return fs
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// OldInput retrieves the submitted values stored in the session by SetOldInput.
//
// Like Flashes, the values are removed once accessed.
func (s Session) OldInput(w http.ResponseWriter, r *http.Request) url.Values {
	raw, ok := s.s.Values[oldInputKey]
	if !ok {
		return nil
	}

	delete(s.s.Values, oldInputKey)
	vals, ok := raw.(url.Values)
	if !ok {
		return nil
	}

	if err := s.Save(w, r); err != nil {
		return nil
	}

	return vals
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetErrorMessages stashes the error messages a rejected submission produced
// for the follow-up request to include in its response.
func (s Session) SetErrorMessages(w http.ResponseWriter, r *http.Request, msgs []string) error {
	s.s.Values[errMsgsKey] = msgs
	return s.Save(w, r)
}

// SetFlash stores the passed in Flash in the session.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}

// SetOldInput stashes the values of a rejected submission
// for the follow-up request to echo back.
func (s Session) SetOldInput(w http.ResponseWriter, r *http.Request, vals url.Values) error {
	s.s.Values[oldInputKey] = vals
	return s.Save(w, r)
}

var _ CairnSessionable = Stub{}

type Stub struct{}

func (s Stub) ClearFlashes(w http.ResponseWriter, r *http.Request)                {}
func (s Stub) Flashes(w http.ResponseWriter, r *http.Request) []Flash             { return nil }
func (s Stub) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error { return nil }
func (s Stub) Delete(w http.ResponseWriter, r *http.Request) error                { return nil }
func (s Stub) ErrorMessages(w http.ResponseWriter, r *http.Request) []string      { return nil }
func (s Stub) Get(key string) any                                                 { return nil }
func (s Stub) OldInput(w http.ResponseWriter, r *http.Request) url.Values         { return nil }
func (s Stub) ResetExpiry(w http.ResponseWriter, r *http.Request) error           { return nil }
func (s Stub) Save(w http.ResponseWriter, r *http.Request) error                  { return nil }
func (s Stub) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	return nil
}
func (s Stub) SetErrorMessages(w http.ResponseWriter, r *http.Request, msgs []string) error {
	return nil
}
func (s Stub) SetOldInput(w http.ResponseWriter, r *http.Request, vals url.Values) error {
	return nil
}
