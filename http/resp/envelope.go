package resp

import (
	"encoding/json"
	"net/http"
)

// An Envelope accumulates the parts of a uniform response payload
// and compiles them into a single mapping on demand.
//
// An Envelope begins with Success or Fail, the only two ways of constructing one.
// Builder methods return the same *Envelope so calls can chain.
// No Envelope method fails: all inputs are accepted unconditionally
// and degenerate ones degrade to no-ops.
//
// An Envelope belongs to the single request-handling flow that constructs it.
// It carries no identity beyond its field values and is discarded
// after the response body is produced.
type Envelope struct {
	succeeded     bool
	message       string
	includeInput  bool
	includeErrors bool
	errs          Errors
	src           InputSource
	fields        map[string]any
}

// Success constructs an *Envelope for a successful outcome with the provided message.
func Success(message string) *Envelope {
	return &Envelope{succeeded: true, message: message, fields: make(map[string]any)}
}

// Fail constructs an *Envelope for a failed outcome with the provided message.
func Fail(message string) *Envelope {
	return &Envelope{succeeded: false, message: message, fields: make(map[string]any)}
}

// WithInput includes the full set of submitted parameters src provides
// under the "input" key of the compiled payload.
//
// Compile reads src when it runs, not when WithInput is called,
// so the payload reflects the source's state at compile time.
func (e *Envelope) WithInput(src InputSource) *Envelope {
	e.includeInput = true
	e.src = src
	return e
}

// WithErrors includes errs under the "errors" and "error" keys
// of the compiled payload, replacing any previously supplied collection wholesale.
//
// A nil or empty collection compiles to the empty defaults,
// an empty sequence and an empty string.
func (e *Envelope) WithErrors(errs Errors) *Envelope {
	e.includeErrors = true
	e.errs = errs
	return e
}

// WithField sets key to value in the envelope's extra fields,
// overwriting a previously set value for the same key.
//
// Extra fields merge into the compiled payload last:
// a key colliding with "success", "errors", "error", "input", or "message"
// deliberately overrides the reserved value.
func (e *Envelope) WithField(key string, value any) *Envelope {
	e.fields[key] = value
	return e
}

// WithFields merges every entry of fields into the envelope's extra fields,
// overwriting previously set values for the same keys.
// A nil mapping is a no-op.
func (e *Envelope) WithFields(fields map[string]any) *Envelope {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

// Compile merges the accumulated state into a single mapping:
//
//	"success": the outcome set by Success or Fail
//	"errors", "error": all and first messages, when WithErrors was called
//	"input": the submitted parameters, when WithInput was called
//	"message": the constructor-supplied message, always
//
// Extra fields apply last and win any key collision.
//
// Compile is idempotent and side-effect-free: it allocates a fresh mapping
// every call, so callers may alter the result without corrupting the Envelope.
func (e *Envelope) Compile() map[string]any {
	out := make(map[string]any, len(e.fields)+5)
	out["success"] = e.succeeded

	if e.includeErrors {
		out["errors"] = []string{}
		out["error"] = ""
		if e.errs != nil {
			if all := e.errs.All(); len(all) > 0 {
				out["errors"] = all
				out["error"] = e.errs.First()
			}
		}
	}

	if e.includeInput {
		out["input"] = map[string]any{}
		if e.src != nil {
			if all := e.src.All(); all != nil {
				out["input"] = all
			}
		}
	}

	out["message"] = e.message

	for k, v := range e.fields {
		out[k] = v
	}

	return out
}

// Body compiles the envelope and returns the JSON-serialized payload,
// passing through any error from serialization untouched.
func (e *Envelope) Body() ([]byte, error) {
	return json.Marshal(e.Compile())
}

// Write compiles the envelope and writes the JSON-serialized payload to w
// with a JSON Content-Type.
//
// Write never selects a status code; the first write to w implies 200.
// Respond through a *Responder to pair an Envelope with an explicit code.
func (e *Envelope) Write(w http.ResponseWriter) error {
	b, err := e.Body()
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_, err = w.Write(b)
	return err
}
