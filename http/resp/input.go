package resp

import (
	"net/http"
	"net/url"
)

var (
	_ InputSource = Input(nil)
	_ InputSource = Values(nil)
)

// The InputSource interface describes the full set of parameters
// submitted with a request, retrievable on demand.
//
// An Envelope configured by WithInput echoes the source
// under the "input" key of its compiled payload, verbatim.
type InputSource interface {
	// All returns every submitted parameter, keyed by name.
	All() map[string]any
}

// Input adapts an existing mapping into an InputSource.
type Input map[string]any

// All returns the mapping itself.
func (i Input) All() map[string]any { return i }

// Values adapts parsed form or query values into an InputSource.
type Values url.Values

// All returns every value keyed by parameter name.
// Single-valued parameters flatten to their one string;
// multi-valued parameters keep the full slice.
func (v Values) All() map[string]any {
	all := make(map[string]any, len(v))
	for k, vals := range v {
		if len(vals) == 1 {
			all[k] = vals[0]
			continue
		}

		all[k] = vals
	}

	return all
}

// RequestInput adapts the parameters submitted with r,
// both the URL query and any form-encoded body, into an InputSource.
//
// RequestInput echoes already-submitted values;
// it performs no binding or validation.
func RequestInput(r *http.Request) InputSource {
	// NOTE(dlk): a malformed body still yields the query values.
	_ = r.ParseForm()
	return Values(r.Form)
}
