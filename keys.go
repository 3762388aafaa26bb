package cairn

import (
	"context"
	"sort"
)

type Key string

const (
	// fieldsKey stashes ambient fields folded into response envelopes.
	fieldsKey Key = "envelopeFields"

	// IpAddrKey stashes the IP address of an HTTP request being handled by cairn.
	IpAddrKey Key = "ipAddr"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "requestId"

	// ResponderKey stashes the *resp.Responder an app shares with its handlers.
	ResponderKey Key = "responder"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "session"
)

// Key returns the bare value of k, usable directly as a payload field name.
func (k Key) Key() string { return string(k) }

// String formats the stringified key with additional contextual information.
func (k Key) String() string {
	return "cairn context key: " + string(k)
}

// ByKey is a sortable set of Keys.
type ByKey []Key

func (bk ByKey) Len() int           { return len(bk) }
func (bk ByKey) Less(i, j int) bool { return bk[i] < bk[j] }
func (bk ByKey) Swap(i, j int)      { bk[i], bk[j] = bk[j], bk[i] }

// UniqueSort sorts the set, eliding zero-value and duplicate Keys.
func (bk ByKey) UniqueSort() ByKey {
	uniqued := make(ByKey, 0, len(bk))
	seen := make(map[Key]struct{}, len(bk))
	for _, k := range bk {
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		uniqued = append(uniqued, k)
	}

	sort.Sort(uniqued)
	return uniqued
}

// Fields passes ambient response data from middlewares and handlers
// toward the response boundary as a set of extra envelope fields.
// The data is passed around in a context.Context and rendered as JSON.
//
// NB: Data not representable by JSON will create errors; review [encoding/json.Marshaler].
type Fields map[string]any

// NewFieldsContext adds fields to ctx, returning the resulting context.
// If fields have already been added to ctx, its key-value pairs are added to existing ones.
// If any keys collide, those in fields overwrite previous values.
func NewFieldsContext(ctx context.Context, fields Fields) context.Context {
	merged := make(Fields, len(fields))
	for k, v := range FieldsFromContext(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return context.WithValue(ctx, fieldsKey, merged)
}

// FieldsFromContext retrieves the Fields in ctx.
// If not already set, it initializes a new Fields.
func FieldsFromContext(ctx context.Context) Fields {
	fields, ok := ctx.Value(fieldsKey).(Fields)
	if !ok {
		fields = make(Fields)
	}

	return fields
}
