package resp

import (
	"context"

	"github.com/xy-planning-network/cairn"
)

// ContextInjector is the interface for describing how values from a context.Context can be
// merged with existing keys in a map[string]any.
//
// Responder.Json runs its ContextInjectors over every payload before writing it.
// An implementation must leave keys the payload already claims untouched,
// so data compiled out of an *Envelope always wins.
type ContextInjector interface {
	Inject(payload map[string]any, ctx context.Context)
}

// A KeysInjector holds the cairn.Keys required to pull values from a context.Context.
//
// KeysInjector implements ContextInjector.
type KeysInjector struct {
	Keys []cairn.Key
}

// Inject merges into payload the key-value pairs pulled from ctx using i.Keys
// if the value for a certain key is not null and payload does not already claim the key.
func (i KeysInjector) Inject(payload map[string]any, ctx context.Context) {
	if payload == nil || ctx == nil || i.Keys == nil {
		return
	}
	for _, k := range i.Keys {
		if _, ok := payload[k.Key()]; ok {
			continue
		}
		if val := ctx.Value(k); val != nil {
			payload[k.Key()] = val
		}
	}
}

// A FieldsInjector pulls the cairn.Fields set with cairn.NewFieldsContext
// out of a context.Context.
//
// FieldsInjector implements ContextInjector.
type FieldsInjector struct{}

// Inject merges into payload the cairn.Fields stored in ctx,
// skipping keys payload already claims.
func (FieldsInjector) Inject(payload map[string]any, ctx context.Context) {
	if payload == nil || ctx == nil {
		return
	}
	for k, v := range cairn.FieldsFromContext(ctx) {
		if _, ok := payload[k]; ok {
			continue
		}
		payload[k] = v
	}
}

// A NoopInjector implements ContextInjector and performs no operation.
type NoopInjector struct{}

func (NoopInjector) Inject(_ map[string]any, _ context.Context) {}
