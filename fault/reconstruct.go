package fault

import (
	"encoding/json"

	"github.com/wippyai/xlsx-bridge/errors"
)

// maxDepth bounds nested inner faults when decoding untrusted payloads.
const maxDepth = 32

// Reconstruct rebuilds the error described by class and payload.
//
// A registered class yields a value of that exact Go type with the original
// message and stack trace. An unregistered class yields *UnknownError whose
// Error() embeds class and payload verbatim. A payload that cannot be
// decoded yields a bridge failure carrying both verbatim.
func (r *Registry) Reconstruct(class, payload string) error {
	l, err := DecodeLayout([]byte(payload))
	if err != nil {
		return errors.BridgeFailure(class, payload, err)
	}
	f, err := r.rebuild(class, []byte(payload), l, 0)
	if err != nil {
		return errors.BridgeFailure(class, payload, err)
	}
	return f
}

func (r *Registry) rebuild(class string, raw []byte, l *Layout, depth int) (Fault, error) {
	if depth > maxDepth {
		return nil, errors.InvalidData(errors.PhaseBridge, nil, "inner faults nested too deeply")
	}

	rule, ok := r.Lookup(class)
	if !ok {
		u := &UnknownError{Class: class, Payload: string(raw)}
		u.restore(l)
		if err := r.rebuildInner(&u.Exception, l, depth); err != nil {
			return nil, err
		}
		return u, nil
	}

	f := rule.New()
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, err
	}
	base := f.Base()
	base.restore(l)
	if err := r.rebuildInner(base, l, depth); err != nil {
		return nil, err
	}

	if agg, ok := f.(*AggregateError); ok {
		for _, innerRaw := range l.InnerExceptions {
			inner, err := r.rebuildRaw(innerRaw, depth+1)
			if err != nil {
				return nil, err
			}
			agg.Errors = append(agg.Errors, inner)
		}
	}
	return f, nil
}

func (r *Registry) rebuildInner(base *Exception, l *Layout, depth int) error {
	if len(l.InnerException) == 0 || string(l.InnerException) == "null" {
		return nil
	}
	inner, err := r.rebuildRaw(l.InnerException, depth+1)
	if err != nil {
		return err
	}
	base.Inner = inner
	return nil
}

func (r *Registry) rebuildRaw(raw json.RawMessage, depth int) (Fault, error) {
	l, err := DecodeLayout(raw)
	if err != nil {
		return nil, err
	}
	return r.rebuild(l.ClassName, raw, l, depth)
}

// Reconstruct rebuilds a fault with the default registry.
func Reconstruct(class, payload string) error {
	return defaultRegistry.Reconstruct(class, payload)
}
