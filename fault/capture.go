package fault

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/multierr"

	"github.com/wippyai/xlsx-bridge/errors"
)

// Classify returns err as a fault, converting it when needed. Joined
// errors become an AggregateError, registered classifiers are consulted
// next, and anything else becomes a generic Exception. A stack trace is
// attached when the fault does not have one yet.
func (r *Registry) Classify(err error) Fault {
	if err == nil {
		return nil
	}
	f := r.classifyAt(err)
	f.Base().ensureStack(1)
	return f
}

func (r *Registry) classifyAt(err error) Fault {
	var f Fault
	if stderrors.As(err, &f) {
		return f
	}

	if inner := multierr.Errors(err); len(inner) > 1 {
		agg := &AggregateError{Errors: make([]error, 0, len(inner))}
		agg.message = "One or more errors occurred."
		for _, e := range inner {
			agg.Errors = append(agg.Errors, r.classifyAt(e))
		}
		return agg
	}

	if f, ok := r.classify(err); ok {
		return f
	}

	if re, ok := err.(runtime.Error); ok {
		return fromRuntimeError(re)
	}

	e := &Exception{message: err.Error()}
	if cause := stderrors.Unwrap(err); cause != nil {
		e.Inner = r.classifyAt(cause)
	}
	return e
}

// Recovered converts a value obtained from recover into a fault.
// It must be called from the deferred function that recovered, so the
// captured stack still shows the panic site.
func (r *Registry) Recovered(v any) Fault {
	var f Fault
	switch x := v.(type) {
	case Fault:
		f = x
	case runtime.Error:
		f = fromRuntimeError(x)
	case error:
		f = r.classifyAt(x)
	default:
		rt := &RuntimeError{
			PanicValue: fmt.Sprint(v),
			GoType:     fmt.Sprintf("%T", v),
		}
		rt.message = "panic: " + rt.PanicValue
		f = rt
	}
	f.Base().ensureStack(1)
	return f
}

func fromRuntimeError(re runtime.Error) Fault {
	msg := re.Error()
	switch {
	case strings.Contains(msg, "nil pointer dereference"), strings.Contains(msg, "nil map"):
		return &NullReferenceError{Exception{message: msg}}
	case strings.Contains(msg, "index out of range"), strings.Contains(msg, "slice bounds out of range"):
		return &IndexOutOfRangeError{Exception{message: msg}}
	case strings.Contains(msg, "integer divide by zero"), strings.Contains(msg, "integer overflow"):
		return &OverflowError{Exception{message: msg}}
	case strings.Contains(msg, "interface conversion"):
		return &InvalidCastError{Exception{message: msg}}
	}
	return &RuntimeError{Exception: Exception{message: msg}, GoType: fmt.Sprintf("%T", re)}
}

// Encode serializes a fault: the layout fields first, then the class fields.
func (r *Registry) Encode(f Fault) ([]byte, error) {
	b := f.Base()
	l := Layout{
		ClassName:  f.ClassName(),
		Message:    b.message,
		StackTrace: b.stackTrace,
		Source:     b.Source,
		HelpLink:   b.HelpLink,
		Code:       b.Code,
		Data:       b.Data,
	}

	if b.Inner != nil {
		inner, err := r.Encode(r.classifyAt(b.Inner))
		if err != nil {
			return nil, err
		}
		l.InnerException = inner
	}
	if agg, ok := f.(*AggregateError); ok {
		for _, e := range agg.Errors {
			inner, err := r.Encode(r.classifyAt(e))
			if err != nil {
				return nil, err
			}
			l.InnerExceptions = append(l.InnerExceptions, inner)
		}
	}

	head, err := json.Marshal(&l)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBridge, errors.KindInvalidData, err, "encode layout")
	}
	if _, ok := f.(*UnknownError); ok {
		return head, nil
	}
	extra, err := json.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBridge, errors.KindInvalidData, err, "encode "+f.ClassName())
	}
	return merge(head, extra), nil
}

// Capture classifies err and returns the class and payload for the callback.
func (r *Registry) Capture(err error) (class, payload string, cerr error) {
	f := r.Classify(err)
	if f == nil {
		return "", "", errors.InvalidInput(errors.PhaseBridge, "nothing to capture")
	}
	b, cerr := r.Encode(f)
	if cerr != nil {
		return f.ClassName(), "", cerr
	}
	return f.ClassName(), string(b), nil
}

// Classify converts err with the default registry.
func Classify(err error) Fault { return defaultRegistry.Classify(err) }

// Recovered converts a recovered panic value with the default registry.
func Recovered(v any) Fault { return defaultRegistry.Recovered(v) }

// Capture encodes err with the default registry.
func Capture(err error) (class, payload string, cerr error) { return defaultRegistry.Capture(err) }
