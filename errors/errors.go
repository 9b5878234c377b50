package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseHandle  Phase = "handle"  // token lookup and lifetime
	PhaseCall    Phase = "call"    // boundary call adapter
	PhaseBridge  Phase = "bridge"  // fault transport and reconstruction
	PhaseInit    Phase = "init"    // library initialization
	PhaseRelease Phase = "release" // handle release path
	PhaseEngine  Phase = "engine"  // engine-side business logic
	PhaseHost    Phase = "host"    // call target registration
	PhaseConfig  Phase = "config"  // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidHandle  Kind = "invalid_handle"
	KindDisposed       Kind = "disposed"
	KindEngineFault    Kind = "engine_fault"
	KindBridgeFailure  Kind = "bridge_failure"
	KindReleaseFailure Kind = "release_failure"
	KindTypeMismatch   Kind = "type_mismatch"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidInput   Kind = "invalid_input"
	KindRegistration   Kind = "registration"
	KindInvalidData    Kind = "invalid_data"
)

// Sentinels for errors.Is matching on Phase+Kind.
var (
	ErrDisposed      = &Error{Phase: PhaseCall, Kind: KindDisposed}
	ErrInvalidHandle = &Error{Phase: PhaseCall, Kind: KindInvalidHandle}
	ErrBridgeFailure = &Error{Phase: PhaseBridge, Kind: KindBridgeFailure}
	ErrEngineFault   = &Error{Phase: PhaseEngine, Kind: KindEngineFault}
)

// Error is the structured error type used across the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Class  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Class != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.Class != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", class ")
			b.WriteString(e.Class)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("class ")
			b.WriteString(e.Class)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Class != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Disposed, invalid handle and bridge failure match regardless of phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	switch t.Kind {
	case KindDisposed, KindInvalidHandle, KindBridgeFailure, KindEngineFault:
		return true
	}
	return e.Phase == t.Phase
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the operation path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Class sets the fault class name
func (b *Builder) Class(c string) *Builder {
	b.err.Class = c
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Disposed reports a call on a handle that has already been closed.
func Disposed(object string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindDisposed,
		GoType: object,
		Detail: "handle is closed",
	}
}

// InvalidHandle reports a zero or unresolvable token.
func InvalidHandle(phase Phase, token uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Value:  token,
		Detail: fmt.Sprintf("token 0x%x is not a live handle", token),
	}
}

// BridgeFailure reports a fault that could not be transported or decoded.
// Class and payload are kept verbatim for diagnosis.
func BridgeFailure(class, payload string, cause error) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindBridgeFailure,
		Class:  class,
		Detail: payload,
		Cause:  cause,
	}
}

// ReleaseFailure wraps a failure observed while freeing a handle.
func ReleaseFailure(token uint64, cause error) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindReleaseFailure,
		Value:  token,
		Detail: fmt.Sprintf("free token 0x%x", token),
		Cause:  cause,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, class string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Class:  class,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(phase Phase, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s", name),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
