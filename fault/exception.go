package fault

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/xlsx-bridge/errors"
)

// Class names as they travel across the bridge.
const (
	ClassException          = "Exception"
	ClassArgument           = "ArgumentError"
	ClassArgumentNull       = "ArgumentNullError"
	ClassArgumentOutOfRange = "ArgumentOutOfRangeError"
	ClassInvalidOperation   = "InvalidOperationError"
	ClassNotSupported       = "NotSupportedError"
	ClassNotImplemented     = "NotImplementedError"
	ClassNullReference      = "NullReferenceError"
	ClassInvalidCast        = "InvalidCastError"
	ClassObjectDisposed     = "ObjectDisposedError"
	ClassIndexOutOfRange    = "IndexOutOfRangeError"
	ClassKeyNotFound        = "KeyNotFoundError"
	ClassFormat             = "FormatError"
	ClassIO                 = "IOError"
	ClassOverflow           = "OverflowError"
	ClassOutOfMemory        = "OutOfMemoryError"
	ClassTimeout            = "TimeoutError"
	ClassRuntime            = "RuntimeError"
	ClassAggregate          = "AggregateError"
)

// Fault is implemented by every exception class that can cross the bridge.
type Fault interface {
	error
	ClassName() string
	Base() *Exception
}

// Exception is the base of every class. Message and stack trace are set
// once, either at construction on the engine side or by reconstruction on
// the host side, and are read-only afterwards.
type Exception struct {
	message    string
	stackTrace string

	Source   string            `json:"-"`
	HelpLink string            `json:"-"`
	Code     int32             `json:"-"`
	Data     map[string]string `json:"-"`
	Inner    error             `json:"-"`
}

// Exception constructors capture the caller's stack.
func newBase(message string) Exception {
	return Exception{message: message, stackTrace: stack(2)}
}

// NewException creates a generic fault.
func NewException(format string, args ...any) *Exception {
	e := newBase(sprintf(format, args...))
	return &e
}

func (e *Exception) ClassName() string { return ClassException }
func (e *Exception) Base() *Exception { return e }
func (e *Exception) Message() string { return e.message }
func (e *Exception) StackTrace() string { return e.stackTrace }
func (e *Exception) Error() string { return e.message }
func (e *Exception) Unwrap() error { return e.Inner }

// Is lets every fault match errors.ErrEngineFault.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*errors.Error)
	return ok && t.Kind == errors.KindEngineFault
}

// SetData records a diagnostic key on the fault.
func (e *Exception) SetData(key, value string) {
	if e.Data == nil {
		e.Data = make(map[string]string)
	}
	e.Data[key] = value
}

func (e *Exception) restore(l *Layout) {
	e.message = l.Message
	e.stackTrace = l.StackTrace
	e.Source = l.Source
	e.HelpLink = l.HelpLink
	e.Code = l.Code
	e.Data = l.Data
}

func (e *Exception) ensureStack(skip int) {
	if e.stackTrace == "" {
		e.stackTrace = stack(skip + 1)
	}
}

// ArgumentError reports an invalid argument.
type ArgumentError struct {
	Exception
	ParamName string `json:"ParamName,omitempty"`
}

func NewArgument(param, format string, args ...any) *ArgumentError {
	return &ArgumentError{Exception: newBase(sprintf(format, args...)), ParamName: param}
}

func (e *ArgumentError) ClassName() string { return ClassArgument }

func (e *ArgumentError) Error() string {
	if e.ParamName == "" {
		return e.message
	}
	return fmt.Sprintf("%s (Parameter '%s')", e.message, e.ParamName)
}

// ArgumentNullError reports a missing argument. It also matches *ArgumentError in errors.As.
type ArgumentNullError struct {
	ArgumentError
}

func NewArgumentNull(param string) *ArgumentNullError {
	return &ArgumentNullError{ArgumentError{Exception: newBase("Value cannot be null."), ParamName: param}}
}

func (e *ArgumentNullError) ClassName() string { return ClassArgumentNull }

func (e *ArgumentNullError) As(target any) bool {
	if p, ok := target.(**ArgumentError); ok {
		*p = &e.ArgumentError
		return true
	}
	return false
}

// ArgumentOutOfRangeError reports an argument outside its valid range.
type ArgumentOutOfRangeError struct {
	ArgumentError
	ActualValue string `json:"ActualValue,omitempty"`
}

func NewArgumentOutOfRange(param string, actual any, format string, args ...any) *ArgumentOutOfRangeError {
	e := &ArgumentOutOfRangeError{ArgumentError: ArgumentError{Exception: newBase(sprintf(format, args...)), ParamName: param}}
	if actual != nil {
		e.ActualValue = fmt.Sprint(actual)
	}
	return e
}

func (e *ArgumentOutOfRangeError) ClassName() string { return ClassArgumentOutOfRange }

func (e *ArgumentOutOfRangeError) As(target any) bool {
	if p, ok := target.(**ArgumentError); ok {
		*p = &e.ArgumentError
		return true
	}
	return false
}

// InvalidOperationError reports a call that is not valid in the object's current state.
type InvalidOperationError struct {
	Exception
}

func NewInvalidOperation(format string, args ...any) *InvalidOperationError {
	return &InvalidOperationError{newBase(sprintf(format, args...))}
}

func (e *InvalidOperationError) ClassName() string { return ClassInvalidOperation }

// ObjectDisposedError reports use of a closed object. It also matches
// *InvalidOperationError in errors.As and errors.ErrDisposed in errors.Is.
type ObjectDisposedError struct {
	InvalidOperationError
	ObjectName string `json:"ObjectName,omitempty"`
}

func NewObjectDisposed(object string) *ObjectDisposedError {
	return &ObjectDisposedError{
		InvalidOperationError: InvalidOperationError{newBase("Cannot access a disposed object.")},
		ObjectName:            object,
	}
}

func (e *ObjectDisposedError) ClassName() string { return ClassObjectDisposed }

func (e *ObjectDisposedError) Error() string {
	if e.ObjectName == "" {
		return e.message
	}
	return fmt.Sprintf("%s Object name: '%s'.", e.message, e.ObjectName)
}

func (e *ObjectDisposedError) Is(target error) bool {
	t, ok := target.(*errors.Error)
	return ok && (t.Kind == errors.KindDisposed || t.Kind == errors.KindEngineFault)
}

func (e *ObjectDisposedError) As(target any) bool {
	if p, ok := target.(**InvalidOperationError); ok {
		*p = &e.InvalidOperationError
		return true
	}
	return false
}

// NotSupportedError reports an operation the engine does not offer.
type NotSupportedError struct {
	Exception
}

func NewNotSupported(format string, args ...any) *NotSupportedError {
	return &NotSupportedError{newBase(sprintf(format, args...))}
}

func (e *NotSupportedError) ClassName() string { return ClassNotSupported }

// NotImplementedError reports an operation that exists but has no implementation.
type NotImplementedError struct {
	Exception
}

func NewNotImplemented(format string, args ...any) *NotImplementedError {
	return &NotImplementedError{newBase(sprintf(format, args...))}
}

func (e *NotImplementedError) ClassName() string { return ClassNotImplemented }

// NullReferenceError reports a zero, freed or unknown token, or a nil dereference.
type NullReferenceError struct {
	Exception
}

func NewNullReference(format string, args ...any) *NullReferenceError {
	return &NullReferenceError{newBase(sprintf(format, args...))}
}

func (e *NullReferenceError) ClassName() string { return ClassNullReference }

// InvalidCastError reports a live token that refers to the wrong object type.
type InvalidCastError struct {
	Exception
}

func NewInvalidCast(format string, args ...any) *InvalidCastError {
	return &InvalidCastError{newBase(sprintf(format, args...))}
}

func (e *InvalidCastError) ClassName() string { return ClassInvalidCast }

// IndexOutOfRangeError reports an index outside a collection.
type IndexOutOfRangeError struct {
	Exception
}

func NewIndexOutOfRange(format string, args ...any) *IndexOutOfRangeError {
	return &IndexOutOfRangeError{newBase(sprintf(format, args...))}
}

func (e *IndexOutOfRangeError) ClassName() string { return ClassIndexOutOfRange }

// KeyNotFoundError reports a lookup by name that matched nothing.
type KeyNotFoundError struct {
	Exception
	Key string `json:"Key,omitempty"`
}

func NewKeyNotFound(key, format string, args ...any) *KeyNotFoundError {
	return &KeyNotFoundError{Exception: newBase(sprintf(format, args...)), Key: key}
}

func (e *KeyNotFoundError) ClassName() string { return ClassKeyNotFound }

// FormatError reports malformed textual input such as a cell address.
type FormatError struct {
	Exception
}

func NewFormat(format string, args ...any) *FormatError {
	return &FormatError{newBase(sprintf(format, args...))}
}

func (e *FormatError) ClassName() string { return ClassFormat }

// IOError reports a file system failure.
type IOError struct {
	Exception
	Path string `json:"FileName,omitempty"`
}

func NewIO(path, format string, args ...any) *IOError {
	return &IOError{Exception: newBase(sprintf(format, args...)), Path: path}
}

func (e *IOError) ClassName() string { return ClassIO }

// OverflowError reports an arithmetic or conversion overflow.
type OverflowError struct {
	Exception
}

func NewOverflow(format string, args ...any) *OverflowError {
	return &OverflowError{newBase(sprintf(format, args...))}
}

func (e *OverflowError) ClassName() string { return ClassOverflow }

// OutOfMemoryError reports an allocation failure.
type OutOfMemoryError struct {
	Exception
}

func NewOutOfMemory(format string, args ...any) *OutOfMemoryError {
	return &OutOfMemoryError{newBase(sprintf(format, args...))}
}

func (e *OutOfMemoryError) ClassName() string { return ClassOutOfMemory }

// TimeoutError reports an operation that ran out of time.
type TimeoutError struct {
	Exception
}

func NewTimeout(format string, args ...any) *TimeoutError {
	return &TimeoutError{newBase(sprintf(format, args...))}
}

func (e *TimeoutError) ClassName() string { return ClassTimeout }

// RuntimeError carries a recovered panic.
type RuntimeError struct {
	Exception
	PanicValue string `json:"PanicValue,omitempty"`
	GoType     string `json:"GoType,omitempty"`
}

func NewRuntime(format string, args ...any) *RuntimeError {
	return &RuntimeError{Exception: newBase(sprintf(format, args...))}
}

func (e *RuntimeError) ClassName() string { return ClassRuntime }

// AggregateError carries several faults raised together.
type AggregateError struct {
	Exception
	Errors []error `json:"-"`
}

func NewAggregate(errs ...error) *AggregateError {
	return &AggregateError{Exception: newBase("One or more errors occurred."), Errors: errs}
}

func (e *AggregateError) ClassName() string { return ClassAggregate }

func (e *AggregateError) Unwrap() []error { return e.Errors }

func (e *AggregateError) Error() string {
	msg := e.message
	for _, err := range e.Errors {
		msg += " (" + err.Error() + ")"
	}
	return msg
}

// UnknownError is reconstructed for a class the host does not know.
// Error returns the raw class and payload verbatim.
type UnknownError struct {
	Exception
	Class   string `json:"-"`
	Payload string `json:"-"`
}

func (e *UnknownError) ClassName() string { return e.Class }

func (e *UnknownError) Error() string {
	return e.Class + "\n" + e.Payload
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// stack returns the goroutine stack above the caller, skip frames up.
func stack(skip int) string {
	return zap.StackSkip("", skip+1).String
}
