// Package errors provides structured error types for the xlsx bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the operation path, the Go type or fault class involved,
// and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCall, errors.KindInvalidHandle).
//		Path("Range", "SetValue").
//		GoType("*xlsx.Range").
//		Detail("engine returned a zero token").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Disposed("Worksheet")
//	err := errors.BridgeFailure(class, payload, cause)
//
// Disposed, invalid handle and bridge failure errors match their sentinels
// (ErrDisposed, ErrInvalidHandle, ErrBridgeFailure) through errors.Is
// regardless of the phase that produced them.
package errors
