// Package runtime is the host half of the bridge.
//
// # Opening the Library
//
// Open locates the engine's entry points, resolves the ones the host side
// needs for itself and registers the fault callback. It runs once per
// process:
//
//	lib, err := runtime.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var packageNew func() resource.Handle
//	if err := lib.Resolve("package-new", &packageNew); err != nil {
//	    log.Fatal(err)
//	}
//
// Entry points are named after the engine's exported methods in kebab case,
// so PackageSaveAs becomes "package-save-as". Resolve checks that the target
// is assignable to the function variable.
//
// # Safe Handles
//
// A SafeHandle owns one engine token. BeginUse returns a Guard that keeps the
// token alive until Release; Dispose marks the handle closed and frees the
// token once no guard is outstanding. A closed handle never reaches the
// engine again: BeginUse fails with errors.ErrDisposed.
//
// # Calls
//
// Exec, Call and CallHandle wrap one boundary call on a handle. Static and
// StaticHandle do the same for entry points that take no object. Each call:
//
//  1. opens a guard on the handle
//  2. pins the goroutine to its OS thread and arms that thread's fault slot
//  3. runs the entry point
//  4. rebuilds the fault, if the engine delivered one, into a typed error
//
// Faults the engine reports outside any call on the current thread go to the
// handler installed with SetUnhandledFaultHandler; by default they are
// logged.
package runtime
