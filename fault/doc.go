// Package fault carries engine faults across the bridge.
//
// Each class is a Go type embedding Exception. On the engine side Capture
// turns any error, or a recovered panic through Recovered, into a class
// name and a JSON payload:
//
//	{"ClassName":"ArgumentError","Message":"...","StackTrace":"...","Code":0,"ParamName":"row"}
//
// The layout fields come first and the class fields follow in the same
// object. On the host side Reconstruct turns the pair back into an error of
// the same Go type, with the original message and stack trace, so callers
// can use errors.As against the concrete class:
//
//	var arg *fault.ArgumentError
//	if errors.As(err, &arg) {
//		log.Println(arg.ParamName)
//	}
//
// The set of classes is closed and shared by both sides through Default.
// Unregistered classes reconstruct as *UnknownError rather than being
// guessed from similar names.
package fault
