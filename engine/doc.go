// Package engine is the engine side of the bridge: a spreadsheet object
// model served through a flat call surface of opaque handle tokens.
//
// # Call Surface
//
// Exporter holds one method per boundary operation. A method takes
// tokens and plain values and returns a token, a value or nothing. It
// never panics and never returns an error:
//
//	pkg := e.PackageNew()
//	wb := e.PackageWorkbook(pkg)
//	sheets := e.WorkbookWorksheets(wb)
//	ws := e.WorksheetsAdd(sheets, "Report")
//
// When an operation fails, the fault is classified, serialized and passed
// to the callback registered with InitLibrary, and the method returns the
// zero value. The callback runs before the method returns, on the same
// goroutine.
//
// # Objects and Tokens
//
// Every object belongs to a Package. Each live token holds a reference on
// its package, and the workbook file is closed when the last reference is
// released. Freeing a parent token leaves the tokens obtained from it
// valid. PackageClose invalidates all of them at once.
//
// Calls on objects of the same package are serialized by the package
// mutex. Separate packages can be used from separate goroutines.
//
// # Initialization
//
// InitLibrary reads Config from the file named by XLBRIDGE_CONFIG and
// XLBRIDGE_* variables, sets up zap logging, optionally installs a signal
// hook that flushes logs and applies a soft memory limit. Setup runs once; a
// warn-level console logger covers the config load. The fault callback slot
// takes the first non-nil callback from any call, and InitLibrary reports
// whether cb became the registered one. Shutdown flushes logs and closes the
// handle table.
package engine
