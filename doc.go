// Package xlbridge is an interop bridge between a host program and an
// in-process spreadsheet engine that lives behind a flat, C-style export
// boundary.
//
// The host never sees engine objects. It holds integer tokens, wraps them in
// safe handles and calls engine entry points by name. Faults raised inside
// the engine are serialized, handed back through a registered callback and
// rebuilt on the host as typed Go errors carrying the original message and
// stack trace.
//
// # Architecture Overview
//
//	xlbridge/            Root package (documentation only)
//	├── xlsx/            Typed object model for host programs
//	├── runtime/         Host side: safe handles, call adapters, fault slot, locator
//	├── engine/          Engine side: entry points, object graph, fault capture, init
//	├── fault/           Exception classes, JSON layout, reconstruction
//	├── resource/        Generation-checked handle table
//	├── errors/          Structured error types for the bridge itself
//	└── cmd/libxlbridge/ The engine as a C shared library
//
// # Quick Start
//
//	pkg, err := xlsx.NewPackage()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pkg.Close()
//
//	wb, _ := pkg.Workbook()
//	sheets, _ := wb.Worksheets()
//	ws, _ := sheets.Add("Report")
//	cells, _ := ws.Cells()
//	a1, _ := cells.Address("A1")
//	_ = a1.SetValue("Hello")
//
//	if err := pkg.SaveAs("report.xlsx"); err != nil {
//	    var io *fault.IOError
//	    if errors.As(err, &io) {
//	        log.Printf("engine refused: %s\n%s", io.Message(), io.StackTrace())
//	    }
//	}
//
// # Errors
//
// Three families reach the caller:
//
//   - errors.ErrInvalidHandle: the host passed a zero token.
//   - errors.ErrDisposed: the object was closed on the host; the engine was
//     never called.
//   - errors.ErrEngineFault: any reconstructed engine exception. Use
//     errors.As with the fault package types to get at class-specific fields.
//
// # Thread Safety
//
// All objects are safe for concurrent use. Calls on objects of the same
// package are serialized by the engine; independent packages run in
// parallel. Closing a handle while another goroutine is using it defers the
// engine-side free until that call returns.
package xlbridge
