// Package xlsx is the host API over the engine's spreadsheet objects.
//
// Every object owns one engine token through a runtime.SafeHandle. Close
// releases it; an object that becomes unreachable without Close is
// released by the garbage collector. Objects obtained from a parent stay
// usable after the parent is closed, except that Package.Close
// invalidates everything obtained from the package.
//
//	pkg, err := xlsx.NewPackage()
//	if err != nil {
//		return err
//	}
//	defer pkg.Close()
//
//	wb, _ := pkg.Workbook()
//	sheets, _ := wb.Worksheets()
//	ws, _ := sheets.Add("Report")
//	cells, _ := ws.Cells()
//	a1, _ := cells.Address("A1")
//	_ = a1.SetValue("Total")
//	return pkg.SaveAs("report.xlsx")
//
// Engine faults are returned as the matching error types of package fault,
// e.g. *fault.ArgumentOutOfRangeError for a row number of zero. Use on a
// closed object returns an error matching errors.ErrDisposed without
// calling the engine.
package xlsx
