package xlsx

import (
	"github.com/wippyai/xlsx-bridge/resource"
	bridge "github.com/wippyai/xlsx-bridge/runtime"
)

var (
	worksheetName   func(resource.Handle) string
	worksheetView   func(resource.Handle) resource.Handle
	worksheetRow    func(resource.Handle, int32) resource.Handle
	worksheetColumn func(resource.Handle, int32) resource.Handle
	worksheetCells  func(resource.Handle) resource.Handle

	worksheetViewFreezePanes func(resource.Handle, int32, int32)

	columnSetWidth func(resource.Handle, float64)

	rowNumber    func(resource.Handle) int32
	rowSetHeight func(resource.Handle, float64)
	rowStyle     func(resource.Handle) resource.Handle
)

func init() {
	entries(
		bridge.Binding{Name: "worksheet-name", Ptr: &worksheetName},
		bridge.Binding{Name: "worksheet-view", Ptr: &worksheetView},
		bridge.Binding{Name: "worksheet-row", Ptr: &worksheetRow},
		bridge.Binding{Name: "worksheet-column", Ptr: &worksheetColumn},
		bridge.Binding{Name: "worksheet-cells", Ptr: &worksheetCells},
		bridge.Binding{Name: "worksheet-view-freeze-panes", Ptr: &worksheetViewFreezePanes},
		bridge.Binding{Name: "column-set-width", Ptr: &columnSetWidth},
		bridge.Binding{Name: "row-number", Ptr: &rowNumber},
		bridge.Binding{Name: "row-set-height", Ptr: &rowSetHeight},
		bridge.Binding{Name: "row-style", Ptr: &rowStyle},
	)
}

type Worksheet struct{ handle }

func (w *Worksheet) Name() (string, error) {
	return get(&w.handle, worksheetName)
}

func (w *Worksheet) View() (*WorksheetView, error) {
	return child[WorksheetView](&w.handle, "WorksheetView", worksheetView)
}

// Row returns row number row, 1-based.
func (w *Worksheet) Row(row int) (*Row, error) {
	n, err := narrow([]string{"row"}, row)
	if err != nil {
		return nil, err
	}
	return child[Row](&w.handle, "Row", func(t resource.Handle) resource.Handle {
		return worksheetRow(t, n[0])
	})
}

// Column returns column number col, 1-based.
func (w *Worksheet) Column(col int) (*Column, error) {
	n, err := narrow([]string{"col"}, col)
	if err != nil {
		return nil, err
	}
	return child[Column](&w.handle, "Column", func(t resource.Handle) resource.Handle {
		return worksheetColumn(t, n[0])
	})
}

// Cells returns the range covering the whole sheet. Index it with Cell,
// Area or Address.
func (w *Worksheet) Cells() (*Range, error) {
	return child[Range](&w.handle, "Range", worksheetCells)
}

type WorksheetView struct{ handle }

// FreezePanes keeps the rows above row and the columns left of col in
// place while scrolling. FreezePanes(1, 1) unfreezes.
func (v *WorksheetView) FreezePanes(row, col int) error {
	n, err := narrow([]string{"row", "col"}, row, col)
	if err != nil {
		return err
	}
	return exec(&v.handle, func(t resource.Handle) {
		worksheetViewFreezePanes(t, n[0], n[1])
	})
}

type Column struct{ handle }

// SetWidth sets the width in characters.
func (c *Column) SetWidth(width float64) error {
	return exec(&c.handle, func(t resource.Handle) { columnSetWidth(t, width) })
}

type Row struct{ handle }

func (r *Row) Number() (int, error) {
	n, err := get(&r.handle, rowNumber)
	return int(n), err
}

// SetHeight sets the height in points.
func (r *Row) SetHeight(height float64) error {
	return exec(&r.handle, func(t resource.Handle) { rowSetHeight(t, height) })
}

func (r *Row) Style() (*Style, error) {
	return child[Style](&r.handle, "Style", rowStyle)
}
