package engine

import (
	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

// WorksheetName returns the worksheet's name.
func (e *Exporter) WorksheetName(h resource.Handle) string {
	return call(e, h, "WorksheetName", func(ws *Worksheet) (string, error) {
		return ws.name, nil
	})
}

func (e *Exporter) WorksheetView(h resource.Handle) resource.Handle {
	return child(e, h, "WorksheetView", func(ws *Worksheet) (object, error) {
		return &WorksheetView{node: ws.node, sheet: ws.name}, nil
	})
}

// WorksheetRow returns row number row, 1-based.
func (e *Exporter) WorksheetRow(h resource.Handle, row int32) resource.Handle {
	return child(e, h, "WorksheetRow", func(ws *Worksheet) (object, error) {
		if err := checkRow("row", int(row)); err != nil {
			return nil, err
		}
		return &Row{node: ws.node, sheet: ws.name, row: int(row)}, nil
	})
}

// WorksheetColumn returns column number col, 1-based.
func (e *Exporter) WorksheetColumn(h resource.Handle, col int32) resource.Handle {
	return child(e, h, "WorksheetColumn", func(ws *Worksheet) (object, error) {
		if err := checkColumn("col", int(col)); err != nil {
			return nil, err
		}
		return &Column{node: ws.node, sheet: ws.name, col: int(col)}, nil
	})
}

// WorksheetCells returns the range covering the whole sheet.
func (e *Exporter) WorksheetCells(h resource.Handle) resource.Handle {
	return child(e, h, "WorksheetCells", func(ws *Worksheet) (object, error) {
		return &Range{node: ws.node, area: wholeSheet(ws.name)}, nil
	})
}

// WorksheetViewFreezePanes freezes the rows above row and the columns left
// of col. FreezePanes(1, 1) removes the freeze.
func (e *Exporter) WorksheetViewFreezePanes(h resource.Handle, row, col int32) {
	do(e, h, "WorksheetViewFreezePanes", func(v *WorksheetView) error {
		if err := checkRow("row", int(row)); err != nil {
			return err
		}
		if err := checkColumn("column", int(col)); err != nil {
			return err
		}
		if row == 1 && col == 1 {
			return v.pkg.file.SetPanes(v.sheet, &excelize.Panes{})
		}
		pane := "bottomRight"
		switch {
		case col == 1:
			pane = "bottomLeft"
		case row == 1:
			pane = "topRight"
		}
		cell := cellName(int(col), int(row))
		return v.pkg.file.SetPanes(v.sheet, &excelize.Panes{
			Freeze:      true,
			XSplit:      int(col) - 1,
			YSplit:      int(row) - 1,
			TopLeftCell: cell,
			ActivePane:  pane,
			Selection: []excelize.Selection{
				{SQRef: cell, ActiveCell: cell, Pane: pane},
			},
		})
	})
}

// ColumnSetWidth sets the column width in character units.
func (e *Exporter) ColumnSetWidth(h resource.Handle, width float64) {
	do(e, h, "ColumnSetWidth", func(c *Column) error {
		if width < 0 || width > 255 {
			return fault.NewArgumentOutOfRange("width", width, "column width must be between 0 and 255")
		}
		name, err := excelize.ColumnNumberToName(c.col)
		if err != nil {
			return err
		}
		return c.pkg.file.SetColWidth(c.sheet, name, name, width)
	})
}

// RowNumber returns the 1-based row number.
func (e *Exporter) RowNumber(h resource.Handle) int32 {
	return call(e, h, "RowNumber", func(r *Row) (int32, error) {
		return int32(r.row), nil
	})
}

// RowSetHeight sets the row height in points.
func (e *Exporter) RowSetHeight(h resource.Handle, height float64) {
	do(e, h, "RowSetHeight", func(r *Row) error {
		if height < 0 || height > 409 {
			return fault.NewArgumentOutOfRange("height", height, "row height must be between 0 and 409")
		}
		return r.pkg.file.SetRowHeight(r.sheet, r.row, height)
	})
}

// RowStyle returns the style applied to the whole row.
func (e *Exporter) RowStyle(h resource.Handle) resource.Handle {
	return child(e, h, "RowStyle", func(r *Row) (object, error) {
		return &Style{node: r.node, target: rowTarget{sheet: r.sheet, row: r.row}, spec: newSpec()}, nil
	})
}
