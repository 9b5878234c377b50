package engine

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/fault"
)

// cellArea is an inclusive, normalized rectangle of cells on one sheet.
type cellArea struct {
	sheet   string
	fromRow int
	fromCol int
	toRow   int
	toCol   int
}

func wholeSheet(sheet string) cellArea {
	return cellArea{sheet: sheet, fromRow: 1, fromCol: 1, toRow: MaxRows, toCol: MaxColumns}
}

func checkRow(param string, row int) error {
	if row < 1 || row > MaxRows {
		return fault.NewArgumentOutOfRange(param, row, "row must be between 1 and %d", MaxRows)
	}
	return nil
}

func checkColumn(param string, col int) error {
	if col < 1 || col > MaxColumns {
		return fault.NewArgumentOutOfRange(param, col, "column must be between 1 and %d", MaxColumns)
	}
	return nil
}

func newArea(sheet string, fromRow, fromCol, toRow, toCol int) (cellArea, error) {
	for _, c := range []struct {
		param string
		v     int
		check func(string, int) error
	}{
		{"fromRow", fromRow, checkRow},
		{"fromCol", fromCol, checkColumn},
		{"toRow", toRow, checkRow},
		{"toCol", toCol, checkColumn},
	} {
		if err := c.check(c.param, c.v); err != nil {
			return cellArea{}, err
		}
	}
	if toRow < fromRow {
		fromRow, toRow = toRow, fromRow
	}
	if toCol < fromCol {
		fromCol, toCol = toCol, fromCol
	}
	return cellArea{sheet: sheet, fromRow: fromRow, fromCol: fromCol, toRow: toRow, toCol: toCol}, nil
}

// parseArea reads "B2" or "B2:D10". Absolute markers are accepted.
func parseArea(sheet, address string) (cellArea, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return cellArea{}, fault.NewArgumentNull("address")
	}
	first, second, isRange := strings.Cut(address, ":")
	fc, fr, err := excelize.CellNameToCoordinates(strings.ReplaceAll(first, "$", ""))
	if err != nil {
		return cellArea{}, fault.NewFormat("invalid address %q: %v", address, err)
	}
	tc, tr := fc, fr
	if isRange {
		tc, tr, err = excelize.CellNameToCoordinates(strings.ReplaceAll(second, "$", ""))
		if err != nil {
			return cellArea{}, fault.NewFormat("invalid address %q: %v", address, err)
		}
	}
	return newArea(sheet, fr, fc, tr, tc)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (a cellArea) topLeft() string     { return cellName(a.fromCol, a.fromRow) }
func (a cellArea) bottomRight() string { return cellName(a.toCol, a.toRow) }

// address is the A1 form, without a sheet name.
func (a cellArea) address() string {
	if a.fromRow == a.toRow && a.fromCol == a.toCol {
		return a.topLeft()
	}
	return a.topLeft() + ":" + a.bottomRight()
}

func (a cellArea) fullColumns() bool { return a.fromRow == 1 && a.toRow == MaxRows }
func (a cellArea) fullRows() bool    { return a.fromCol == 1 && a.toCol == MaxColumns }

func (a cellArea) cellCount() int64 {
	return int64(a.toRow-a.fromRow+1) * int64(a.toCol-a.fromCol+1)
}

// cell returns the single cell at absolute sheet coordinates.
func (a cellArea) cell(row, col int) (cellArea, error) {
	if err := checkRow("row", row); err != nil {
		return cellArea{}, err
	}
	if err := checkColumn("col", col); err != nil {
		return cellArea{}, err
	}
	return cellArea{sheet: a.sheet, fromRow: row, fromCol: col, toRow: row, toCol: col}, nil
}

// each visits every cell of the area in row-major order.
func (a cellArea) each(fn func(cell string) error) error {
	for r := a.fromRow; r <= a.toRow; r++ {
		for c := a.fromCol; c <= a.toCol; c++ {
			if err := fn(cellName(c, r)); err != nil {
				return err
			}
		}
	}
	return nil
}
