package main

// #include "xlbridge.h"
import "C"

import (
	"github.com/wippyai/xlsx-bridge/resource"
)

//export xl_worksheet_name
func xl_worksheet_name(h C.xl_handle) *C.char {
	return C.CString(x.WorksheetName(resource.Handle(h)))
}

//export xl_worksheet_view
func xl_worksheet_view(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.WorksheetView(resource.Handle(h)))
}

//export xl_worksheet_row
func xl_worksheet_row(h C.xl_handle, row C.int32_t) C.xl_handle {
	return C.xl_handle(x.WorksheetRow(resource.Handle(h), int32(row)))
}

//export xl_worksheet_column
func xl_worksheet_column(h C.xl_handle, col C.int32_t) C.xl_handle {
	return C.xl_handle(x.WorksheetColumn(resource.Handle(h), int32(col)))
}

//export xl_worksheet_cells
func xl_worksheet_cells(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.WorksheetCells(resource.Handle(h)))
}

//export xl_worksheet_view_freeze_panes
func xl_worksheet_view_freeze_panes(h C.xl_handle, row C.int32_t, col C.int32_t) {
	x.WorksheetViewFreezePanes(resource.Handle(h), int32(row), int32(col))
}

//export xl_column_set_width
func xl_column_set_width(h C.xl_handle, width C.double) {
	x.ColumnSetWidth(resource.Handle(h), float64(width))
}

//export xl_row_number
func xl_row_number(h C.xl_handle) C.int32_t {
	return C.int32_t(x.RowNumber(resource.Handle(h)))
}

//export xl_row_set_height
func xl_row_set_height(h C.xl_handle, height C.double) {
	x.RowSetHeight(resource.Handle(h), float64(height))
}

//export xl_row_style
func xl_row_style(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.RowStyle(resource.Handle(h)))
}
