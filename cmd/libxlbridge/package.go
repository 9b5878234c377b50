package main

// #include "xlbridge.h"
import "C"

import (
	"github.com/wippyai/xlsx-bridge/resource"
)

//export xl_package_new
func xl_package_new() C.xl_handle {
	return C.xl_handle(x.PackageNew())
}

//export xl_package_workbook
func xl_package_workbook(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.PackageWorkbook(resource.Handle(h)))
}

//export xl_package_save_as
func xl_package_save_as(h C.xl_handle, path *C.char) {
	x.PackageSaveAs(resource.Handle(h), C.GoString(path))
}

//export xl_package_close
func xl_package_close(h C.xl_handle) {
	x.PackageClose(resource.Handle(h))
}

//export xl_workbook_worksheets
func xl_workbook_worksheets(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.WorkbookWorksheets(resource.Handle(h)))
}

//export xl_workbook_styles
func xl_workbook_styles(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.WorkbookStyles(resource.Handle(h)))
}

//export xl_workbook_view
func xl_workbook_view(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.WorkbookView(resource.Handle(h)))
}

//export xl_workbook_view_set_active_tab
func xl_workbook_view_set_active_tab(h C.xl_handle, tab C.int32_t) {
	x.WorkbookViewSetActiveTab(resource.Handle(h), int32(tab))
}

//export xl_worksheets_add
func xl_worksheets_add(h C.xl_handle, name *C.char) C.xl_handle {
	return C.xl_handle(x.WorksheetsAdd(resource.Handle(h), C.GoString(name)))
}

//export xl_worksheets_count
func xl_worksheets_count(h C.xl_handle) C.int32_t {
	return C.int32_t(x.WorksheetsCount(resource.Handle(h)))
}

//export xl_styles_create_named_style
func xl_styles_create_named_style(h C.xl_handle, name *C.char) C.xl_handle {
	return C.xl_handle(x.StylesCreateNamedStyle(resource.Handle(h), C.GoString(name)))
}

//export xl_named_style_style
func xl_named_style_style(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.NamedStyleStyle(resource.Handle(h)))
}
