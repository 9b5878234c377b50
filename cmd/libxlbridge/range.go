package main

// #include "xlbridge.h"
import "C"

import (
	"github.com/wippyai/xlsx-bridge/resource"
)

//export xl_range_get_address
func xl_range_get_address(h C.xl_handle) *C.char {
	return C.CString(x.RangeGetAddress(resource.Handle(h)))
}

//export xl_range_cell
func xl_range_cell(h C.xl_handle, row C.int32_t, col C.int32_t, out *C.xl_handle) C.bool {
	var tok resource.Handle
	ok := x.RangeCell(resource.Handle(h), int32(row), int32(col), &tok)
	if out != nil {
		*out = C.xl_handle(tok)
	}
	return C.bool(ok)
}

//export xl_range_area
func xl_range_area(h C.xl_handle, fromRow C.int32_t, fromCol C.int32_t, toRow C.int32_t, toCol C.int32_t) C.xl_handle {
	return C.xl_handle(x.RangeArea(resource.Handle(h), int32(fromRow), int32(fromCol), int32(toRow), int32(toCol)))
}

//export xl_range_address
func xl_range_address(h C.xl_handle, address *C.char) C.xl_handle {
	return C.xl_handle(x.RangeAddress(resource.Handle(h), C.GoString(address)))
}

//export xl_range_set_auto_filter
func xl_range_set_auto_filter(h C.xl_handle, on C.bool) {
	x.RangeSetAutoFilter(resource.Handle(h), bool(on))
}

//export xl_range_set_merge
func xl_range_set_merge(h C.xl_handle, on C.bool) {
	x.RangeSetMerge(resource.Handle(h), bool(on))
}

//export xl_range_set_hyperlink
func xl_range_set_hyperlink(h C.xl_handle, link *C.char, display *C.char) {
	x.RangeSetHyperlink(resource.Handle(h), C.GoString(link), C.GoString(display))
}

//export xl_range_set_style_name
func xl_range_set_style_name(h C.xl_handle, name *C.char) {
	x.RangeSetStyleName(resource.Handle(h), C.GoString(name))
}

//export xl_range_style
func xl_range_style(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.RangeStyle(resource.Handle(h)))
}

//export xl_range_set_string
func xl_range_set_string(h C.xl_handle, v *C.char) {
	x.RangeSetString(resource.Handle(h), C.GoString(v))
}

//export xl_range_set_int
func xl_range_set_int(h C.xl_handle, v C.int64_t) {
	x.RangeSetInt(resource.Handle(h), int64(v))
}

//export xl_range_set_float
func xl_range_set_float(h C.xl_handle, v C.double) {
	x.RangeSetFloat(resource.Handle(h), float64(v))
}

//export xl_range_rich_text
func xl_range_rich_text(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.RangeRichText(resource.Handle(h)))
}

//export xl_rich_text_collection_add
func xl_rich_text_collection_add(h C.xl_handle, text *C.char) C.xl_handle {
	return C.xl_handle(x.RichTextCollectionAdd(resource.Handle(h), C.GoString(text)))
}

//export xl_rich_text_set_bold
func xl_rich_text_set_bold(h C.xl_handle, on C.bool) {
	x.RichTextSetBold(resource.Handle(h), bool(on))
}

//export xl_rich_text_set_italic
func xl_rich_text_set_italic(h C.xl_handle, on C.bool) {
	x.RichTextSetItalic(resource.Handle(h), bool(on))
}

//export xl_rich_text_set_color
func xl_rich_text_set_color(h C.xl_handle, argb C.int32_t) {
	x.RichTextSetColor(resource.Handle(h), int32(argb))
}
