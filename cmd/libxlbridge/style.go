package main

// #include "xlbridge.h"
import "C"

import (
	"github.com/wippyai/xlsx-bridge/engine"
	"github.com/wippyai/xlsx-bridge/resource"
)

//export xl_style_font
func xl_style_font(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.StyleFont(resource.Handle(h)))
}

//export xl_style_fill
func xl_style_fill(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.StyleFill(resource.Handle(h)))
}

//export xl_style_border
func xl_style_border(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.StyleBorder(resource.Handle(h)))
}

//export xl_style_set_wrap_text
func xl_style_set_wrap_text(h C.xl_handle, on C.bool) {
	x.StyleSetWrapText(resource.Handle(h), bool(on))
}

//export xl_style_set_horizontal_alignment
func xl_style_set_horizontal_alignment(h C.xl_handle, a C.int32_t) {
	x.StyleSetHorizontalAlignment(resource.Handle(h), engine.HorizontalAlignment(a))
}

//export xl_style_set_vertical_alignment
func xl_style_set_vertical_alignment(h C.xl_handle, a C.int32_t) {
	x.StyleSetVerticalAlignment(resource.Handle(h), engine.VerticalAlignment(a))
}

//export xl_font_set_bold
func xl_font_set_bold(h C.xl_handle, on C.bool) {
	x.FontSetBold(resource.Handle(h), bool(on))
}

//export xl_font_set_italic
func xl_font_set_italic(h C.xl_handle, on C.bool) {
	x.FontSetItalic(resource.Handle(h), bool(on))
}

//export xl_font_set_size
func xl_font_set_size(h C.xl_handle, size C.double) {
	x.FontSetSize(resource.Handle(h), float64(size))
}

//export xl_font_color
func xl_font_color(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.FontColor(resource.Handle(h)))
}

//export xl_fill_set_pattern_type
func xl_fill_set_pattern_type(h C.xl_handle, p C.int32_t) {
	x.FillSetPatternType(resource.Handle(h), engine.FillPattern(p))
}

//export xl_fill_background_color
func xl_fill_background_color(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.FillBackgroundColor(resource.Handle(h)))
}

//export xl_border_left
func xl_border_left(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.BorderLeft(resource.Handle(h)))
}

//export xl_border_right
func xl_border_right(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.BorderRight(resource.Handle(h)))
}

//export xl_border_top
func xl_border_top(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.BorderTop(resource.Handle(h)))
}

//export xl_border_bottom
func xl_border_bottom(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.BorderBottom(resource.Handle(h)))
}

//export xl_border_diagonal
func xl_border_diagonal(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.BorderDiagonal(resource.Handle(h)))
}

//export xl_border_set_diagonal_down
func xl_border_set_diagonal_down(h C.xl_handle, on C.bool) {
	x.BorderSetDiagonalDown(resource.Handle(h), bool(on))
}

//export xl_border_item_set_style
func xl_border_item_set_style(h C.xl_handle, st C.int32_t) {
	x.BorderItemSetStyle(resource.Handle(h), engine.BorderStyle(st))
}

//export xl_border_item_color
func xl_border_item_color(h C.xl_handle) C.xl_handle {
	return C.xl_handle(x.BorderItemColor(resource.Handle(h)))
}

//export xl_color_set_color
func xl_color_set_color(h C.xl_handle, argb C.int32_t) {
	x.ColorSetColor(resource.Handle(h), int32(argb))
}
