package xlsx

import (
	"image/color"

	"github.com/wippyai/xlsx-bridge/resource"
	bridge "github.com/wippyai/xlsx-bridge/runtime"
)

var (
	styleFont                   func(resource.Handle) resource.Handle
	styleFill                   func(resource.Handle) resource.Handle
	styleBorder                 func(resource.Handle) resource.Handle
	styleSetWrapText            func(resource.Handle, bool)
	styleSetHorizontalAlignment func(resource.Handle, HorizontalAlignment)
	styleSetVerticalAlignment   func(resource.Handle, VerticalAlignment)

	fontSetBold   func(resource.Handle, bool)
	fontSetItalic func(resource.Handle, bool)
	fontSetSize   func(resource.Handle, float64)
	fontColor     func(resource.Handle) resource.Handle

	fillSetPatternType    func(resource.Handle, FillPattern)
	fillBackgroundColor   func(resource.Handle) resource.Handle
	borderLeft            func(resource.Handle) resource.Handle
	borderRight           func(resource.Handle) resource.Handle
	borderTop             func(resource.Handle) resource.Handle
	borderBottom          func(resource.Handle) resource.Handle
	borderDiagonal        func(resource.Handle) resource.Handle
	borderSetDiagonalDown func(resource.Handle, bool)
	borderItemSetStyle    func(resource.Handle, BorderStyle)
	borderItemColor       func(resource.Handle) resource.Handle

	colorSetColor func(resource.Handle, int32)
)

func init() {
	entries(
		bridge.Binding{Name: "style-font", Ptr: &styleFont},
		bridge.Binding{Name: "style-fill", Ptr: &styleFill},
		bridge.Binding{Name: "style-border", Ptr: &styleBorder},
		bridge.Binding{Name: "style-set-wrap-text", Ptr: &styleSetWrapText},
		bridge.Binding{Name: "style-set-horizontal-alignment", Ptr: &styleSetHorizontalAlignment},
		bridge.Binding{Name: "style-set-vertical-alignment", Ptr: &styleSetVerticalAlignment},
		bridge.Binding{Name: "font-set-bold", Ptr: &fontSetBold},
		bridge.Binding{Name: "font-set-italic", Ptr: &fontSetItalic},
		bridge.Binding{Name: "font-set-size", Ptr: &fontSetSize},
		bridge.Binding{Name: "font-color", Ptr: &fontColor},
		bridge.Binding{Name: "fill-set-pattern-type", Ptr: &fillSetPatternType},
		bridge.Binding{Name: "fill-background-color", Ptr: &fillBackgroundColor},
		bridge.Binding{Name: "border-left", Ptr: &borderLeft},
		bridge.Binding{Name: "border-right", Ptr: &borderRight},
		bridge.Binding{Name: "border-top", Ptr: &borderTop},
		bridge.Binding{Name: "border-bottom", Ptr: &borderBottom},
		bridge.Binding{Name: "border-diagonal", Ptr: &borderDiagonal},
		bridge.Binding{Name: "border-set-diagonal-down", Ptr: &borderSetDiagonalDown},
		bridge.Binding{Name: "border-item-set-style", Ptr: &borderItemSetStyle},
		bridge.Binding{Name: "border-item-color", Ptr: &borderItemColor},
		bridge.Binding{Name: "color-set-color", Ptr: &colorSetColor},
	)
}

// Style is the cell format of a range, a row or a named style. Every
// setter takes effect immediately.
type Style struct{ handle }

func (s *Style) Font() (*Font, error) {
	return child[Font](&s.handle, "Font", styleFont)
}

func (s *Style) Fill() (*Fill, error) {
	return child[Fill](&s.handle, "Fill", styleFill)
}

func (s *Style) Border() (*Border, error) {
	return child[Border](&s.handle, "Border", styleBorder)
}

func (s *Style) SetWrapText(on bool) error {
	return exec(&s.handle, func(t resource.Handle) { styleSetWrapText(t, on) })
}

func (s *Style) SetHorizontalAlignment(a HorizontalAlignment) error {
	return exec(&s.handle, func(t resource.Handle) { styleSetHorizontalAlignment(t, a) })
}

func (s *Style) SetVerticalAlignment(a VerticalAlignment) error {
	return exec(&s.handle, func(t resource.Handle) { styleSetVerticalAlignment(t, a) })
}

type Font struct{ handle }

func (f *Font) SetBold(on bool) error {
	return exec(&f.handle, func(t resource.Handle) { fontSetBold(t, on) })
}

func (f *Font) SetItalic(on bool) error {
	return exec(&f.handle, func(t resource.Handle) { fontSetItalic(t, on) })
}

// SetSize sets the size in points.
func (f *Font) SetSize(size float64) error {
	return exec(&f.handle, func(t resource.Handle) { fontSetSize(t, size) })
}

func (f *Font) Color() (*Color, error) {
	return child[Color](&f.handle, "Color", fontColor)
}

type Fill struct{ handle }

func (f *Fill) SetPatternType(p FillPattern) error {
	return exec(&f.handle, func(t resource.Handle) { fillSetPatternType(t, p) })
}

// BackgroundColor returns the fill color. Setting it requires a pattern.
func (f *Fill) BackgroundColor() (*Color, error) {
	return child[Color](&f.handle, "Color", fillBackgroundColor)
}

type Border struct{ handle }

func (b *Border) Left() (*BorderItem, error) {
	return child[BorderItem](&b.handle, "BorderItem", borderLeft)
}

func (b *Border) Right() (*BorderItem, error) {
	return child[BorderItem](&b.handle, "BorderItem", borderRight)
}

func (b *Border) Top() (*BorderItem, error) {
	return child[BorderItem](&b.handle, "BorderItem", borderTop)
}

func (b *Border) Bottom() (*BorderItem, error) {
	return child[BorderItem](&b.handle, "BorderItem", borderBottom)
}

func (b *Border) Diagonal() (*BorderItem, error) {
	return child[BorderItem](&b.handle, "BorderItem", borderDiagonal)
}

func (b *Border) SetDiagonalDown(on bool) error {
	return exec(&b.handle, func(t resource.Handle) { borderSetDiagonalDown(t, on) })
}

type BorderItem struct{ handle }

func (b *BorderItem) SetStyle(s BorderStyle) error {
	return exec(&b.handle, func(t resource.Handle) { borderItemSetStyle(t, s) })
}

func (b *BorderItem) Color() (*Color, error) {
	return child[Color](&b.handle, "Color", borderItemColor)
}

// Color is a color slot of a font, fill or border.
type Color struct{ handle }

// SetColor sets the color. Alpha is ignored.
func (c *Color) SetColor(v color.Color) error {
	x, err := argb(v)
	if err != nil {
		return err
	}
	return exec(&c.handle, func(t resource.Handle) { colorSetColor(t, x) })
}
