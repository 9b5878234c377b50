package xlsx

import (
	"image/color"

	"github.com/wippyai/xlsx-bridge/errors"
	"github.com/wippyai/xlsx-bridge/resource"
	bridge "github.com/wippyai/xlsx-bridge/runtime"
)

var (
	rangeAddress       func(resource.Handle, string) resource.Handle
	rangeCell          func(resource.Handle, int32, int32, *resource.Handle) bool
	rangeArea          func(resource.Handle, int32, int32, int32, int32) resource.Handle
	rangeGetAddress    func(resource.Handle) string
	rangeSetAutoFilter func(resource.Handle, bool)
	rangeSetMerge      func(resource.Handle, bool)
	rangeSetHyperlink  func(resource.Handle, string, string)
	rangeSetStyleName  func(resource.Handle, string)
	rangeRichText      func(resource.Handle) resource.Handle
	rangeStyle         func(resource.Handle) resource.Handle
	rangeSetString     func(resource.Handle, string)
	rangeSetInt        func(resource.Handle, int64)
	rangeSetFloat      func(resource.Handle, float64)

	richTextCollectionAdd func(resource.Handle, string) resource.Handle
	richTextSetBold       func(resource.Handle, bool)
	richTextSetItalic     func(resource.Handle, bool)
	richTextSetColor      func(resource.Handle, int32)
)

func init() {
	entries(
		bridge.Binding{Name: "range-address", Ptr: &rangeAddress},
		bridge.Binding{Name: "range-cell", Ptr: &rangeCell},
		bridge.Binding{Name: "range-area", Ptr: &rangeArea},
		bridge.Binding{Name: "range-get-address", Ptr: &rangeGetAddress},
		bridge.Binding{Name: "range-set-auto-filter", Ptr: &rangeSetAutoFilter},
		bridge.Binding{Name: "range-set-merge", Ptr: &rangeSetMerge},
		bridge.Binding{Name: "range-set-hyperlink", Ptr: &rangeSetHyperlink},
		bridge.Binding{Name: "range-set-style-name", Ptr: &rangeSetStyleName},
		bridge.Binding{Name: "range-rich-text", Ptr: &rangeRichText},
		bridge.Binding{Name: "range-style", Ptr: &rangeStyle},
		bridge.Binding{Name: "range-set-string", Ptr: &rangeSetString},
		bridge.Binding{Name: "range-set-int", Ptr: &rangeSetInt},
		bridge.Binding{Name: "range-set-float", Ptr: &rangeSetFloat},
		bridge.Binding{Name: "rich-text-collection-add", Ptr: &richTextCollectionAdd},
		bridge.Binding{Name: "rich-text-set-bold", Ptr: &richTextSetBold},
		bridge.Binding{Name: "rich-text-set-italic", Ptr: &richTextSetItalic},
		bridge.Binding{Name: "rich-text-set-color", Ptr: &richTextSetColor},
	)
}

// Range is a rectangle of cells on one worksheet. Indexers take sheet
// coordinates, not offsets into the range.
type Range struct{ handle }

// Address returns the range for an A1 reference such as "B2:D10".
func (r *Range) Address(address string) (*Range, error) {
	return child[Range](&r.handle, "Range", func(t resource.Handle) resource.Handle {
		return rangeAddress(t, address)
	})
}

// Cell returns the cell at row and col, both 1-based.
func (r *Range) Cell(row, col int) (*Range, error) {
	n, err := narrow([]string{"row", "col"}, row, col)
	if err != nil {
		return nil, err
	}
	var out resource.Handle
	ok, err := get(&r.handle, func(t resource.Handle) bool {
		return rangeCell(t, n[0], n[1], &out)
	})
	if err != nil {
		return nil, err
	}
	if !ok || out == 0 {
		return nil, errors.BridgeFailure("", "cell lookup failed and reported no fault", nil)
	}
	return wrap[Range]("Range", out), nil
}

// Area returns the range between two corners, in any order.
func (r *Range) Area(fromRow, fromCol, toRow, toCol int) (*Range, error) {
	n, err := narrow([]string{"fromRow", "fromCol", "toRow", "toCol"}, fromRow, fromCol, toRow, toCol)
	if err != nil {
		return nil, err
	}
	return child[Range](&r.handle, "Range", func(t resource.Handle) resource.Handle {
		return rangeArea(t, n[0], n[1], n[2], n[3])
	})
}

// GetAddress returns the A1 reference of the range.
func (r *Range) GetAddress() (string, error) {
	return get(&r.handle, rangeGetAddress)
}

// SetAutoFilter adds an auto filter. Removing one is not supported.
func (r *Range) SetAutoFilter(on bool) error {
	return exec(&r.handle, func(t resource.Handle) { rangeSetAutoFilter(t, on) })
}

func (r *Range) SetMerge(on bool) error {
	return exec(&r.handle, func(t resource.Handle) { rangeSetMerge(t, on) })
}

// SetHyperlink links the top-left cell to a URL or to a location such as
// "Sheet2!A1". A non-empty display text becomes the cell value.
func (r *Range) SetHyperlink(link, display string) error {
	return exec(&r.handle, func(t resource.Handle) { rangeSetHyperlink(t, link, display) })
}

// SetStyleName applies a named style.
func (r *Range) SetStyleName(name string) error {
	return exec(&r.handle, func(t resource.Handle) { rangeSetStyleName(t, name) })
}

func (r *Range) RichText() (*RichTextCollection, error) {
	return child[RichTextCollection](&r.handle, "RichTextCollection", rangeRichText)
}

func (r *Range) Style() (*Style, error) {
	return child[Style](&r.handle, "Style", rangeStyle)
}

// SetValue writes v into every cell of the range. Strings, integers and
// floats are accepted.
func (r *Range) SetValue(v any) error {
	switch x := v.(type) {
	case string:
		return exec(&r.handle, func(t resource.Handle) { rangeSetString(t, x) })
	case int:
		return r.setInt(int64(x))
	case int32:
		return r.setInt(int64(x))
	case int64:
		return r.setInt(x)
	case float32:
		return r.setFloat(float64(x))
	case float64:
		return r.setFloat(x)
	}
	return errors.New(errors.PhaseCall, errors.KindTypeMismatch).
		Path("Range", "SetValue").
		Value(v).
		Detail("unsupported value type %T", v).
		Build()
}

func (r *Range) setInt(v int64) error {
	return exec(&r.handle, func(t resource.Handle) { rangeSetInt(t, v) })
}

func (r *Range) setFloat(v float64) error {
	return exec(&r.handle, func(t resource.Handle) { rangeSetFloat(t, v) })
}

// RichTextCollection is the list of formatted runs in one cell.
type RichTextCollection struct{ handle }

// Add appends a run of text.
func (c *RichTextCollection) Add(text string) (*RichText, error) {
	return child[RichText](&c.handle, "RichText", func(t resource.Handle) resource.Handle {
		return richTextCollectionAdd(t, text)
	})
}

type RichText struct{ handle }

func (r *RichText) SetBold(on bool) error {
	return exec(&r.handle, func(t resource.Handle) { richTextSetBold(t, on) })
}

func (r *RichText) SetItalic(on bool) error {
	return exec(&r.handle, func(t resource.Handle) { richTextSetItalic(t, on) })
}

// SetColor sets the run color. Alpha is ignored.
func (r *RichText) SetColor(c color.Color) error {
	v, err := argb(c)
	if err != nil {
		return err
	}
	return exec(&r.handle, func(t resource.Handle) { richTextSetColor(t, v) })
}
