package engine

import (
	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

type borderSide uint8

const (
	sideLeft borderSide = iota
	sideRight
	sideTop
	sideBottom
	sideDiagonal
)

var sideTypes = [...]string{
	sideLeft:   "left",
	sideRight:  "right",
	sideTop:    "top",
	sideBottom: "bottom",
}

// styleSpec is the editable form of a cell format. Edits go through
// apply, which registers the format with the workbook and assigns it to
// the style's target.
type styleSpec struct {
	base     excelize.Style
	font     excelize.Font
	fill     excelize.Fill
	align    excelize.Alignment
	borders  map[borderSide]excelize.Border
	diagDown bool
	diagUp   bool
}

func newSpec() *styleSpec {
	return &styleSpec{borders: make(map[borderSide]excelize.Border)}
}

func specFrom(st *excelize.Style) *styleSpec {
	s := newSpec()
	if st == nil {
		return s
	}
	s.base = excelize.Style{
		NumFmt:        st.NumFmt,
		DecimalPlaces: st.DecimalPlaces,
		CustomNumFmt:  st.CustomNumFmt,
		NegRed:        st.NegRed,
		Protection:    st.Protection,
	}
	if st.Font != nil {
		s.font = *st.Font
	}
	if st.Alignment != nil {
		s.align = *st.Alignment
	}
	s.fill = st.Fill
	s.fill.Color = append([]string(nil), st.Fill.Color...)
	for _, b := range st.Border {
		switch b.Type {
		case "left":
			s.borders[sideLeft] = b
		case "right":
			s.borders[sideRight] = b
		case "top":
			s.borders[sideTop] = b
		case "bottom":
			s.borders[sideBottom] = b
		case "diagonalDown":
			s.borders[sideDiagonal] = b
			s.diagDown = true
		case "diagonalUp":
			s.borders[sideDiagonal] = b
			s.diagUp = true
		}
	}
	return s
}

func (s *styleSpec) clone() *styleSpec {
	c := *s
	c.fill.Color = append([]string(nil), s.fill.Color...)
	c.borders = make(map[borderSide]excelize.Border, len(s.borders))
	for k, v := range s.borders {
		c.borders[k] = v
	}
	return &c
}

func (s *styleSpec) build() *excelize.Style {
	st := s.base
	font := s.font
	align := s.align
	st.Font = &font
	st.Alignment = &align
	st.Fill = s.fill
	st.Fill.Color = append([]string(nil), s.fill.Color...)

	for side := sideLeft; side <= sideBottom; side++ {
		if b, ok := s.borders[side]; ok {
			b.Type = sideTypes[side]
			st.Border = append(st.Border, b)
		}
	}
	if b, ok := s.borders[sideDiagonal]; ok {
		if s.diagDown {
			b.Type = "diagonalDown"
			st.Border = append(st.Border, b)
		}
		if s.diagUp {
			b.Type = "diagonalUp"
			st.Border = append(st.Border, b)
		}
	}
	return &st
}

func (s *styleSpec) register(f *excelize.File) (int, error) {
	return f.NewStyle(s.build())
}

// styleTarget is where a Style's edits land.
type styleTarget interface {
	apply(p *Package, spec *styleSpec) error
}

type areaTarget cellArea

func (t areaTarget) apply(p *Package, spec *styleSpec) error {
	id, err := spec.register(p.file)
	if err != nil {
		return err
	}
	return cellArea(t).setStyle(p.file, id)
}

func (a cellArea) setStyle(f *excelize.File, id int) error {
	switch {
	case a.fullColumns():
		from, err := excelize.ColumnNumberToName(a.fromCol)
		if err != nil {
			return err
		}
		to, err := excelize.ColumnNumberToName(a.toCol)
		if err != nil {
			return err
		}
		return f.SetColStyle(a.sheet, from+":"+to, id)
	case a.fullRows():
		return f.SetRowStyle(a.sheet, a.fromRow, a.toRow, id)
	default:
		return f.SetCellStyle(a.sheet, a.topLeft(), a.bottomRight(), id)
	}
}

type rowTarget struct {
	sheet string
	row   int
}

func (t rowTarget) apply(p *Package, spec *styleSpec) error {
	id, err := spec.register(p.file)
	if err != nil {
		return err
	}
	return p.file.SetRowStyle(t.sheet, t.row, t.row, id)
}

// namedTarget edits a named style and re-applies it everywhere it is used.
type namedTarget string

func (t namedTarget) apply(p *Package, spec *styleSpec) error {
	uses := p.namedUse[string(t)]
	if len(uses) == 0 {
		return nil
	}
	id, err := spec.register(p.file)
	if err != nil {
		return err
	}
	for _, a := range uses {
		if err := a.setStyle(p.file, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Style) apply() error {
	return s.target.apply(s.pkg, s.spec)
}

// edit changes the spec and applies it, restoring the previous spec when
// the workbook rejects the result.
func (s *Style) edit(fn func(spec *styleSpec) error) error {
	prev := s.spec.clone()
	if err := fn(s.spec); err != nil {
		*s.spec = *prev
		return err
	}
	if err := s.apply(); err != nil {
		*s.spec = *prev
		return err
	}
	return nil
}

// StyleFont returns the font of a style.
func (e *Exporter) StyleFont(h resource.Handle) resource.Handle {
	return child(e, h, "StyleFont", func(s *Style) (object, error) {
		return &Font{node: s.node, style: s}, nil
	})
}

// StyleFill returns the fill of a style.
func (e *Exporter) StyleFill(h resource.Handle) resource.Handle {
	return child(e, h, "StyleFill", func(s *Style) (object, error) {
		return &Fill{node: s.node, style: s}, nil
	})
}

// StyleBorder returns the border of a style.
func (e *Exporter) StyleBorder(h resource.Handle) resource.Handle {
	return child(e, h, "StyleBorder", func(s *Style) (object, error) {
		return &Border{node: s.node, style: s}, nil
	})
}

func (e *Exporter) StyleSetWrapText(h resource.Handle, on bool) {
	do(e, h, "StyleSetWrapText", func(s *Style) error {
		return s.edit(func(spec *styleSpec) error {
			spec.align.WrapText = on
			return nil
		})
	})
}

func (e *Exporter) StyleSetHorizontalAlignment(h resource.Handle, a HorizontalAlignment) {
	do(e, h, "StyleSetHorizontalAlignment", func(s *Style) error {
		name, err := a.excelize()
		if err != nil {
			return err
		}
		return s.edit(func(spec *styleSpec) error {
			spec.align.Horizontal = name
			return nil
		})
	})
}

func (e *Exporter) StyleSetVerticalAlignment(h resource.Handle, a VerticalAlignment) {
	do(e, h, "StyleSetVerticalAlignment", func(s *Style) error {
		name, err := a.excelize()
		if err != nil {
			return err
		}
		return s.edit(func(spec *styleSpec) error {
			spec.align.Vertical = name
			return nil
		})
	})
}

func (e *Exporter) FontSetBold(h resource.Handle, on bool) {
	do(e, h, "FontSetBold", func(f *Font) error {
		return f.style.edit(func(spec *styleSpec) error {
			spec.font.Bold = on
			return nil
		})
	})
}

func (e *Exporter) FontSetItalic(h resource.Handle, on bool) {
	do(e, h, "FontSetItalic", func(f *Font) error {
		return f.style.edit(func(spec *styleSpec) error {
			spec.font.Italic = on
			return nil
		})
	})
}

// FontSetSize sets the font size in points.
func (e *Exporter) FontSetSize(h resource.Handle, size float64) {
	do(e, h, "FontSetSize", func(f *Font) error {
		if size < 1 || size > 409 {
			return fault.NewArgumentOutOfRange("size", size, "font size must be between 1 and 409")
		}
		return f.style.edit(func(spec *styleSpec) error {
			spec.font.Size = size
			return nil
		})
	})
}

func (e *Exporter) FontColor(h resource.Handle) resource.Handle {
	return child(e, h, "FontColor", func(f *Font) (object, error) {
		return &Color{node: f.node, style: f.style, set: func(spec *styleSpec, rgb string) error {
			spec.font.Color = rgb
			return nil
		}}, nil
	})
}

func (e *Exporter) FillSetPatternType(h resource.Handle, p FillPattern) {
	do(e, h, "FillSetPatternType", func(f *Fill) error {
		idx, err := p.excelize()
		if err != nil {
			return err
		}
		return f.style.edit(func(spec *styleSpec) error {
			if p == FillNone {
				spec.fill = excelize.Fill{}
				return nil
			}
			spec.fill.Type = "pattern"
			spec.fill.Pattern = idx
			return nil
		})
	})
}

func (e *Exporter) FillBackgroundColor(h resource.Handle) resource.Handle {
	return child(e, h, "FillBackgroundColor", func(f *Fill) (object, error) {
		return &Color{node: f.node, style: f.style, set: func(spec *styleSpec, rgb string) error {
			if spec.fill.Pattern == 0 {
				return fault.NewArgument("", "Can't set color when patterntype is not set.")
			}
			spec.fill.Color = []string{rgb}
			return nil
		}}, nil
	})
}

func (e *Exporter) borderItem(h resource.Handle, op string, side borderSide) resource.Handle {
	return child(e, h, op, func(b *Border) (object, error) {
		return &BorderItem{node: b.node, style: b.style, side: side}, nil
	})
}

func (e *Exporter) BorderLeft(h resource.Handle) resource.Handle {
	return e.borderItem(h, "BorderLeft", sideLeft)
}

func (e *Exporter) BorderRight(h resource.Handle) resource.Handle {
	return e.borderItem(h, "BorderRight", sideRight)
}

func (e *Exporter) BorderTop(h resource.Handle) resource.Handle {
	return e.borderItem(h, "BorderTop", sideTop)
}

func (e *Exporter) BorderBottom(h resource.Handle) resource.Handle {
	return e.borderItem(h, "BorderBottom", sideBottom)
}

func (e *Exporter) BorderDiagonal(h resource.Handle) resource.Handle {
	return e.borderItem(h, "BorderDiagonal", sideDiagonal)
}

// BorderSetDiagonalDown shows the diagonal border from top-left to bottom-right.
func (e *Exporter) BorderSetDiagonalDown(h resource.Handle, on bool) {
	do(e, h, "BorderSetDiagonalDown", func(b *Border) error {
		return b.style.edit(func(spec *styleSpec) error {
			spec.diagDown = on
			return nil
		})
	})
}

func (e *Exporter) BorderItemSetStyle(h resource.Handle, st BorderStyle) {
	do(e, h, "BorderItemSetStyle", func(b *BorderItem) error {
		idx, err := st.excelize()
		if err != nil {
			return err
		}
		return b.style.edit(func(spec *styleSpec) error {
			item := spec.borders[b.side]
			item.Style = idx
			spec.borders[b.side] = item
			return nil
		})
	})
}

func (e *Exporter) BorderItemColor(h resource.Handle) resource.Handle {
	return child(e, h, "BorderItemColor", func(b *BorderItem) (object, error) {
		side := b.side
		return &Color{node: b.node, style: b.style, set: func(spec *styleSpec, rgb string) error {
			item := spec.borders[side]
			item.Color = rgb
			spec.borders[side] = item
			return nil
		}}, nil
	})
}

// ColorSetColor sets an ARGB color. The alpha channel is ignored.
func (e *Exporter) ColorSetColor(h resource.Handle, argb int32) {
	do(e, h, "ColorSetColor", func(c *Color) error {
		return c.style.edit(func(spec *styleSpec) error {
			return c.set(spec, rgb(argb))
		})
	})
}
