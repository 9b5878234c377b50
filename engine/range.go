package engine

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

// maxWriteCells bounds value writes over a range.
const maxWriteCells = 1 << 20

// RangeGetAddress returns the range's A1 address, e.g. "B2:D10".
func (e *Exporter) RangeGetAddress(h resource.Handle) string {
	return call(e, h, "RangeGetAddress", func(r *Range) (string, error) {
		return r.area.address(), nil
	})
}

// RangeCell resolves the single cell at sheet coordinates row and col.
// It reports success through the return value and writes the new token
// to out.
func (e *Exporter) RangeCell(h resource.Handle, row, col int32, out *resource.Handle) bool {
	if out != nil {
		*out = 0
	}
	c := child(e, h, "RangeCell", func(r *Range) (object, error) {
		if out == nil {
			return nil, fault.NewArgumentNull("out")
		}
		a, err := r.area.cell(int(row), int(col))
		if err != nil {
			return nil, err
		}
		return &Range{node: r.node, area: a}, nil
	})
	if c == 0 {
		return false
	}
	*out = c
	return true
}

// RangeArea returns the range spanning the given corners.
func (e *Exporter) RangeArea(h resource.Handle, fromRow, fromCol, toRow, toCol int32) resource.Handle {
	return child(e, h, "RangeArea", func(r *Range) (object, error) {
		a, err := newArea(r.area.sheet, int(fromRow), int(fromCol), int(toRow), int(toCol))
		if err != nil {
			return nil, err
		}
		return &Range{node: r.node, area: a}, nil
	})
}

// RangeAddress returns the range for an A1 address on the same sheet.
func (e *Exporter) RangeAddress(h resource.Handle, address string) resource.Handle {
	return child(e, h, "RangeAddress", func(r *Range) (object, error) {
		a, err := parseArea(r.area.sheet, address)
		if err != nil {
			return nil, err
		}
		return &Range{node: r.node, area: a}, nil
	})
}

// RangeSetAutoFilter adds an auto filter over the range.
func (e *Exporter) RangeSetAutoFilter(h resource.Handle, on bool) {
	do(e, h, "RangeSetAutoFilter", func(r *Range) error {
		if !on {
			return fault.NewNotSupported("removing an auto filter is not supported")
		}
		return r.pkg.file.AutoFilter(r.area.sheet, r.area.address(), nil)
	})
}

// RangeSetMerge merges or unmerges the range.
func (e *Exporter) RangeSetMerge(h resource.Handle, on bool) {
	do(e, h, "RangeSetMerge", func(r *Range) error {
		a := r.area
		if on {
			if a.fromRow == a.toRow && a.fromCol == a.toCol {
				return fault.NewInvalidOperation("Can't merge a single cell %s", a.address())
			}
			return r.pkg.file.MergeCell(a.sheet, a.topLeft(), a.bottomRight())
		}
		return r.pkg.file.UnmergeCell(a.sheet, a.topLeft(), a.bottomRight())
	})
}

// RangeSetHyperlink links the top-left cell of the range. URLs with a
// scheme are external; anything else is a location inside the workbook.
// A non-empty display text also becomes the cell value.
func (e *Exporter) RangeSetHyperlink(h resource.Handle, link, display string) {
	do(e, h, "RangeSetHyperlink", func(r *Range) error {
		if strings.TrimSpace(link) == "" {
			return fault.NewArgumentNull("link")
		}
		kind := "Location"
		if strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
			kind = "External"
		}
		cell := r.area.topLeft()
		var opts []excelize.HyperlinkOpts
		if display != "" {
			opts = append(opts, excelize.HyperlinkOpts{Display: &display})
		}
		if err := r.pkg.file.SetCellHyperLink(r.area.sheet, cell, link, kind, opts...); err != nil {
			return err
		}
		if display != "" {
			return r.pkg.file.SetCellValue(r.area.sheet, cell, display)
		}
		return nil
	})
}

// RangeSetStyleName applies a named style created with StylesCreateNamedStyle.
func (e *Exporter) RangeSetStyleName(h resource.Handle, name string) {
	do(e, h, "RangeSetStyleName", func(r *Range) error {
		p := r.pkg
		spec, ok := p.named[name]
		if !ok {
			return fault.NewKeyNotFound(name, "No named style '%s' exists in the workbook", name)
		}
		id, err := spec.register(p.file)
		if err != nil {
			return err
		}
		if err := r.area.setStyle(p.file, id); err != nil {
			return err
		}
		p.namedUse[name] = append(p.namedUse[name], r.area)
		return nil
	})
}

// RangeStyle returns the style of the range, seeded from its top-left cell.
func (e *Exporter) RangeStyle(h resource.Handle) resource.Handle {
	return child(e, h, "RangeStyle", func(r *Range) (object, error) {
		f := r.pkg.file
		spec := newSpec()
		if idx, err := f.GetCellStyle(r.area.sheet, r.area.topLeft()); err == nil && idx != 0 {
			if st, err := f.GetStyle(idx); err == nil {
				spec = specFrom(st)
			}
		}
		return &Style{node: r.node, target: areaTarget(r.area), spec: spec}, nil
	})
}

func (e *Exporter) RangeSetString(h resource.Handle, v string) {
	do(e, h, "RangeSetString", func(r *Range) error {
		return r.fill(v)
	})
}

func (e *Exporter) RangeSetInt(h resource.Handle, v int64) {
	do(e, h, "RangeSetInt", func(r *Range) error {
		return r.fill(v)
	})
}

func (e *Exporter) RangeSetFloat(h resource.Handle, v float64) {
	do(e, h, "RangeSetFloat", func(r *Range) error {
		return r.fill(v)
	})
}

// fill writes v into every cell of the range.
func (r *Range) fill(v any) error {
	if n := r.area.cellCount(); n > maxWriteCells {
		return fault.NewNotSupported("writing %d cells at once is not supported", n)
	}
	return r.area.each(func(cell string) error {
		return r.pkg.file.SetCellValue(r.area.sheet, cell, v)
	})
}

// StylesCreateNamedStyle adds a named style and returns it.
func (e *Exporter) StylesCreateNamedStyle(h resource.Handle, name string) resource.Handle {
	return child(e, h, "StylesCreateNamedStyle", func(s *Styles) (object, error) {
		if strings.TrimSpace(name) == "" {
			return nil, fault.NewArgumentNull("name")
		}
		if _, ok := s.pkg.named[name]; ok {
			return nil, fault.NewInvalidOperation("Key already exists in collection: %s", name)
		}
		s.pkg.named[name] = newSpec()
		return &NamedStyle{node: s.node, name: name}, nil
	})
}

// NamedStyleStyle returns the editable style of a named style.
func (e *Exporter) NamedStyleStyle(h resource.Handle) resource.Handle {
	return child(e, h, "NamedStyleStyle", func(n *NamedStyle) (object, error) {
		spec, ok := n.pkg.named[n.name]
		if !ok {
			return nil, fault.NewKeyNotFound(n.name, "No named style '%s' exists in the workbook", n.name)
		}
		return &Style{node: n.node, target: namedTarget(n.name), spec: spec}, nil
	})
}
