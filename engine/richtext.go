package engine

import (
	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

// RangeRichText returns the rich text runs of the range's top-left cell.
// Runs already stored in the cell are loaded.
func (e *Exporter) RangeRichText(h resource.Handle) resource.Handle {
	return child(e, h, "RangeRichText", func(r *Range) (object, error) {
		cell := r.area.topLeft()
		runs, err := r.pkg.file.GetCellRichText(r.area.sheet, cell)
		if err != nil {
			return nil, err
		}
		return &RichTextCollection{node: r.node, sheet: r.area.sheet, cell: cell, runs: runs}, nil
	})
}

// RichTextCollectionAdd appends a run of text and returns it.
func (e *Exporter) RichTextCollectionAdd(h resource.Handle, text string) resource.Handle {
	return child(e, h, "RichTextCollectionAdd", func(c *RichTextCollection) (object, error) {
		c.runs = append(c.runs, excelize.RichTextRun{Text: text})
		if err := c.write(); err != nil {
			c.runs = c.runs[:len(c.runs)-1]
			return nil, err
		}
		return &RichText{node: c.node, coll: c, index: len(c.runs) - 1}, nil
	})
}

func (c *RichTextCollection) write() error {
	return c.pkg.file.SetCellRichText(c.sheet, c.cell, c.runs)
}

// font edits the run's font and rewrites the cell.
func (t *RichText) font(fn func(f *excelize.Font)) error {
	if t.index >= len(t.coll.runs) {
		return fault.NewIndexOutOfRange("rich text run %d no longer exists", t.index)
	}
	run := &t.coll.runs[t.index]
	if run.Font == nil {
		run.Font = &excelize.Font{}
	}
	prev := *run.Font
	fn(run.Font)
	if err := t.coll.write(); err != nil {
		*run.Font = prev
		return err
	}
	return nil
}

func (e *Exporter) RichTextSetBold(h resource.Handle, on bool) {
	do(e, h, "RichTextSetBold", func(t *RichText) error {
		return t.font(func(f *excelize.Font) { f.Bold = on })
	})
}

func (e *Exporter) RichTextSetItalic(h resource.Handle, on bool) {
	do(e, h, "RichTextSetItalic", func(t *RichText) error {
		return t.font(func(f *excelize.Font) { f.Italic = on })
	})
}

// RichTextSetColor sets the run's ARGB color. The alpha channel is ignored.
func (e *Exporter) RichTextSetColor(h resource.Handle, argb int32) {
	do(e, h, "RichTextSetColor", func(t *RichText) error {
		return t.font(func(f *excelize.Font) { f.Color = rgb(argb) })
	})
}
