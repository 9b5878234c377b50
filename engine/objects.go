package engine

import (
	"sync"
	"sync/atomic"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type objectKind uint32

const (
	kindPackage objectKind = iota + 1
	kindWorkbook
	kindWorkbookView
	kindWorksheets
	kindWorksheet
	kindWorksheetView
	kindRow
	kindColumn
	kindRange
	kindStyles
	kindNamedStyle
	kindStyle
	kindFont
	kindFill
	kindBorder
	kindBorderItem
	kindColor
	kindRichTextCollection
	kindRichText
)

var kindNames = [...]string{
	kindPackage:            "Package",
	kindWorkbook:           "Workbook",
	kindWorkbookView:       "WorkbookView",
	kindWorksheets:         "Worksheets",
	kindWorksheet:          "Worksheet",
	kindWorksheetView:      "WorksheetView",
	kindRow:                "Row",
	kindColumn:             "Column",
	kindRange:              "Range",
	kindStyles:             "Styles",
	kindNamedStyle:         "NamedStyle",
	kindStyle:              "Style",
	kindFont:               "Font",
	kindFill:               "Fill",
	kindBorder:             "Border",
	kindBorderItem:         "BorderItem",
	kindColor:              "Color",
	kindRichTextCollection: "RichTextCollection",
	kindRichText:           "RichText",
}

func (k objectKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// node ties an object to its package. Every live token holds one
// reference on the package; the workbook file is released with the last.
type node struct {
	pkg *Package
}

func (n node) owner() *Package { return n.pkg }

// Drop is called by the handle table when the object's token is freed.
func (n node) Drop() { n.pkg.release() }

// Package owns one workbook file. All objects of a package share its
// mutex, so calls on one package are serialized while separate packages
// run in parallel.
type Package struct {
	node
	mu     sync.Mutex
	file   *excelize.File
	closed bool

	// placeholder is the default sheet created with the file. It is
	// renamed by the first Worksheets.Add and not counted before that.
	placeholder string

	named    map[string]*styleSpec
	namedUse map[string][]cellArea

	refs      atomic.Int64
	closeOnce sync.Once
}

func newPackage() *Package {
	f := excelize.NewFile()
	p := &Package{
		file:        f,
		placeholder: f.GetSheetName(0),
		named:       make(map[string]*styleSpec),
		namedUse:    make(map[string][]cellArea),
	}
	p.pkg = p
	return p
}

func (p *Package) kind() objectKind { return kindPackage }

func (p *Package) retain() { p.refs.Add(1) }

func (p *Package) release() {
	if p.refs.Add(-1) <= 0 {
		p.closeFile()
	}
}

func (p *Package) closeFile() {
	p.closeOnce.Do(func() {
		if err := p.file.Close(); err != nil {
			Logger().Warn("close workbook file", zap.Error(err))
		}
	})
}

// sheets returns the visible worksheet names, excluding the placeholder.
func (p *Package) sheets() []string {
	if p.placeholder != "" {
		return nil
	}
	return p.file.GetSheetList()
}

type Workbook struct{ node }

func (*Workbook) kind() objectKind { return kindWorkbook }

type WorkbookView struct{ node }

func (*WorkbookView) kind() objectKind { return kindWorkbookView }

type Worksheets struct{ node }

func (*Worksheets) kind() objectKind { return kindWorksheets }

type Worksheet struct {
	node
	name string
}

func (*Worksheet) kind() objectKind { return kindWorksheet }

type WorksheetView struct {
	node
	sheet string
}

func (*WorksheetView) kind() objectKind { return kindWorksheetView }

type Row struct {
	node
	sheet string
	row   int
}

func (*Row) kind() objectKind { return kindRow }

type Column struct {
	node
	sheet string
	col   int
}

func (*Column) kind() objectKind { return kindColumn }

type Range struct {
	node
	area cellArea
}

func (*Range) kind() objectKind { return kindRange }

type Styles struct{ node }

func (*Styles) kind() objectKind { return kindStyles }

type NamedStyle struct {
	node
	name string
}

func (*NamedStyle) kind() objectKind { return kindNamedStyle }

type Style struct {
	node
	target styleTarget
	spec   *styleSpec
}

func (*Style) kind() objectKind { return kindStyle }

type Font struct {
	node
	style *Style
}

func (*Font) kind() objectKind { return kindFont }

type Fill struct {
	node
	style *Style
}

func (*Fill) kind() objectKind { return kindFill }

type Border struct {
	node
	style *Style
}

func (*Border) kind() objectKind { return kindBorder }

type BorderItem struct {
	node
	style *Style
	side  borderSide
}

func (*BorderItem) kind() objectKind { return kindBorderItem }

// Color writes through set into the style it was obtained from.
type Color struct {
	node
	style *Style
	set   func(spec *styleSpec, rgb string) error
}

func (*Color) kind() objectKind { return kindColor }

type RichTextCollection struct {
	node
	sheet string
	cell  string
	runs  []excelize.RichTextRun
}

func (*RichTextCollection) kind() objectKind { return kindRichTextCollection }

type RichText struct {
	node
	coll  *RichTextCollection
	index int
}

func (*RichText) kind() objectKind { return kindRichText }
