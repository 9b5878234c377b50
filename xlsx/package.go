package xlsx

import (
	"github.com/wippyai/xlsx-bridge/resource"
	bridge "github.com/wippyai/xlsx-bridge/runtime"
)

var (
	packageNew      func() resource.Handle
	packageWorkbook func(resource.Handle) resource.Handle
	packageSaveAs   func(resource.Handle, string)
	packageClose    func(resource.Handle)

	workbookWorksheets       func(resource.Handle) resource.Handle
	workbookStyles           func(resource.Handle) resource.Handle
	workbookView             func(resource.Handle) resource.Handle
	workbookViewSetActiveTab func(resource.Handle, int32)

	worksheetsAdd   func(resource.Handle, string) resource.Handle
	worksheetsCount func(resource.Handle) int32

	stylesCreateNamedStyle func(resource.Handle, string) resource.Handle
	namedStyleStyle        func(resource.Handle) resource.Handle
)

func init() {
	entries(
		bridge.Binding{Name: "package-new", Ptr: &packageNew},
		bridge.Binding{Name: "package-workbook", Ptr: &packageWorkbook},
		bridge.Binding{Name: "package-save-as", Ptr: &packageSaveAs},
		bridge.Binding{Name: "package-close", Ptr: &packageClose},
		bridge.Binding{Name: "workbook-worksheets", Ptr: &workbookWorksheets},
		bridge.Binding{Name: "workbook-styles", Ptr: &workbookStyles},
		bridge.Binding{Name: "workbook-view", Ptr: &workbookView},
		bridge.Binding{Name: "workbook-view-set-active-tab", Ptr: &workbookViewSetActiveTab},
		bridge.Binding{Name: "worksheets-add", Ptr: &worksheetsAdd},
		bridge.Binding{Name: "worksheets-count", Ptr: &worksheetsCount},
		bridge.Binding{Name: "styles-create-named-style", Ptr: &stylesCreateNamedStyle},
		bridge.Binding{Name: "named-style-style", Ptr: &namedStyleStyle},
	)
}

// Package is a workbook file being built.
type Package struct{ handle }

// NewPackage creates an empty package. It opens the engine library on
// first use.
func NewPackage() (*Package, error) {
	if err := bind(); err != nil {
		return nil, err
	}
	tok, err := bridge.StaticHandle(packageNew)
	if err != nil {
		return nil, err
	}
	return wrap[Package]("Package", tok), nil
}

func (p *Package) Workbook() (*Workbook, error) {
	return child[Workbook](&p.handle, "Workbook", packageWorkbook)
}

// SaveAs writes the package to path. It fails with an IOError when the
// file already exists.
func (p *Package) SaveAs(path string) error {
	return exec(&p.handle, func(t resource.Handle) { packageSaveAs(t, path) })
}

// Close releases the workbook, invalidating every object obtained from
// the package, then releases the package itself.
func (p *Package) Close() error {
	if p.h.IsClosed() {
		return nil
	}
	err := exec(&p.handle, packageClose)
	p.h.Dispose()
	return err
}

type Workbook struct{ handle }

func (w *Workbook) Worksheets() (*Worksheets, error) {
	return child[Worksheets](&w.handle, "Worksheets", workbookWorksheets)
}

func (w *Workbook) Styles() (*Styles, error) {
	return child[Styles](&w.handle, "Styles", workbookStyles)
}

func (w *Workbook) View() (*WorkbookView, error) {
	return child[WorkbookView](&w.handle, "WorkbookView", workbookView)
}

type WorkbookView struct{ handle }

// SetActiveTab selects the worksheet shown when the file is opened, 0-based.
func (v *WorkbookView) SetActiveTab(tab int) error {
	n, err := narrow([]string{"tab"}, tab)
	if err != nil {
		return err
	}
	return exec(&v.handle, func(t resource.Handle) { workbookViewSetActiveTab(t, n[0]) })
}

type Worksheets struct{ handle }

// Add appends a worksheet. Names are unique ignoring case.
func (w *Worksheets) Add(name string) (*Worksheet, error) {
	return child[Worksheet](&w.handle, "Worksheet", func(t resource.Handle) resource.Handle {
		return worksheetsAdd(t, name)
	})
}

func (w *Worksheets) Count() (int, error) {
	n, err := get(&w.handle, worksheetsCount)
	return int(n), err
}

type Styles struct{ handle }

// CreateNamedStyle adds a style that ranges can refer to by name.
func (s *Styles) CreateNamedStyle(name string) (*NamedStyle, error) {
	return child[NamedStyle](&s.handle, "NamedStyle", func(t resource.Handle) resource.Handle {
		return stylesCreateNamedStyle(t, name)
	})
}

type NamedStyle struct{ handle }

// Style returns the editable style. Edits apply to every range using it.
func (n *NamedStyle) Style() (*Style, error) {
	return child[Style](&n.handle, "Style", namedStyleStyle)
}
