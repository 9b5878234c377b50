package engine

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

// PackageNew creates an empty workbook package.
func (e *Exporter) PackageNew() resource.Handle {
	return export(e, 0, "PackageNew", func() (resource.Handle, error) {
		return e.alloc(0, newPackage())
	})
}

func (e *Exporter) PackageWorkbook(h resource.Handle) resource.Handle {
	return child(e, h, "PackageWorkbook", func(p *Package) (object, error) {
		return &Workbook{node: p.node}, nil
	})
}

// PackageSaveAs writes the workbook to path. An existing file is never
// overwritten.
func (e *Exporter) PackageSaveAs(h resource.Handle, path string) {
	do(e, h, "PackageSaveAs", func(p *Package) error {
		if strings.TrimSpace(path) == "" {
			return fault.NewArgumentNull("path")
		}
		full, err := filepath.Abs(path)
		if err != nil {
			return fault.NewIO(path, "resolve path: %v", err)
		}
		if _, err := os.Stat(full); err == nil {
			return fault.NewIO(full, "File exist %s", full)
		} else if !stderrors.Is(err, fs.ErrNotExist) {
			return fault.NewIO(full, "stat: %v", err)
		}
		if len(p.sheets()) == 0 {
			return fault.NewInvalidOperation("The workbook must contain at least one worksheet")
		}
		if err := p.file.SaveAs(full); err != nil {
			return err
		}
		Logger().Info("package saved", zap.String("path", full))
		return nil
	})
}

// PackageClose releases the workbook and invalidates every token obtained
// from the package. The package token itself stays allocated until freed;
// other calls through it fail with ObjectDisposedError. Closing twice is a
// no-op.
func (e *Exporter) PackageClose(h resource.Handle) {
	export(e, h, "PackageClose", func() (struct{}, error) {
		p, err := deref[*Package](e, h)
		if err != nil {
			return struct{}{}, err
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			return struct{}{}, nil
		}
		p.closed = true
		n := e.table.RemoveDescendants(h)
		p.closeFile()
		Logger().Info("package closed", zap.Int("invalidated", n))
		return struct{}{}, nil
	})
}

func (e *Exporter) WorkbookWorksheets(h resource.Handle) resource.Handle {
	return child(e, h, "WorkbookWorksheets", func(w *Workbook) (object, error) {
		return &Worksheets{node: w.node}, nil
	})
}

func (e *Exporter) WorkbookStyles(h resource.Handle) resource.Handle {
	return child(e, h, "WorkbookStyles", func(w *Workbook) (object, error) {
		return &Styles{node: w.node}, nil
	})
}

func (e *Exporter) WorkbookView(h resource.Handle) resource.Handle {
	return child(e, h, "WorkbookView", func(w *Workbook) (object, error) {
		return &WorkbookView{node: w.node}, nil
	})
}

// WorkbookViewSetActiveTab selects the worksheet shown on open, 0-based.
func (e *Exporter) WorkbookViewSetActiveTab(h resource.Handle, tab int32) {
	do(e, h, "WorkbookViewSetActiveTab", func(v *WorkbookView) error {
		n := len(v.pkg.sheets())
		if tab < 0 || int(tab) >= n {
			return fault.NewArgumentOutOfRange("activeTab", tab, "active tab must be between 0 and %d", n-1)
		}
		v.pkg.file.SetActiveSheet(int(tab))
		return nil
	})
}

// WorksheetsAdd appends a worksheet named name.
func (e *Exporter) WorksheetsAdd(h resource.Handle, name string) resource.Handle {
	return child(e, h, "WorksheetsAdd", func(ws *Worksheets) (object, error) {
		name, err := sheetName(name)
		if err != nil {
			return nil, err
		}
		p := ws.pkg
		for _, existing := range p.sheets() {
			if strings.EqualFold(existing, name) {
				return nil, fault.NewInvalidOperation("A worksheet with name '%s' already exists in the workbook", name)
			}
		}
		if p.placeholder != "" {
			if err := p.file.SetSheetName(p.placeholder, name); err != nil {
				return nil, err
			}
			p.placeholder = ""
		} else if _, err := p.file.NewSheet(name); err != nil {
			return nil, err
		}
		return &Worksheet{node: ws.node, name: name}, nil
	})
}

// WorksheetsCount returns the number of worksheets.
func (e *Exporter) WorksheetsCount(h resource.Handle) int32 {
	return call(e, h, "WorksheetsCount", func(ws *Worksheets) (int32, error) {
		return int32(len(ws.pkg.sheets())), nil
	})
}

// sheetName normalizes to NFC and applies the workbook naming rules.
func sheetName(name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "", fault.NewArgumentNull("name")
	}
	if utf8.RuneCountInString(name) > 31 {
		return "", fault.NewArgument("name", "The worksheet name can not be longer than 31 characters")
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return "", fault.NewArgument("name", "The worksheet name can not contain any of the characters : \\ / ? * [ ]")
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return "", fault.NewArgument("name", "The worksheet name can not start or end with an apostrophe")
	}
	return name, nil
}
