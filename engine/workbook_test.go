package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

type sheetFixture struct {
	pkg    resource.Handle
	wb     resource.Handle
	sheets resource.Handle
	ws     resource.Handle
	cells  resource.Handle
}

func newSheet(t *testing.T, e *Exporter, name string) sheetFixture {
	t.Helper()
	var f sheetFixture
	f.pkg = e.PackageNew()
	f.wb = e.PackageWorkbook(f.pkg)
	f.sheets = e.WorkbookWorksheets(f.wb)
	f.ws = e.WorksheetsAdd(f.sheets, name)
	f.cells = e.WorksheetCells(f.ws)
	require.NotZero(t, f.cells)
	return f
}

func openSaved(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWorksheets_PlaceholderNotCounted(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	sheets := e.WorkbookWorksheets(e.PackageWorkbook(pkg))
	assert.Equal(t, int32(0), e.WorksheetsCount(sheets))

	e.WorksheetsAdd(sheets, "First")
	e.WorksheetsAdd(sheets, "Second")
	rec.none(t)
	assert.Equal(t, int32(2), e.WorksheetsCount(sheets))
}

func TestWorksheets_AddRejectsBadNames(t *testing.T) {
	e, rec := newTestExporter(t)
	f := newSheet(t, e, "Data")

	tests := []struct {
		name  string
		sheet string
		check func(t *testing.T, err error)
	}{
		{"empty", "  ", func(t *testing.T, err error) {
			var ane *fault.ArgumentNullError
			assert.ErrorAs(t, err, &ane)
		}},
		{"too long", strings.Repeat("x", 32), func(t *testing.T, err error) {
			var ae *fault.ArgumentError
			assert.ErrorAs(t, err, &ae)
		}},
		{"invalid char", "a/b", func(t *testing.T, err error) {
			var ae *fault.ArgumentError
			assert.ErrorAs(t, err, &ae)
		}},
		{"duplicate ignoring case", "DATA", func(t *testing.T, err error) {
			var ioe *fault.InvalidOperationError
			assert.ErrorAs(t, err, &ioe)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, e.WorksheetsAdd(f.sheets, tt.sheet))
			tt.check(t, rec.take(t))
		})
	}
	assert.Equal(t, int32(1), e.WorksheetsCount(f.sheets))
}

func TestWorksheets_NameIsNormalized(t *testing.T) {
	e, rec := newTestExporter(t)
	f := newSheet(t, e, "Café")
	rec.none(t)
	assert.Equal(t, "Café", e.WorksheetName(f.ws))
}

func TestRange_Addressing(t *testing.T) {
	e, rec := newTestExporter(t)
	f := newSheet(t, e, "Data")

	assert.Equal(t, "A1:XFD1048576", e.RangeGetAddress(f.cells))

	var cell resource.Handle
	require.True(t, e.RangeCell(f.cells, 3, 2, &cell))
	assert.Equal(t, "B3", e.RangeGetAddress(cell))

	area := e.RangeArea(f.cells, 4, 3, 2, 1)
	assert.Equal(t, "A2:C4", e.RangeGetAddress(area))

	byAddr := e.RangeAddress(f.cells, "$B$2:D10")
	assert.Equal(t, "B2:D10", e.RangeGetAddress(byAddr))
	rec.none(t)

	cell = 42
	assert.False(t, e.RangeCell(f.cells, 0, 1, &cell))
	assert.Zero(t, cell)
	var aor *fault.ArgumentOutOfRangeError
	require.ErrorAs(t, rec.take(t), &aor)
	assert.Equal(t, "row", aor.ParamName)

	assert.Zero(t, e.RangeAddress(f.cells, "not an address"))
	var fe *fault.FormatError
	assert.ErrorAs(t, rec.take(t), &fe)
}

func TestRange_UnsupportedEdits(t *testing.T) {
	e, rec := newTestExporter(t)
	f := newSheet(t, e, "Data")

	e.RangeSetAutoFilter(e.RangeAddress(f.cells, "A1:C5"), false)
	var nse *fault.NotSupportedError
	assert.ErrorAs(t, rec.take(t), &nse)

	e.RangeSetString(f.cells, "everything")
	assert.ErrorAs(t, rec.take(t), &nse)

	e.RangeSetStyleName(f.cells, "Missing")
	var knf *fault.KeyNotFoundError
	assert.ErrorAs(t, rec.take(t), &knf)
}

func TestFill_ColorNeedsPattern(t *testing.T) {
	e, rec := newTestExporter(t)
	f := newSheet(t, e, "Data")

	fill := e.StyleFill(e.RangeStyle(e.RangeAddress(f.cells, "A1")))
	color := e.FillBackgroundColor(fill)
	e.ColorSetColor(color, argb(0xFFFF0000))

	var ae *fault.ArgumentError
	require.ErrorAs(t, rec.take(t), &ae)
	assert.Equal(t, "Can't set color when patterntype is not set.", ae.Message())

	e.FillSetPatternType(fill, FillSolid)
	e.ColorSetColor(color, argb(0xFFFF0000))
	rec.none(t)
}

func TestEnums_OutOfRange(t *testing.T) {
	e, rec := newTestExporter(t)
	f := newSheet(t, e, "Data")
	style := e.RangeStyle(e.RangeAddress(f.cells, "A1"))

	e.StyleSetHorizontalAlignment(style, HorizontalAlignment(99))
	var aor *fault.ArgumentOutOfRangeError
	assert.ErrorAs(t, rec.take(t), &aor)

	e.BorderItemSetStyle(e.BorderLeft(e.StyleBorder(style)), BorderStyle(-1))
	assert.ErrorAs(t, rec.take(t), &aor)
}

func TestPackage_SaveAsRules(t *testing.T) {
	e, rec := newTestExporter(t)
	dir := t.TempDir()

	empty := e.PackageNew()
	e.PackageSaveAs(empty, filepath.Join(dir, "empty.xlsx"))
	var ioe *fault.InvalidOperationError
	assert.ErrorAs(t, rec.take(t), &ioe)

	e.PackageSaveAs(empty, "")
	var ane *fault.ArgumentNullError
	assert.ErrorAs(t, rec.take(t), &ane)

	existing := filepath.Join(dir, "taken.xlsx")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o600))
	f := newSheet(t, e, "Data")
	e.PackageSaveAs(f.pkg, existing)
	var io *fault.IOError
	require.ErrorAs(t, rec.take(t), &io)
	assert.Equal(t, existing, io.Path)
}

func TestPackage_EndToEnd(t *testing.T) {
	e, rec := newTestExporter(t)
	f := newSheet(t, e, "Data")
	summary := e.WorksheetsAdd(f.sheets, "Summary")
	require.NotZero(t, summary)

	header := e.RangeAddress(f.cells, "A1:C1")
	e.RangeSetString(header, "Header")
	e.RangeSetInt(e.RangeAddress(f.cells, "A2"), 42)
	e.RangeSetFloat(e.RangeAddress(f.cells, "B2"), 1.5)

	style := e.RangeStyle(header)
	e.FontSetBold(e.StyleFont(style), true)
	fill := e.StyleFill(style)
	e.FillSetPatternType(fill, FillSolid)
	e.ColorSetColor(e.FillBackgroundColor(fill), argb(0xFF00FF00))
	e.StyleSetWrapText(style, true)
	e.StyleSetHorizontalAlignment(style, HorizontalCenter)
	e.BorderItemSetStyle(e.BorderBottom(e.StyleBorder(style)), BorderThin)

	e.WorksheetViewFreezePanes(e.WorksheetView(f.ws), 2, 1)
	e.ColumnSetWidth(e.WorksheetColumn(f.ws, 2), 30)
	row := e.WorksheetRow(f.ws, 3)
	assert.Equal(t, int32(3), e.RowNumber(row))
	e.RowSetHeight(row, 25)

	e.RangeSetMerge(e.RangeAddress(f.cells, "D1:E2"), true)
	e.RangeSetAutoFilter(e.RangeAddress(f.cells, "A1:C5"), true)
	e.RangeSetHyperlink(e.RangeAddress(f.cells, "A4"), "Summary!A1", "Go to summary")

	rich := e.RangeRichText(e.RangeAddress(f.cells, "A6"))
	e.RichTextSetBold(e.RichTextCollectionAdd(rich, "Hello "), true)
	world := e.RichTextCollectionAdd(rich, "World")
	e.RichTextSetItalic(world, true)
	e.RichTextSetColor(world, argb(0xFF0000FF))

	named := e.StylesCreateNamedStyle(e.WorkbookStyles(f.wb), "Total")
	namedFont := e.StyleFont(e.NamedStyleStyle(named))
	e.FontSetBold(namedFont, true)
	e.RangeSetStyleName(e.RangeAddress(f.cells, "A8:B8"), "Total")
	e.FontSetItalic(namedFont, true)

	e.WorkbookViewSetActiveTab(e.WorkbookView(f.wb), 1)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	e.PackageSaveAs(f.pkg, path)
	rec.none(t)

	x := openSaved(t, path)
	assert.Equal(t, []string{"Data", "Summary"}, x.GetSheetList())
	assert.Equal(t, 1, x.GetActiveSheetIndex())

	v, err := x.GetCellValue("Data", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Header", v)
	v, err = x.GetCellValue("Data", "A2")
	require.NoError(t, err)
	assert.Equal(t, "42", v)
	v, err = x.GetCellValue("Data", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Go to summary", v)

	ok, target, err := x.GetCellHyperLink("Data", "A4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Summary!A1", target)

	idx, err := x.GetCellStyle("Data", "B1")
	require.NoError(t, err)
	st, err := x.GetStyle(idx)
	require.NoError(t, err)
	require.NotNil(t, st.Font)
	assert.True(t, st.Font.Bold)
	assert.Equal(t, 1, st.Fill.Pattern)
	require.NotNil(t, st.Alignment)
	assert.True(t, st.Alignment.WrapText)
	assert.Equal(t, "center", st.Alignment.Horizontal)

	idx, err = x.GetCellStyle("Data", "B8")
	require.NoError(t, err)
	st, err = x.GetStyle(idx)
	require.NoError(t, err)
	require.NotNil(t, st.Font)
	assert.True(t, st.Font.Bold)
	assert.True(t, st.Font.Italic)

	panes, err := x.GetPanes("Data")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
	assert.Equal(t, 0, panes.XSplit)
	assert.Equal(t, "A2", panes.TopLeftCell)

	width, err := x.GetColWidth("Data", "B")
	require.NoError(t, err)
	assert.InDelta(t, 30, width, 0.01)
	height, err := x.GetRowHeight("Data", 3)
	require.NoError(t, err)
	assert.InDelta(t, 25, height, 0.01)

	merged, err := x.GetMergeCells("Data")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "D1", merged[0].GetStartAxis())
	assert.Equal(t, "E2", merged[0].GetEndAxis())

	runs, err := x.GetCellRichText("Data", "A6")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Hello ", runs[0].Text)
	require.NotNil(t, runs[0].Font)
	assert.True(t, runs[0].Font.Bold)
	require.NotNil(t, runs[1].Font)
	assert.True(t, runs[1].Font.Italic)
}
