package xlsx

import (
	stderrors "errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/errors"
	"github.com/wippyai/xlsx-bridge/fault"
	bridge "github.com/wippyai/xlsx-bridge/runtime"
)

func TestMain(m *testing.M) {
	os.Setenv("XLBRIDGE_MEMORY_LIMIT_PERCENT", "0")
	os.Exit(m.Run())
}

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		require.NoError(t, err)
		return v
	}
}

type sheet struct {
	pkg    *Package
	wb     *Workbook
	sheets *Worksheets
	ws     *Worksheet
	cells  *Range
}

func newSheet(t *testing.T, name string) sheet {
	t.Helper()
	var s sheet
	s.pkg = must[*Package](t)(NewPackage())
	t.Cleanup(func() { _ = s.pkg.Close() })
	s.wb = must[*Workbook](t)(s.pkg.Workbook())
	s.sheets = must[*Worksheets](t)(s.wb.Worksheets())
	s.ws = must[*Worksheet](t)(s.sheets.Add(name))
	s.cells = must[*Range](t)(s.ws.Cells())
	return s
}

func TestBindings_AllResolved(t *testing.T) {
	require.NoError(t, bind())
	l, err := bridge.Open()
	require.NoError(t, err)
	for _, b := range entryPoints {
		assert.Contains(t, l.Names(), b.Name)
	}
}

func TestParentClosedChildUsable(t *testing.T) {
	s := newSheet(t, "Data")

	require.NoError(t, s.wb.Close())
	_, err := s.wb.Styles()
	assert.True(t, stderrors.Is(err, errors.ErrDisposed))

	other, err := s.sheets.Add("Other")
	require.NoError(t, err)
	name, err := other.Name()
	require.NoError(t, err)
	assert.Equal(t, "Other", name)
}

func TestClosedObjectNeverReachesEngine(t *testing.T) {
	s := newSheet(t, "Data")

	require.NoError(t, s.ws.Close())
	require.NoError(t, s.ws.Close())

	_, err := s.ws.Name()
	assert.True(t, stderrors.Is(err, errors.ErrDisposed))
	assert.True(t, s.ws.IsClosed())
}

func TestEngineFaultsAreTyped(t *testing.T) {
	s := newSheet(t, "Data")

	_, err := s.ws.Row(0)
	var aor *fault.ArgumentOutOfRangeError
	require.ErrorAs(t, err, &aor)
	assert.Equal(t, "row", aor.ParamName)
	assert.NotEmpty(t, aor.StackTrace())
	assert.True(t, stderrors.Is(err, errors.ErrEngineFault))

	_, err = s.sheets.Add("data")
	var ioe *fault.InvalidOperationError
	assert.ErrorAs(t, err, &ioe)

	_, err = s.cells.Cell(1, 0)
	assert.ErrorAs(t, err, &aor)

	err = s.cells.SetValue(struct{}{})
	var be *errors.Error
	require.True(t, stderrors.As(err, &be))
	assert.Equal(t, errors.KindTypeMismatch, be.Kind)
}

func TestPackageClose(t *testing.T) {
	s := newSheet(t, "Data")
	a1, err := s.cells.Address("A1")
	require.NoError(t, err)

	require.NoError(t, s.pkg.Close())
	require.NoError(t, s.pkg.Close())

	err = a1.SetValue("late")
	var nre *fault.NullReferenceError
	assert.ErrorAs(t, err, &nre)

	_, err = s.pkg.Workbook()
	assert.True(t, stderrors.Is(err, errors.ErrDisposed))
}

func TestSaveAs_ReadBack(t *testing.T) {
	s := newSheet(t, "Report")

	header := must[*Range](t)(s.cells.Area(1, 1, 1, 3))
	require.NoError(t, header.SetValue("Name"))
	require.NoError(t, must[*Range](t)(s.cells.Cell(2, 1)).SetValue(12))
	require.NoError(t, must[*Range](t)(s.cells.Cell(2, 2)).SetValue(2.25))

	style := must[*Style](t)(header.Style())
	require.NoError(t, must[*Font](t)(style.Font()).SetBold(true))
	fill := must[*Fill](t)(style.Fill())
	bg := must[*Color](t)(fill.BackgroundColor())
	err := bg.SetColor(color.RGBA{R: 0xFF, A: 0xFF})
	var ae *fault.ArgumentError
	require.ErrorAs(t, err, &ae)
	require.NoError(t, fill.SetPatternType(FillSolid))
	require.NoError(t, bg.SetColor(color.RGBA{R: 0xFF, A: 0xFF}))
	require.NoError(t, style.SetHorizontalAlignment(HorizontalCenter))
	border := must[*Border](t)(style.Border())
	require.NoError(t, must[*BorderItem](t)(border.Bottom()).SetStyle(BorderThick))

	require.NoError(t, must[*WorksheetView](t)(s.ws.View()).FreezePanes(2, 2))
	require.NoError(t, must[*Column](t)(s.ws.Column(1)).SetWidth(18))

	rich := must[*RichTextCollection](t)(must[*Range](t)(s.cells.Address("A4")).RichText())
	run := must[*RichText](t)(rich.Add("bold"))
	require.NoError(t, run.SetBold(true))
	require.NoError(t, run.SetColor(color.RGBA{B: 0xFF, A: 0xFF}))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, s.pkg.SaveAs(path))

	err = s.pkg.SaveAs(path)
	var ioErr *fault.IOError
	require.ErrorAs(t, err, &ioErr)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Report", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Name", v)
	v, err = f.GetCellValue("Report", "A2")
	require.NoError(t, err)
	assert.Equal(t, "12", v)

	idx, err := f.GetCellStyle("Report", "A1")
	require.NoError(t, err)
	st, err := f.GetStyle(idx)
	require.NoError(t, err)
	assert.True(t, st.Font.Bold)
	assert.Equal(t, 1, st.Fill.Pattern)

	panes, err := f.GetPanes("Report")
	require.NoError(t, err)
	assert.Equal(t, "B2", panes.TopLeftCell)

	runs, err := f.GetCellRichText("Report", "A4")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "bold", runs[0].Text)
}

func TestArgb(t *testing.T) {
	v, err := argb(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF})
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFF123456), uint32(v))

	_, err = argb(nil)
	assert.Error(t, err)
}

func TestIntArgumentsOutOfRange(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("int is 32 bits")
	}
	s := newSheet(t, "Bounds")
	shift := 32
	wide := 1<<shift + 1

	rejected := func(t *testing.T, err error, param string) {
		t.Helper()
		var be *errors.Error
		require.ErrorAs(t, err, &be)
		assert.Equal(t, errors.KindInvalidInput, be.Kind)
		assert.Equal(t, []string{param}, be.Path)
		assert.False(t, stderrors.Is(err, errors.ErrEngineFault))
	}

	_, err := s.cells.Cell(wide, 1)
	rejected(t, err, "row")
	_, err = s.cells.Area(1, 1, 2, -wide)
	rejected(t, err, "toCol")
	_, err = s.ws.Row(math.MaxInt32 + wide)
	rejected(t, err, "row")
	_, err = s.ws.Column(wide)
	rejected(t, err, "col")

	view := must[*WorksheetView](t)(s.ws.View())
	rejected(t, view.FreezePanes(2, wide), "col")
	tabs := must[*WorkbookView](t)(s.wb.View())
	rejected(t, tabs.SetActiveTab(wide), "tab")

	// In range for int32 but not for the sheet: the engine decides.
	_, err = s.cells.Cell(math.MaxInt32, 1)
	var aor *fault.ArgumentOutOfRangeError
	require.ErrorAs(t, err, &aor)
	assert.Equal(t, "row", aor.ParamName)
}
