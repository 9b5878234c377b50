package engine

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

type recorded struct {
	class   string
	payload string
}

type recorder struct {
	mu     sync.Mutex
	faults []recorded
}

func (r *recorder) callback(class, payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults = append(r.faults, recorded{class, payload})
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.faults)
}

// take returns and clears the last reported fault, rebuilt as an error.
func (r *recorder) take(t *testing.T) error {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.faults, "expected a reported fault")
	last := r.faults[len(r.faults)-1]
	r.faults = nil
	return fault.Reconstruct(last.class, last.payload)
}

func (r *recorder) none(t *testing.T) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Empty(t, r.faults, "unexpected fault")
}

func newTestExporter(t *testing.T) (*Exporter, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := NewExporter(fault.Default())
	require.True(t, e.Handler().Register(rec.callback))
	return e, rec
}

func argb(v uint32) int32 { return int32(v) }

func TestExporter_ZeroHandle(t *testing.T) {
	e, rec := newTestExporter(t)

	assert.Zero(t, e.PackageWorkbook(0))
	var nre *fault.NullReferenceError
	assert.ErrorAs(t, rec.take(t), &nre)

	assert.Empty(t, e.WorksheetName(0))
	assert.ErrorAs(t, rec.take(t), &nre)
}

func TestExporter_StaleHandle(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	wb := e.PackageWorkbook(pkg)
	require.NotZero(t, wb)
	e.FreeHandle(wb)

	assert.Zero(t, e.WorkbookWorksheets(wb))
	var nre *fault.NullReferenceError
	assert.ErrorAs(t, rec.take(t), &nre)
}

func TestExporter_WrongType(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	assert.Empty(t, e.WorksheetName(pkg))

	err := rec.take(t)
	var ice *fault.InvalidCastError
	require.ErrorAs(t, err, &ice)
	assert.Contains(t, ice.Message(), "Package")
}

func TestExporter_FreeHandleIsSilent(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	e.FreeHandle(pkg)
	e.FreeHandle(pkg)
	e.FreeHandle(0)
	e.FreeHandle(resource.Handle(0xdeadbeef))

	rec.none(t)
	assert.Zero(t, e.LiveHandles())
}

func TestExporter_LiveHandles(t *testing.T) {
	e, _ := newTestExporter(t)

	pkg := e.PackageNew()
	wb := e.PackageWorkbook(pkg)
	assert.Equal(t, int32(2), e.LiveHandles())
	assert.Equal(t, map[string]int{"Package": 1, "Workbook": 1}, e.LiveByKind())

	e.FreeHandle(wb)
	e.FreeHandle(pkg)
	assert.Zero(t, e.LiveHandles())
	assert.Empty(t, e.LiveByKind())
}

func TestExporter_ParentFreedChildValid(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	wb := e.PackageWorkbook(pkg)
	sheets := e.WorkbookWorksheets(wb)

	e.FreeHandle(wb)
	e.FreeHandle(pkg)

	ws := e.WorksheetsAdd(sheets, "Still here")
	rec.none(t)
	assert.Equal(t, "Still here", e.WorksheetName(ws))
	assert.Equal(t, int32(1), e.WorksheetsCount(sheets))
}

func TestExporter_PackageClose(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	wb := e.PackageWorkbook(pkg)
	sheets := e.WorkbookWorksheets(wb)
	ws := e.WorksheetsAdd(sheets, "Data")
	require.NotZero(t, ws)

	e.PackageClose(pkg)
	rec.none(t)
	assert.Equal(t, int32(1), e.LiveHandles())

	assert.Empty(t, e.WorksheetName(ws))
	var nre *fault.NullReferenceError
	assert.ErrorAs(t, rec.take(t), &nre)

	assert.Zero(t, e.PackageWorkbook(pkg))
	err := rec.take(t)
	var ode *fault.ObjectDisposedError
	assert.ErrorAs(t, err, &ode)
	var ioe *fault.InvalidOperationError
	assert.ErrorAs(t, err, &ioe)

	e.PackageClose(pkg)
	rec.none(t)

	e.FreeHandle(pkg)
	assert.Zero(t, e.LiveHandles())
}

func TestExporter_RaiseForTest(t *testing.T) {
	e, rec := newTestExporter(t)

	e.RaiseForTest(fault.ClassKeyNotFound, "no such key")
	err := rec.take(t)
	var knf *fault.KeyNotFoundError
	require.ErrorAs(t, err, &knf)
	assert.Equal(t, "no such key", knf.Message())
	assert.NotEmpty(t, knf.StackTrace())
	assert.NotEmpty(t, knf.Data["FaultID"])

	e.RaiseForTest("NoSuchClass", "plain")
	err = rec.take(t)
	var exc *fault.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, fault.ClassException, exc.ClassName())
	assert.Equal(t, "plain", exc.Message())
}

func TestExport_RecoversPanics(t *testing.T) {
	e, rec := newTestExporter(t)

	got := export(e, 0, "nilMap", func() (int, error) {
		var m map[string]int
		m["x"] = 1
		return 1, nil
	})
	assert.Zero(t, got)
	var nre *fault.NullReferenceError
	assert.ErrorAs(t, rec.take(t), &nre)

	got = export(e, 0, "index", func() (int, error) {
		var s []int
		i := 3
		return s[i], nil
	})
	assert.Zero(t, got)
	var ior *fault.IndexOutOfRangeError
	assert.ErrorAs(t, rec.take(t), &ior)

	got = export(e, 0, "value", func() (int, error) {
		panic("custom")
	})
	assert.Zero(t, got)
	var rte *fault.RuntimeError
	require.ErrorAs(t, rec.take(t), &rte)
	assert.Equal(t, "custom", rte.PanicValue)
}

func TestExport_JoinedErrors(t *testing.T) {
	e, rec := newTestExporter(t)

	export(e, 0, "joined", func() (struct{}, error) {
		return struct{}{}, stderrors.Join(
			fault.NewFormat("bad date"),
			fault.NewArgumentNull("sheet"),
		)
	})

	var agg *fault.AggregateError
	require.ErrorAs(t, rec.take(t), &agg)
	require.Len(t, agg.Errors, 2)
	var fe *fault.FormatError
	assert.ErrorAs(t, agg.Errors[0], &fe)
	var ane *fault.ArgumentNullError
	assert.ErrorAs(t, agg.Errors[1], &ane)
}

func TestExporter_ConcurrentPackages(t *testing.T) {
	e, rec := newTestExporter(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pkg := e.PackageNew()
			wb := e.PackageWorkbook(pkg)
			sheets := e.WorkbookWorksheets(wb)
			ws := e.WorksheetsAdd(sheets, "Data")
			cells := e.WorksheetCells(ws)
			a1 := e.RangeAddress(cells, "A1:B2")
			e.RangeSetInt(a1, 7)
			for _, h := range []resource.Handle{a1, cells, ws, sheets, wb} {
				e.FreeHandle(h)
			}
			e.PackageClose(pkg)
			e.FreeHandle(pkg)
		}()
	}
	wg.Wait()

	rec.none(t)
	assert.Zero(t, e.LiveHandles())
}

func TestExporter_ShutdownClosesTable(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	wb := e.PackageWorkbook(pkg)
	require.NotZero(t, wb)
	rec.none(t)

	require.NoError(t, e.shutdown())
	assert.Zero(t, e.LiveHandles())

	assert.Zero(t, e.PackageNew())
	var ioe *fault.InvalidOperationError
	require.ErrorAs(t, rec.take(t), &ioe)
	assert.Contains(t, ioe.Message(), "handle table is closed")

	assert.Zero(t, e.WorkbookWorksheets(wb))
	var nre *fault.NullReferenceError
	require.ErrorAs(t, rec.take(t), &nre)

	require.NoError(t, e.shutdown(), "second shutdown")
}

func TestExporter_InvalidCastNamesKinds(t *testing.T) {
	e, rec := newTestExporter(t)

	pkg := e.PackageNew()
	wb := e.PackageWorkbook(pkg)
	assert.Zero(t, e.WorksheetsCount(wb))

	var ice *fault.InvalidCastError
	require.ErrorAs(t, rec.take(t), &ice)
	assert.Contains(t, ice.Message(), "refers to Workbook, not Worksheets")
}
