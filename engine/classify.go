package engine

import (
	stderrors "errors"
	"io/fs"

	"github.com/xuri/excelize/v2"

	"github.com/wippyai/xlsx-bridge/fault"
)

func init() {
	fault.Default().AddClassifier(classifyWorkbookError)
}

// classifyWorkbookError maps excelize and file system errors onto the
// classes a caller would expect for the same mistake.
func classifyWorkbookError(err error) (fault.Fault, bool) {
	var missing excelize.ErrSheetNotExist
	if stderrors.As(err, &missing) {
		return fault.NewKeyNotFound(missing.SheetName, "%s", err.Error()), true
	}

	switch {
	case stderrors.Is(err, excelize.ErrColumnNumber),
		stderrors.Is(err, excelize.ErrMaxRows),
		stderrors.Is(err, excelize.ErrMaxRowHeight):
		return fault.NewArgumentOutOfRange("", nil, "%s", err.Error()), true
	case stderrors.Is(err, excelize.ErrColumnWidth),
		stderrors.Is(err, excelize.ErrParameterInvalid),
		stderrors.Is(err, excelize.ErrSheetNameLength),
		stderrors.Is(err, excelize.ErrSheetNameInvalid),
		stderrors.Is(err, excelize.ErrCellCharsLength),
		stderrors.Is(err, excelize.ErrFontSize):
		return fault.NewArgument("", "%s", err.Error()), true
	case stderrors.Is(err, excelize.ErrExistsSheet):
		return fault.NewInvalidOperation("%s", err.Error()), true
	}

	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		return fault.NewIO(pathErr.Path, "%s", err.Error()), true
	}
	if stderrors.Is(err, fs.ErrExist) || stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, fs.ErrPermission) {
		return fault.NewIO("", "%s", err.Error()), true
	}
	return nil, false
}
