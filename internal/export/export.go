// Package export writes distributions to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/assetlens/internal/asset"
)

// SheetName is the worksheet holding the exported rows.
const SheetName = "Distribution"

// TotalLabel names the final summary row.
const TotalLabel = "Total"

// percentFormat is the builtin 0.00% number format.
const percentFormat = 10

// ErrExport wraps failures while building or writing the workbook.
var ErrExport = errors.New("export failed")

// WriteXLSX writes d as a workbook with one header row, one row per item
// and a total row. Share is stored as a fraction formatted as a percentage.
func WriteXLSX(d asset.Distribution, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close: %v", ErrExport, cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("%w: rename sheet: %v", ErrExport, err)
	}

	header := []any{"Name", "Value", "Share"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("%w: header: %v", ErrExport, err)
	}

	row := 2
	for i, it := range d.Items {
		cells := []any{it.Name, it.Value, d.Share(i)}
		if err := setRow(f, row, cells); err != nil {
			return err
		}
		row++
	}

	var share float64
	if d.Total != 0 {
		share = 1
	}
	if err := setRow(f, row, []any{TotalLabel, d.Total, share}); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: percentFormat})
	if err != nil {
		return fmt.Errorf("%w: style: %v", ErrExport, err)
	}
	last, _ := excelize.CoordinatesToCellName(3, row)
	if err := f.SetCellStyle(SheetName, "C2", last, style); err != nil {
		return fmt.Errorf("%w: style: %v", ErrExport, err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: write: %v", ErrExport, err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("%w: row %d: %v", ErrExport, row, err)
	}
	return nil
}
