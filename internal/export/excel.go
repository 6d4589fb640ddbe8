// Package export writes a month of shifts to an Excel workbook.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"shiftcal/internal/model"
)

var columns = []string{"Date", "Name", "Shift Type", "Start", "End"}

// MonthWorkbook builds a workbook listing every shift of the given month
// (YYYY-MM), one row per shift, ordered by date then start time. Shifts
// outside the month are skipped.
func MonthWorkbook(shifts []model.ShiftWithDetails, month string) (*excelize.File, error) {
	rows := make([]model.ShiftWithDetails, 0, len(shifts))
	for _, s := range shifts {
		if strings.HasPrefix(s.Date, month+"-") {
			rows = append(rows, s)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].StartTime < rows[j].StartTime
	})

	f := excelize.NewFile()
	sheet := month
	f.SetSheetName("Sheet1", sheet)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "E1", style)
	}
	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "C", 18)

	for i, s := range rows {
		name := "Unknown"
		if s.Name != nil {
			name = s.Name.Name
		}
		label := "Shift"
		if s.ShiftType != nil {
			label = s.ShiftType.Label
		}
		values := []any{s.Date, name, label, s.StartTime, s.EndTime}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// WriteMonth saves the month workbook to path.
func WriteMonth(shifts []model.ShiftWithDetails, month, path string) error {
	f, err := MonthWorkbook(shifts, month)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
