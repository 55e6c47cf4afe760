package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ihours/ihours-backend/internal/report/summary"
)

// ExportContentType is the MIME type of the generated workbook
const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Work Hours Summary"

var exportHeaders = []interface{}{
	"Employee ID",
	"Employee Name",
	"FTE Percentage",
	"Termination Date",
	"Total Hours (HH:MM)",
	"Working Months",
	"Hours Per Working Month",
	"Working Weeks",
	"Hours Per Working Week",
	"Previous Week Hours (Sun-Sat)",
}

// ExportFilename builds the download filename for an export generated at t:
// the UTC timestamp with ':' and '.' replaced by '-', truncated to seconds.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("ActiveEmployees_WorkHoursSummary_%s.xlsx",
		t.UTC().Format("2006-01-02T15-04-05"))
}

// ExportXLSX generates the single-sheet workbook for the current summary.
// Nothing is returned on failure; there is no partial file.
func (s *ReportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	rows, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	return buildWorkbook(rows)
}

func buildWorkbook(rows []summary.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "J1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		values := []interface{}{
			row.EmployeeID,
			row.EmployeeName,
			row.FTEPercentage,
			dateCell(row.TerminationDate),
			row.TotalHHMM,
			row.WorkingMonths,
			intCell(row.HoursPerWorkingMonth),
			row.WorkingWeeks,
			intCell(row.HoursPerWorkingWeek),
			row.PrevWeekHours,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "J", 20); err != nil {
		return nil, fmt.Errorf("failed to set column widths: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// intCell unwraps an optional int; nil stays an empty cell instead of the
// fmt-rendered "<nil>".
func intCell(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func dateCell(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
