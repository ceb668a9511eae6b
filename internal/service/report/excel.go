package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportSummary implements report.Service.
func (r *ReportServiceImpl) ExportSummary(ctx context.Context, employeeNo, yearMonth string) ([]byte, error) {
	summary, err := r.Summarize(ctx, employeeNo, yearMonth)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Summary"
	f.SetSheetName("Sheet1", sheet)

	verdict := "kept"
	if summary.FullAttendanceBroken {
		verdict = "broken: " + summary.BrokenReason
	}

	rows := []struct {
		label string
		value any
	}{
		{"Employee", summary.EmployeeNo},
		{"Month", summary.Month},
		{"Worked days", summary.WorkedDays},
		{"Late days", summary.LateCount},
		{"Late minutes", summary.LateMinutes},
		{"Early-leave minutes", summary.EarlyMinutes},
		{"Overtime minutes", summary.OvertimeMinutes},
		{"Approved makeups", summary.ApprovedMakeupCount},
		{"Days without schedule", summary.MissingScheduleDays},
		{"Personal leave days", summary.PersonalLeaveDays},
		{"Full attendance", verdict},
		{"Late deduction minutes", summary.LateDeductMinutes},
	}

	for i, row := range rows {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), row.label); err != nil {
			return nil, fmt.Errorf("failed to write export cell: %w", err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row.value); err != nil {
			return nil, fmt.Errorf("failed to write export cell: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// NoLeaveData is the default LeaveProvider when no leave system is wired.
type NoLeaveData struct{}

func (NoLeaveData) PersonalLeaveDays(context.Context, string, string) (int, error) {
	return 0, nil
}
