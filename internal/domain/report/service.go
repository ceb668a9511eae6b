package report

import "context"

// LeaveProvider supplies personal-leave day counts from an external
// system. Implementations should return 0 when the data is unavailable.
type LeaveProvider interface {
	PersonalLeaveDays(ctx context.Context, employeeNo, yearMonth string) (int, error)
}

type Service interface {
	// Summarize walks the month's calendar and ledger and evaluates the
	// full-attendance rule.
	Summarize(ctx context.Context, employeeNo, yearMonth string) (MonthlySummary, error)

	// ExportSummary renders the summary as an xlsx workbook.
	ExportSummary(ctx context.Context, employeeNo, yearMonth string) ([]byte, error)
}
