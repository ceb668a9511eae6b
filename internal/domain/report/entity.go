package report

// MonthlySummary is derived per query, never persisted.
type MonthlySummary struct {
	EmployeeNo string
	Month      string // "2006-01"

	WorkedDays          int // days with at least one stamp
	LateCount           int // days (not shifts) with lateness
	LateMinutes         int
	EarlyMinutes        int
	OvertimeMinutes     int
	ApprovedMakeupCount int
	MissingScheduleDays int
	PersonalLeaveDays   int

	FullAttendanceBroken bool
	BrokenReason         string

	// LateDeductMinutes is all-or-nothing: the full lateness total when
	// a lateness rule broke full attendance, zero otherwise.
	LateDeductMinutes int
}
