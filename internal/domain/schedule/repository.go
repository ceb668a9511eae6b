package schedule

import (
	"context"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
)

// Repository is the read-only schedule provider. The bot never writes
// schedules; planning lives in a separate system.
type Repository interface {
	// GetShiftPlan returns the planned times for employee+date+shift,
	// or nil when the shift is unscheduled.
	GetShiftPlan(ctx context.Context, employeeNo, date string, shift attendance.Shift) (*ShiftPlan, error)

	// GetDayType classifies a calendar date. Dates absent from the
	// calendar table default to DayOpen.
	GetDayType(ctx context.Context, date string) (DayType, error)
}
