package attendance

import (
	"context"
	"time"
)

// Repository owns attendance_records persistence. StampSlot is the only
// write path for stamps and must be an atomic check-and-set: two
// concurrent calls for the same slot/action must not both succeed.
type Repository interface {
	// Ensure creates the empty two-slot skeleton for (employeeNo, date)
	// if it does not exist yet. Safe to call concurrently.
	Ensure(ctx context.Context, employeeNo, date string) error

	// Get returns the record or ErrRecordNotFound.
	Get(ctx context.Context, employeeNo, date string) (Record, error)

	// StampSlot sets the slot's check-in or check-out to the given
	// instant, failing with ErrAlreadyStamped if it already holds one.
	StampSlot(ctx context.Context, employeeNo, date string, shift Shift, action Action, at time.Time, source Source) error

	// UpdateSlotStats writes the planned times and recomputed stats for
	// one slot.
	UpdateSlotStats(ctx context.Context, employeeNo, date string, shift Shift, slot Slot) error

	// ListByMonth returns all records for a month key ("2006-01"),
	// ordered by date.
	ListByMonth(ctx context.Context, employeeNo, yearMonth string) ([]Record, error)
}
