package attendance

import "context"

// Service is the attendance ledger. Stamp is idempotent in the
// reject-duplicates sense: the second stamp for a slot/action fails
// with ErrAlreadyStamped and leaves the first value untouched.
type Service interface {
	// Stamp records one punch and, when a shift plan exists for the
	// date/shift, copies the plan onto the record and recomputes the
	// slot's stats in the same transaction.
	Stamp(ctx context.Context, req StampRequest) (Record, error)

	// Get returns the record for (employeeNo, date); callers treat
	// ErrRecordNotFound as an all-empty skeleton.
	Get(ctx context.Context, employeeNo, date string) (Record, error)
}
