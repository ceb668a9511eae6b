package makeup

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID returns ErrRequestNotFound for unknown IDs.
	GetByID(ctx context.Context, id string) (Request, error)

	// TransitionStatus flips status from one value to another as an
	// atomic check-and-set,
	// recording the reviewer. Returns ErrAlreadyDecided when the row no
	// longer holds the expected from status.
	TransitionStatus(ctx context.Context, id string, from, to Status, reviewedBy string, at time.Time) error

	// ListPending returns pending requests oldest first.
	ListPending(ctx context.Context) ([]Request, error)

	// CountApprovedInMonth counts approved requests whose target date
	// falls in the month key ("2006-01").
	CountApprovedInMonth(ctx context.Context, employeeNo, yearMonth string) (int, error)
}
