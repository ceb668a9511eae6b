package makeup

import "context"

// Service is the request/approval workflow on top of the ledger.
type Service interface {
	// Submit creates a pending request and notifies all approvers.
	Submit(ctx context.Context, req SubmitRequest) (Request, error)

	// Decide settles a pending request exactly once. An approval also
	// performs the ledger stamp it represents, atomically with the
	// status transition: if the slot is already stamped the approval
	// fails and the request stays pending for manual reconciliation.
	Decide(ctx context.Context, req DecideRequest) (Request, error)

	ListPending(ctx context.Context) ([]Request, error)
}
