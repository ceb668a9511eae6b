package makeup

import "errors"

var (
	ErrRequestNotFound = errors.New("makeup request not found")

	// ErrAlreadyDecided means another approver won the race or the
	// request was decided earlier. Reported, not fatal.
	ErrAlreadyDecided = errors.New("makeup request already decided")

	// ErrSelfApproval is the no-self-approval policy violation.
	ErrSelfApproval = errors.New("requester cannot decide their own makeup request")

	ErrEmptyReason     = errors.New("makeup request requires a reason")
	ErrInvalidDecision = errors.New("invalid decision")
)
