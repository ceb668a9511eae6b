package makeup

import (
	"time"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request is an employee's retroactive ask to record a missed stamp.
// Status moves from pending to approved or rejected exactly once and
// the row is kept forever as an audit trail.
type Request struct {
	ID          string
	EmployeeNo  string // whose ledger the stamp lands on
	RequestedBy string // employee number of the submitter
	Date        string // "2006-01-02"
	Shift       attendance.Shift
	Action      attendance.Action
	Reason      string
	Status      Status
	CreatedAt   time.Time
	ReviewedBy  *string
	ReviewedAt  *time.Time
}

func (r Request) IsPending() bool {
	return r.Status == StatusPending
}
