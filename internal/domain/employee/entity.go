package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Employee is the resolved identity behind a chat user. The bot never
// creates or edits employees; registration is handled elsewhere.
type Employee struct {
	EmployeeNo        string
	ChatUserID        string
	FullName          string
	Role              Role
	BaseSalary        decimal.Decimal
	PositionAllowance decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (e Employee) IsApprover() bool {
	return e.Role == RoleAdmin
}
