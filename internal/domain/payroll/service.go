package payroll

import "context"

type Service interface {
	// Estimate combines the employee's salary components with the
	// month's summary into a net-pay figure. Lateness is the only
	// deduction category.
	Estimate(ctx context.Context, employeeNo, yearMonth string) (Estimate, error)
}
