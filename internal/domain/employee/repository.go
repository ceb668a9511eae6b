package employee

import "context"

// Repository resolves chat identities to employees. Read-only from the
// core's point of view.
type Repository interface {
	// GetByChatUserID resolves an opaque chat user ID.
	// Returns ErrNotRegistered when no employee is bound to it.
	GetByChatUserID(ctx context.Context, chatUserID string) (Employee, error)

	// GetByEmployeeNo retrieves an employee by number.
	GetByEmployeeNo(ctx context.Context, employeeNo string) (Employee, error)

	// ListApprovers returns all approval-capable employees.
	ListApprovers(ctx context.Context) ([]Employee, error)
}
