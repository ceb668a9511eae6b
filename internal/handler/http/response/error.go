package response

import (
	"errors"
	"net/http"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/auth"
	"github.com/shiftwork/attendance-bot-go/internal/domain/employee"
	"github.com/shiftwork/attendance-bot-go/internal/domain/makeup"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Insufficient permissions")

	// Employees
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNotRegistered):
		NotFound(w, "Chat user not registered")

	// Attendance
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyStamped):
		Conflict(w, "Slot already holds a stamp")

	// Makeup workflow
	case errors.Is(err, makeup.ErrRequestNotFound):
		NotFound(w, "Makeup request not found")
	case errors.Is(err, makeup.ErrAlreadyDecided):
		Conflict(w, "Makeup request already decided")
	case errors.Is(err, makeup.ErrSelfApproval):
		Forbidden(w, "Requester cannot decide their own request")

	// Transactions
	case errors.Is(err, database.ErrTxConflict):
		Conflict(w, "Concurrent update, please retry")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
