package attendance

import (
	"time"

	"github.com/shiftwork/attendance-bot-go/internal/pkg/validator"
)

// StampRequest is one punch. At is nil for live punches (the service
// uses the current instant); makeup approvals and administrative
// corrections supply their own instant and source.
type StampRequest struct {
	EmployeeNo string
	Date       string // "2006-01-02"
	Shift      Shift
	Action     Action
	Source     Source
	At         *time.Time
}

func (r StampRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNo) {
		errs = append(errs, validator.ValidationError{Field: "employee_no", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Shift != ShiftMorning && r.Shift != ShiftNight {
		errs = append(errs, validator.ValidationError{Field: "shift", Message: "must be morning or night"})
	}
	if r.Action != ActionCheckIn && r.Action != ActionCheckOut {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must be check_in or check_out"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
