package makeup

import (
	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeNo  string
	RequestedBy string
	Date        string
	Shift       attendance.Shift
	Action      attendance.Action
	Reason      string
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNo) {
		errs = append(errs, validator.ValidationError{Field: "employee_no", Message: "is required"})
	}
	if validator.IsEmpty(r.RequestedBy) {
		errs = append(errs, validator.ValidationError{Field: "requested_by", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Shift != attendance.ShiftMorning && r.Shift != attendance.ShiftNight {
		errs = append(errs, validator.ValidationError{Field: "shift", Message: "must be morning or night"})
	}
	if r.Action != attendance.ActionCheckIn && r.Action != attendance.ActionCheckOut {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must be check_in or check_out"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	RequestID  string
	ReviewedBy string // employee number of the approver
	Decision   Decision
}

func (r DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "is required"})
	}
	if validator.IsEmpty(r.ReviewedBy) {
		errs = append(errs, validator.ValidationError{Field: "reviewed_by", Message: "is required"})
	}
	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "must be approve or reject"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
