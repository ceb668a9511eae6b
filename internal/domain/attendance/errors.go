package attendance

import "errors"

var (
	// ErrAlreadyStamped means the slot/action already holds a value.
	// Stamping never overwrites; duplicate webhook deliveries and double
	// taps land here.
	ErrAlreadyStamped = errors.New("shift slot already stamped")

	ErrRecordNotFound = errors.New("attendance record not found")

	ErrInvalidShift  = errors.New("invalid shift")
	ErrInvalidAction = errors.New("invalid action")
)
