package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotRegistered    = errors.New("chat user is not bound to an employee")
)
