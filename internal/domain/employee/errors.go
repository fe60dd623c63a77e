package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrFingerIDTaken    = errors.New("fingerprint id already assigned to another employee")
)
