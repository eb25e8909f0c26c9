package entities

import "errors"

// Sentinel errors for expected business outcomes. Callers branch on these
// with errors.Is; anything else from the store is an I/O failure.
var (
	ErrTankNotFound     = errors.New("tank not found")
	ErrScheduleNotFound = errors.New("maintenance schedule not found")
	ErrAlertNotFound    = errors.New("alert not found")
	ErrWardNotFound     = errors.New("ward not found")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInsufficientData = errors.New("insufficient data")
)
