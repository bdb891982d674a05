package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrQuotaExceeded  = errors.New("storage quota exceeded")
	ErrStorageFailure = errors.New("storage failure")
	ErrMalformedData  = errors.New("malformed persisted data")
	ErrTimerRunning   = errors.New("timer already running")
	ErrTimerIdle      = errors.New("timer is not running")
	ErrUnknownFormat  = errors.New("unknown format")
)
