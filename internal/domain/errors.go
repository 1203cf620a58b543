package domain

import "errors"

var (
	// ErrNetwork covers timeouts, connection errors and non-2xx responses.
	ErrNetwork = errors.New("network failure")
	// ErrParse covers unexpected response shapes and missing pattern matches.
	ErrParse = errors.New("parse failure")
	// ErrInsufficientData means fewer historical samples than required.
	ErrInsufficientData = errors.New("insufficient data")
)
