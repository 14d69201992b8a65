package domain

import "errors"

// ErrValidation is returned when input fails structural checks
// (cycle hours outside [0,70], malformed segments, unknown statuses).
var ErrValidation = errors.New("validation error")

// ErrNotFound is returned when the requested record or result does not exist.
var ErrNotFound = errors.New("not found")
