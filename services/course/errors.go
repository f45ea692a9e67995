package services

import "errors"

// Error taxonomy shared by the course services. Controllers translate these
// into HTTP status codes; services wrap them with context via fmt.Errorf.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
