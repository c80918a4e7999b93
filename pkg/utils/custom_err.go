package utils

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrTourNotFound  = errors.New("tour not found")
	ErrTourConflict  = errors.New("tour changed since it was loaded")
	ErrTourFull      = errors.New("tour has no seats left")
	ErrDatabaseError = errors.New("database error")
)
