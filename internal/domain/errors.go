package domain

import "errors"

var (
	// ErrStateNotFound is returned when a state has no entry in the location index
	ErrStateNotFound = errors.New("state not found")
)
