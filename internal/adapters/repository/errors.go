package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound    = errors.New("distribution set not found")
	ErrInvalidName = errors.New("invalid distribution set name")
)
