package api

import "errors"

// ErrServe is returned when the HTTP server stops with an error.
var ErrServe = errors.New("api serve failed")
