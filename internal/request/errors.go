package request

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error returned by Client.Do wraps exactly one.
var (
	ErrInvalidDescriptor = errors.New("invalid request descriptor")
	ErrTransport         = errors.New("request transport failed")
	ErrStatus            = errors.New("unexpected response status")
	ErrDecode            = errors.New("decode response failed")
	ErrAPI               = errors.New("api reported failure")
)

// StatusError describes a non-2xx response.
type StatusError struct {
	StatusCode int
	Msg        string
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Msg)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// APIError is a 2xx response whose envelope carries success=false.
type APIError struct {
	Msg string
}

func (e *APIError) Error() string { return "api: " + e.Msg }

func (e *APIError) Unwrap() error { return ErrAPI }
