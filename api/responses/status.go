package responses

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnknownStatus is returned by ParseStatus for tags outside the fixed set.
var ErrUnknownStatus = errors.New("unknown response status")

// Status is the tag carried in the "status" field of every envelope
type Status string

const (
	StatusOK           Status = "OK"
	StatusError        Status = "ERROR"
	StatusUnauthorized Status = "UNAUTHORIZED"
	StatusForbidden    Status = "FORBIDDEN"
)

// Statuses lists every tag in code order
var Statuses = []Status{StatusOK, StatusError, StatusUnauthorized, StatusForbidden}

// Code returns the HTTP status code bound to the tag. The mapping is fixed.
func (s Status) Code() int {
	switch s {
	case StatusOK:
		return http.StatusOK
	case StatusError:
		return http.StatusBadRequest
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// DefaultMessage returns the message used when the caller supplies none
func (s Status) DefaultMessage() string {
	switch s {
	case StatusOK:
		return "Operation completed successfully."
	case StatusError:
		return "Failed to complete the operation!"
	case StatusUnauthorized:
		return "You are not authorized to access this resource!"
	case StatusForbidden:
		return "You are not allowed to access this resource!"
	default:
		return ""
	}
}

// Valid reports whether s is one of the four tags
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus resolves a tag case-insensitively
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return candidate, nil
}

// StatusForCode maps an HTTP status code back to its tag
func StatusForCode(code int) (Status, bool) {
	for _, s := range Statuses {
		if s.Code() == code {
			return s, true
		}
	}
	return "", false
}
