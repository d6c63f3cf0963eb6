// Copyright 2025 The WikiGeo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error carries the classified cause of a failed geocoding call.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding failures.
type ErrorType int

const (
	// ErrorTypeUnknown is everything the classifier can't name.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit means the service rejected us for requesting too fast.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded means the service denied access or usage quota.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout is a connection or response deadline expiring.
	ErrorTypeTimeout
	// ErrorTypeNotFound means the service has no candidate for the address.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest means the service rejected the request itself.
	ErrorTypeInvalidRequest
	// ErrorTypeNetwork is a transport-level failure.
	ErrorTypeNetwork
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRateLimit reports whether the error is a rate-limit rejection.
func IsRateLimit(err error) bool {
	var geoErr *Error
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsTimeout reports whether the error is a timeout.
func IsTimeout(err error) bool {
	var geoErr *Error
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsNotFound reports whether the service simply had no candidate.
func IsNotFound(err error) bool {
	var geoErr *Error
	if errors.As(err, &geoErr) && geoErr.Type == ErrorTypeNotFound {
		return true
	}

	return errors.Is(err, ErrNoResult)
}

// ClassifyStatus maps an HTTP status code to a geocoding error.
func ClassifyStatus(statusCode int) *Error {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &Error{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden:
		return &Error{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest:
		return &Error{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound:
		return &Error{
			Type:    ErrorTypeNotFound,
			Message: "location not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}
