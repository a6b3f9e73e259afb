package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// DomainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from this map fall back to prefix rules in GetHTTPStatus.
var DomainCodeHTTPStatus = map[string]int{
	// Transport errors
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Missing resources
	ErrCodeNotFound:   http.StatusNotFound,
	"BATCH_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":         http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"RECEIPT_ALREADY_EXISTS": http.StatusConflict,
	"RECEIPT_EXISTS":         http.StatusConflict,
	"EQUIPMENT_IN_USE":       http.StatusConflict,

	// Business rule violations
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"NOT_DRAFT":          http.StatusUnprocessableEntity,
	"NO_RECIPE":          http.StatusUnprocessableEntity,
	"NO_INGREDIENTS":     http.StatusUnprocessableEntity,
	"ALL_ISSUED":         http.StatusUnprocessableEntity,
	"NO_WAREHOUSE":       http.StatusUnprocessableEntity,
	"NO_PRODUCTION_ITEM": http.StatusUnprocessableEntity,
	"NO_BOTTLING_DATA":   http.StatusUnprocessableEntity,
	"NOTE_REQUIRED":      http.StatusUnprocessableEntity,
	"EMPTY_DOCUMENT":     http.StatusUnprocessableEntity,
	"UNIT_KIND_MISMATCH": http.StatusUnprocessableEntity,

	// Failed side effects
	"RECEIPT_FAILED": http.StatusInternalServerError,
	"ISSUE_FAILED":   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes not explicitly mapped are treated as bad input; anything
// else unknown is an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := DomainCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
