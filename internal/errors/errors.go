// Package errors provides centralized error handling for esgtrack.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrTaskNotFound indicates that a task has no entry in the progress ledger.
	ErrTaskNotFound = errors.New("task not found")

	// ErrLedgerCorrupted indicates the persisted ledger document could not be
	// parsed. Callers recover by starting from an empty document.
	ErrLedgerCorrupted = errors.New("ledger document corrupted")

	// ErrInvalidPartition indicates a storage partition could not be derived
	// from the provided user identity.
	ErrInvalidPartition = errors.New("invalid storage partition")

	// ErrFileTooLarge indicates an upload exceeds the client-side size cap.
	// The upload is rejected before any network call is attempted.
	ErrFileTooLarge = errors.New("file exceeds upload size limit")

	// ErrPayloadTooLarge indicates the server rejected a request body (HTTP 413).
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrUnauthenticated indicates the API rejected the request for missing or
	// expired credentials (HTTP 401).
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates the API rejected the request for insufficient
	// permissions (HTTP 403).
	ErrForbidden = errors.New("permission denied")

	// ErrServerFailure indicates the API returned a 5xx response.
	ErrServerFailure = errors.New("server error")

	// ErrNetworkUnreachable indicates the API could not be reached at all.
	ErrNetworkUnreachable = errors.New("network unreachable")

	// ErrUnexpectedStatus indicates an API response with a status code outside
	// the categorized set.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidResponse indicates the API response body could not be decoded.
	ErrInvalidResponse = errors.New("invalid response body")

	// ErrConfigInvalid indicates a configuration value failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidPeriodMode indicates an unknown period extraction mode.
	ErrInvalidPeriodMode = errors.New("invalid period mode")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrFieldUnknown indicates a data entry referenced a field key that is
	// not among the task's required field descriptors.
	ErrFieldUnknown = errors.New("unknown data field")

	// ErrNoLocations indicates no location configuration document exists for
	// the current user.
	ErrNoLocations = errors.New("no location configuration found")
)
