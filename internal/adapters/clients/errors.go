// Package clients provides the instrumented HTTP client used to reach the
// DailyDose quote API.
package clients

import "errors"

// Transport-level failures. The acl package translates them to domain errors.
var (
	// ErrCircuitOpen means the breaker is rejecting calls to the API.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error after every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
