// Package acl is the anti-corruption layer between the DailyDose quote API
// and the domain.
//
// Remote payloads are decoded into unexported DTOs, validated, and
// translated into domain values. Nothing outside this package sees the wire
// format.
//
// Failures are reported as domain errors:
//
//   - 404 becomes [domain.ErrNotFound]
//   - 400 and 422 become [domain.ErrValidation]
//   - 409 becomes [domain.ErrConflict]
//   - 429, 5xx, transport errors, an open circuit and exhausted retries
//     become [domain.ErrUnavailable]
//
// [BaseAdapter] holds the request/decode plumbing and [QuoteClient] is the
// [ports.QuoteSource] built on it.
package acl
