// Package errs provides the typed errors shared by the planner, the run service and
// their adapters.
//
// Every error type pairs a sentinel with a struct carrying the offending parameter:
//   - ValueIsRequiredError wraps ErrValueIsRequired
//   - ValueIsInvalidError wraps ErrValueIsInvalid
//   - ValueIsOutOfRangeError wraps ErrValueIsOutOfRange
//   - ObjectNotFoundError wraps ErrObjectNotFound
//   - VersionIsInvalidError wraps ErrVersionIsInvalid
//
// Callers classify failures with errors.Is against the sentinels; the HTTP adapter
// maps them to status codes that way.
package errs
