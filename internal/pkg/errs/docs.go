// Package errs provides standardized error types for the delivery application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the application's error taxonomy:
//   - ObjectNotFoundError: an entity id does not resolve to a stored record
//   - InvalidStateError: an operation against an entity in the wrong state, or an ownership mismatch
//   - NoCandidatesError: a required candidate set (orders, couriers, stores) is empty
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: construction-time validation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method resolving to the sentinel for errors.Is classification
//
// Data-quality issues (missing or unparsable coordinates) are not represented
// here: callers skip the offending records and only escalate to
// NoCandidatesError when the skips empty a required set.
package errs
