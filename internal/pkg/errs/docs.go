// Package errs provides the typed errors shared by the domain model, the
// repositories and the use cases.
//
// Every error type follows the same shape:
//   - a sentinel (ErrValueIsInvalid, ErrObjectNotFound, ...) for errors.Is checks
//   - a struct carrying the offending parameter and an optional Cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel
package errs
