// Package errs provides the error types shared by every layer of the print-shop
// service. Each type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the details needed to render a message for the operator
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() for classification
//
// Validation failures (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) are produced by domain constructors. ObjectNotFoundError,
// InvalidStateError, ReferentialConflictError, StoreUnavailableError and
// CascadeError form the failure taxonomy of the order progress engine; the
// HTTP adapter maps them onto status codes.
package errs
