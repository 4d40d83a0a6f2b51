// Package errs provides the typed errors shared by the logistics service.
//
// Every error type follows the same shape:
//   - a sentinel variable (e.g. ErrObjectNotFound) used with errors.Is
//   - a struct carrying the details of one occurrence
//   - constructors with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// Generic validation errors:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ObjectNotFoundError, ObjectAlreadyExistsError
//
// Parcel lifecycle errors:
//   - InvalidTransitionError: the event is not legal from the current status
//   - UnauthorizedError: the actor may not trigger the event
//   - TerminalStateViolationError: the parcel is already delivered, rejected or cancelled
//   - DriverUnavailableError: the driver holds another parcel or lost an assignment race
//   - InvalidInputError: malformed numeric input to pricing or distance
//
// The HTTP adapter maps the sentinels to status codes in one place.
package errs
