package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrTerminalStateViolation = errors.New("terminal state violation")
	ErrDriverUnavailable      = errors.New("driver unavailable")
	ErrInvalidInput           = errors.New("invalid input")
)

// InvalidTransitionError reports an event that has no transition from the current status.
type InvalidTransitionError struct {
	From  string
	Event string
	Cause error
}

func NewInvalidTransitionError(from, event string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func NewInvalidTransitionErrorWithCause(from, event string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidTransition, e.Event, e.From)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError reports an actor whose role (or identity) may not trigger an event.
type UnauthorizedError struct {
	Role   string
	Action string
	Cause  error
}

func NewUnauthorizedError(role, action string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Action: action}
}

func NewUnauthorizedErrorWithCause(role, action string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Action: action, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	msg := fmt.Sprintf("%s: %s may not %s", ErrUnauthorized, e.Role, e.Action)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// TerminalStateViolationError reports a mutation attempted on a parcel in a terminal status.
type TerminalStateViolationError struct {
	Status string
	Event  string
}

func NewTerminalStateViolationError(status, event string) *TerminalStateViolationError {
	return &TerminalStateViolationError{Status: status, Event: event}
}

func (e *TerminalStateViolationError) Error() string {
	return fmt.Sprintf("%s: %s attempted on %s parcel", ErrTerminalStateViolation, e.Event, e.Status)
}

func (e *TerminalStateViolationError) Unwrap() error {
	return ErrTerminalStateViolation
}

// DriverUnavailableError reports a driver that cannot take a new assignment.
type DriverUnavailableError struct {
	DriverID int64
	Cause    error
}

func NewDriverUnavailableError(driverID int64) *DriverUnavailableError {
	return &DriverUnavailableError{DriverID: driverID}
}

func NewDriverUnavailableErrorWithCause(driverID int64, cause error) *DriverUnavailableError {
	return &DriverUnavailableError{DriverID: driverID, Cause: cause}
}

func (e *DriverUnavailableError) Error() string {
	msg := fmt.Sprintf("%s: driver %d", ErrDriverUnavailable, e.DriverID)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *DriverUnavailableError) Unwrap() error {
	return ErrDriverUnavailable
}

// InvalidInputError reports a malformed numeric input to pricing or distance calculation.
type InvalidInputError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewInvalidInputError(paramName string, value any) *InvalidInputError {
	return &InvalidInputError{ParamName: paramName, Value: value}
}

func NewInvalidInputErrorWithCause(paramName string, value any, cause error) *InvalidInputError {
	return &InvalidInputError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("%s: %s is %v", ErrInvalidInput, e.ParamName, sanitize(e.Value))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
