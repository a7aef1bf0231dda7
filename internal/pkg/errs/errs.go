package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValueIsRequired indicates a required value is missing or empty.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value does not satisfy its format or range rules.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrObjectNotFound indicates a referenced object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrRemoteCallFailed indicates a remote gateway call could not be completed,
	// either because of a transport failure or a non-2xx response.
	ErrRemoteCallFailed = errors.New("remote call failed")
)

// ValueIsRequiredError is returned when a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError is returned when a referenced object cannot be found.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given parameter and id.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// RemoteError is returned when a gateway call fails. Message carries the
// backend-supplied message when one is available, otherwise a transport-level
// description. StatusCode is zero for transport failures that never produced
// an HTTP response.
type RemoteError struct {
	Message    string
	StatusCode int
	Cause      error
}

// NewRemoteError creates a RemoteError with the given message and HTTP status.
func NewRemoteError(message string, statusCode int) *RemoteError {
	return &RemoteError{Message: message, StatusCode: statusCode}
}

// NewRemoteErrorWithCause creates a RemoteError wrapping a transport-level cause.
func NewRemoteErrorWithCause(message string, statusCode int, cause error) *RemoteError {
	return &RemoteError{Message: message, StatusCode: statusCode, Cause: cause}
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return sanitize(fmt.Sprintf("%s: %s (status: %d)", ErrRemoteCallFailed, e.Message, e.StatusCode))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrRemoteCallFailed, e.Message))
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteCallFailed
}

// RemoteMessage extracts a user-facing message from err. When err wraps a
// RemoteError the backend-supplied message is preferred, otherwise the fallback
// is returned. Stages use this to surface specific, not generic, failure text.
func RemoteMessage(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return fallback
}

func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}
