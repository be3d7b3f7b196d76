package domain

import "errors"

// The three error kinds callers can distinguish: access denied (role or
// scope failure, always audit-logged), not found, and invalid request
// (lifecycle-table violation or data-shape failure).

// AccessDeniedError indicates a role or organization-scope refusal.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string { return e.Reason }

// NewAccessDenied creates an AccessDeniedError with the given reason.
func NewAccessDenied(reason string) error {
	return &AccessDeniedError{Reason: reason}
}

// IsAccessDenied reports whether err is an AccessDeniedError.
func IsAccessDenied(err error) bool {
	var e *AccessDeniedError
	return errors.As(err, &e)
}

// NotFoundError indicates the referenced resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// InvalidRequestError indicates a data-validation failure, such as an
// illegal lifecycle transition.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string { return e.Reason }

// NewInvalidRequest creates an InvalidRequestError with the given reason.
func NewInvalidRequest(reason string) error {
	return &InvalidRequestError{Reason: reason}
}

// IsInvalidRequest reports whether err is an InvalidRequestError.
func IsInvalidRequest(err error) bool {
	var e *InvalidRequestError
	return errors.As(err, &e)
}

// Common sentinel instances.
var (
	ErrTaskNotFound = &NotFoundError{Resource: "task"}
	ErrUserNotFound = &NotFoundError{Resource: "user"}
	ErrOrgNotFound  = &NotFoundError{Resource: "organization"}
)
