package models

import "errors"

// ErrorKind classifies failures the API layer knows how to report.
// Anything that is not an *Error is treated as a storage failure.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindDuplicate
	KindUnauthorized
	KindForbidden
	KindNotFound
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrDuplicateEmail          = &Error{Kind: KindDuplicate, Message: "Email already exists"}
	ErrInvalidCredentials      = &Error{Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrAdminInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrAdminsOnly              = &Error{Kind: KindForbidden, Message: "Access Denied: Admins only"}
	ErrNotFound                = &Error{Kind: KindNotFound, Message: "Not found"}
)

// ValidationError reports missing or malformed input.
func ValidationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf returns the kind of err, or 0 for storage/unknown failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
