package authz

import "errors"

// Kind tells the two authorization failures apart.
type Kind int

const (
	KindUnauthenticated Kind = iota + 1
	KindForbidden
)

// AuthorizationError is returned when a caller is not allowed to proceed.
type AuthorizationError struct {
	Kind    Kind
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Unauthenticated reports a missing or invalid credential.
func Unauthenticated(msg string) error {
	return &AuthorizationError{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden reports a valid caller lacking the required role.
func Forbidden(msg string) error {
	return &AuthorizationError{Kind: KindForbidden, Message: msg}
}

// IsUnauthenticated reports whether err is an unauthenticated failure.
func IsUnauthenticated(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae) && ae.Kind == KindUnauthenticated
}

// IsForbidden reports whether err is a forbidden failure.
func IsForbidden(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae) && ae.Kind == KindForbidden
}
