package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrUnauthenticated is returned when a request context carries no user id.
	ErrUnauthenticated = errors.New("no authenticated user in context")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

var (
	// ErrNoCurrentUser is returned by the client bookmark store when nobody
	// is signed in. It is never surfaced as a notification.
	ErrNoCurrentUser = errors.New("no user is signed in")
)
