package entity

import "errors"

// Status-class sentinels returned by the API core; resource clients and
// the CLI branch on these with errors.Is.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("rate limited")
	ErrServiceUnavailable = errors.New("service unavailable")
)

var (
	ErrUnauthenticated = errors.New("user is not authenticated")
	ErrSessionExpired  = errors.New("session expired")
	ErrPageBlocked     = errors.New("page is blocked for this user")
)

var (
	ErrEmptyFile       = errors.New("worksheet is empty")
	ErrInvalidInput    = errors.New("invalid input")
	ErrFileTokenNotSet = errors.New("download request has no file token")
	ErrNotApproved     = errors.New("download request is not approved")
)
