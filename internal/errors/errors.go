package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrDeviceNotFound     = errors.New("device not found")
	ErrMissingFields      = errors.New("missing required fields")
	ErrMissingToken       = errors.New("authentication token not provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrUnknownDevices     = errors.New("some devices were not found")
	ErrNoFeedData         = errors.New("no data available from the feed")
)
