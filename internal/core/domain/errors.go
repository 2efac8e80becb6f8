package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidReference   = errors.New("referenced resource does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAssetTypeNotFound     = errors.New("asset type not found")
	ErrServiceCenterNotFound = errors.New("service center not found")
)
