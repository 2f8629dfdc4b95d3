package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Auth errors
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrMissingToken        = errors.New("authorization token missing")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidRole         = errors.New("role must be admin or employee")
)

// User errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrWeakPassword     = errors.New("password must be at least 6 characters")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// Attendance errors
var (
	ErrOfficeLocationNotSet = errors.New("office location not set by admin")
	ErrInvalidCoordinates   = errors.New("lat must be within [-90,90] and lng within [-180,180]")
	ErrInvalidRadius        = errors.New("radius must be a positive number of meters")
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
	ErrNotCheckedIn         = errors.New("cannot check out without checking in")
	ErrAlreadyCheckedOut    = errors.New("already checked out today")
	ErrInvalidDate          = errors.New("date must be YYYY-MM-DD")
)
