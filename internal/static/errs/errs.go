package errs

import "errors"

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrStoreUnavailable    = errors.New("database unavailable")
	ErrIdentifierCollision = errors.New("certificate id already exists")
	ErrInvalidSubmission   = errors.New("username and code are required")
	ErrInternal            = errors.New("internal error")
)

var (
	ErrPassTokenRequired = errors.New("pass token required")
	ErrPassTokenInvalid  = errors.New("invalid pass token")
	ErrPassTokenReused   = errors.New("pass token already used")
)
