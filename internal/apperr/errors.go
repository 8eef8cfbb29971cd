package apperr

import "errors"

var (
	ErrPortalNotFound = errors.New("portal document not found")
	ErrInvalidPortal  = errors.New("invalid portal document")
	ErrDrift          = errors.New("published files out of date")
)
