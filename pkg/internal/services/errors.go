package services

import "errors"

// Stable error kinds surfaced to callers; message text is informational only.
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrHashtagNotFound   = errors.New("hashtag not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrForbidden         = errors.New("forbidden")
	ErrContentTooLong    = errors.New("content exceeds maximum length")
	ErrInvalidVisibility = errors.New("unknown visibility level")
	ErrInvalidCounter    = errors.New("unknown counter")
	ErrHashtagConflict   = errors.New("hashtag creation kept conflicting")
)
