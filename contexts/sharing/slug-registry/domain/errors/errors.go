package errors

import "errors"

var (
	ErrInvalidPayload = errors.New("share payload must be a non-null JSON value")
	ErrSlugTaken      = errors.New("share slug already taken")
	ErrSlugExhausted  = errors.New("share slug generation exhausted all attempts")
)
