package errors

import "errors"

var (
	ErrInvalidVoteInput = errors.New("invalid vote input")
	ErrInvalidLimit     = errors.New("limit must not be negative")
	ErrDuplicateVote    = errors.New("vote id already exists")
)
