package core

import "errors"

// Error codes surfaced to the offending connection as errorMsg events.
const (
	ErrCodeInvalidRoom = "invalid_room"
	ErrCodeForbidden   = "forbidden"
	ErrCodeNotFound    = "not_found"
	ErrCodeInviterGone = "inviter_gone"
	ErrCodeSelfInvite  = "self_invite"
	ErrCodeBadRequest  = "bad_request"
)

var (
	ErrInvalidRoom = errors.New("room not joined")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
