package service

import "errors"

var (
	// ErrUnauthorized means the caller may not mutate data. Nothing was touched.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means no single record matched the requested id.
	ErrNotFound = errors.New("not found")
)

// MsgInvalidJobCode is reported when an edited job code is not seven digits.
const MsgInvalidJobCode = "お仕事IDは7桁の数字で入力してください。"

// ValidationError rejects malformed input before any side effect.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps a failed repository or file store call. Its message is
// the upstream message, optionally prefixed.
type UpstreamError struct {
	Prefix string
	Err    error
}

func (e *UpstreamError) Error() string {
	return e.Prefix + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
