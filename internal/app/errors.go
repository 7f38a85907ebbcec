package app

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a flow is started while the same flow is still running.
var ErrBusy = errors.New("another request of this kind is in progress")

// NoticeLevel tells a presenter how to surface a Notice.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeAlert NoticeLevel = "alert"
)

// Notice is a user-facing message left in the state by the last flow.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// NoticeError carries the notice shown to the user together with the cause.
type NoticeError struct {
	Notice Notice
	Err    error
}

func (e *NoticeError) Error() string {
	if e.Err == nil {
		return e.Notice.Message
	}
	return fmt.Sprintf("%s: %v", e.Notice.Message, e.Err)
}

func (e *NoticeError) Unwrap() error { return e.Err }

// UserMessage returns the notice text for err, or "" when err carries none.
func UserMessage(err error) string {
	var ne *NoticeError
	if errors.As(err, &ne) {
		return ne.Notice.Message
	}
	return ""
}
