package server

import "github.com/josephgoksu/FocusFlow/internal/app"

// Error codes returned in ErrorResponse.Error.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodePrecondition = "precondition"
	ErrCodeBusy         = "busy"
	ErrCodeEmptyResult  = "empty_result"
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalid      = "invalid"
	ErrCodeUpstream     = "upstream"
	ErrCodeInternal     = "internal"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// InputRequest is the payload for PUT /api/input
type InputRequest struct {
	Text string `json:"text"`
}

// AddTaskRequest is the payload for POST /api/tasks. Title, when set, replaces the input.
type AddTaskRequest struct {
	Title *string `json:"title,omitempty"`
}

// ExpandRequest is the payload for POST /api/expand
type ExpandRequest struct {
	Input    *string `json:"input,omitempty"`
	Strategy string  `json:"strategy,omitempty"`
}

// ExpandResponse reports how many rows an expansion created.
type ExpandResponse struct {
	Created int       `json:"created"`
	State   app.State `json:"state"`
}

// AdviceResponse carries the advice text with the resulting state.
type AdviceResponse struct {
	Advice string    `json:"advice"`
	State  app.State `json:"state"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
