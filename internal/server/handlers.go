package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/assist"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 64 << 10

// handleState returns the current snapshot without touching the store.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, s.flows.Snapshot())
}

// handleRefresh re-reads the list from the store and returns the new snapshot.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.flows.Refresh(r.Context()); err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, s.flows.Snapshot())
}

// handleSetInput replaces the shared text input.
func (s *Server) handleSetInput(w http.ResponseWriter, r *http.Request) {
	var req InputRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	s.flows.SetInput(req.Text)
	writeAPIJSON(w, http.StatusOK, s.flows.Snapshot())
}

// handleAddTask runs Add. A title in the body replaces the input first.
func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req AddTaskRequest
	if !decodeBody(w, r, &req, true) {
		return
	}
	if req.Title != nil {
		s.flows.SetInput(*req.Title)
	}
	if err := s.flows.Add(r.Context()); err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, s.flows.Snapshot())
}

// handleToggleTask flips the completion of the task in the path.
func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.flows.Toggle(r.Context(), id); err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, s.flows.Snapshot())
}

// handleDeleteTask removes the task in the path. Unknown ids succeed.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.flows.Delete(r.Context(), id); err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, s.flows.Snapshot())
}

// handleExpand turns the input into tasks with the requested strategy (the configured one when empty).
func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	var req ExpandRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	var strategy assist.Strategy
	if req.Strategy != "" {
		parsed, err := assist.ParseStrategy(req.Strategy)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		strategy = parsed
	}
	if req.Input != nil {
		s.flows.SetInput(*req.Input)
	}

	created, err := s.flows.Expand(r.Context(), strategy)
	if err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, ExpandResponse{Created: created, State: s.flows.Snapshot()})
}

// handleAdvise asks for advice on the open tasks. Model failures come back as the fallback text.
func (s *Server) handleAdvise(w http.ResponseWriter, r *http.Request) {
	advice, err := s.flows.Advise(r.Context())
	if err != nil {
		s.writeFlowError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, AdviceResponse{Advice: advice, State: s.flows.Snapshot()})
}

// handleDismissAdvice closes the advice panel.
func (s *Server) handleDismissAdvice(w http.ResponseWriter, r *http.Request) {
	s.flows.DismissAdvice()
	writeAPIJSON(w, http.StatusOK, s.flows.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

// decodeBody decodes a JSON body into dst. With optional set, an empty body is accepted.
// It writes the error response itself and reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		writeAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeFlowError maps an Orchestrator error onto a status code and a user message.
func (s *Server) writeFlowError(w http.ResponseWriter, err error) {
	status, code, fallback := classify(err)
	msg := app.UserMessage(err)
	if msg == "" {
		msg = fallback
	}
	if status >= http.StatusInternalServerError {
		s.logger.Warn("flow failed", zap.Error(err))
	}
	writeAPIError(w, status, code, msg)
}

func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, task.ErrPrecondition):
		return http.StatusBadRequest, ErrCodePrecondition, "Please enter some text first."
	case errors.Is(err, app.ErrBusy):
		return http.StatusConflict, ErrCodeBusy, "That action is already running."
	case errors.Is(err, task.ErrEmptyResult):
		return http.StatusUnprocessableEntity, ErrCodeEmptyResult, app.ExpandEmptyMessage
	case errors.Is(err, task.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "Task not found."
	case task.IsInvalidDraft(err):
		return http.StatusBadRequest, ErrCodeInvalid, app.InvalidTaskMessage
	default:
		return http.StatusBadGateway, ErrCodeUpstream, "The task service is unavailable right now."
	}
}

func writeAPIJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeAPIJSON(w, status, ErrorResponse{Error: code, Message: message})
}
