package server

import "net/http"

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("PUT /api/input", s.handleSetInput)

	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	mux.HandleFunc("POST /api/expand", s.handleExpand)
	mux.HandleFunc("POST /api/advice", s.handleAdvise)
	mux.HandleFunc("DELETE /api/advice", s.handleDismissAdvice)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /", staticHandler())

	return s.recoverMiddleware(s.logMiddleware(s.corsMiddleware(mux)))
}
