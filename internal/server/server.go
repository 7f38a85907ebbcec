// Package server exposes the Orchestrator over a JSON HTTP API and serves the
// embedded browser UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/assist"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Flows is the part of the Orchestrator the API drives.
type Flows interface {
	Snapshot() app.State
	SetInput(text string)
	Refresh(ctx context.Context) error
	Add(ctx context.Context) error
	Expand(ctx context.Context, strategy assist.Strategy) (int, error)
	Advise(ctx context.Context) (string, error)
	DismissAdvice()
	Toggle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Options configures a Server.
type Options struct {
	Addr    string
	Origins []string
	Version string
	Logger  *zap.Logger
}

type Server struct {
	flows   Flows
	origins map[string]struct{}
	version string
	logger  *zap.Logger
	server  *http.Server
}

// New creates a Server. Nothing listens until Run is called.
func New(flows Flows, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	origins := make(map[string]struct{}, len(opts.Origins))
	for _, o := range opts.Origins {
		origins[o] = struct{}{}
	}

	s := &Server{
		flows:   flows,
		origins: origins,
		version: opts.Version,
		logger:  opts.Logger.With(zap.String("component", "server")),
	}
	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.server.Addr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}
