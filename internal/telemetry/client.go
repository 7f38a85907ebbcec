package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Client reports events. Implementations must be safe for concurrent use.
type Client interface {
	Track(event string, properties map[string]any)
	Close() error
}

// Properties is a type alias for event properties.
type Properties = map[string]any

// sink is the part of the PostHog client used here.
type sink interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// ClientConfig holds configuration for initializing the telemetry client.
type ClientConfig struct {
	// APIKey is the PostHog project API key.
	APIKey string

	// Version is the focusflow version string.
	Version string

	// Config is the telemetry state (enabled, anonymous ID).
	Config *Config

	// Endpoint is an optional custom PostHog endpoint (for self-hosted).
	Endpoint string
}

// PostHogClient batches events to PostHog. Without a key or state it drops
// every event.
type PostHogClient struct {
	mu     sync.Mutex
	out    sink
	state  *Config
	base   map[string]any
	closed bool
}

// NewPostHogClient creates a PostHog client. Events are flushed every second
// or every ten events, whichever comes first.
func NewPostHogClient(cfg ClientConfig) (*PostHogClient, error) {
	if cfg.APIKey == "" || cfg.Config == nil {
		return newPostHogClient(nil, cfg.Config, cfg.Version), nil
	}

	ph, err := posthog.NewWithConfig(cfg.APIKey, posthog.Config{
		Endpoint:  cfg.Endpoint,
		BatchSize: 10,
		Interval:  time.Second,
		Logger:    discardLogger{},
	})
	if err != nil {
		return nil, err
	}
	return newPostHogClient(ph, cfg.Config, cfg.Version), nil
}

func newPostHogClient(out sink, state *Config, version string) *PostHogClient {
	return &PostHogClient{
		out:   out,
		state: state,
		base: map[string]any{
			"os":          runtime.GOOS,
			"arch":        runtime.GOARCH,
			"app_version": version,
			// anonymous events only, no person profiles
			"$process_person_profile": false,
		},
	}
}

// Track enqueues event. It is dropped when telemetry is off or the client
// has been closed.
func (c *PostHogClient) Track(event string, properties map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.out == nil || c.closed || !c.state.IsEnabled() {
		return
	}

	props := posthog.NewProperties()
	for k, v := range c.base {
		props.Set(k, v)
	}
	for k, v := range properties {
		props.Set(k, v)
	}
	_ = c.out.Enqueue(posthog.Capture{
		DistinctId: c.state.AnonymousID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes pending events. Later calls are no-ops.
func (c *PostHogClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.out == nil || c.closed {
		return nil
	}
	c.closed = true
	return c.out.Close()
}

// NoopClient drops every event.
type NoopClient struct{}

func (NoopClient) Track(string, map[string]any) {}

func (NoopClient) Close() error { return nil }

// NewNoopClient returns a client that does nothing.
func NewNoopClient() NoopClient {
	return NoopClient{}
}

// discardLogger keeps PostHog transport warnings off the terminal and the TUI.
type discardLogger struct{}

func (discardLogger) Debugf(string, ...any) {}
func (discardLogger) Logf(string, ...any)   {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Errorf(string, ...any) {}
