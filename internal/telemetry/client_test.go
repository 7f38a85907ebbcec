package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEnqueuer captures events for testing.
type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]posthog.Capture, len(m.events))
	copy(out, m.events)
	return out
}

func TestPostHogClient_TrackWhenEnabled(t *testing.T) {
	cfg := &Config{Enabled: true, AnonymousID: "anon-123"}
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, cfg, "1.2.3")

	client.Track(EventFlowCompleted, FlowProps("expand", OutcomeSuccess, 4))

	events := mock.getEvents()
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "anon-123", ev.DistinctId)
	assert.Equal(t, EventFlowCompleted, ev.Event)
	assert.Equal(t, "expand", ev.Properties["flow"])
	assert.Equal(t, OutcomeSuccess, ev.Properties["outcome"])
	assert.Equal(t, 4, ev.Properties["count"])
	assert.Equal(t, runtime.GOOS, ev.Properties["os"])
	assert.Equal(t, "1.2.3", ev.Properties["app_version"])
	assert.Equal(t, false, ev.Properties["$process_person_profile"])
}

func TestPostHogClient_TrackWhenDisabled(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, &Config{Enabled: false, AnonymousID: "x"}, "dev")

	client.Track(EventFlowCompleted, nil)
	assert.Empty(t, mock.getEvents())
}

func TestPostHogClient_UninitializedIsNoop(t *testing.T) {
	client, err := NewPostHogClient(ClientConfig{Config: &Config{Enabled: true}})
	require.NoError(t, err)

	client.Track(EventCommand, Properties{"command": "list"})
	assert.NoError(t, client.Close())
}

func TestPostHogClient_CloseFlushes(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, &Config{Enabled: true}, "dev")

	require.NoError(t, client.Close())
	assert.True(t, mock.closed)
}

func TestPostHogClient_DropsAfterClose(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, &Config{Enabled: true, AnonymousID: "a"}, "dev")

	require.NoError(t, client.Close())
	client.Track(EventCommand, Properties{"command": "list"})
	require.NoError(t, client.Close())

	assert.Empty(t, mock.getEvents())
}

func TestPostHogClient_CallerPropertiesOverrideBase(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClient(mock, &Config{Enabled: true, AnonymousID: "a"}, "dev")

	client.Track(EventCommand, Properties{"app_version": "override"})

	events := mock.getEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "override", events[0].Properties["app_version"])
}

func TestNoopClient(t *testing.T) {
	var c Client = NewNoopClient()
	c.Track("anything", nil)
	assert.NoError(t, c.Close())
}

func TestConfigLoadAndSave(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.IsEnabled())
	assert.NotEmpty(t, cfg.AnonymousID)

	cfg.Enabled = true
	require.NoError(t, cfg.Save(dir))

	again, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, again.IsEnabled())
	assert.Equal(t, cfg.AnonymousID, again.AnonymousID)

	var nilCfg *Config
	assert.False(t, nilCfg.IsEnabled())
}
