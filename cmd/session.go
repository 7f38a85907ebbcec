package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/assist"
	"github.com/josephgoksu/FocusFlow/internal/config"
	"github.com/josephgoksu/FocusFlow/internal/llm"
	"github.com/josephgoksu/FocusFlow/internal/logger"
	"github.com/josephgoksu/FocusFlow/internal/store"
	"github.com/josephgoksu/FocusFlow/internal/telemetry"
)

// session holds the collaborators of one command run.
type session struct {
	flows     *app.Orchestrator
	store     store.Store
	telemetry telemetry.Client
}

// Close flushes telemetry and closes the store.
func (s *session) Close() {
	if s.telemetry != nil {
		_ = s.telemetry.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}
}

// openSession wires the store, the model gateways and telemetry into an
// Orchestrator. With withAssist false no model client is created, so list
// and toggle work without an API key; Expand and Advise then fail cleanly.
func openSession(cmd *cobra.Command, cfg *config.Config, withAssist bool) (*session, error) {
	ctx := cmd.Context()
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}

	st, err := store.Open(ctx, store.Config{
		Driver:      cfg.Store.Driver,
		Path:        cfg.Store.Path,
		DSN:         cfg.Store.DSN,
		AutoMigrate: cfg.Store.AutoMigrate,
	})
	if err != nil {
		return nil, err
	}

	deps := app.Deps{
		Store:     st,
		Expanders: assist.NewExpanders(),
		Advisor:   unavailableAdvisor{},
		Telemetry: newTelemetry(cfg),
		Logger:    log,
	}
	if strategy, err := assist.ParseStrategy(cfg.Assist.Strategy); err == nil {
		deps.Strategy = strategy
	}

	if withAssist {
		client, err := llm.NewClient(ctx, cfg.LLM.ClientConfig())
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("%w (set llm.apiKey or run 'focusflow config init')", err)
		}
		style, _ := assist.ParseAdviceStyle(cfg.Assist.AdviceStyle)
		deps.Expanders = assist.NewExpanders(
			assist.PlannerExpander{Planner: assist.NewPlanningGateway(client, cfg.LLM.Models.Planner, log)},
			assist.BreakdownExpander{Breaker: assist.NewBreakdownGateway(client, cfg.LLM.Models.Planner, log)},
		)
		deps.Advisor = assist.NewAdvisoryGateway(client, assist.AdvisoryConfig{
			Style:      style,
			CoachModel: cfg.LLM.Models.Advisor,
			TipModel:   cfg.LLM.Models.Planner,
		}, log)
	}

	deps.Telemetry.Track(telemetry.EventCommand, telemetry.Properties{"command": cmd.Name()})
	return &session{
		flows:     app.New(deps),
		store:     st,
		telemetry: deps.Telemetry,
	}, nil
}

// unavailableAdvisor stands in when no model client was created.
type unavailableAdvisor struct{}

func (unavailableAdvisor) Advise(context.Context, []string) string { return assist.FailureMessage }

// newTelemetry returns a PostHog client when telemetry is enabled and keyed,
// otherwise a no-op client. Failures never block the command.
func newTelemetry(cfg *config.Config) telemetry.Client {
	if !cfg.Telemetry.Enabled || cfg.Telemetry.APIKey == "" {
		return telemetry.NewNoopClient()
	}

	dir := config.DataDir()
	state, err := telemetry.Load(dir)
	if err != nil {
		log.Debug("telemetry state unavailable", zap.Error(err))
		return telemetry.NewNoopClient()
	}
	if !state.Enabled {
		state.Enabled = true
		if err := state.Save(dir); err != nil {
			log.Debug("save telemetry state", zap.Error(err))
		}
	}

	client, err := telemetry.NewPostHogClient(telemetry.ClientConfig{
		APIKey:   cfg.Telemetry.APIKey,
		Version:  version,
		Config:   state,
		Endpoint: cfg.Telemetry.Endpoint,
	})
	if err != nil {
		log.Debug("telemetry disabled", zap.Error(err))
		return telemetry.NewNoopClient()
	}
	logger.Component(log, "telemetry").Debug("telemetry enabled", zap.String("anonymous_id", state.AnonymousID))
	return client
}
