// Package app holds the Orchestrator: the application layer between presenters
// (HTTP, TUI, CLI, MCP) and the store and model gateways. Presenters stay thin
// adapters; every flow and every user-facing message lives here.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/assist"
	"github.com/josephgoksu/FocusFlow/internal/store"
	"github.com/josephgoksu/FocusFlow/internal/task"
	"github.com/josephgoksu/FocusFlow/internal/telemetry"
)

// Flow names used in logs and telemetry.
const (
	FlowAdd     = "add"
	FlowExpand  = "expand"
	FlowAdvise  = "advise"
	FlowToggle  = "toggle"
	FlowDelete  = "delete"
	FlowRefresh = "refresh"
)

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Store     store.Store
	Expanders assist.Expanders
	Advisor   assist.Advisor
	// Strategy is used by Expand when the caller passes none.
	Strategy  assist.Strategy
	Telemetry telemetry.Client
	Logger    *zap.Logger
}

// Orchestrator owns the presentation state and runs the flows.
//
// The mutex guards state only and is never held across a store or model call,
// so different flows overlap freely. Each flow has its own busy flag; starting
// a flow that is already running returns ErrBusy.
//
// Flows ignore cancellation of the caller's context: once started, a store or
// model call runs to completion and every committed write is followed by a
// re-list. Context values still pass through; deadlines do not.
type Orchestrator struct {
	store     store.Store
	expanders assist.Expanders
	advisor   assist.Advisor
	strategy  assist.Strategy
	telemetry telemetry.Client
	logger    *zap.Logger

	mu       sync.Mutex
	state    State
	loadings int
}

// New creates an Orchestrator. The task list is empty until Refresh is called.
func New(d Deps) *Orchestrator {
	if d.Telemetry == nil {
		d.Telemetry = telemetry.NewNoopClient()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Strategy == "" {
		d.Strategy = assist.DefaultStrategy
	}
	return &Orchestrator{
		store:     d.Store,
		expanders: d.Expanders,
		advisor:   d.Advisor,
		strategy:  d.Strategy,
		telemetry: d.Telemetry,
		logger:    d.Logger.With(zap.String("component", "orchestrator")),
		state:     State{Tasks: []task.Task{}},
	}
}

// Snapshot returns a copy of the current state with derived values filled in.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// SetInput replaces the text input.
func (o *Orchestrator) SetInput(text string) {
	o.mu.Lock()
	o.state.Input = text
	o.mu.Unlock()
}

// DismissAdvice closes the advice panel.
func (o *Orchestrator) DismissAdvice() {
	o.mu.Lock()
	o.state.Advice = ""
	o.mu.Unlock()
}

// DismissNotice clears the last notice.
func (o *Orchestrator) DismissNotice() {
	o.mu.Lock()
	o.state.Notice = nil
	o.mu.Unlock()
}

// Refresh re-reads the whole list and replaces the cached one.
// On failure the cached list is left as is; the error is logged and returned.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	o.mu.Lock()
	o.loadings++
	o.state.Loading = true
	o.mu.Unlock()

	tasks, err := o.store.List(ctx)

	o.mu.Lock()
	o.loadings--
	o.state.Loading = o.loadings > 0
	if err == nil {
		if tasks == nil {
			tasks = []task.Task{}
		}
		o.state.Tasks = tasks
	}
	o.mu.Unlock()

	if err != nil {
		o.logger.Error("list tasks failed", zap.Error(err))
		return err
	}
	return nil
}

// Add stores the current input as a new medium-priority "General" task.
func (o *Orchestrator) Add(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	o.mu.Lock()
	if o.state.Adding {
		o.mu.Unlock()
		o.track(FlowAdd, telemetry.OutcomeBusy, 0)
		return ErrBusy
	}
	text := o.state.Input
	if strings.TrimSpace(text) == "" {
		o.mu.Unlock()
		o.track(FlowAdd, telemetry.OutcomePrecondition, 0)
		return task.ErrPrecondition
	}
	o.state.Adding = true
	o.mu.Unlock()
	defer o.clearBusy(func(s *State) { s.Adding = false })

	if err := o.store.Insert(ctx, []task.Draft{task.NewDraft(text)}); err != nil {
		o.logger.Error("add task failed", zap.Error(err))
		o.track(FlowAdd, telemetry.OutcomeFailure, 0)
		return o.fail(NoticeAlert, insertFailure(err, AddFailedMessage), err)
	}

	o.mu.Lock()
	o.state.Input = ""
	o.mu.Unlock()

	_ = o.Refresh(ctx)
	o.track(FlowAdd, telemetry.OutcomeSuccess, 1)
	return nil
}

// Expand runs the input through an Expander and stores the drafts it returns.
// An empty strategy selects the configured default. It returns the number of rows created.
func (o *Orchestrator) Expand(ctx context.Context, strategy assist.Strategy) (int, error) {
	ctx = context.WithoutCancel(ctx)
	if strategy == "" {
		strategy = o.strategy
	}

	o.mu.Lock()
	if o.state.Expanding {
		o.mu.Unlock()
		o.track(FlowExpand, telemetry.OutcomeBusy, 0)
		return 0, ErrBusy
	}
	input := strings.TrimSpace(o.state.Input)
	if input == "" {
		o.setNoticeLocked(NoticeAlert, ExpandPreconditionMessage)
		o.mu.Unlock()
		o.track(FlowExpand, telemetry.OutcomePrecondition, 0)
		return 0, &NoticeError{Notice: Notice{Level: NoticeAlert, Message: ExpandPreconditionMessage}, Err: task.ErrPrecondition}
	}
	o.state.Expanding = true
	o.mu.Unlock()
	defer o.clearBusy(func(s *State) { s.Expanding = false })

	log := o.logger.With(zap.String("strategy", string(strategy)))

	expander, err := o.expanders.Get(strategy)
	if err != nil {
		log.Error("no expander", zap.Error(err))
		o.track(FlowExpand, telemetry.OutcomeFailure, 0)
		return 0, o.fail(NoticeAlert, ExpandFailedMessage, err)
	}

	drafts, err := expander.Expand(ctx, input)
	if err != nil {
		log.Error("expand failed", zap.Error(err))
		o.track(FlowExpand, telemetry.OutcomeFailure, 0)
		return 0, o.fail(NoticeAlert, ExpandFailedMessage, err)
	}
	if len(drafts) == 0 {
		log.Info("expand produced nothing")
		o.track(FlowExpand, telemetry.OutcomeEmpty, 0)
		return 0, o.fail(NoticeAlert, ExpandEmptyMessage, task.ErrEmptyResult)
	}

	// Inserted last-to-first so the first generated item is the newest row and lists on top.
	rows := slices.Clone(drafts)
	slices.Reverse(rows)
	if err := o.store.Insert(ctx, rows); err != nil {
		log.Error("saving generated tasks failed", zap.Int("count", len(rows)), zap.Error(err))
		o.track(FlowExpand, telemetry.OutcomeFailure, len(rows))
		return 0, o.fail(NoticeAlert, insertFailure(err, ExpandNotSavedMessage), err)
	}

	o.mu.Lock()
	o.state.Input = ""
	o.setNoticeLocked(NoticeInfo, fmt.Sprintf(ExpandedMessageFormat, len(rows)))
	o.mu.Unlock()

	_ = o.Refresh(ctx)
	log.Info("expanded input", zap.Int("count", len(rows)))
	o.track(FlowExpand, telemetry.OutcomeSuccess, len(rows))
	return len(rows), nil
}

// Advise asks the Advisory gateway about the incomplete tasks in the cached list.
// It always leaves a displayable string in State.Advice and returns it.
// The gateway is not called when nothing is in progress.
func (o *Orchestrator) Advise(ctx context.Context) (string, error) {
	ctx = context.WithoutCancel(ctx)
	o.mu.Lock()
	if o.state.Advising {
		o.mu.Unlock()
		o.track(FlowAdvise, telemetry.OutcomeBusy, 0)
		return "", ErrBusy
	}
	titles := task.ActiveTitles(o.state.Tasks)
	if len(titles) == 0 {
		o.state.Advice = NothingInProgressMessage
		o.mu.Unlock()
		o.track(FlowAdvise, telemetry.OutcomePrecondition, 0)
		return NothingInProgressMessage, nil
	}
	o.state.Advising = true
	o.mu.Unlock()
	defer o.clearBusy(func(s *State) { s.Advising = false })

	advice := o.advisor.Advise(ctx, titles)
	outcome := telemetry.OutcomeSuccess
	switch {
	case strings.TrimSpace(advice) == "":
		advice = AdviceEmptyMessage
		outcome = telemetry.OutcomeEmpty
	case advice == AdvisoryFailureMessage:
		outcome = telemetry.OutcomeFailure
	}

	o.mu.Lock()
	o.state.Advice = advice
	o.mu.Unlock()

	o.track(FlowAdvise, outcome, len(titles))
	return advice, nil
}

// Toggle flips the completion of id based on the cached list, then re-lists.
func (o *Orchestrator) Toggle(ctx context.Context, id string) error {
	ctx = context.WithoutCancel(ctx)
	o.mu.Lock()
	t, ok := task.Find(o.state.Tasks, id)
	o.mu.Unlock()
	if !ok {
		return fmt.Errorf("task %s: %w", id, task.ErrNotFound)
	}

	if err := o.store.SetCompletion(ctx, id, !t.IsCompleted); err != nil {
		o.logger.Error("toggle failed", zap.String("id", id), zap.Error(err))
		o.track(FlowToggle, telemetry.OutcomeFailure, 0)
		return o.fail(NoticeAlert, UpdateFailedMessage, err)
	}

	_ = o.Refresh(ctx)
	o.track(FlowToggle, telemetry.OutcomeSuccess, 1)
	return nil
}

// Delete removes id from the store, then re-lists. Unknown ids are not an error.
func (o *Orchestrator) Delete(ctx context.Context, id string) error {
	ctx = context.WithoutCancel(ctx)
	if err := o.store.Delete(ctx, id); err != nil {
		o.logger.Error("delete failed", zap.String("id", id), zap.Error(err))
		o.track(FlowDelete, telemetry.OutcomeFailure, 0)
		return o.fail(NoticeAlert, DeleteFailedMessage, err)
	}

	_ = o.Refresh(ctx)
	o.track(FlowDelete, telemetry.OutcomeSuccess, 1)
	return nil
}

// insertFailure picks the notice for a failed insert. A rejected draft is not
// a connection problem.
func insertFailure(err error, fallback string) string {
	if task.IsInvalidDraft(err) {
		return InvalidTaskMessage
	}
	return fallback
}

// fail records a notice and returns it wrapped around cause.
func (o *Orchestrator) fail(level NoticeLevel, msg string, cause error) error {
	o.mu.Lock()
	o.setNoticeLocked(level, msg)
	o.mu.Unlock()
	return &NoticeError{Notice: Notice{Level: level, Message: msg}, Err: cause}
}

func (o *Orchestrator) setNoticeLocked(level NoticeLevel, msg string) {
	o.state.Notice = &Notice{Level: level, Message: msg}
}

func (o *Orchestrator) clearBusy(reset func(*State)) {
	o.mu.Lock()
	reset(&o.state)
	o.mu.Unlock()
}

func (o *Orchestrator) track(flow, outcome string, count int) {
	o.telemetry.Track(telemetry.EventFlowCompleted, telemetry.FlowProps(flow, outcome, count))
}

// IsUserError reports whether err came from user input rather than a collaborator.
func IsUserError(err error) bool {
	return errors.Is(err, task.ErrPrecondition) || errors.Is(err, task.ErrNotFound) || errors.Is(err, ErrBusy)
}
