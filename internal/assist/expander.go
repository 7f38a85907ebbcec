package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// Strategy names an Expander.
type Strategy string

const (
	// StrategyPlanner expands a theme into a timetable.
	StrategyPlanner Strategy = "planner"
	// StrategyBreakdown expands a goal into a few steps.
	StrategyBreakdown Strategy = "breakdown"

	DefaultStrategy = StrategyPlanner
)

// ParseStrategy normalizes a strategy name. Empty selects the default.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultStrategy, nil
	case StrategyPlanner:
		return StrategyPlanner, nil
	case StrategyBreakdown:
		return StrategyBreakdown, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (valid: planner, breakdown)", s)
	}
}

// Expander turns one line of input into task drafts, in display order.
// An empty slice with a nil error means the model produced nothing usable.
type Expander interface {
	Strategy() Strategy
	Expand(ctx context.Context, input string) ([]task.Draft, error)
}

// Planner is the surface of the Planning gateway an Expander needs.
type Planner interface {
	Plan(ctx context.Context, theme string) ([]PlanItem, error)
}

// Breaker is the surface of the Breakdown gateway an Expander needs.
type Breaker interface {
	Breakdown(ctx context.Context, goal string) []string
}

// Advisor is the surface of the Advisory gateway.
type Advisor interface {
	Advise(ctx context.Context, titles []string) string
}

var (
	_ Planner = (*PlanningGateway)(nil)
	_ Breaker = (*BreakdownGateway)(nil)
	_ Advisor = (*AdvisoryGateway)(nil)
)

// PlannerExpander maps timetable slots to "AI Timetable" drafts.
type PlannerExpander struct {
	Planner Planner
}

func (PlannerExpander) Strategy() Strategy { return StrategyPlanner }

// Expand propagates planner failures; an empty timetable is not one.
func (e PlannerExpander) Expand(ctx context.Context, input string) ([]task.Draft, error) {
	items, err := e.Planner.Plan(ctx, input)
	if errors.Is(err, task.ErrEmptyResult) {
		return []task.Draft{}, nil
	}
	if err != nil {
		return nil, err
	}
	return PlanItems(items).Drafts(), nil
}

// BreakdownExpander maps breakdown steps to "AI Breakdown" drafts. It never fails.
type BreakdownExpander struct {
	Breaker Breaker
}

func (BreakdownExpander) Strategy() Strategy { return StrategyBreakdown }

func (e BreakdownExpander) Expand(ctx context.Context, input string) ([]task.Draft, error) {
	return BreakdownDrafts(e.Breaker.Breakdown(ctx, input)), nil
}

// Expanders indexes the available strategies.
type Expanders map[Strategy]Expander

// NewExpanders registers one Expander per strategy.
func NewExpanders(list ...Expander) Expanders {
	out := make(Expanders, len(list))
	for _, e := range list {
		out[e.Strategy()] = e
	}
	return out
}

// Get returns the expander for s, resolving the empty strategy to the default.
func (m Expanders) Get(s Strategy) (Expander, error) {
	if s == "" {
		s = DefaultStrategy
	}
	e, ok := m[s]
	if !ok {
		return nil, fmt.Errorf("strategy %q is not configured", s)
	}
	return e, nil
}
