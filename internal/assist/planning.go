package assist

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/llm"
	"github.com/josephgoksu/FocusFlow/internal/task"
	"github.com/josephgoksu/FocusFlow/internal/utils"
)

// PlanningGateway turns a theme into an ordered day timetable.
// Unlike the other gateways it propagates failures to the caller.
type PlanningGateway struct {
	client llm.Client
	model  string
	logger *zap.Logger
}

// NewPlanningGateway creates a Planning gateway that calls model.
func NewPlanningGateway(client llm.Client, model string, logger *zap.Logger) *PlanningGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningGateway{
		client: client,
		model:  model,
		logger: logger.With(zap.String("component", "planning")),
	}
}

// Plan returns the timetable for theme in model order.
//
// Errors: task.ErrPrecondition for a blank theme (no call is made),
// *task.TransportError when the model cannot be reached,
// *task.ValidationError when the reply is not a list of {time, task},
// and task.ErrEmptyResult for an empty list.
func (g *PlanningGateway) Plan(ctx context.Context, theme string) ([]PlanItem, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, task.ErrPrecondition
	}

	prompt, err := render(plannerPrompt, map[string]any{"Theme": theme})
	if err != nil {
		return nil, err
	}

	raw, err := g.client.GenerateStructured(ctx, llm.StructuredRequest{
		Model:  g.model,
		Prompt: prompt,
		Schema: planSchema,
	})
	if err != nil {
		g.logger.Error("planner request failed", zap.Error(err))
		return nil, err
	}

	items, err := utils.ExtractAndParseJSON[[]PlanItem](raw)
	if err != nil {
		g.logger.Warn("planner reply is not a timetable", zap.String("raw", utils.Truncate(raw, 200)), zap.Error(err))
		return nil, &task.ValidationError{Field: "timetable", Reason: "reply is not a JSON array of {time, task}", Err: err}
	}
	if len(items) == 0 {
		return nil, task.ErrEmptyResult
	}

	if result := validatePlan(items); !result.Valid {
		return nil, &task.ValidationError{Field: "timetable", Reason: result.ErrorSummary()}
	}

	for i := range items {
		items[i].Time = strings.TrimSpace(items[i].Time)
		items[i].Task = strings.TrimSpace(items[i].Task)
	}
	g.logger.Debug("planner produced timetable", zap.Int("items", len(items)))
	return items, nil
}

// PlanItems is a timetable in display order.
type PlanItems []PlanItem

// Drafts maps timetable items to insert payloads, preserving order.
func (items PlanItems) Drafts() []task.Draft {
	drafts := make([]task.Draft, 0, len(items))
	for _, it := range items {
		drafts = append(drafts, task.Draft{
			Title:    task.TimetableTitle(it.Time, it.Task),
			Priority: task.PriorityMedium,
			Category: task.CategoryAITimetable,
		})
	}
	return drafts
}

func (items PlanItems) String() string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s  %s\n", it.Time, it.Task)
	}
	return b.String()
}
