package assist

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/llm"
	"github.com/josephgoksu/FocusFlow/internal/task"
	"github.com/josephgoksu/FocusFlow/internal/utils"
)

// Hinted size of a breakdown. Not enforced on the reply.
const (
	BreakdownMinItems = 3
	BreakdownMaxItems = 5
)

// BreakdownGateway turns a goal into a few short task titles.
// It never fails: every problem is logged and yields an empty list.
type BreakdownGateway struct {
	client llm.Client
	model  string
	logger *zap.Logger
}

// NewBreakdownGateway creates a Breakdown gateway that calls model.
func NewBreakdownGateway(client llm.Client, model string, logger *zap.Logger) *BreakdownGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BreakdownGateway{
		client: client,
		model:  model,
		logger: logger.With(zap.String("component", "breakdown")),
	}
}

// Breakdown returns trimmed, non-blank titles in model order, or an empty slice.
func (g *BreakdownGateway) Breakdown(ctx context.Context, goal string) []string {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return []string{}
	}

	prompt, err := render(breakdownPrompt, map[string]any{
		"Goal": goal,
		"Min":  BreakdownMinItems,
		"Max":  BreakdownMaxItems,
	})
	if err != nil {
		g.logger.Warn("render breakdown prompt", zap.Error(err))
		return []string{}
	}

	raw, err := g.client.GenerateStructured(ctx, llm.StructuredRequest{
		Model:  g.model,
		Prompt: prompt,
		Schema: breakdownSchema,
	})
	if err != nil {
		g.logger.Warn("breakdown request failed", zap.Error(err))
		return []string{}
	}

	resp, err := utils.ExtractAndParseJSON[breakdownResponse](raw)
	if err != nil {
		g.logger.Warn("breakdown reply is not {tasks: [...]}", zap.String("raw", utils.Truncate(raw, 200)), zap.Error(err))
		return []string{}
	}

	titles := make([]string, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// BreakdownDrafts maps titles to insert payloads, preserving order.
func BreakdownDrafts(titles []string) []task.Draft {
	drafts := make([]task.Draft, 0, len(titles))
	for _, t := range titles {
		drafts = append(drafts, task.Draft{
			Title:    t,
			Priority: task.PriorityMedium,
			Category: task.CategoryAIBreakdown,
		})
	}
	return drafts
}
