package assist

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/llm"
)

// FailureMessage is returned by the Advisory gateway whenever the model call fails.
const FailureMessage = "A temporary error occurred while analyzing your list. Please try again in a moment."

// coachTemperature keeps coaching advice focused but not rote.
const coachTemperature float32 = 0.5

// AdviceStyle selects the prompt and model used for advice.
type AdviceStyle string

const (
	// StyleCoaching is structured, multi-paragraph strategic advice.
	StyleCoaching AdviceStyle = "coaching"
	// StyleTip is a single sentence naming what to do first.
	StyleTip AdviceStyle = "tip"
)

// ParseAdviceStyle normalizes a style name. Empty selects coaching.
func ParseAdviceStyle(s string) (AdviceStyle, error) {
	switch AdviceStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleCoaching:
		return StyleCoaching, nil
	case StyleTip:
		return StyleTip, nil
	default:
		return "", fmt.Errorf("unknown advice style %q (valid: coaching, tip)", s)
	}
}

// AdvisoryConfig configures an Advisory gateway.
type AdvisoryConfig struct {
	Style AdviceStyle
	// CoachModel serves StyleCoaching; TipModel serves StyleTip.
	CoachModel string
	TipModel   string
}

// AdvisoryGateway produces free-form prioritization advice. It never fails:
// any model error becomes FailureMessage.
type AdvisoryGateway struct {
	client llm.Client
	cfg    AdvisoryConfig
	logger *zap.Logger
}

// NewAdvisoryGateway creates an Advisory gateway.
func NewAdvisoryGateway(client llm.Client, cfg AdvisoryConfig, logger *zap.Logger) *AdvisoryGateway {
	if cfg.Style == "" {
		cfg.Style = StyleCoaching
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisoryGateway{
		client: client,
		cfg:    cfg,
		logger: logger.With(zap.String("component", "advisory"), zap.String("style", string(cfg.Style))),
	}
}

// Advise returns advice for the given active titles. An empty list returns ""
// without calling the model; so does an empty model reply.
func (g *AdvisoryGateway) Advise(ctx context.Context, titles []string) string {
	if len(titles) == 0 {
		return ""
	}
	joined := strings.Join(titles, ", ")

	req := llm.TextRequest{}
	var err error
	switch g.cfg.Style {
	case StyleTip:
		req.Model = g.cfg.TipModel
		req.Prompt, err = render(tipPrompt, map[string]any{"Tasks": joined})
	default:
		req.Model = g.cfg.CoachModel
		req.SystemInstruction = SystemPromptCoach
		req.Temperature = llm.Float32(coachTemperature)
		req.Prompt, err = render(coachPrompt, map[string]any{"Tasks": joined})
	}
	if err != nil {
		g.logger.Warn("render advice prompt", zap.Error(err))
		return FailureMessage
	}

	text, err := g.client.GenerateText(ctx, req)
	if err != nil {
		g.logger.Warn("advice request failed", zap.Error(err))
		return FailureMessage
	}
	return strings.TrimSpace(text)
}
