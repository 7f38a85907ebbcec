package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/FocusFlow/internal/llm"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

// fakeClient records requests and replays canned replies.
type fakeClient struct {
	structured    string
	structuredErr error
	text          string
	textErr       error

	structuredReqs []llm.StructuredRequest
	textReqs       []llm.TextRequest
}

func (f *fakeClient) GenerateStructured(_ context.Context, req llm.StructuredRequest) (string, error) {
	f.structuredReqs = append(f.structuredReqs, req)
	return f.structured, f.structuredErr
}

func (f *fakeClient) GenerateText(_ context.Context, req llm.TextRequest) (string, error) {
	f.textReqs = append(f.textReqs, req)
	return f.text, f.textErr
}

func (f *fakeClient) calls() int { return len(f.structuredReqs) + len(f.textReqs) }

var transportErr = &task.TransportError{Op: "gemini", Err: errors.New("503 unavailable")}

func TestPlan_Success(t *testing.T) {
	fc := &fakeClient{structured: `[{"time":"09:00-10:00","task":"Study"},{"time":" 10:00-10:15 ","task":" Break "}]`}
	g := NewPlanningGateway(fc, "gemini-3-flash-preview", nil)

	items, err := g.Plan(context.Background(), "  exam prep ")
	require.NoError(t, err)
	assert.Equal(t, []PlanItem{{"09:00-10:00", "Study"}, {"10:00-10:15", "Break"}}, items)

	require.Len(t, fc.structuredReqs, 1)
	req := fc.structuredReqs[0]
	assert.Equal(t, "gemini-3-flash-preview", req.Model)
	assert.Contains(t, req.Prompt, `Theme: "exam prep"`)
	assert.Contains(t, req.Prompt, "09:00")
	require.NotNil(t, req.Schema)
	assert.Equal(t, llm.TypeArray, req.Schema.Type)
	assert.Equal(t, []string{"time", "task"}, req.Schema.Items.Required)
}

func TestPlan_BlankThemeMakesNoCall(t *testing.T) {
	fc := &fakeClient{}
	g := NewPlanningGateway(fc, "", nil)

	_, err := g.Plan(context.Background(), "   ")
	assert.ErrorIs(t, err, task.ErrPrecondition)
	assert.Zero(t, fc.calls())
}

func TestPlan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "transport",
			err:  transportErr,
			check: func(t *testing.T, err error) {
				assert.True(t, task.IsTransport(err))
			},
		},
		{
			name:  "not JSON",
			reply: "I could not make a plan",
			check: func(t *testing.T, err error) {
				assert.True(t, task.IsValidation(err))
			},
		},
		{
			name:  "wrong shape",
			reply: `{"plan": "none"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, task.IsValidation(err))
			},
		},
		{
			name:  "blank field",
			reply: `[{"time":"09:00","task":"  "}]`,
			check: func(t *testing.T, err error) {
				require.True(t, task.IsValidation(err))
				assert.Contains(t, err.Error(), "item 0")
			},
		},
		{
			name:  "empty array",
			reply: `[]`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, task.ErrEmptyResult)
				assert.False(t, task.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewPlanningGateway(&fakeClient{structured: tt.reply, structuredErr: tt.err}, "", nil)
			items, err := g.Plan(context.Background(), "theme")
			require.Error(t, err)
			assert.Nil(t, items)
			tt.check(t, err)
		})
	}
}

func TestPlanItemsDrafts(t *testing.T) {
	drafts := PlanItems{{Time: "09:00-10:00", Task: "Study"}}.Drafts()
	require.Len(t, drafts, 1)
	assert.Equal(t, task.Draft{
		Title:    "[09:00-10:00] Study",
		Priority: task.PriorityMedium,
		Category: task.CategoryAITimetable,
	}, drafts[0])
}

func TestBreakdown(t *testing.T) {
	fc := &fakeClient{structured: `{"tasks":[" Draft outline ","","Write intro","   ","Edit"]}`}
	g := NewBreakdownGateway(fc, "m", nil)

	got := g.Breakdown(context.Background(), "write an essay")
	assert.Equal(t, []string{"Draft outline", "Write intro", "Edit"}, got)

	require.Len(t, fc.structuredReqs, 1)
	assert.Contains(t, fc.structuredReqs[0].Prompt, "3 to 5")
	assert.Contains(t, fc.structuredReqs[0].Prompt, "write an essay")
	assert.Equal(t, llm.TypeObject, fc.structuredReqs[0].Schema.Type)
}

func TestBreakdown_AbsorbsFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "transport", err: transportErr},
		{name: "garbage", reply: "nope"},
		{name: "empty list", reply: `{"tasks":[]}`},
		{name: "only blanks", reply: `{"tasks":["", "  "]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewBreakdownGateway(&fakeClient{structured: tt.reply, structuredErr: tt.err}, "", nil)
			got := g.Breakdown(context.Background(), "goal")
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}

	fc := &fakeClient{}
	assert.Empty(t, NewBreakdownGateway(fc, "", nil).Breakdown(context.Background(), "  "))
	assert.Zero(t, fc.calls())
}

func TestAdvise_Coaching(t *testing.T) {
	fc := &fakeClient{text: "  Start with the report.  "}
	g := NewAdvisoryGateway(fc, AdvisoryConfig{CoachModel: "gemini-3-pro-preview", TipModel: "flash"}, nil)

	got := g.Advise(context.Background(), []string{"Report", "Email"})
	assert.Equal(t, "Start with the report.", got)

	require.Len(t, fc.textReqs, 1)
	req := fc.textReqs[0]
	assert.Equal(t, "gemini-3-pro-preview", req.Model)
	assert.Contains(t, req.Prompt, "Report, Email")
	assert.Equal(t, SystemPromptCoach, req.SystemInstruction)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, float32(0.5), *req.Temperature)
}

func TestAdvise_Tip(t *testing.T) {
	fc := &fakeClient{text: "Do Email first, it unblocks others."}
	g := NewAdvisoryGateway(fc, AdvisoryConfig{Style: StyleTip, CoachModel: "pro", TipModel: "flash"}, nil)

	assert.Equal(t, "Do Email first, it unblocks others.", g.Advise(context.Background(), []string{"Report", "Email"}))
	req := fc.textReqs[0]
	assert.Equal(t, "flash", req.Model)
	assert.Empty(t, req.SystemInstruction)
	assert.Nil(t, req.Temperature)
}

func TestAdvise_FailureReturnsFallback(t *testing.T) {
	g := NewAdvisoryGateway(&fakeClient{textErr: transportErr}, AdvisoryConfig{}, nil)

	got := g.Advise(context.Background(), []string{"A"})
	assert.Equal(t, FailureMessage, got)
	assert.NotEmpty(t, got)
}

func TestAdvise_EmptyInputAndEmptyReply(t *testing.T) {
	fc := &fakeClient{text: "   "}
	g := NewAdvisoryGateway(fc, AdvisoryConfig{}, nil)

	assert.Equal(t, "", g.Advise(context.Background(), nil))
	assert.Zero(t, fc.calls())

	assert.Equal(t, "", g.Advise(context.Background(), []string{"A"}))
	assert.Equal(t, 1, fc.calls())
}

func TestParseAdviceStyle(t *testing.T) {
	s, err := ParseAdviceStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleCoaching, s)

	s, err = ParseAdviceStyle("TIP")
	require.NoError(t, err)
	assert.Equal(t, StyleTip, s)

	_, err = ParseAdviceStyle("rant")
	assert.Error(t, err)
}
