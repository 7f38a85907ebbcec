package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
		wantErr  bool
	}{
		{name: "valid gemini", provider: "gemini", want: ProviderGemini},
		{name: "valid openai", provider: "openai", want: ProviderOpenAI},
		{name: "valid anthropic", provider: "anthropic", want: ProviderAnthropic},
		{name: "valid ollama", provider: "ollama", want: ProviderOllama},
		{name: "invalid provider", provider: "invalid", wantErr: true},
		{name: "empty provider", provider: "", wantErr: true},
		{name: "case sensitive - GEMINI fails", provider: "GEMINI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProvider(tt.provider)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, Config{Provider: ProviderGemini})
	assert.ErrorContains(t, err, "API key is required")

	_, err = NewClient(ctx, Config{Provider: ProviderOpenAI})
	assert.ErrorContains(t, err, "API key is required")

	_, err = NewClient(ctx, Config{Provider: "bogus", APIKey: "k"})
	assert.ErrorContains(t, err, "unsupported provider")

	c, err := NewClient(ctx, Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.IsType(t, &EinoClient{}, c)
}

func TestDefaultModelID(t *testing.T) {
	assert.Equal(t, "gemini-3-flash-preview", DefaultModelID(ProviderGemini, RolePlanner))
	assert.Equal(t, "gemini-3-pro-preview", DefaultModelID(ProviderGemini, RoleAdvisor))
	assert.Equal(t, "llama3.2", DefaultModelID(ProviderOllama, RoleAdvisor))
	assert.Empty(t, DefaultModelID("nope", RolePlanner))
}

func TestInferProvider(t *testing.T) {
	p, ok := InferProvider("claude-3-5-sonnet-20241022")
	assert.True(t, ok)
	assert.Equal(t, ProviderAnthropic, p)

	_, ok = InferProvider("my-finetune")
	assert.False(t, ok)

	assert.Contains(t, ModelsForProvider(ProviderGemini), "gemini-3-pro-preview")
}

func TestSchemaToGenAI(t *testing.T) {
	s := ArrayOf(Object(map[string]*Schema{
		"time": String("time range"),
		"task": String("what to do"),
	}, "time", "task"))

	g := s.toGenAI()
	require.NotNil(t, g)
	assert.Equal(t, genai.TypeArray, g.Type)
	require.NotNil(t, g.Items)
	assert.Equal(t, genai.TypeObject, g.Items.Type)
	assert.Equal(t, []string{"time", "task"}, g.Items.Required)
	assert.Equal(t, genai.TypeString, g.Items.Properties["time"].Type)
	assert.Equal(t, "what to do", g.Items.Properties["task"].Description)

	assert.Contains(t, s.JSON(), `"required"`)
}

type fakeModels struct {
	model  string
	config *genai.GenerateContentConfig
	prompt string
	reply  string
	err    error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.reply, genai.RoleModel)}},
	}, nil
}

func TestGeminiClient_GenerateStructured(t *testing.T) {
	fake := &fakeModels{reply: `[{"time":"09:00","task":"Study"}]`}
	c := &GeminiClient{models: fake}

	out, err := c.GenerateStructured(context.Background(), StructuredRequest{
		Model:  "gemini-3-flash-preview",
		Prompt: "plan my day",
		Schema: ArrayOf(String("")),
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"time":"09:00","task":"Study"}]`, out)
	assert.Equal(t, "gemini-3-flash-preview", fake.model)
	assert.Equal(t, "plan my day", fake.prompt)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Equal(t, genai.TypeArray, fake.config.ResponseSchema.Type)
}

func TestGeminiClient_GenerateText(t *testing.T) {
	fake := &fakeModels{reply: "Do the hard thing first."}
	c := &GeminiClient{models: fake}

	out, err := c.GenerateText(context.Background(), TextRequest{
		Prompt:            "tasks",
		SystemInstruction: "be brief",
		Temperature:       Float32(0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Do the hard thing first.", out)
	assert.Equal(t, "gemini-3-flash-preview", fake.model, "empty model falls back to the planner default")
	require.NotNil(t, fake.config.SystemInstruction)
	assert.Equal(t, "be brief", fake.config.SystemInstruction.Parts[0].Text)
	assert.Equal(t, float32(0.5), *fake.config.Temperature)
}

func TestGeminiClient_TransportError(t *testing.T) {
	c := &GeminiClient{models: &fakeModels{err: errors.New("403 PERMISSION_DENIED")}}

	_, err := c.GenerateText(context.Background(), TextRequest{Prompt: "x"})
	require.Error(t, err)
	assert.True(t, task.IsTransport(err))
	assert.Contains(t, err.Error(), "PERMISSION_DENIED")
}

type fakeChatModel struct {
	messages []*schema.Message
	options  *model.Options
	reply    string
	err      error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.messages = input
	f.options = model.GetCommonOptions(nil, opts...)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func newFakeEino(chat *fakeChatModel) (*EinoClient, *int) {
	calls := 0
	c := &EinoClient{
		provider: ProviderOpenAI,
		models:   make(map[string]model.BaseChatModel),
		factory: func(context.Context, string) (model.BaseChatModel, error) {
			calls++
			return chat, nil
		},
	}
	return c, &calls
}

func TestEinoClient_GenerateStructuredEmbedsSchema(t *testing.T) {
	chat := &fakeChatModel{reply: `{"tasks":["a"]}`}
	c, calls := newFakeEino(chat)

	out, err := c.GenerateStructured(context.Background(), StructuredRequest{
		Model:  "gpt-5-mini",
		Prompt: "break it down",
		Schema: Object(map[string]*Schema{"tasks": ArrayOf(String(""))}, "tasks"),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"tasks":["a"]}`, out)

	require.Len(t, chat.messages, 1)
	assert.Equal(t, schema.User, chat.messages[0].Role)
	assert.True(t, strings.HasPrefix(chat.messages[0].Content, "break it down"))
	assert.Contains(t, chat.messages[0].Content, `"tasks"`)

	_, err = c.GenerateStructured(context.Background(), StructuredRequest{Model: "gpt-5-mini", Prompt: "again"})
	require.NoError(t, err)
	assert.Equal(t, 1, *calls, "chat model is reused per model name")
}

func TestEinoClient_GenerateTextSendsSystemAndTemperature(t *testing.T) {
	chat := &fakeChatModel{reply: "advice"}
	c, _ := newFakeEino(chat)

	out, err := c.GenerateText(context.Background(), TextRequest{
		Model:             "gpt-5.1",
		Prompt:            "A, B",
		SystemInstruction: "you are a coach",
		Temperature:       Float32(0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "advice", out)

	require.Len(t, chat.messages, 2)
	assert.Equal(t, schema.System, chat.messages[0].Role)
	assert.Equal(t, "A, B", chat.messages[1].Content)
	require.NotNil(t, chat.options.Temperature)
	assert.Equal(t, float32(0.5), *chat.options.Temperature)
}

func TestEinoClient_ErrorsAreTransport(t *testing.T) {
	c, _ := newFakeEino(&fakeChatModel{err: errors.New("connection refused")})
	_, err := c.GenerateText(context.Background(), TextRequest{Prompt: "x"})
	assert.True(t, task.IsTransport(err))

	failing := &EinoClient{
		provider: ProviderOllama,
		models:   make(map[string]model.BaseChatModel),
		factory: func(context.Context, string) (model.BaseChatModel, error) {
			return nil, errors.New("bad config")
		},
	}
	_, err = failing.GenerateStructured(context.Background(), StructuredRequest{Prompt: "x"})
	assert.True(t, task.IsTransport(err))
}

func TestNewEinoClient_FactoryChecksKeys(t *testing.T) {
	for _, p := range []Provider{ProviderOpenAI, ProviderAnthropic} {
		c := NewEinoClient(Config{Provider: p})
		_, err := c.GenerateText(context.Background(), TextRequest{Model: "m", Prompt: "x"})
		require.Error(t, err, p)
		assert.True(t, task.IsTransport(err), p)
		assert.Contains(t, err.Error(), "API key is required", p)
		assert.Empty(t, c.models, p)
	}
}
