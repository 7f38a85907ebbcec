package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// anthropicMaxTokens caps Claude replies; the API requires an explicit limit.
const anthropicMaxTokens = 2048

// chatModelFactory builds a chat model for one model name.
type chatModelFactory func(ctx context.Context, modelName string) (model.BaseChatModel, error)

// EinoClient serves OpenAI, Anthropic and Ollama through Eino chat models.
// Chat models are created lazily per model name and reused.
type EinoClient struct {
	provider Provider
	factory  chatModelFactory

	mu     sync.Mutex
	models map[string]model.BaseChatModel
}

var _ Client = (*EinoClient)(nil)

// NewEinoClient creates a client for a non-Gemini provider.
func NewEinoClient(cfg Config) *EinoClient {
	return &EinoClient{
		provider: cfg.Provider,
		factory:  newChatModelFactory(cfg),
		models:   make(map[string]model.BaseChatModel),
	}
}

func newChatModelFactory(cfg Config) chatModelFactory {
	return func(ctx context.Context, modelName string) (model.BaseChatModel, error) {
		switch cfg.Provider {
		case ProviderOpenAI:
			if cfg.APIKey == "" {
				return nil, fmt.Errorf("OpenAI API key is required")
			}
			return openai.NewChatModel(ctx, &openai.ChatModelConfig{
				Model:   modelName,
				APIKey:  cfg.APIKey,
				BaseURL: cfg.BaseURL,
			})

		case ProviderAnthropic:
			if cfg.APIKey == "" {
				return nil, fmt.Errorf("anthropic API key is required")
			}
			return claude.NewChatModel(ctx, &claude.Config{
				APIKey:    cfg.APIKey,
				Model:     modelName,
				MaxTokens: anthropicMaxTokens,
			})

		case ProviderOllama:
			baseURL := cfg.BaseURL
			if baseURL == "" {
				baseURL = DefaultOllamaURL
			}
			return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
				BaseURL: baseURL,
				Model:   modelName,
			})

		default:
			return nil, fmt.Errorf("unsupported eino provider: %s (supported: openai, anthropic, ollama)", cfg.Provider)
		}
	}
}

// GenerateStructured embeds the schema in the prompt and returns the raw reply.
func (c *EinoClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	prompt := req.Prompt
	if req.Schema != nil {
		prompt = fmt.Sprintf("%s\n\nRespond ONLY with JSON matching this schema, no prose and no code fences:\n%s",
			strings.TrimSpace(req.Prompt), req.Schema.JSON())
	}
	msgs := []*schema.Message{schema.UserMessage(prompt)}
	return c.generate(ctx, req.Model, msgs)
}

// GenerateText sends an optional system message followed by the prompt.
func (c *EinoClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	var msgs []*schema.Message
	if req.SystemInstruction != "" {
		msgs = append(msgs, schema.SystemMessage(req.SystemInstruction))
	}
	msgs = append(msgs, schema.UserMessage(req.Prompt))

	var opts []model.Option
	if req.Temperature != nil {
		opts = append(opts, model.WithTemperature(*req.Temperature))
	}
	return c.generate(ctx, req.Model, msgs, opts...)
}

func (c *EinoClient) generate(ctx context.Context, modelName string, msgs []*schema.Message, opts ...model.Option) (string, error) {
	if modelName == "" {
		modelName = DefaultModelID(c.provider, RolePlanner)
	}
	op := fmt.Sprintf("%s %s", c.provider, modelName)

	chat, err := c.chatModel(ctx, modelName)
	if err != nil {
		return "", task.Transport(op, err)
	}
	resp, err := chat.Generate(ctx, msgs, opts...)
	if err != nil {
		return "", task.Transport(op, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}

func (c *EinoClient) chatModel(ctx context.Context, modelName string) (model.BaseChatModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.models[modelName]; ok {
		return m, nil
	}
	m, err := c.factory(ctx, modelName)
	if err != nil {
		return nil, err
	}
	c.models[modelName] = m
	return m, nil
}
