package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

// Generator produces the raw, loosely-typed summarizer output for a
// request. The orchestrator never sees the wire format, only the parsed
// map (or nil when the content was unparseable).
type Generator interface {
	Generate(ctx context.Context, req Request) (map[string]any, error)
}

type OpenAIConfig struct {
	APIKey     string
	ChatModel  string
	ImageModel string
}

// OpenAIClient calls the OpenAI chat completions and images APIs.
type OpenAIClient struct {
	client openai.Client
	cfg    OpenAIConfig
	logger *zap.Logger
}

func NewOpenAIClient(cfg OpenAIConfig, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
		logger: logger,
	}
}

// Generate asks the model for a summary in structured-JSON output mode and
// parses the returned content. The request is fully specified by the
// prompt pair; temperature matches the original product tuning.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (map[string]any, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.ChatModel),
		Temperature: openai.Float(0.7),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(TargetLanguage(req.Language), req.DesiredWords, req.Tolerance)),
			openai.UserMessage(userPrompt(req)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, nil
	}

	content := completion.Choices[0].Message.Content
	obj := parseModelJSON(content)
	if obj == nil {
		c.logger.Warn("summarizer returned unparseable content",
			zap.Int("contentLength", len(content)))
	}
	return obj, nil
}

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// parseModelJSON tries a direct parse first, then falls back to the widest
// {...} block in case the model wrapped the JSON in prose or fences. A nil
// return means unparseable; the normalizer rejects it downstream.
func parseModelJSON(content string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		return obj
	}
	if m := jsonBlock.FindString(content); m != "" {
		obj = nil
		if err := json.Unmarshal([]byte(m), &obj); err == nil {
			return obj
		}
	}
	return nil
}
