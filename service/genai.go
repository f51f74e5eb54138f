package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ContentGenerator is the single generateContent round-trip shared by the stylist and the
// scene visualizer. *genai.Models has the same shape.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiOption adjusts the genai client configuration
type GeminiOption func(*genai.ClientConfig)

// WithBaseURL points the client at another endpoint
func WithBaseURL(baseURL string) GeminiOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = client
	}
}

// GeminiClient calls the Gemini API through the genai SDK
type GeminiClient struct {
	models *genai.Models
	logger *zap.Logger
}

// NewGeminiClient creates a client authenticated with an API key
func NewGeminiClient(ctx context.Context, apiKey string, logger *zap.Logger, opts ...GeminiOption) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrGeneratorUnavailable
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{models: client.Models, logger: logger}, nil
}

// NewContentGenerator returns a Gemini client when apiKey is set and a generator that always
// fails with ErrGeneratorUnavailable otherwise
func NewContentGenerator(ctx context.Context, apiKey string, logger *zap.Logger) (ContentGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		if logger != nil {
			logger.Warn("no AI API key configured, stylist and scene visualization will fall back")
		}
		return DisabledGenerator{}, nil
	}
	return NewGeminiClient(ctx, apiKey, logger)
}

// GenerateContent sends one non-streaming request
func (c *GeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content with %s: %w", model, err)
	}

	if resp.UsageMetadata != nil {
		c.logger.Debug("generate content done",
			zap.String("model", model),
			zap.Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("total_tokens", resp.UsageMetadata.TotalTokenCount),
		)
	}
	return resp, nil
}

// DisabledGenerator is used when no credentials are configured
type DisabledGenerator struct{}

// GenerateContent always fails
func (DisabledGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, ErrGeneratorUnavailable
}

// generatorEnabled reports whether g can reach a model at all
func generatorEnabled(g ContentGenerator) bool {
	switch g.(type) {
	case DisabledGenerator, *DisabledGenerator:
		return false
	default:
		return true
	}
}

// responseText concatenates the text parts of the first candidate, skipping thoughts
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	first := resp.Candidates[0]
	if first == nil || first.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range first.Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// responseImage returns the first inline image of the first candidate
func responseImage(resp *genai.GenerateContentResponse) (data []byte, mimeType string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ""
	}
	first := resp.Candidates[0]
	if first == nil || first.Content == nil {
		return nil, ""
	}

	for _, part := range first.Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return part.InlineData.Data, part.InlineData.MIMEType
	}
	return nil, ""
}
