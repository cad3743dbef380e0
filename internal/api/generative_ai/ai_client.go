package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	appMetrics "github.com/rishiboppana/travel-concierge/app/observability/metrics"
	"github.com/rishiboppana/travel-concierge/config"
)

// TextGenerator is the single contract the pipeline has with the generative
// model: one text prompt and a sampling temperature in, free text out. No
// structural guarantees are made about the returned text; callers must
// tolerate arbitrary prose.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// NewTextGenerator builds the configured model client. Gemini is the default
// provider; set ai.provider to "openai" to use an OpenAI-compatible endpoint.
func NewTextGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (TextGenerator, error) {
	switch cfg.AI.Provider {
	case "", "gemini":
		return NewGeminiClient(ctx, cfg.AI.GeminiModel, logger)
	case "openai":
		return NewOpenAIClient(cfg.AI.OpenAIModel, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}

var _ TextGenerator = (*GeminiClient)(nil)

// GeminiClient wraps the Google genai SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func NewGeminiClient(ctx context.Context, model string, logger *slog.Logger) (*GeminiClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewGeminiClient")
	defer span.End()

	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		err := fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, err
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	span.SetStatus(codes.Ok, "Gemini client created successfully")
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateText", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", g.model),
	))
	defer span.End()

	start := time.Now()
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](temperature)}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	recordModelCall(ctx, "gemini", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		err := fmt.Errorf("no text content in model response")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response from model")
		return "", err
	}

	span.SetAttributes(attribute.Int("response.length", len(responseText)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return responseText, nil
}

var _ TextGenerator = (*OpenAIClient)(nil)

// OpenAIClient wraps the go-openai chat completion API. It also covers
// OpenAI-compatible local endpoints when OPENAI_BASE_URL is set.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func NewOpenAIClient(model string, logger *slog.Logger) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{client: openai.NewClientWithConfig(clientCfg), model: model, logger: logger}, nil
}

func (o *OpenAIClient) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateText", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", o.model),
	))
	defer span.End()

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	recordModelCall(ctx, "openai", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices in model response")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response from model")
		return "", err
	}

	responseText := resp.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("response.length", len(responseText)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return responseText, nil
}

func recordModelCall(ctx context.Context, provider string, start time.Time, err error) {
	m := appMetrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.Bool("error", err != nil),
	)
	m.ModelCallsTotal.Add(ctx, 1, attrs)
	m.ModelCallDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
}
