package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// AI gateway failures callers must distinguish: a rate limit means "try
// later", an exhausted quota means "add credits".
var (
	ErrRateLimited     = errors.New("ai: rate limited")
	ErrPaymentRequired = errors.New("ai: payment required")
)

// ContentRequest carries the catalog context used to prompt the model.
type ContentRequest struct {
	Name         string     `json:"name"`
	Category     Category   `json:"category,omitempty"`
	SystemType   SystemType `json:"system_type,omitempty"`
	ChannelCount int        `json:"channel_count,omitempty"`
	Highlights   []string   `json:"highlights,omitempty"`
}

// ContentGenerator produces marketing copy for products and kits.
type ContentGenerator interface {
	GenerateDescription(ctx context.Context, req ContentRequest) (string, error)
}

// GenAIGenerator implements ContentGenerator on Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a generator. Model defaults to gemini-2.0-flash.
func NewGenAIGenerator(apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ai: API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: create client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

// GenerateDescription prompts the model for a short product/kit description.
func (g *GenAIGenerator) GenerateDescription(ctx context.Context, req ContentRequest) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(buildDescriptionPrompt(req)),
		nil,
	)
	if err != nil {
		return "", classifyAIError(err)
	}

	content := strings.TrimSpace(result.Text())
	if content == "" {
		return "", fmt.Errorf("ai: empty response")
	}
	return content, nil
}

func buildDescriptionPrompt(req ContentRequest) string {
	var b strings.Builder
	b.WriteString("Write a concise, factual two-sentence product description for a CCTV catalog entry. No markdown.\n")
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	if req.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", req.Category.Label())
	}
	if req.SystemType != "" {
		fmt.Fprintf(&b, "System: %s\n", systemLabel(req.SystemType, req.ChannelCount))
	}
	if len(req.Highlights) > 0 {
		fmt.Fprintf(&b, "Highlights: %s\n", strings.Join(req.Highlights, ", "))
	}
	return b.String()
}

// classifyAIError maps gateway status codes onto the sentinel errors so
// handlers can surface the right user-facing message verbatim.
func classifyAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
		case 402:
			return fmt.Errorf("%w: %s", ErrPaymentRequired, apiErr.Message)
		}
	}
	return fmt.Errorf("ai: generate: %w", err)
}
