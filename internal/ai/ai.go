package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// LowStockThreshold is the stock level below which generated copy leans
// into urgency language.
const LowStockThreshold = 5

// CopyService holds the Gemini client used for product description generation.
type CopyService struct {
	Client *genai.Client
}

// NewCopyService initializes the Gemini client.
func NewCopyService(apiKey string) (*CopyService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &CopyService{Client: client}, nil
}

// GenerateDescription asks Gemini for a short marketing description for a
// product. There is no caching and no retry: a failure is the caller's to
// surface, with no fallback text.
func (s *CopyService) GenerateDescription(ctx context.Context, name string, price float64, stock int) (string, error) {
	model := s.Client.GenerativeModel("gemini-1.5-flash")

	prompt := BuildPrompt(name, price, stock)
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("error generating description: %w", err)
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return strings.TrimSpace(string(text)), nil
}

// BuildPrompt assembles the generation prompt. Split out so the low-stock
// bias is testable without a live API key.
func BuildPrompt(name string, price float64, stock int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short marketing description (2-3 sentences) for an online storefront product.\n")
	fmt.Fprintf(&b, "Product: %s\nPrice: GHS %.2f\n", name, price)
	if stock < LowStockThreshold {
		fmt.Fprintf(&b, "Only %d left in stock. Emphasize urgency and scarcity.\n", stock)
	} else {
		fmt.Fprintf(&b, "Stock level: %d. Keep the tone warm and inviting.\n", stock)
	}
	b.WriteString("Plain text only, no markdown, no hashtags.")
	return b.String()
}
