// Package ai generates item descriptions from photos when the reporter
// leaves the description empty. Entirely optional; the matching pipeline
// never depends on it.
package ai

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/kozaktomas/lost-found/internal/config"
)

//go:embed prompts/item_description.txt
var itemDescriptionPrompt string

// Provider defines the interface for description-generation backends.
type Provider interface {
	Name() string
	DescribeItem(ctx context.Context, imageData []byte, itemName string) (string, error)
}

// NewProvider creates the provider selected by config, or nil when
// description generation is disabled.
func NewProvider(ctx context.Context, cfg *config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		if cfg.OpenAIToken == "" {
			return nil, fmt.Errorf("OPENAI_TOKEN is required for the openai provider")
		}
		return NewOpenAIProvider(cfg.OpenAIToken), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}

// buildUserMessage builds the user message shared across all providers.
func buildUserMessage(itemName string) string {
	if itemName == "" {
		return "Describe the item in this photo."
	}
	return fmt.Sprintf("The reporter called this item %q. Describe the item in this photo.", itemName)
}

// cleanDescription trims whitespace and surrounding quotes from model output.
func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}
