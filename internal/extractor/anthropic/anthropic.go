package anthropic

import (
	"errors"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	langanthropic "github.com/tmc/langchaingo/llms/anthropic"

	"invoicelens/internal/config"
	"invoicelens/internal/extractor"
)

const (
	// ProviderName is the registry key for this provider.
	ProviderName = "anthropic"
	defaultModel = "claude-sonnet-4-20250514"
)

// New creates an Anthropic chat model. The API key is required.
func New(cfg *config.ExtractorConfig) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, extractor.NewConfigurationError(ProviderName, errors.New("API key is not set"))
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	opts := []langanthropic.Option{
		langanthropic.WithToken(cfg.APIKey),
		langanthropic.WithModel(model),
		langanthropic.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, langanthropic.WithBaseURL(cfg.BaseURL))
	}

	llm, err := langanthropic.New(opts...)
	if err != nil {
		return nil, extractor.NewConfigurationError(ProviderName, err)
	}
	return llm, nil
}

// Register adds this provider to the extractor registry.
func Register() {
	extractor.RegisterProvider(ProviderName, New)
}
