package openai

import (
	"errors"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	langopenai "github.com/tmc/langchaingo/llms/openai"

	"invoicelens/internal/config"
	"invoicelens/internal/extractor"
)

const (
	// ProviderName is the registry key for this provider.
	ProviderName = "openai"
	defaultModel = "gpt-4o-mini"
)

// New creates an OpenAI chat model. The API key is required.
func New(cfg *config.ExtractorConfig) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, extractor.NewConfigurationError(ProviderName, errors.New("API key is not set"))
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	opts := []langopenai.Option{
		langopenai.WithToken(cfg.APIKey),
		langopenai.WithModel(model),
		langopenai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, langopenai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := langopenai.New(opts...)
	if err != nil {
		return nil, extractor.NewConfigurationError(ProviderName, err)
	}
	return llm, nil
}

// Register adds this provider to the extractor registry.
func Register() {
	extractor.RegisterProvider(ProviderName, New)
}
