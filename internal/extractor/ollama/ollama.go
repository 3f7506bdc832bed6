package ollama

import (
	"errors"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	langollama "github.com/tmc/langchaingo/llms/ollama"

	"invoicelens/internal/config"
	"invoicelens/internal/extractor"
)

// ProviderName is the registry key for this provider.
const ProviderName = "ollama"

// New creates a chat model served by a local Ollama instance. No credential
// is needed, but the model name is.
func New(cfg *config.ExtractorConfig) (llms.Model, error) {
	if cfg.Model == "" {
		return nil, extractor.NewConfigurationError(ProviderName, errors.New("model is not set"))
	}

	opts := []langollama.Option{
		langollama.WithModel(cfg.Model),
		langollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, langollama.WithServerURL(cfg.BaseURL))
	}

	llm, err := langollama.New(opts...)
	if err != nil {
		return nil, extractor.NewConfigurationError(ProviderName, err)
	}
	return llm, nil
}

// Register adds this provider to the extractor registry.
func Register() {
	extractor.RegisterProvider(ProviderName, New)
}
