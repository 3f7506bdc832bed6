package extractor

import (
	"fmt"
	"sort"

	"github.com/tmc/langchaingo/llms"

	"invoicelens/internal/config"
)

// ModelFactory creates the chat model for a provider from the extractor config.
type ModelFactory func(cfg *config.ExtractorConfig) (llms.Model, error)

// registry of model factories, populated at startup via RegisterProvider.
var providers = map[string]ModelFactory{}

// RegisterProvider registers a model factory by provider name.
func RegisterProvider(name string, factory ModelFactory) {
	providers[name] = factory
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewModel creates the chat model for cfg.Provider using the registered factory.
func NewModel(cfg *config.ExtractorConfig) (llms.Model, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, NewConfigurationError(cfg.Provider, fmt.Errorf("unknown provider %q (registered: %v)", cfg.Provider, Providers()))
	}
	return factory(cfg)
}
