package ollama_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicelens/internal/config"
	"invoicelens/internal/domain"
	"invoicelens/internal/extractor/ollama"
)

func TestNew_RequiresModel(t *testing.T) {
	model, err := ollama.New(&config.ExtractorConfig{Provider: "ollama"})

	assert.Nil(t, model)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNew_NoCredentialNeeded(t *testing.T) {
	model, err := ollama.New(&config.ExtractorConfig{
		Provider: "ollama",
		Model:    "llava",
		BaseURL:  "http://localhost:11434",
	})

	require.NoError(t, err)
	assert.NotNil(t, model)
}
