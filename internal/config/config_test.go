package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicelens/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT",
		"OPENAI_API_KEY",
		"OPENAI_MODEL",
		"INVOICELENS_SERVER_PORT",
		"INVOICELENS_EXTRACTOR_API_KEY",
		"INVOICELENS_EXTRACTOR_MODEL",
		"INVOICELENS_EXTRACTOR_PROVIDER",
		"INVOICELENS_EXTRACTOR_IMAGE_MODE",
		"INVOICELENS_IMAGE_JPEG_QUALITY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(25*1024*1024), cfg.Server.MaxUploadBytes())
	assert.Equal(t, "openai", cfg.Extractor.Provider)
	assert.Empty(t, cfg.Extractor.Model, "providers pick their own default model")
	assert.Equal(t, 1500, cfg.Extractor.MaxTokens)
	assert.Equal(t, 0.0, cfg.Extractor.Temperature)
	assert.Equal(t, time.Duration(0), cfg.Extractor.Timeout())
	assert.Equal(t, config.ImageModeInline, cfg.Extractor.ImageMode)
	assert.Equal(t, 85, cfg.Image.JPEGQuality)
	assert.True(t, cfg.Image.AutoOrient)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_LegacyOpenAIVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-legacy")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-legacy", cfg.Extractor.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Extractor.Model)
}

func TestLoad_PrefixedVariablesWinOverLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-legacy")
	t.Setenv("INVOICELENS_EXTRACTOR_API_KEY", "sk-prefixed")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-prefixed", cfg.Extractor.APIKey)
}

func TestLoad_PlatformPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_InvalidImageMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("INVOICELENS_EXTRACTOR_IMAGE_MODE", "sideways")

	cfg, err := config.Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "image_mode")
}

func TestLoad_RejectsNonZeroTemperature(t *testing.T) {
	clearEnv(t)
	t.Setenv("INVOICELENS_EXTRACTOR_TEMPERATURE", "0.4")

	cfg, err := config.Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Server:    config.ServerConfig{MaxUploadMB: 10},
			Extractor: config.ExtractorConfig{Provider: "openai", MaxTokens: 1500, ImageMode: config.ImageModeInline},
			Image:     config.ImageConfig{JPEGQuality: 85},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *config.Config) {}},
		{name: "quality too high", mutate: func(c *config.Config) { c.Image.JPEGQuality = 101 }, wantErr: "jpeg_quality"},
		{name: "quality zero", mutate: func(c *config.Config) { c.Image.JPEGQuality = 0 }, wantErr: "jpeg_quality"},
		{name: "no provider", mutate: func(c *config.Config) { c.Extractor.Provider = "" }, wantErr: "provider"},
		{name: "no max tokens", mutate: func(c *config.Config) { c.Extractor.MaxTokens = 0 }, wantErr: "max_tokens"},
		{name: "non-zero temperature", mutate: func(c *config.Config) { c.Extractor.Temperature = 0.7 }, wantErr: "temperature"},
		{name: "negative timeout", mutate: func(c *config.Config) { c.Extractor.TimeoutSecs = -1 }, wantErr: "timeout_secs"},
		{name: "upload cap", mutate: func(c *config.Config) { c.Server.MaxUploadMB = 0 }, wantErr: "max_upload_mb"},
		{name: "negative max dimension", mutate: func(c *config.Config) { c.Image.MaxDimension = -5 }, wantErr: "max_dimension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
