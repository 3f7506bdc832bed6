package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
	Image     ImageConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes returns the upload cap in bytes.
func (s *ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Image modes for the extractor.
const (
	ImageModeInline     = "inline"
	ImageModeAttachment = "attachment"
)

// ExtractorConfig holds settings for the vision model behind the extraction client.
type ExtractorConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
	ImageMode   string  `mapstructure:"image_mode"`
}

// Timeout returns the HTTP client timeout for model calls. Zero means none.
func (e *ExtractorConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// ImageConfig holds page normalization settings.
type ImageConfig struct {
	JPEGQuality  int  `mapstructure:"jpeg_quality"`
	MaxDimension int  `mapstructure:"max_dimension"`
	AutoOrient   bool `mapstructure:"auto_orient"`
}

// Load reads configuration from environment variables with the INVOICELENS_ prefix.
// OPENAI_API_KEY and OPENAI_MODEL are honored when the prefixed keys are unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 25)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extractor defaults
	v.SetDefault("extractor.provider", "openai")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.model", "")
	v.SetDefault("extractor.base_url", "")
	v.SetDefault("extractor.max_tokens", 1500)
	v.SetDefault("extractor.temperature", 0.0)
	v.SetDefault("extractor.timeout_secs", 0)
	v.SetDefault("extractor.image_mode", ImageModeInline)

	// Image defaults
	v.SetDefault("image.jpeg_quality", 85)
	v.SetDefault("image.max_dimension", 0)
	v.SetDefault("image.auto_orient", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string][]string{
		"server.port":            {"INVOICELENS_SERVER_PORT"},
		"server.read_timeout":    {"INVOICELENS_SERVER_READ_TIMEOUT"},
		"server.write_timeout":   {"INVOICELENS_SERVER_WRITE_TIMEOUT"},
		"server.environment":     {"INVOICELENS_SERVER_ENVIRONMENT"},
		"server.max_upload_mb":   {"INVOICELENS_SERVER_MAX_UPLOAD_MB"},
		"log.level":              {"INVOICELENS_LOG_LEVEL"},
		"log.format":             {"INVOICELENS_LOG_FORMAT"},
		"cors.allowed_origins":   {"INVOICELENS_CORS_ALLOWED_ORIGINS"},
		"extractor.provider":     {"INVOICELENS_EXTRACTOR_PROVIDER"},
		"extractor.api_key":      {"INVOICELENS_EXTRACTOR_API_KEY", "OPENAI_API_KEY"},
		"extractor.model":        {"INVOICELENS_EXTRACTOR_MODEL", "OPENAI_MODEL"},
		"extractor.base_url":     {"INVOICELENS_EXTRACTOR_BASE_URL"},
		"extractor.max_tokens":   {"INVOICELENS_EXTRACTOR_MAX_TOKENS"},
		"extractor.temperature":  {"INVOICELENS_EXTRACTOR_TEMPERATURE"},
		"extractor.timeout_secs": {"INVOICELENS_EXTRACTOR_TIMEOUT_SECS"},
		"extractor.image_mode":   {"INVOICELENS_EXTRACTOR_IMAGE_MODE"},
		"image.jpeg_quality":     {"INVOICELENS_IMAGE_JPEG_QUALITY"},
		"image.max_dimension":    {"INVOICELENS_IMAGE_MAX_DIMENSION"},
		"image.auto_orient":      {"INVOICELENS_IMAGE_AUTO_ORIENT"},
	}
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		_ = v.BindEnv(args...)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if INVOICELENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICELENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Extractor = ExtractorConfig{
		Provider:    strings.ToLower(v.GetString("extractor.provider")),
		APIKey:      v.GetString("extractor.api_key"),
		Model:       v.GetString("extractor.model"),
		BaseURL:     v.GetString("extractor.base_url"),
		MaxTokens:   v.GetInt("extractor.max_tokens"),
		Temperature: v.GetFloat64("extractor.temperature"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
		ImageMode:   strings.ToLower(v.GetString("extractor.image_mode")),
	}

	cfg.Image = ImageConfig{
		JPEGQuality:  v.GetInt("image.jpeg_quality"),
		MaxDimension: v.GetInt("image.max_dimension"),
		AutoOrient:   v.GetBool("image.auto_orient"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Credentials are checked by the provider
// constructors since not every provider needs one.
func (c *Config) Validate() error {
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Extractor.Provider == "" {
		return fmt.Errorf("extractor.provider is required")
	}
	if c.Extractor.MaxTokens <= 0 {
		return fmt.Errorf("extractor.max_tokens must be positive, got %d", c.Extractor.MaxTokens)
	}
	if c.Extractor.Temperature != 0 {
		return fmt.Errorf("extractor.temperature must be 0 for deterministic extraction, got %v", c.Extractor.Temperature)
	}
	if c.Extractor.TimeoutSecs < 0 {
		return fmt.Errorf("extractor.timeout_secs must not be negative, got %d", c.Extractor.TimeoutSecs)
	}
	switch c.Extractor.ImageMode {
	case ImageModeInline, ImageModeAttachment:
	default:
		return fmt.Errorf("extractor.image_mode must be %q or %q, got %q",
			ImageModeInline, ImageModeAttachment, c.Extractor.ImageMode)
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return fmt.Errorf("image.jpeg_quality must be within [1,100], got %d", c.Image.JPEGQuality)
	}
	if c.Image.MaxDimension < 0 {
		return fmt.Errorf("image.max_dimension must not be negative, got %d", c.Image.MaxDimension)
	}
	return nil
}
