// Package extractor sends page images to a vision-capable chat model and
// decodes its reply into a JSON object.
package extractor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"invoicelens/internal/config"
	"invoicelens/internal/port"
)

// Client implements port.PageExtractor on top of a langchaingo chat model.
type Client struct {
	model       llms.Model
	provider    string
	modelName   string
	maxTokens   int
	temperature float64
	imageMode   string
	logger      logrus.FieldLogger
}

// NewClient creates an extraction client. A nil model is a configuration error.
func NewClient(model llms.Model, cfg *config.ExtractorConfig, logger logrus.FieldLogger) (*Client, error) {
	if model == nil {
		return nil, NewConfigurationError(cfg.Provider, errors.New("no model client available"))
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	imageMode := cfg.ImageMode
	if imageMode == "" {
		imageMode = config.ImageModeInline
	}
	return &Client{
		model:       model,
		provider:    cfg.Provider,
		modelName:   cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		imageMode:   imageMode,
		logger:      logger,
	}, nil
}

// Extract asks the model for the structured content of one page.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (map[string]interface{}, error) {
	if c.model == nil {
		return nil, NewConfigurationError(c.provider, errors.New("no model client available"))
	}

	logger := c.logger.WithFields(logrus.Fields{
		"provider": c.provider,
		"model":    c.modelName,
		"page":     input.PageNum,
	})

	messages, err := c.buildMessages(input)
	if err != nil {
		return nil, NewRequestError(c.provider, err)
	}

	logger.WithField("approx_kb", len(input.EncodedImage)/1024).Info("calling model")
	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		logger.WithError(err).Error("model call failed")
		return nil, NewRequestError(c.provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, NewRequestError(c.provider, errors.New("empty response from model: no choices"))
	}

	choice := resp.Choices[0]
	if choice.StopReason == "length" || choice.StopReason == "max_tokens" {
		logger.WithField("max_tokens", c.maxTokens).Warn("model output truncated at the token limit")
	}

	obj, err := DecodeReply(choice.Content)
	if err != nil {
		logger.WithError(err).Error("model reply is not JSON")
		return nil, NewParseError(c.provider, fmt.Errorf("%w (raw: %s)", err, truncate(choice.Content, 500)))
	}
	return obj, nil
}

func (c *Client) buildMessages(input port.ExtractInput) ([]llms.MessageContent, error) {
	inline := c.imageMode != config.ImageModeAttachment

	encoded := ""
	if inline {
		encoded = input.EncodedImage
	}
	prompt, err := BuildUserPrompt(input.Schema, input.Filename, encoded)
	if err != nil {
		return nil, err
	}

	parts := []llms.ContentPart{llms.TextPart(prompt)}
	if !inline {
		imagePart, err := c.imagePart(input)
		if err != nil {
			return nil, err
		}
		parts = append([]llms.ContentPart{imagePart}, parts...)
	}

	return []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, SystemPrompt),
		{Role: schema.ChatMessageTypeHuman, Parts: parts},
	}, nil
}

// imagePart picks the image encoding the provider understands: data URLs for
// OpenAI-compatible APIs, raw bytes otherwise.
func (c *Client) imagePart(input port.ExtractInput) (llms.ContentPart, error) {
	if c.provider == "openai" {
		return llms.ImageURLPart("data:image/jpeg;base64," + input.EncodedImage), nil
	}
	data := input.JPEG
	if len(data) == 0 {
		var err error
		data, err = base64.StdEncoding.DecodeString(input.EncodedImage)
		if err != nil {
			return nil, fmt.Errorf("decoding page image: %w", err)
		}
	}
	return llms.BinaryPart("image/jpeg", data), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
