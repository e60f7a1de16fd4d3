// Package openaiimage renders previews through the OpenAI images endpoint.
package openaiimage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"prompt-studio/internal/preview"
)

const DefaultModel = openai.CreateImageModelDallE3

type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	api    *openai.Client
	model  string
	logger *slog.Logger
}

func New(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		cfg.BaseURL = base
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Generate implements preview.Generator. The images endpoint takes no
// reference image, so one passed in the request is dropped.
func (c *Client) Generate(ctx context.Context, req preview.Request) (preview.Image, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return preview.Image{}, errors.New("prompt is empty")
	}
	if req.Reference != nil {
		c.logger.Debug("reference image ignored by images endpoint", "model", c.model)
	}

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.model,
		N:              1,
		Size:           sizeFor(req.AspectRatio),
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return preview.Image{}, fmt.Errorf("openai create image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return preview.Image{}, preview.ErrNoImage
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return preview.Image{}, fmt.Errorf("decode image: %w", err)
	}
	return preview.Image{Data: data, MimeType: "image/png"}, nil
}

func sizeFor(aspect string) string {
	switch aspect {
	case "16:9":
		return openai.CreateImageSize1792x1024
	case "9:16", "3:4":
		return openai.CreateImageSize1024x1792
	}
	return openai.CreateImageSize1024x1024
}
