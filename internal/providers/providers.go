// Package providers builds the image generator selected by configuration.
package providers

import (
	"fmt"
	"log/slog"
	"net/http"

	"prompt-studio/internal/config"
	"prompt-studio/internal/gemini"
	"prompt-studio/internal/openaiimage"
	"prompt-studio/internal/preview"
)

func NewGenerator(cfg config.Config, httpClient *http.Client, logger *slog.Logger) (preview.Generator, error) {
	switch cfg.ImageProvider {
	case config.ProviderOpenAI:
		return openaiimage.New(openaiimage.Options{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIImageModel,
			HTTPClient: httpClient,
			Logger:     logger,
		}), nil
	case config.ProviderGemini, "":
		return gemini.New(gemini.Options{
			APIKey:     cfg.GeminiAPIKey,
			BaseURL:    cfg.GeminiBaseURL,
			APIVersion: cfg.GeminiAPIVersion,
			Model:      cfg.GeminiImageModel,
			HTTPClient: httpClient,
			Logger:     logger,
		}), nil
	}
	return nil, fmt.Errorf("unknown image provider %q", cfg.ImageProvider)
}
