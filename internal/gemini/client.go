package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"prompt-studio/internal/preview"
)

const DefaultImageModel = "gemini-2.5-flash-image"

const imageOnlyHint = "Return the result only as an image (inlineData). Do not write text, JSON or links."

type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	Model      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultImageModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		model:      model,
		httpClient: opts.HTTPClient,
		logger:     logger,
	}
}

// Generate implements preview.Generator.
func (c *Client) Generate(ctx context.Context, req preview.Request) (preview.Image, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return preview.Image{}, errors.New("prompt is empty")
	}

	payload := generateContentRequest{
		Contents: buildContents(prompt, req.Reference),
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}
	if req.AspectRatio != "" {
		payload.GenerationConfig.ImageConfig = &imageConfig{AspectRatio: req.AspectRatio}
	}

	resp, err := c.generateContent(ctx, payload)
	if err != nil && payload.GenerationConfig.ImageConfig != nil && isUnknownFieldError(err, "imageConfig") {
		c.logger.Warn("imageConfig rejected, retrying without aspect ratio", "model", c.model)
		payload.GenerationConfig.ImageConfig = nil
		resp, err = c.generateContent(ctx, payload)
	}
	if err != nil {
		return preview.Image{}, err
	}

	if len(resp.Images) == 0 {
		c.logger.Debug("no image in response, retrying with image-only hint", "text", truncate(resp.Text, 200))
		payload.Contents = buildContents(prompt+"\n\n"+imageOnlyHint, req.Reference)
		retry, retryErr := c.generateContent(ctx, payload)
		if retryErr == nil && len(retry.Images) > 0 {
			resp = retry
		}
	}

	if len(resp.Images) == 0 {
		return preview.Image{}, preview.ErrNoImage
	}
	return resp.Images[0], nil
}

func buildContents(prompt string, ref *preview.ImageInput) []content {
	parts := []part{{Text: prompt}}
	if ref != nil && len(ref.Data) > 0 {
		mime := ref.MimeType
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, part{InlineData: &blob{
			Data:     base64.StdEncoding.EncodeToString(ref.Data),
			MimeType: mime,
		}})
	}
	return []content{{Role: "user", Parts: parts}}
}

func (c *Client) generateContent(ctx context.Context, payload generateContentRequest) (response, error) {
	if c.httpClient == nil {
		return response{}, errors.New("http client is nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return response{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return response{}, fmt.Errorf("request: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return response{}, &APIError{
			StatusCode: httpResp.StatusCode,
			Status:     httpResp.Status,
			Body:       strings.TrimSpace(string(rawBody)),
		}
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}

	return extractParts(decoded)
}

func extractParts(resp generateContentResponse) (response, error) {
	if len(resp.Candidates) == 0 {
		return response{}, nil
	}

	var out response
	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			text.WriteString(p.Text)
		}
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return response{}, fmt.Errorf("decode inline image: %w", err)
		}
		out.Images = append(out.Images, preview.Image{Data: data, MimeType: p.InlineData.MimeType})
	}
	out.Text = text.String()
	return out, nil
}

func isUnknownFieldError(err error, field string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(apiErr.Body, "Unknown name") && strings.Contains(apiErr.Body, field)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
