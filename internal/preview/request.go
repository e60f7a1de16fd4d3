package preview

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"prompt-studio/internal/studio"
)

const defaultMimeType = "image/png"

// Request is what a Generator receives: prompt text, an optional reference
// image and an aspect hint from AspectHints.
type Request struct {
	Prompt      string
	Reference   *ImageInput
	AspectRatio string
}

type ImageInput struct {
	Data     []byte
	MimeType string
}

type Image struct {
	Data     []byte
	MimeType string
}

func (img Image) DataURL() string {
	mime := img.MimeType
	if mime == "" {
		mime = defaultMimeType
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(img.Data))
}

// AspectHints are the ratios image backends are asked for.
var AspectHints = []string{"1:1", "3:4", "9:16", "16:9"}

// AspectHint maps a form aspect ratio to the nearest supported hint.
func AspectHint(formRatio string) string {
	switch strings.TrimSpace(formRatio) {
	case "9:16":
		return "9:16"
	case "16:9":
		return "16:9"
	case "3:4", "4:5":
		return "3:4"
	}
	return "1:1"
}

// BuildRequest turns one composed output into a preview request.
func BuildRequest(form studio.ProductFormData, output studio.PromptOutput) (Request, error) {
	prompt := output.FullPrompt
	visual := strings.TrimSpace(strings.SplitN(prompt, "DIRECTION:", 2)[0])
	if visual == "" {
		visual = prompt
	}

	text := fmt.Sprintf(
		"Commercial photography of %s. Style: %s. Scene: %s. High-end commercial quality, 8K, photorealistic. Ambient lighting accents in hex color %s. Product remains consistent with @img1.",
		form.ProductName, strings.Join(form.VisualStyles, ", "), visual, form.PrimaryColor,
	)

	req := Request{
		Prompt:      text,
		AspectRatio: AspectHint(form.AspectRatio),
	}

	if strings.TrimSpace(form.ImageRef) != "" {
		ref, err := DecodeDataURL(form.ImageRef)
		if err != nil {
			return Request{}, fmt.Errorf("reference image: %w", err)
		}
		req.Reference = &ref
	}
	return req, nil
}

var ErrInvalidDataURL = errors.New("invalid data URL")

// DecodeDataURL parses "data:<mime>;base64,<payload>". A bare base64 payload
// is accepted as image/png.
func DecodeDataURL(value string) (ImageInput, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ImageInput{}, ErrInvalidDataURL
	}

	mime := defaultMimeType
	payload := value
	if strings.HasPrefix(value, "data:") {
		header, data, ok := strings.Cut(value, ",")
		if !ok {
			return ImageInput{}, ErrInvalidDataURL
		}
		header = strings.TrimPrefix(header, "data:")
		m, enc, _ := strings.Cut(header, ";")
		if enc != "base64" {
			return ImageInput{}, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURL)
		}
		if m != "" {
			mime = m
		}
		payload = data
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageInput{}, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if len(raw) == 0 {
		return ImageInput{}, ErrInvalidDataURL
	}
	return ImageInput{Data: raw, MimeType: mime}, nil
}

// EncodeDataURL is the inverse of DecodeDataURL.
func EncodeDataURL(data []byte, mime string) string {
	return Image{Data: data, MimeType: mime}.DataURL()
}
