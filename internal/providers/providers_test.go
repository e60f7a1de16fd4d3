package providers

import (
	"net/http"
	"testing"

	"prompt-studio/internal/config"
	"prompt-studio/internal/gemini"
	"prompt-studio/internal/openaiimage"
)

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(config.Config{ImageProvider: config.ProviderGemini}, http.DefaultClient, nil)
	if err != nil {
		t.Fatalf("gemini: %v", err)
	}
	if _, ok := g.(*gemini.Client); !ok {
		t.Fatalf("gemini provider built %T", g)
	}

	g, err = NewGenerator(config.Config{ImageProvider: config.ProviderOpenAI}, http.DefaultClient, nil)
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if _, ok := g.(*openaiimage.Client); !ok {
		t.Fatalf("openai provider built %T", g)
	}

	if _, err := NewGenerator(config.Config{ImageProvider: "other"}, http.DefaultClient, nil); err == nil {
		t.Fatal("unknown provider accepted")
	}
}
