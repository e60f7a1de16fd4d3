package openaiimage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompt-studio/internal/preview"
)

func TestGenerate(t *testing.T) {
	var got map[string]any
	var path, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"created":1,"data":[{"b64_json":"`+base64.StdEncoding.EncodeToString([]byte("png"))+`"}]}`)
	}))
	defer srv.Close()

	c := New(Options{APIKey: "sk-test", BaseURL: srv.URL + "/v1", HTTPClient: srv.Client()})
	img, err := c.Generate(context.Background(), preview.Request{
		Prompt:      "Commercial photography of a mug.",
		Reference:   &preview.ImageInput{Data: []byte("ref")},
		AspectRatio: "16:9",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(img.Data) != "png" {
		t.Fatalf("Data = %q", img.Data)
	}
	if path != "/v1/images/generations" {
		t.Fatalf("path = %q", path)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("Authorization = %q", auth)
	}
	if got["size"] != "1792x1024" || got["response_format"] != "b64_json" || got["model"] != DefaultModel {
		t.Fatalf("request = %v", got)
	}
}

func TestGenerateEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"created":1,"data":[]}`)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL + "/v1", HTTPClient: srv.Client()})
	if _, err := c.Generate(context.Background(), preview.Request{Prompt: "p"}); !errors.Is(err, preview.ErrNoImage) {
		t.Fatalf("err = %v, want ErrNoImage", err)
	}
}

func TestSizeFor(t *testing.T) {
	tests := map[string]string{
		"1:1":  "1024x1024",
		"3:4":  "1024x1792",
		"9:16": "1024x1792",
		"16:9": "1792x1024",
		"":     "1024x1024",
	}
	for in, want := range tests {
		if got := sizeFor(in); got != want {
			t.Errorf("sizeFor(%q) = %q, want %q", in, got, want)
		}
	}
}
