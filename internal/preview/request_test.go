package preview

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"prompt-studio/internal/studio"
)

func TestAspectHint(t *testing.T) {
	tests := map[string]string{
		"9:16": "9:16",
		"16:9": "16:9",
		"3:4":  "3:4",
		"4:5":  "3:4",
		"1:1":  "1:1",
		"2:3":  "1:1",
		"":     "1:1",
	}
	for in, want := range tests {
		if got := AspectHint(in); got != want {
			t.Errorf("AspectHint(%q) = %q, want %q", in, got, want)
		}
	}
}

func testForm() studio.ProductFormData {
	f := studio.DefaultForm()
	f.ProductName = "Lavender Sleep Mist"
	f.SetCategory("Beauty & Personal Care")
	f.VisualStyles = []string{"Modern", "Aesthetic"}
	f.AspectRatio = "4:5"
	return f
}

func TestBuildRequestText(t *testing.T) {
	f := testForm()
	out := studio.Compose(f)[0]

	req, err := BuildRequest(f, out)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if !strings.HasPrefix(req.Prompt, "Commercial photography of Lavender Sleep Mist. Style: Modern, Aesthetic. Scene: ") {
		t.Fatalf("Prompt = %q", req.Prompt)
	}
	// the full prompt starts with DIRECTION:, so the whole text is the scene
	if !strings.Contains(req.Prompt, out.FullPrompt) {
		t.Fatal("prompt does not embed the output text")
	}
	if !strings.HasSuffix(req.Prompt, "Ambient lighting accents in hex color #8B5CF6. Product remains consistent with @img1.") {
		t.Fatalf("Prompt = %q", req.Prompt)
	}
	if req.AspectRatio != "3:4" {
		t.Fatalf("AspectRatio = %q", req.AspectRatio)
	}
	if req.Reference != nil {
		t.Fatal("unexpected reference image")
	}
}

func TestBuildRequestUsesTextBeforeDirection(t *testing.T) {
	f := testForm()
	out := studio.PromptOutput{ID: "p-1", FullPrompt: "Moody shelf scene\n\nDIRECTION: Hero"}

	req, err := BuildRequest(f, out)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if !strings.Contains(req.Prompt, "Scene: Moody shelf scene. High-end") {
		t.Fatalf("Prompt = %q", req.Prompt)
	}
}

func TestBuildRequestReference(t *testing.T) {
	f := testForm()
	f.ImageRef = EncodeDataURL([]byte{0xff, 0xd8, 0xff}, "image/jpeg")

	req, err := BuildRequest(f, studio.Compose(f)[5])
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if req.Reference == nil {
		t.Fatal("missing reference")
	}
	if req.Reference.MimeType != "image/jpeg" || !bytes.Equal(req.Reference.Data, []byte{0xff, 0xd8, 0xff}) {
		t.Fatalf("Reference = %+v", req.Reference)
	}

	f.ImageRef = "data:image/png;base64,@@@"
	if _, err := BuildRequest(f, studio.Compose(f)[0]); !errors.Is(err, ErrInvalidDataURL) {
		t.Fatalf("err = %v, want ErrInvalidDataURL", err)
	}
}

func TestDecodeDataURL(t *testing.T) {
	img, err := DecodeDataURL("aGVsbG8=")
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if img.MimeType != "image/png" || string(img.Data) != "hello" {
		t.Fatalf("img = %+v", img)
	}

	for _, bad := range []string{"", "data:image/png;base64", "data:text/plain,hello", "data:image/png;base64,"} {
		if _, err := DecodeDataURL(bad); !errors.Is(err, ErrInvalidDataURL) {
			t.Errorf("DecodeDataURL(%q) = %v, want ErrInvalidDataURL", bad, err)
		}
	}
}

func TestImageDataURL(t *testing.T) {
	got := Image{Data: []byte("hello")}.DataURL()
	if got != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("DataURL = %q", got)
	}
}
