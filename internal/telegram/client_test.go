package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitByBytes(t *testing.T) {
	text := strings.Repeat("a", 10) + strings.Repeat("é", 5)
	parts := splitByBytes(text, 8)

	if strings.Join(parts, "") != text {
		t.Fatal("split lost content")
	}
	for i, p := range parts {
		if len(p) > 8 {
			t.Fatalf("part %d is %d bytes", i, len(p))
		}
		if !utf8.ValidString(p) {
			t.Fatalf("part %d splits a rune: %q", i, p)
		}
	}

	if got := splitByBytes("short", 4096); len(got) != 1 || got[0] != "short" {
		t.Fatalf("splitByBytes(short) = %q", got)
	}
}

func TestTruncateByBytes(t *testing.T) {
	if got := truncateByBytes("ééé", 5); got != "éé" {
		t.Fatalf("truncateByBytes = %q", got)
	}
	if got := truncateByBytes("abc", 10); got != "abc" {
		t.Fatalf("truncateByBytes = %q", got)
	}
}

func TestDetectMime(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	tests := []struct {
		header string
		data   []byte
		want   string
	}{
		{"image/webp; charset=binary", nil, "image/webp"},
		{"application/octet-stream", png, "image/png"},
		{"", png, "image/png"},
		{"", []byte{0x00, 0x01, 0x02}, "image/jpeg"},
	}
	for _, tt := range tests {
		if got := detectMime(tt.header, tt.data); got != tt.want {
			t.Errorf("detectMime(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := fileName("application/x-unknown-kind"); got != "preview.png" {
		t.Fatalf("fileName = %q", got)
	}
	if got := fileName("image/png"); got != "preview.png" {
		t.Fatalf("fileName = %q", got)
	}
}
