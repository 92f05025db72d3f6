package util_test

import (
	"testing"
	"unicode/utf8"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/util"
)

func TestHost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"https://en.example.org/wiki/Water", "en.example.org"},
		{"http://svc.internal:9090/api", "svc.internal:9090"},
		{"http://[::1", ""},
		{"not a url", ""},
	}
	for _, tt := range tests {
		if got := util.Host(tt.in); got != tt.want {
			t.Errorf("Host(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()
	if got := util.Excerpt("short", 10); got != "short" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	got := util.Excerpt("0123456789abc", 10)
	if got != "0123456789…" {
		t.Fatalf("expected truncation marker, got %q", got)
	}
}

func TestExcerptKeepsRunesWhole(t *testing.T) {
	t.Parallel()
	// "é" is two bytes; a cut at byte 4 would land inside it.
	got := util.Excerpt("abcéxyz", 4)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8: %q", got)
	}
	if got != "abc…" {
		t.Fatalf("expected cut at rune boundary, got %q", got)
	}
}
