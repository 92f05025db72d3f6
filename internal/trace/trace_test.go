package trace_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/trace"
)

func TestRecorderRing(t *testing.T) {
	rec := trace.NewRecorder(3)
	for i := 0; i < 5; i++ {
		rec.Record("GET", "http://svc.example/", 200, 10*time.Millisecond, "ok", nil)
	}
	entries := rec.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected ring capped at 3, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == "" {
			t.Fatalf("expected entry id assigned")
		}
	}
}

func TestRecorderLastAndExcerpt(t *testing.T) {
	rec := trace.NewRecorder(8)
	if _, ok := rec.Last(); ok {
		t.Fatalf("expected no entries yet")
	}

	long := strings.Repeat("x", 1000)
	rec.Record("POST", "http://svc.example/api/check", 500, time.Second, long, errors.New("boom"))
	last, ok := rec.Last()
	if !ok {
		t.Fatalf("expected last entry")
	}
	if last.Status != 500 || last.Err != "boom" {
		t.Fatalf("unexpected entry: %+v", last)
	}
	if len(last.Excerpt) >= len(long) {
		t.Fatalf("expected excerpt bounded, got %d bytes", len(last.Excerpt))
	}
	if last.BodySize == "" {
		t.Fatalf("expected humanized body size")
	}
}
