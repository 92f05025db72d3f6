package ui_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/normalize"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/ui"
)

func TestCheckLifecycle(t *testing.T) {
	st := ui.Initial()
	if st.Status != model.StatusIdle {
		t.Fatalf("expected idle start, got %v", st.Status)
	}

	st = ui.BeginCheck(st)
	if st.Status != model.StatusChecking || st.Title != "Checking…" {
		t.Fatalf("unexpected checking state: %+v", st)
	}
	seq := st.Seq

	res := model.NormalizedResult{Verdict: "Likely true", Badge: "Strong support", Score: 91, Explanations: []string{"matches records"}}
	st = ui.ResolveOK(st, seq, res)
	if st.Status != model.StatusOK || st.Title != "Likely true" || st.Score != 91 {
		t.Fatalf("unexpected ok state: %+v", st)
	}
}

func TestStaleResolutionDiscarded(t *testing.T) {
	st := ui.BeginCheck(ui.Initial())
	stale := st.Seq
	st = ui.BeginCheck(st) // second check fired before the first resolved

	st = ui.ResolveOK(st, stale, model.NormalizedResult{Verdict: "old", Score: 10})
	if st.Status != model.StatusChecking {
		t.Fatalf("stale resolution should be discarded, got %+v", st)
	}

	st = ui.ResolveError(st, stale, normalize.Validation())
	if st.Status != model.StatusChecking {
		t.Fatalf("stale error resolution should be discarded, got %+v", st)
	}

	st = ui.ResolveOK(st, st.Seq, model.NormalizedResult{Verdict: "new", Score: 80})
	if st.Status != model.StatusOK || st.Title != "new" {
		t.Fatalf("current resolution should apply, got %+v", st)
	}
}

func TestResetIdempotent(t *testing.T) {
	st := ui.BeginCheck(ui.Initial())
	st = ui.ResolveError(st, st.Seq, &normalize.Classification{Kind: normalize.KindHTTP, StatusCode: 500})

	once := ui.Reset(st)
	twice := ui.Reset(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Reset must be idempotent: %+v vs %+v", once, twice)
	}
	if once.Status != model.StatusIdle || once.Title != "" || once.Score != 0 {
		t.Fatalf("Reset must clear fields, got %+v", once)
	}
}

func TestToggleDebugPreserved(t *testing.T) {
	st := ui.ToggleDebug(ui.Initial())
	if !st.DebugOpen {
		t.Fatalf("expected debug open")
	}
	st = ui.Reset(ui.BeginCheck(st))
	if !st.DebugOpen {
		t.Fatalf("debug toggle must survive transitions")
	}
}

func TestGuidancePerClassification(t *testing.T) {
	tests := []struct {
		cls  *normalize.Classification
		want string
	}{
		{&normalize.Classification{Kind: normalize.KindTimeout}, "timed out"},
		{&normalize.Classification{Kind: normalize.KindNetwork}, "Failed to fetch"},
		{&normalize.Classification{Kind: normalize.KindHTTP, StatusCode: 502}, "HTTP 502"},
		{&normalize.Classification{Kind: normalize.KindPayload}, "not valid check JSON"},
		{normalize.Validation(), "Enter a claim"},
	}
	for _, tt := range tests {
		if got := ui.Guidance(tt.cls); !strings.Contains(got, tt.want) {
			t.Errorf("Guidance(%v) = %q, want substring %q", tt.cls.Kind, got, tt.want)
		}
	}
}

func TestScoreBar(t *testing.T) {
	if bar := ui.ScoreBar(0); strings.Contains(bar, "█") {
		t.Fatalf("score 0 must render an empty bar, got %q", bar)
	}
	if bar := ui.ScoreBar(100); strings.Contains(bar, "░") {
		t.Fatalf("score 100 must render a full bar, got %q", bar)
	}
	if bar := ui.ScoreBar(50); strings.Count(bar, "█") != 10 {
		t.Fatalf("score 50 must fill half the bar, got %q", bar)
	}
}

func TestRenderStates(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	r := &ui.Renderer{Out: &buf}

	st := ui.BeginCheck(ui.Initial())
	r.Render(st)
	out := buf.String()
	for _, want := range []string{"checking", "Checking…", "Gathering the verdict…", "Loading citations…"} {
		if !strings.Contains(out, want) {
			t.Fatalf("checking render missing %q in %q", want, out)
		}
	}

	buf.Reset()
	res := model.NormalizedResult{
		Verdict:      "Likely true",
		Badge:        "Strong support",
		Score:        91,
		Explanations: []string{"matches records"},
		Citations: []model.Citation{
			{Title: "Source 1", URL: "https://a.example/x", Host: "a.example", Snippet: "snippet text"},
		},
	}
	r.Render(ui.ResolveOK(st, st.Seq, res))
	out = buf.String()
	for _, want := range []string{"Likely true", "[Strong support]", "91%", "1. matches records", "a.example"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ok render missing %q in %q", want, out)
		}
	}

	buf.Reset()
	r.Render(ui.ResolveError(st, st.Seq, &normalize.Classification{Kind: normalize.KindHTTP, StatusCode: 500}))
	out = buf.String()
	for _, want := range []string{"Error", "HTTP 500"} {
		if !strings.Contains(out, want) {
			t.Fatalf("error render missing %q in %q", want, out)
		}
	}
}
