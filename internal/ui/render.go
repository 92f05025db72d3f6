package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/trace"
)

// scoreBarCells is the width of the rendered score bar.
const scoreBarCells = 20

var (
	neutral  = color.New(color.FgWhite)
	progress = color.New(color.FgYellow)
	positive = color.New(color.FgGreen, color.Bold)
	negative = color.New(color.FgRed, color.Bold)
	dim      = color.New(color.FgHiBlack)
)

// Renderer projects a State onto a terminal writer. It holds no UI state;
// every Render call redraws the full block from the given State.
type Renderer struct {
	Out   io.Writer
	Trace *trace.Recorder
}

// Render writes the full result block for the given state.
func (r *Renderer) Render(s State) {
	r.renderStatus(s.Status)

	switch s.Status {
	case model.StatusIdle:
		fmt.Fprintf(r.Out, "%s\n", dim.Sprint("Enter a claim to begin."))
		fmt.Fprintf(r.Out, "%s 0%%\n", ScoreBar(0))
	case model.StatusChecking:
		fmt.Fprintf(r.Out, "%s\n", progress.Sprint(s.Title))
		fmt.Fprintf(r.Out, "%s 0%%\n", ScoreBar(0))
		fmt.Fprintf(r.Out, "%s\n", dim.Sprint("Gathering the verdict…"))
		fmt.Fprintf(r.Out, "%s\n", dim.Sprint("Loading citations…"))
	case model.StatusOK:
		fmt.Fprintf(r.Out, "%s  %s\n", positive.Sprint(s.Title), dim.Sprintf("[%s]", s.Badge))
		fmt.Fprintf(r.Out, "%s %d%%\n", ScoreBar(s.Score), s.Score)
		for i, e := range s.Explanations {
			fmt.Fprintf(r.Out, "  %d. %s\n", i+1, e)
		}
		if len(s.Citations) == 0 {
			fmt.Fprintf(r.Out, "%s\n", dim.Sprint("No citations returned."))
		}
		for _, c := range s.Citations {
			host := c.Host
			if host == "" {
				host = "unknown host"
			}
			fmt.Fprintf(r.Out, "  - %s (%s)\n    %s\n", c.Title, host, c.URL)
			if c.Snippet != "" {
				fmt.Fprintf(r.Out, "    %s\n", dim.Sprintf("“%s”", c.Snippet))
			}
		}
	case model.StatusError:
		fmt.Fprintf(r.Out, "%s  %s\n", negative.Sprint(s.Title), dim.Sprintf("[%s]", s.Badge))
		fmt.Fprintf(r.Out, "%s\n", s.Guidance)
	}

	if s.DebugOpen {
		r.renderDebug()
	}
}

func (r *Renderer) renderStatus(st model.Status) {
	c := neutral
	switch st {
	case model.StatusChecking:
		c = progress
	case model.StatusOK:
		c = positive
	case model.StatusError:
		c = negative
	}
	fmt.Fprintf(r.Out, "%s %s\n", c.Sprint("●"), st)
}

func (r *Renderer) renderDebug() {
	fmt.Fprintf(r.Out, "%s\n", dim.Sprint("-- debug trace --"))
	if r.Trace == nil {
		fmt.Fprintf(r.Out, "%s\n", dim.Sprint("(no trace recorder attached)"))
		return
	}
	entries := r.Trace.Entries()
	if len(entries) == 0 {
		fmt.Fprintf(r.Out, "%s\n", dim.Sprint("(no exchanges recorded)"))
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("[%s] %s %s status=%d dur=%s size=%s",
			e.ID[:8], e.Method, e.URL, e.Status, e.Duration.Round(time.Millisecond), e.BodySize)
		fmt.Fprintf(r.Out, "%s\n", dim.Sprint(line))
		if e.Err != "" {
			fmt.Fprintf(r.Out, "%s\n", dim.Sprint("  error: "+e.Err))
		}
		if e.Excerpt != "" {
			fmt.Fprintf(r.Out, "%s\n", dim.Sprint("  body: "+oneLine(e.Excerpt)))
		}
	}
}

// ScoreBar renders a fixed-width confidence bar for a score in [0,100].
func ScoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * scoreBarCells / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", scoreBarCells-filled) + "]"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
