package ui

import (
	"fmt"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/normalize"
)

// State is the complete renderable state of the client. Transitions are pure
// functions from State to State; the renderer is a projection of the current
// value and owns no state of its own.
type State struct {
	Status       model.Status
	Title        string
	Badge        string
	Score        int
	Explanations []string
	Citations    []model.Citation
	Guidance     string
	DebugOpen    bool

	// Seq identifies the most recently initiated check. Resolutions carry
	// the sequence issued by BeginCheck; anything older is stale and
	// discarded rather than allowed to overwrite newer state.
	Seq uint64
}

// Initial returns the idle state a session starts in.
func Initial() State {
	return State{Status: model.StatusIdle}
}

// Reset clears everything back to idle, keeping only the debug-panel toggle
// and the sequence counter. Applying it twice equals applying it once.
func Reset(s State) State {
	return State{Status: model.StatusIdle, DebugOpen: s.DebugOpen, Seq: s.Seq}
}

// BeginCheck transitions into checking and stamps a new check sequence.
func BeginCheck(s State) State {
	return State{
		Status:    model.StatusChecking,
		Title:     "Checking…",
		DebugOpen: s.DebugOpen,
		Seq:       s.Seq + 1,
	}
}

// ResolveOK applies a successful result for the check identified by seq.
func ResolveOK(s State, seq uint64, res model.NormalizedResult) State {
	if seq != s.Seq {
		return s
	}
	return State{
		Status:       model.StatusOK,
		Title:        res.Verdict,
		Badge:        res.Badge,
		Score:        res.Score,
		Explanations: res.Explanations,
		Citations:    res.Citations,
		DebugOpen:    s.DebugOpen,
		Seq:          s.Seq,
	}
}

// ResolveError applies a failure classification for the check identified by
// seq.
func ResolveError(s State, seq uint64, c *normalize.Classification) State {
	if seq != s.Seq {
		return s
	}
	return State{
		Status:    model.StatusError,
		Title:     "Error",
		Badge:     ShortDiagnostic(c),
		Guidance:  Guidance(c),
		DebugOpen: s.DebugOpen,
		Seq:       s.Seq,
	}
}

// ToggleDebug flips the debug panel without touching anything else.
func ToggleDebug(s State) State {
	s.DebugOpen = !s.DebugOpen
	return s
}

// ShortDiagnostic returns the badge-sized label for a failure.
func ShortDiagnostic(c *normalize.Classification) string {
	switch c.Kind {
	case normalize.KindValidation:
		return "Empty claim"
	case normalize.KindTimeout:
		return "Timeout"
	case normalize.KindNetwork:
		return "Network failure"
	case normalize.KindHTTP:
		return fmt.Sprintf("HTTP %d", c.StatusCode)
	case normalize.KindPayload:
		return "Bad payload"
	}
	return "Failure"
}

// Guidance returns failure-specific advice for the explanation area.
func Guidance(c *normalize.Classification) string {
	switch c.Kind {
	case normalize.KindValidation:
		return "Enter a claim to check before submitting."
	case normalize.KindTimeout:
		return "Request timed out. The service may be overloaded; try again in a moment."
	case normalize.KindNetwork:
		return "Failed to fetch. Check your connection and the service base URL."
	case normalize.KindHTTP:
		return fmt.Sprintf("The service answered with HTTP %d. Verify the base URL points at a TruthLayer deployment.", c.StatusCode)
	case normalize.KindPayload:
		return "The service answered with a body that is not valid check JSON. The raw response is in the debug panel."
	}
	return "Unknown failure."
}
