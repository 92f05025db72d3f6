package normalize

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/transport"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/util"
)

// Kind enumerates why a check produced no usable result.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNetwork    Kind = "network"
	KindTimeout    Kind = "timeout"
	KindHTTP       Kind = "http_error"
	KindPayload    Kind = "payload_error"
)

// Classification describes a failed check. Exactly one of Classification or
// NormalizedResult comes out of a check attempt.
type Classification struct {
	Kind       Kind
	StatusCode int    // set for KindHTTP
	RawExcerpt string // bounded raw body, set for KindHTTP and KindPayload
	Err        error
}

// rawExcerptLimit bounds the raw body kept on a classification.
const rawExcerptLimit = 400

// shortClaimThreshold is the claim length, in runes, under which the
// short-claim hint applies.
const shortClaimThreshold = 12

// Fallback hints synthesized when the service provides no explanations.
const (
	HintNoEvidence = "No evidence links were provided; the verdict relies on the service's own sources."
	HintShortClaim = "The claim is very short; adding detail usually improves verification quality."
	HintMinimal    = "The service returned a minimal response; the verdict is based on the score alone."
)

// FromTransportError classifies a Submit transport failure.
func FromTransportError(err error) *Classification {
	if errors.Is(err, transport.ErrTimeout) {
		return &Classification{Kind: KindTimeout, Err: err}
	}
	return &Classification{Kind: KindNetwork, Err: err}
}

// Validation returns the classification for a submission blocked locally.
func Validation() *Classification {
	return &Classification{Kind: KindValidation, Err: errors.New("claim is empty")}
}

// Normalize maps a received response onto a NormalizedResult, or a
// Classification when the response is unusable. Rules apply in order:
// HTTP status, payload error marker, score, verdict, explanations, citations.
func Normalize(req model.ClaimRequest, sub transport.SubmitResult) (model.NormalizedResult, *Classification) {
	if sub.StatusCode < 200 || sub.StatusCode >= 300 {
		return model.NormalizedResult{}, &Classification{
			Kind:       KindHTTP,
			StatusCode: sub.StatusCode,
			RawExcerpt: util.Excerpt(sub.RawBody, rawExcerptLimit),
		}
	}
	if sub.Payload == nil || sub.Payload.Error != "" {
		err := sub.ParseErr
		if err == nil && sub.Payload != nil {
			err = fmt.Errorf("service error: %s", sub.Payload.Error)
		}
		return model.NormalizedResult{}, &Classification{
			Kind:       KindPayload,
			RawExcerpt: util.Excerpt(sub.RawBody, rawExcerptLimit),
			Err:        err,
		}
	}

	p := sub.Payload
	score := ClampScore(rawScore(p))

	verdict, badge := p.Verdict, p.Badge
	if verdict == "" || badge == "" {
		dv, db := VerdictFor(score)
		if verdict == "" {
			verdict = dv
		}
		if badge == "" {
			badge = db
		}
	}

	explanations := append([]string(nil), p.Why...)
	if len(explanations) == 0 {
		explanations = fallbackHints(req)
	}

	citations := make([]model.Citation, len(p.Citations))
	for i, c := range p.Citations {
		if c.Title == "" {
			c.Title = fmt.Sprintf("Source %d", i+1)
		}
		c.Host = util.Host(c.URL)
		citations[i] = c
	}

	return model.NormalizedResult{
		Verdict:      verdict,
		Badge:        badge,
		Score:        score,
		Explanations: explanations,
		Citations:    citations,
	}, nil
}

// rawScore prefers the explicit score field, falls back to confidence, and
// defaults to 0 when both are absent.
func rawScore(p *model.CheckPayload) float64 {
	if p.Score != nil {
		return *p.Score
	}
	if p.Confidence != nil {
		return *p.Confidence
	}
	return 0
}

// ClampScore maps any numeric score into [0,100] and rounds to the nearest
// integer for display.
func ClampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// VerdictFor derives the verdict label and badge from the score when the
// service provides neither. Thresholds are inclusive lower bounds evaluated
// highest first.
func VerdictFor(score int) (verdict, badge string) {
	switch {
	case score >= 85:
		return "Likely true", "Strong support"
	case score >= 65:
		return "Mixed / uncertain", "Some support"
	case score >= 40:
		return "Unclear", "Weak support"
	default:
		return "Unclear / likely false", "Low support"
	}
}

// fallbackHints synthesizes explanations for a minimal service response.
// The evidence and length hints are additive in that order; the generic hint
// appears only when neither applies.
func fallbackHints(req model.ClaimRequest) []string {
	var hints []string
	if len(req.EvidenceURLs) == 0 {
		hints = append(hints, HintNoEvidence)
	}
	if utf8.RuneCountInString(req.Claim) < shortClaimThreshold {
		hints = append(hints, HintShortClaim)
	}
	if len(hints) == 0 {
		hints = append(hints, HintMinimal)
	}
	return hints
}
