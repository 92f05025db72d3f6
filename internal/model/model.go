package model

import (
	"strings"
	"time"
)

// Status is the connectivity / check lifecycle state shown in the UI.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusChecking Status = "checking"
	StatusOK       Status = "ok"
	StatusError    Status = "error"
)

// ClaimRequest is the JSON body submitted to the check endpoint.
type ClaimRequest struct {
	Claim        string   `json:"claim"`
	EvidenceURLs []string `json:"evidence_urls"`
	ClientTS     string   `json:"client_ts"`
}

// NewClaimRequest builds a request with a trimmed claim and an RFC 3339
// client timestamp. EvidenceURLs is always non-nil so it serializes as an
// array.
func NewClaimRequest(claim string, evidenceURLs []string, now time.Time) ClaimRequest {
	if evidenceURLs == nil {
		evidenceURLs = []string{}
	}
	return ClaimRequest{
		Claim:        strings.TrimSpace(claim),
		EvidenceURLs: evidenceURLs,
		ClientTS:     now.UTC().Format(time.RFC3339),
	}
}

// Citation is a cited source returned by the verification service.
// Host is derived locally from URL and left empty when it cannot be parsed.
type Citation struct {
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Host    string `json:"host,omitempty"`
}

// CheckPayload is the wire shape of a check response. Every field is
// optional; absence triggers the normalizer's fallback rules. An Error
// marker turns the whole payload into a failure regardless of other fields.
type CheckPayload struct {
	Score      *float64   `json:"score,omitempty"`
	Confidence *float64   `json:"confidence,omitempty"`
	Verdict    string     `json:"verdict,omitempty"`
	Badge      string     `json:"badge,omitempty"`
	Why        []string   `json:"why,omitempty"`
	Citations  []Citation `json:"citations,omitempty"`
	Error      string     `json:"error,omitempty"`
	Raw        string     `json:"raw,omitempty"`
}

// NormalizedResult is the canonical verdict rendered to the user. It is
// rebuilt wholesale for every check and replaced on the next check or clear.
type NormalizedResult struct {
	Verdict      string     `json:"verdict"`
	Badge        string     `json:"badge"`
	Score        int        `json:"score"`
	Explanations []string   `json:"explanations"`
	Citations    []Citation `json:"citations"`
}
