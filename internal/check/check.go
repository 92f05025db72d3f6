package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/evidence"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/normalize"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/transport"
)

// Outcome bundles everything produced by one check attempt. Exactly one of
// Result and Class is set.
type Outcome struct {
	Request  model.ClaimRequest
	Result   *model.NormalizedResult
	Class    *normalize.Classification
	Submit   *transport.SubmitResult
	Duration time.Duration
}

// OK reports whether the check produced a usable result.
func (o Outcome) OK() bool { return o.Result != nil }

// Run validates and submits one claim check and normalizes the response.
// An empty claim is rejected locally without touching the network.
func Run(ctx context.Context, tc *transport.Client, claim, evidenceText string) Outcome {
	if strings.TrimSpace(claim) == "" {
		return Outcome{Class: normalize.Validation()}
	}
	req := model.NewClaimRequest(claim, evidence.Extract(evidenceText), time.Now())

	start := time.Now()
	sub, err := tc.Submit(ctx, req)
	if err != nil {
		return Outcome{Request: req, Class: normalize.FromTransportError(err), Duration: time.Since(start)}
	}

	res, cls := normalize.Normalize(req, sub)
	out := Outcome{Request: req, Submit: &sub, Duration: time.Since(start)}
	if cls != nil {
		out.Class = cls
		return out
	}
	out.Result = &res
	return out
}

// Quick performs a single uncolored check against base (defaults when empty)
// and prints a plain result, for the one-shot wrapper binary. Evidence
// arguments are joined line-wise and run through the extractor.
func Quick(base, claim string, evidenceArgs []string) error {
	if base == "" {
		base = "https://api.truthlayer.dev"
	}
	tc := transport.New(transport.Config{BaseURL: base})
	out := Run(context.Background(), tc, claim, strings.Join(evidenceArgs, "\n"))
	if out.Class != nil {
		return fmt.Errorf("%s", describeFailure(out.Class))
	}

	res := out.Result
	fmt.Printf("%s [%s] %d%%\n", res.Verdict, res.Badge, res.Score)
	for _, e := range res.Explanations {
		fmt.Printf("  - %s\n", e)
	}
	for _, c := range res.Citations {
		fmt.Printf("  * %s — %s\n", c.Title, c.URL)
	}
	return nil
}

func describeFailure(c *normalize.Classification) string {
	switch c.Kind {
	case normalize.KindValidation:
		return "claim must not be empty"
	case normalize.KindTimeout:
		return "request timed out"
	case normalize.KindNetwork:
		return "failed to fetch"
	case normalize.KindHTTP:
		return fmt.Sprintf("service returned HTTP %d", c.StatusCode)
	case normalize.KindPayload:
		return "service returned an unusable payload"
	}
	return "check failed"
}
