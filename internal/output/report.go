package output

import (
	"bufio"
	"encoding/json"
	"html/template"
	"io"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/check"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/normalize"
)

// Record is one line in the JSONL check log.
type Record struct {
	Timestamp    string           `json:"timestamp"`
	Claim        string           `json:"claim"`
	EvidenceURLs []string         `json:"evidence_urls,omitempty"`
	Outcome      string           `json:"outcome"`
	Verdict      string           `json:"verdict,omitempty"`
	Badge        string           `json:"badge,omitempty"`
	Score        int              `json:"score"`
	Explanations []string         `json:"explanations,omitempty"`
	Citations    []model.Citation `json:"citations,omitempty"`
	StatusCode   int              `json:"status_code,omitempty"`
	DurationMs   int64            `json:"duration_ms"`
	Error        string           `json:"error,omitempty"`
}

// Summary contains counters for the HTML summary section.
type Summary struct {
	TotalChecks int
	Verified    int
	Errors      int
}

// PageData provides the full context for the HTML report.
type PageData struct {
	Title       string
	GeneratedAt time.Time
	BaseURL     string
	Summary     Summary
	Results     []Record
}

// BuildRecord converts a completed check outcome into a Record.
func BuildRecord(out check.Outcome, at time.Time) Record {
	rec := Record{
		Timestamp:    at.UTC().Format(time.RFC3339),
		Claim:        out.Request.Claim,
		EvidenceURLs: append([]string(nil), out.Request.EvidenceURLs...),
		Outcome:      outcomeFor(out.Class),
		DurationMs:   out.Duration.Milliseconds(),
	}
	if out.Submit != nil {
		rec.StatusCode = out.Submit.StatusCode
	}
	if out.Result != nil {
		rec.Verdict = out.Result.Verdict
		rec.Badge = out.Result.Badge
		rec.Score = out.Result.Score
		rec.Explanations = append([]string(nil), out.Result.Explanations...)
		rec.Citations = append([]model.Citation(nil), out.Result.Citations...)
	}
	if out.Class != nil && out.Class.Err != nil {
		rec.Error = out.Class.Err.Error()
	}
	return rec
}

func outcomeFor(c *normalize.Classification) string {
	if c == nil {
		return "ok"
	}
	return string(c.Kind)
}

// BuildSummary derives the counters for a set of records.
func BuildSummary(records []Record) Summary {
	sum := Summary{TotalChecks: len(records)}
	for _, rec := range records {
		if rec.Outcome == "ok" {
			sum.Verified++
		} else {
			sum.Errors++
		}
	}
	return sum
}

// WriteJSONL writes each record as a JSON line to w.
func WriteJSONL(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// htmlTemplate escapes every interpolated value, so untrusted claim,
// explanation, and citation text cannot inject markup into the report.
var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root { color-scheme: light dark; }
body { font-family: system-ui, -apple-system, Segoe UI, Roboto, sans-serif; margin: 24px; background:#fafafa; color:#111; }
header { margin-bottom: 24px; }
h1 { font-size: 26px; margin: 0 0 8px; }
.section { border:1px solid #e5e7eb; border-radius:16px; padding:16px 20px; margin-bottom:18px; background:#fff; box-shadow:0 1px 2px rgba(15,23,42,0.08); }
h2 { font-size:20px; margin:0 0 12px; }
h3 { font-size:16px; margin:12px 0 6px; }
.summary-grid { display:grid; gap:12px; grid-template-columns: repeat(auto-fit,minmax(180px,1fr)); }
.summary-card { display:block; padding:12px; border-radius:12px; border:1px solid #cbd5f5; position:relative; background:linear-gradient(180deg,#eef2ff,#fff); }
.summary-card .badge { position:absolute; top:12px; right:12px; padding:2px 10px; border-radius:999px; background:#4f46e5; color:#fff; font-size:12px; }
.meta { color:#6b7280; font-size:12px; }
.check-row { border-top:1px solid #e5e7eb; padding-top:12px; margin-top:12px; }
.check-row:first-of-type { border-top:none; padding-top:0; margin-top:0; }
.badge-inline { display:inline-block; padding:2px 8px; border-radius:999px; background:#e5e7eb; font-size:12px; margin-left:6px; }
.score-bar { height:8px; border-radius:999px; background:#e5e7eb; overflow:hidden; margin:6px 0; }
.score-fill { height:100%; background:#4f46e5; }
.cite-url { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; font-size:13px; }
.cite-list { list-style:disc; margin:8px 0 8px 20px; }
.error-row { color:#b91c1c; }
.footer { text-align:center; font-size:12px; color:#6b7280; margin-top:24px; }
@media (prefers-color-scheme: dark) {
        body { background:#0f172a; color:#e2e8f0; }
        .section { background:#1e293b; border-color:#334155; box-shadow:none; }
        .summary-card { background:linear-gradient(180deg,#312e81,#1e293b); border-color:#4338ca; color:#e0e7ff; }
        .meta { color:#94a3b8; }
        .badge-inline { background:#475569; }
        .score-bar { background:#334155; }
}
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p class="meta">Generated at {{formatTime .GeneratedAt}} • Service {{.BaseURL}}</p>
</header>
<section class="section">
  <h2>Summary</h2>
  <div class="summary-grid">
    <div class="summary-card"><strong>Total Checks</strong><span class="badge">{{.Summary.TotalChecks}}</span></div>
    <div class="summary-card"><strong>Completed</strong><span class="badge">{{.Summary.Verified}}</span></div>
    <div class="summary-card"><strong>Failed</strong><span class="badge">{{.Summary.Errors}}</span></div>
  </div>
</section>
<section class="section">
  <h2>Checks</h2>
  {{range .Results}}
  <div class="check-row">
    <h3>{{.Claim}}<span class="badge-inline">{{.Outcome}}</span></h3>
    {{if eq .Outcome "ok"}}
      <p><strong>{{.Verdict}}</strong> — {{.Badge}}</p>
      <div class="score-bar"><div class="score-fill" style="width: {{.Score}}%"></div></div>
      <p class="meta">Confidence {{.Score}}%</p>
      {{if .Explanations}}
      <ol>
        {{range .Explanations}}<li>{{.}}</li>{{end}}
      </ol>
      {{end}}
      {{if .Citations}}
      <ul class="cite-list">
        {{range .Citations}}
          <li>{{.Title}}{{if .Host}} ({{.Host}}){{end}} — <span class="cite-url">{{.URL}}</span>{{if .Snippet}}<br>{{.Snippet}}{{end}}</li>
        {{end}}
      </ul>
      {{end}}
    {{else}}
      <p class="error-row">{{.Outcome}}{{if .StatusCode}} (status {{.StatusCode}}){{end}}{{if .Error}}: {{.Error}}{{end}}</p>
    {{end}}
    {{if .EvidenceURLs}}
      <p class="meta">Evidence: {{range .EvidenceURLs}}<span class="cite-url">{{.}}</span> {{end}}</p>
    {{end}}
    <p class="meta">Duration {{.DurationMs}}ms • {{.Timestamp}}</p>
  </div>
  {{end}}
</section>
<footer class="footer">
  TruthLayer check report generated at {{formatTime .GeneratedAt}}
</footer>
</body>
</html>
`))

// RenderHTML renders the HTML report for the given page data.
func RenderHTML(w io.Writer, data PageData) error {
	return htmlTemplate.Execute(w, data)
}
