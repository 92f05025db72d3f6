package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/banner"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/check"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/config"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/httpclient"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/output"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/runner"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/trace"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/transport"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/ui"
)

const (
	exampleClaim    = "The Eiffel Tower is taller than 300 meters."
	exampleEvidence = "https://en.wikipedia.org/wiki/Eiffel_Tower"
)

type options struct {
	configPath    string
	base          string
	checkPath     string
	claim         string
	evidenceFile  string
	claimsFile    string
	proxy         string
	probeTimeout  time.Duration
	submitTimeout time.Duration
	threads       int
	rateLimit     int
	insecure      bool
	debug         bool
	noProbe       bool
	silent        bool
	verbose       bool
	outputJSONL   string
	outputHTML    string
}

func main() {
	opts := parseFlags()
	if !opts.silent {
		banner.PrintBanner()
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Config file (YAML)")
	flag.StringVar(&opts.base, "base", "", "Service base URL (overrides config)")
	flag.StringVar(&opts.checkPath, "check-path", "", "Check endpoint path (overrides config)")
	flag.StringVar(&opts.claim, "claim", "", "Claim to check (one-shot mode)")
	flag.StringVar(&opts.evidenceFile, "evidence", "", "File with evidence lines for one-shot mode")
	flag.StringVar(&opts.claimsFile, "file", "", "File with one claim per line (batch mode)")
	flag.StringVar(&opts.proxy, "proxy", "", "HTTP(S) proxy URL")
	flag.DurationVar(&opts.probeTimeout, "probe-timeout", 0, "Connectivity probe timeout (overrides config)")
	flag.DurationVar(&opts.submitTimeout, "submit-timeout", 0, "Check submission timeout (overrides config)")
	flag.IntVar(&opts.threads, "t", 4, "Threads for batch mode")
	flag.IntVar(&opts.rateLimit, "rl", 0, "Batch rate limit (requests per second)")
	flag.BoolVar(&opts.insecure, "insecure", false, "Skip TLS verification")
	flag.BoolVar(&opts.debug, "debug", false, "Open the debug panel on start")
	flag.BoolVar(&opts.noProbe, "no-probe", false, "Skip the startup connectivity probe")
	flag.BoolVar(&opts.silent, "silent", false, "Suppress banner and interactive prompts")
	flag.BoolVar(&opts.verbose, "v", false, "Enable verbose output")
	flag.StringVar(&opts.outputJSONL, "o", "", "JSONL check log output file")
	flag.StringVar(&opts.outputHTML, "html", "", "HTML report output file")
	flag.Parse()
	return opts
}

func run(opts options) error {
	if opts.claim != "" && opts.claimsFile != "" {
		return errors.New("-claim and -file are mutually exclusive")
	}
	if opts.threads <= 0 {
		return fmt.Errorf("-t must be greater than zero (got %d)", opts.threads)
	}
	if opts.rateLimit < 0 {
		return fmt.Errorf("-rl must be >= 0 (got %d)", opts.rateLimit)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.base != "" {
		cfg.BaseURL = opts.base
	}
	if opts.checkPath != "" {
		cfg.CheckPath = opts.checkPath
	}
	if opts.probeTimeout > 0 {
		cfg.ProbeTimeout = config.Duration(opts.probeTimeout)
	}
	if opts.submitTimeout > 0 {
		cfg.SubmitTimeout = config.Duration(opts.submitTimeout)
	}
	if opts.insecure {
		cfg.Insecure = true
	}
	if opts.debug {
		cfg.Debug = true
	}

	var proxyFunc func(*http.Request) (*url.URL, error)
	if opts.proxy != "" {
		proxyURL, perr := url.Parse(opts.proxy)
		if perr != nil {
			return fmt.Errorf("invalid proxy URL: %w", perr)
		}
		proxyFunc = http.ProxyURL(proxyURL)
	}

	rec := trace.NewRecorder(64)
	client := httpclient.New(httpclient.Config{
		Proxy:     proxyFunc,
		UserAgent: cfg.UserAgent,
		Insecure:  cfg.Insecure,
	})
	tc := transport.New(transport.Config{
		BaseURL:       cfg.BaseURL,
		CheckPath:     cfg.CheckPath,
		ProbeTimeout:  cfg.ProbeTimeout.Std(),
		SubmitTimeout: cfg.SubmitTimeout.Std(),
		HTTPClient:    client,
		Recorder:      rec,
	})

	if opts.verbose {
		fmt.Fprintf(os.Stderr, "[config] base=%s check=%s probe-timeout=%s submit-timeout=%s\n",
			cfg.BaseURL, cfg.CheckPath, cfg.ProbeTimeout.Std(), cfg.SubmitTimeout.Std())
	}

	sess := &session{
		opts:     opts,
		tc:       tc,
		rec:      rec,
		state:    ui.Initial(),
		renderer: &ui.Renderer{Out: os.Stdout, Trace: rec},
	}
	if cfg.Debug {
		sess.state = ui.ToggleDebug(sess.state)
	}

	ctx := context.Background()
	if !opts.noProbe {
		sess.probe(ctx)
	}

	switch {
	case opts.claim != "":
		return sess.oneShot(ctx)
	case opts.claimsFile != "":
		return sess.batch(ctx)
	default:
		return sess.interact(ctx)
	}
}

// session owns the UI state, the displayed result slot, and the check log
// for one process lifetime. All mutation happens on the main flow.
type session struct {
	opts     options
	tc       *transport.Client
	rec      *trace.Recorder
	state    ui.State
	renderer *ui.Renderer
	input    io.Reader
	in       *bufio.Scanner
	claim    string
	evidence strings.Builder
	records  []output.Record
}

// probe runs the startup connectivity check and projects the outcome onto
// the status indicator. Probe failures are diagnostic, not fatal.
func (s *session) probe(ctx context.Context) {
	res := s.tc.Probe(ctx)
	if res.Err != nil {
		s.state.Status = model.StatusError
		fmt.Fprintf(os.Stderr, "[probe] service unreachable: %v\n", res.Err)
		return
	}
	s.state.Status = model.StatusOK
	if s.opts.verbose {
		fmt.Fprintf(os.Stderr, "[probe] %s reachable (status %d)\n", s.tc.BaseURL(), res.StatusCode)
	}
}

// doCheck runs one check through the full state machine and records it.
func (s *session) doCheck(ctx context.Context, claim, evidenceText string) check.Outcome {
	s.state = ui.BeginCheck(s.state)
	seq := s.state.Seq
	if !s.opts.silent {
		s.renderer.Render(s.state)
	}

	out := check.Run(ctx, s.tc, claim, evidenceText)
	if out.OK() {
		s.state = ui.ResolveOK(s.state, seq, *out.Result)
	} else {
		s.state = ui.ResolveError(s.state, seq, out.Class)
	}
	s.renderer.Render(s.state)

	s.records = append(s.records, output.BuildRecord(out, time.Now()))
	return out
}

func (s *session) oneShot(ctx context.Context) error {
	var evidenceText string
	if s.opts.evidenceFile != "" {
		data, err := os.ReadFile(s.opts.evidenceFile)
		if err != nil {
			return fmt.Errorf("read evidence file: %w", err)
		}
		evidenceText = string(data)
	}
	out := s.doCheck(ctx, s.opts.claim, evidenceText)
	if err := s.writeReports(); err != nil {
		return err
	}
	if !out.OK() {
		return fmt.Errorf("check failed: %s", ui.ShortDiagnostic(out.Class))
	}
	return nil
}

func (s *session) batch(ctx context.Context) error {
	claims, err := loadLines(s.opts.claimsFile)
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("claims file %q is empty", s.opts.claimsFile)
	}
	if s.opts.verbose {
		fmt.Fprintf(os.Stderr, "[batch] claims=%d threads=%d rate-limit=%d\n", len(claims), s.opts.threads, s.opts.rateLimit)
	}

	r := runner.New(runner.Config{Threads: s.opts.threads, RateLimit: s.opts.rateLimit}, func(ctx context.Context, claim string) check.Outcome {
		return check.Run(ctx, s.tc, claim, "")
	})
	outcomes := r.Run(ctx, claims)

	failed := 0
	for i, out := range outcomes {
		s.records = append(s.records, output.BuildRecord(out, time.Now()))
		if out.OK() {
			fmt.Printf("[%d/%d] %s -> %s (%d%%)\n", i+1, len(outcomes), claims[i], out.Result.Verdict, out.Result.Score)
		} else {
			failed++
			fmt.Printf("[%d/%d] %s -> %s\n", i+1, len(outcomes), claims[i], ui.ShortDiagnostic(out.Class))
		}
	}
	if err := s.writeReports(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(outcomes))
	}
	return nil
}

// action binds one interactive command to its handler.
type action struct {
	name    string
	help    string
	handler func(ctx context.Context, arg string)
}

// interact runs the REPL. Commands are dispatched through an explicit action
// table so the wiring is inspectable and testable in one place. A single
// scanner owns stdin; actions that read further lines share it so buffered
// lookahead is never lost between readers.
func (s *session) interact(ctx context.Context) error {
	src := s.input
	if src == nil {
		src = os.Stdin
	}
	s.in = bufio.NewScanner(src)
	s.in.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	actions := s.actionTable()
	if !s.opts.silent {
		fmt.Println("Type 'help' for commands.")
		s.renderer.Render(s.state)
	}

	for {
		if !s.opts.silent {
			fmt.Print("> ")
		}
		if !s.in.Scan() {
			break
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		name, arg, _ := strings.Cut(line, " ")
		if name == "quit" || name == "exit" {
			break
		}
		act, ok := actions[name]
		if !ok {
			fmt.Printf("unknown command %q; type 'help'\n", name)
			continue
		}
		act.handler(ctx, strings.TrimSpace(arg))
	}
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return s.writeReports()
}

func (s *session) actionTable() map[string]action {
	actions := map[string]action{}
	add := func(a action) { actions[a.name] = a }

	add(action{name: "check", help: "check [claim] — submit a claim (the staged one when omitted) with the staged evidence", handler: func(ctx context.Context, arg string) {
		claim := arg
		if claim == "" {
			claim = s.claim
		}
		s.doCheck(ctx, claim, s.evidence.String())
	}})
	add(action{name: "evidence", help: "evidence — paste evidence lines, end with a blank line", handler: func(ctx context.Context, arg string) {
		s.readEvidence()
	}})
	add(action{name: "example", help: "example — stage a sample claim and evidence; run 'check' to submit", handler: func(ctx context.Context, arg string) {
		s.claim = exampleClaim
		s.evidence.Reset()
		s.evidence.WriteString(exampleEvidence)
		fmt.Printf("staged claim: %s\nstaged evidence: %s\nrun 'check' to submit\n", exampleClaim, exampleEvidence)
	}})
	add(action{name: "clear", help: "clear — reset the result area and the staged claim and evidence", handler: func(ctx context.Context, arg string) {
		s.claim = ""
		s.evidence.Reset()
		s.state = ui.Reset(s.state)
		s.renderer.Render(s.state)
	}})
	add(action{name: "debug", help: "debug — toggle the debug trace panel", handler: func(ctx context.Context, arg string) {
		s.state = ui.ToggleDebug(s.state)
		s.renderer.Render(s.state)
	}})
	add(action{name: "status", help: "status — re-run the connectivity probe", handler: func(ctx context.Context, arg string) {
		s.probe(ctx)
		s.renderer.Render(s.state)
	}})
	add(action{name: "help", help: "help — list commands", handler: func(ctx context.Context, arg string) {
		names := make([]string, 0, len(actions))
		for name := range actions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s\n", actions[name].help)
		}
		fmt.Println("  quit — exit")
	}})
	return actions
}

// readEvidence collects evidence lines from the shared REPL scanner until a
// blank line.
func (s *session) readEvidence() {
	fmt.Println("Paste evidence lines; finish with an empty line.")
	s.evidence.Reset()
	n := 0
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		s.evidence.WriteString(line)
		s.evidence.WriteString("\n")
		n++
	}
	fmt.Printf("staged %d evidence line(s)\n", n)
}

func (s *session) writeReports() error {
	if s.opts.outputJSONL != "" {
		if err := writeJSONLFile(s.opts.outputJSONL, s.records, s.opts.verbose); err != nil {
			return err
		}
	}
	if s.opts.outputHTML != "" {
		page := output.PageData{
			Title:       "TruthLayer Check Report",
			GeneratedAt: time.Now().UTC(),
			BaseURL:     s.tc.BaseURL(),
			Summary:     output.BuildSummary(s.records),
			Results:     s.records,
		}
		if err := writeHTMLFile(s.opts.outputHTML, page, s.opts.verbose); err != nil {
			return err
		}
	}
	return nil
}

func loadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var entries []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error for %q: %w", path, err)
	}
	return entries, nil
}

func writeJSONLFile(path string, records []output.Record, verbose bool) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create JSONL directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create JSONL file: %w", err)
	}
	defer f.Close()
	if err := output.WriteJSONL(f, records); err != nil {
		return fmt.Errorf("write JSONL: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[write] JSONL check log -> %s\n", path)
	}
	return nil
}

func writeHTMLFile(path string, page output.PageData, verbose bool) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create HTML directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create HTML file: %w", err)
	}
	defer f.Close()
	if err := output.RenderHTML(f, page); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[write] HTML report -> %s\n", path)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
