// Package analyzer runs the fetch, extract, score and assemble pipeline
// for a single page.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/fetcher"
	"github.com/dtnitsch/site-growth-analyzer/pkg/findings"
	"github.com/dtnitsch/site-growth-analyzer/pkg/goals"
	"github.com/dtnitsch/site-growth-analyzer/pkg/parser"
	"github.com/dtnitsch/site-growth-analyzer/pkg/report"
	"github.com/dtnitsch/site-growth-analyzer/pkg/rules"
	"github.com/dtnitsch/site-growth-analyzer/pkg/scorer"
)

// Fetcher retrieves a page. *fetcher.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// Recorder receives pipeline measurements.
type Recorder interface {
	RecordFetch(kind string, elapsed time.Duration)
	RecordAnalysis(outcome string, overallScore int)
}

type nopRecorder struct{}

func (nopRecorder) RecordFetch(string, time.Duration) {}
func (nopRecorder) RecordAnalysis(string, int)        {}

// ParseError wraps an unexpected failure while extracting signals.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Outcome carries either the extracted signals or the error that
// prevented extraction. Exactly one of the two is meaningful.
type Outcome struct {
	URL     string
	Signals models.PageSignals
	Page    *fetcher.Page
	Err     error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

type Analyzer struct {
	fetcher   Fetcher
	parser    *parser.Parser
	scorer    *scorer.Scorer
	assembler *report.Assembler
	tailor    *goals.Tailor
	metrics   Recorder
	log       *slog.Logger
}

type Option func(*Analyzer)

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.metrics = r }
}

func New(f Fetcher, r *rules.Rules, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:   f,
		parser:    parser.New(r),
		scorer:    scorer.New(r),
		assembler: report.New(r),
		tailor:    goals.New(r),
		metrics:   nopRecorder{},
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Inspect fetches url and extracts its signals.
func (a *Analyzer) Inspect(ctx context.Context, url string) Outcome {
	out := Outcome{URL: url}

	a.log.Debug("Fetching page", "url", url)
	start := time.Now()
	page, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.metrics.RecordFetch(fetchErrorKind(err), time.Since(start))
		a.log.Warn("Fetch failed", "url", url, "error", err)
		out.Err = err
		return out
	}
	a.metrics.RecordFetch("ok", page.Elapsed)

	out.Page = page
	out.Signals, out.Err = a.extract(page)
	if out.Err != nil {
		a.log.Error("Extraction failed", "url", url, "error", out.Err)
	}
	return out
}

func (a *Analyzer) extract(page *fetcher.Page) (signals models.PageSignals, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ParseError{URL: page.FinalURL, Err: fmt.Errorf("panic during extraction: %v", r)}
		}
	}()
	return a.parser.Extract(page.Body, page.FinalURL, page.Elapsed.Seconds()), nil
}

// Report turns an outcome into a report, substituting the degraded report
// for any failure.
func (a *Analyzer) Report(o Outcome) models.Report {
	if !o.OK() {
		rep := report.ErrorReport(o.Err)
		a.metrics.RecordAnalysis("error", rep.OverallScore)
		return rep
	}

	sig := o.Signals
	scores := a.scorer.Score(sig)
	f := findings.Generate(sig, scores, sig.LoadTimeSeconds)
	rep := a.assembler.Assemble(sig, scores, f, sig.Hostname)

	a.metrics.RecordAnalysis("ok", rep.OverallScore)
	a.log.Info("Page analyzed",
		"url", o.URL,
		"overall_score", rep.OverallScore,
		"load_time_seconds", sig.LoadTimeSeconds,
		"cta_count", sig.CTACount())
	return rep
}

// Analyze runs the full pipeline without goal tailoring.
func (a *Analyzer) Analyze(ctx context.Context, url string) models.Report {
	return a.Report(a.Inspect(ctx, url))
}

// AnalyzeForGoal runs the full pipeline and applies the goal table.
func (a *Analyzer) AnalyzeForGoal(ctx context.Context, url, goal string) models.Report {
	return a.tailor.Apply(a.Analyze(ctx, url), goal)
}

func fetchErrorKind(err error) string {
	var fe *fetcher.FetchError
	if errors.As(err, &fe) {
		return string(fe.Kind)
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "unknown"
}
