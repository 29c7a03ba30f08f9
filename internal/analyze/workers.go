package analyze

import (
	"context"
	"math"
	"time"

	"github.com/dtnitsch/site-growth-analyzer/internal/common"
	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/report"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Analyzer is the part of the pipeline the batch runner needs.
type Analyzer interface {
	AnalyzeForGoal(ctx context.Context, url, goal string) models.Report
}

// Run analyzes every URL with at most workers in flight. Results keep the
// input order. Inputs that cannot be turned into a URL get the degraded
// report without a fetch.
func Run(ctx context.Context, a Analyzer, urls []string, goal string, workers int) []Result {
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]Result, len(urls))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, raw := range urls {
		g.Go(func() error {
			res := Result{URL: raw}
			target, err := common.NormalizeURL(raw)
			if err != nil {
				res.Report = report.ErrorReport(err)
			} else {
				res.Target = target
				res.Report = a.AnalyzeForGoal(gCtx, target, goal)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func BuildOutput(results []Result, elapsed time.Duration) FinalOutput {
	stats := Stats{Total: len(results), DurationMS: elapsed.Milliseconds()}

	sum := 0
	stats.MinScore = math.MaxInt
	for _, r := range results {
		if r.Report.Failed() {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		sum += r.Report.OverallScore
		stats.MinScore = min(stats.MinScore, r.Report.OverallScore)
	}
	if stats.Succeeded > 0 {
		stats.AverageScore = math.Round(float64(sum)/float64(stats.Succeeded)*10) / 10
	} else {
		stats.MinScore = 0
	}

	status := "success"
	switch {
	case stats.Total > 0 && stats.Failed == stats.Total:
		status = "failure"
	case stats.Failed > 0:
		status = "partial_failure"
	}

	return FinalOutput{Status: status, Results: results, Stats: stats}
}
