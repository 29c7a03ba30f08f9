package analyze

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dtnitsch/site-growth-analyzer/internal/common"
	"github.com/dtnitsch/site-growth-analyzer/pkg/analyzer"
	"github.com/dtnitsch/site-growth-analyzer/pkg/storage"
	"github.com/urfave/cli/v2"
)

func AnalyzeAction(c *cli.Context) error {
	rt, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer rt.Close()
	logger := rt.Logger
	startTime := time.Now()

	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "yaml" && format != "yml" {
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}

	urls := SplitURLs(c.StringSlice("url"))
	if len(urls) == 0 {
		return fmt.Errorf("no URLs provided via --url flag")
	}
	logger.Info("Analyzing URLs", "count", len(urls), "goal", c.String("goal"), "workers", c.Int("workers"))

	a := analyzer.New(rt.NewFetcher(), rt.Rules, analyzer.WithLogger(logger))
	results := Run(c.Context, a, urls, c.String("goal"), c.Int("workers"))

	if dir := c.String("output-dir"); dir != "" {
		if err := saveReports(results, dir, format, logger); err != nil {
			return err
		}
	}

	output := BuildOutput(results, time.Since(startTime))
	var payload any = output
	if len(results) == 1 && c.String("output-dir") == "" {
		payload = results[0].Report
	}

	data, err := common.Marshal(payload, format)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if path := c.String("output"); path != "" {
		s := &storage.Storage{}
		if err := s.SaveFile(path, data); err != nil {
			return err
		}
		logger.Info("Output written", "path", path)
	} else {
		fmt.Fprint(os.Stdout, string(data))
	}

	return exitStatus(output.Stats, c.Int("fail-under"))
}

// SplitURLs accepts repeated flags and comma separated lists and drops
// blanks.
func SplitURLs(values []string) []string {
	var urls []string
	for _, v := range values {
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

func saveReports(results []Result, dir, format string, logger *slog.Logger) error {
	s := &storage.Storage{}
	now := time.Now()
	ext := common.Extension(format)

	for i := range results {
		data, err := common.Marshal(results[i].Report, format)
		if err != nil {
			return fmt.Errorf("failed to marshal report for %s: %w", results[i].URL, err)
		}
		path := storage.ReportPath(dir, results[i].URL, ext, now)
		if err := s.SaveFile(path, data); err != nil {
			logger.Error("Failed to save report", "url", results[i].URL, "path", path, "error", err)
			results[i].SaveError = err.Error()
			continue
		}
		results[i].File = path
	}
	return nil
}

// exitStatus mirrors the fetch exit codes: 2 when every URL failed, 1 when
// some failed or a score fell below failUnder.
func exitStatus(stats Stats, failUnder int) error {
	switch {
	case stats.Total > 0 && stats.Failed == stats.Total:
		return cli.Exit("", 2)
	case stats.Failed > 0:
		return cli.Exit("", 1)
	case failUnder > 0 && stats.MinScore < failUnder:
		return cli.Exit(fmt.Sprintf("lowest score %d is below --fail-under %d", stats.MinScore, failUnder), 1)
	}
	return nil
}
