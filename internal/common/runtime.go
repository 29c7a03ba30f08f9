package common

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/fetcher"
	"github.com/dtnitsch/site-growth-analyzer/pkg/rules"
	"github.com/urfave/cli/v2"
)

// Runtime is the configuration, rules and logger shared by every command.
type Runtime struct {
	Config *models.Config
	Rules  *rules.Rules
	Logger *slog.Logger

	logCloser io.Closer
}

// Setup loads the config file named by --config, applies the global flag
// overrides and builds the logger.
func Setup(c *cli.Context) (*Runtime, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("fetch-timeout") {
		cfg.FetchTimeout = c.Duration("fetch-timeout")
	}
	if c.IsSet("rules") {
		cfg.RulesFile = c.String("rules")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r := rules.Default()
	if cfg.RulesFile != "" {
		if r, err = rules.Load(cfg.RulesFile); err != nil {
			return nil, err
		}
	}

	logger, closer := NewLogger(LoggerOptions{
		Level: cfg.LogLevel,
		Quiet: c.Bool("quiet"),
		File:  cfg.LogFile,
	})

	return &Runtime{Config: cfg, Rules: r, Logger: logger, logCloser: closer}, nil
}

func (rt *Runtime) NewFetcher() *fetcher.Fetcher {
	return fetcher.NewFetcher(fetcher.Options{
		Timeout:      rt.Config.FetchTimeout,
		MaxBodyBytes: rt.Config.MaxBodyBytes,
		UserAgent:    rt.Config.UserAgent,
	})
}

func (rt *Runtime) Close() error {
	return rt.logCloser.Close()
}
