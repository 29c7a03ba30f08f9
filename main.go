package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/site-growth-analyzer/internal/analyze"
	"github.com/dtnitsch/site-growth-analyzer/internal/serve"
	"github.com/dtnitsch/site-growth-analyzer/internal/signals"
	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "site-growth-analyzer",
		Usage: "Score a web page for conversion, SEO and trust problems",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "YAML config file (ignored when missing)",
				EnvVars: []string{"SGA_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write logs to this rotating file",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.DurationFlag{
				Name:  "fetch-timeout",
				Value: models.DefaultFetchTimeout,
				Usage: "Timeout for fetching a page",
			},
			&cli.StringFlag{
				Name:  "rules",
				Usage: "YAML file replacing the built-in scoring rules",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Value:   models.DefaultAddr,
						Usage:   "Listen address for the API",
						EnvVars: []string{"SGA_ADDR"},
					},
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Serve /metrics on a separate address instead of the API router",
					},
					&cli.StringSliceFlag{
						Name:  "allowed-origins",
						Usage: "CORS origins allowed to call the API (default: any)",
					},
				},
			},
			{
				Name:   "analyze",
				Usage:  "Analyze one or more URLs and print the report",
				Action: analyze.AnalyzeAction,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "URL to analyze; repeat or comma separate for a batch",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "goal",
						Usage: "business, portfolio, blog or ecommerce",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "json",
						Usage: "json or yaml",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write output to this file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Save one report file per URL in this directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 4,
						Usage: "Concurrent analyses for batches",
					},
					&cli.IntFlag{
						Name:  "fail-under",
						Usage: "Exit 1 when any overall score is below this value",
					},
				},
			},
			{
				Name:   "signals",
				Usage:  "Print the extracted page signals and page profile",
				Action: signals.SignalsAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "json or yaml",
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start cheat sheet",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
