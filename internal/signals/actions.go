package signals

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/site-growth-analyzer/internal/common"
	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/analyzer"
	"github.com/dtnitsch/site-growth-analyzer/pkg/detector"
	"github.com/urfave/cli/v2"
)

// Output is what the signals command prints: the raw extracted signals
// next to the descriptive page profile.
type Output struct {
	URL         string             `json:"url" yaml:"url"`
	FinalURL    string             `json:"final_url" yaml:"final_url"`
	StatusCode  int                `json:"status_code" yaml:"status_code"`
	ContentType string             `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Signals     models.PageSignals `json:"signals" yaml:"signals"`
	Profile     *detector.Profile  `json:"profile" yaml:"profile"`
}

func SignalsAction(c *cli.Context) error {
	rt, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer rt.Close()

	target, err := common.NormalizeURL(c.String("url"))
	if err != nil {
		return fmt.Errorf("invalid --url: %w", err)
	}

	a := analyzer.New(rt.NewFetcher(), rt.Rules, analyzer.WithLogger(rt.Logger))
	out := a.Inspect(c.Context, target)
	if !out.OK() {
		return cli.Exit(out.Err.Error(), 2)
	}

	result := Output{
		URL:         target,
		FinalURL:    out.Page.FinalURL,
		StatusCode:  out.Page.StatusCode,
		ContentType: out.Page.ContentType,
		Signals:     out.Signals,
		Profile:     detector.Analyze(out.Page.FinalURL, out.Page.Body),
	}

	data, err := common.Marshal(result, strings.ToLower(c.String("format")))
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, string(data))
	return nil
}
