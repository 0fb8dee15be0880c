package summarize

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/tinybird-labs/tb-migrate/internal/checks"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/config"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/httpclient"
)

// Narrative is the free-text assessment produced by the external
// summarization service. Either field may be empty; the report simply omits
// empty sections.
type Narrative struct {
	Summary       string `json:"summary"`
	MigrationPlan string `json:"migration_plan"`
}

// Summarizer turns structured findings into a narrative assessment. The core
// has no dependency on how that text is produced.
type Summarizer interface {
	Summarize(findings []checks.Finding) (Narrative, error)
}

// Disabled is the no-op summarizer used when no service is configured. The
// report degrades to omitting the narrative sections.
type Disabled struct{}

func (Disabled) Summarize([]checks.Finding) (Narrative, error) {
	return Narrative{}, nil
}

// request is the payload sent to the summarization service.
type request struct {
	Findings     []checks.Finding `json:"findings"`
	CheckResults string           `json:"check_results"`
}

// Client calls an HTTP summarization service.
type Client struct {
	resty  *resty.Client
	url    string
	logger hclog.Logger
}

func NewClient(cfg *config.Config, logger hclog.Logger) *Client {
	return &Client{
		resty:  httpclient.InitializeRestyClient(logger, cfg),
		url:    cfg.Summarizer.URL,
		logger: logger,
	}
}

// Summarize posts the findings and returns the narrative fields. Transport
// and service errors are returned for the caller to degrade on; they never
// fail a migration check run.
func (c *Client) Summarize(findings []checks.Finding) (Narrative, error) {
	payload := request{
		Findings:     findings,
		CheckResults: FormatCheckResults(findings),
	}

	var narrative Narrative
	resp, err := c.resty.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&narrative).
		Post(c.url)
	if err != nil {
		return Narrative{}, fmt.Errorf("summarizer request failed: %w", err)
	}
	if resp.IsError() {
		return Narrative{}, fmt.Errorf("summarizer returned status %d", resp.StatusCode())
	}

	c.logger.Debug("summarizer responded", "status", resp.StatusCode())
	return narrative, nil
}

// FormatCheckResults renders the findings as the plain-text block the
// summarization service consumes alongside the structured payload.
func FormatCheckResults(findings []checks.Finding) string {
	var b strings.Builder
	for _, finding := range findings {
		issues := "None"
		if len(finding.Issues) > 0 {
			issues = strings.Join(finding.Issues, "; ")
		}
		fmt.Fprintf(&b, "**%s**: %s\n", finding.Name, finding.Status)
		fmt.Fprintf(&b, "Issues: %s\n", issues)
		fmt.Fprintf(&b, "Files checked: %d\n\n", len(finding.FilesChecked))
	}
	return b.String()
}
