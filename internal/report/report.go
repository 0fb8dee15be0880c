package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tinybird-labs/tb-migrate/internal/checks"
	"github.com/tinybird-labs/tb-migrate/internal/git"
	"github.com/tinybird-labs/tb-migrate/internal/summarize"
)

// Report aggregates one finding per rule plus the synthesized narrative. It
// is built once at the end of a run and serialized to a markdown document.
type Report struct {
	RunID         string
	GeneratedAt   time.Time
	ProjectFolder string
	Repository    *git.RepositoryMetadata
	Findings      []checks.Finding
	Summary       string
	MigrationPlan string
}

// New assembles the final report. The repository metadata may be nil when the
// project folder is not inside a git working tree.
func New(projectFolder string, findings []checks.Finding, narrative summarize.Narrative, repo *git.RepositoryMetadata) *Report {
	return &Report{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		ProjectFolder: projectFolder,
		Repository:    repo,
		Findings:      findings,
		Summary:       narrative.Summary,
		MigrationPlan: narrative.MigrationPlan,
	}
}

// TotalFixes counts the auto-fixes applied across all checks.
func (r *Report) TotalFixes() int {
	total := 0
	for _, finding := range r.Findings {
		total += len(finding.FixedIssues)
	}
	return total
}

// FixedFindings returns the findings that had at least one fix applied.
func (r *Report) FixedFindings() []checks.Finding {
	var fixed []checks.Finding
	for _, finding := range r.Findings {
		if len(finding.FixedIssues) > 0 {
			fixed = append(fixed, finding)
		}
	}
	return fixed
}

// WriteFile renders the report and writes it to the given path.
func (r *Report) WriteFile(path string) error {
	content, err := r.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report %q: %w", path, err)
	}
	return nil
}
