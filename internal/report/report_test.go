package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybird-labs/tb-migrate/internal/checks"
	"github.com/tinybird-labs/tb-migrate/internal/git"
	"github.com/tinybird-labs/tb-migrate/internal/summarize"
)

func sampleFindings() []checks.Finding {
	return []checks.Finding{
		{
			Name:         checks.CheckVersionTags,
			Status:       checks.StatusWarning,
			Issues:       []string{"No version tag files found. Version management is recommended for migration tracking."},
			Details:      "Checked for version tag files and version management practices.",
			FilesChecked: nil,
		},
		{
			Name:         checks.CheckSinks,
			Status:       checks.StatusFixed,
			Issues:       []string{"Sink found in a.pipe: Sinks are not supported in Tinybird Forward"},
			FilesChecked: []string{"a.pipe", "b.pipe"},
			AutoFixable:  true,
			FixedIssues:  []string{"Commented out sink declarations in a.pipe"},
		},
	}
}

func TestRenderIncludesCheckSections(t *testing.T) {
	r := New("./tinybird", sampleFindings(), summarize.Narrative{
		Summary:       "One sink issue was found and fixed.",
		MigrationPlan: "1. Re-run the check.",
	}, nil)

	content, err := r.Render()
	require.NoError(t, err)

	assert.Contains(t, content, "# Tinybird Classic to Forward Migration Plan")
	assert.Contains(t, content, "### 1. Version Tags Check")
	assert.Contains(t, content, "### 2. Sinks Check")
	assert.Contains(t, content, "**Status**: FIXED")
	assert.Contains(t, content, "- **Files Checked**: 2")
	assert.Contains(t, content, "## Executive Summary")
	assert.Contains(t, content, "One sink issue was found and fixed.")
	assert.Contains(t, content, "## Migration Plan")
	assert.Contains(t, content, "1. Re-run the check.")
	assert.Contains(t, content, "**Total**: 1 issues were automatically resolved.")
	assert.Contains(t, content, "BI Connector Deprecation")
	assert.NotEmpty(t, r.RunID)
}

func TestRenderOmitsEmptyNarrativeSections(t *testing.T) {
	r := New("./tinybird", sampleFindings(), summarize.Narrative{}, nil)

	content, err := r.Render()
	require.NoError(t, err)

	assert.NotContains(t, content, "## Executive Summary")
	assert.NotContains(t, content, "## Migration Plan")
	// the fixed deprecation warning is always present
	assert.Contains(t, content, "BI Connector Deprecation")
}

func TestRenderWithoutFixes(t *testing.T) {
	findings := []checks.Finding{
		{Name: checks.CheckSinks, Status: checks.StatusPass, FilesChecked: []string{"a.pipe"}},
	}
	r := New("./tinybird", findings, summarize.Narrative{}, nil)

	content, err := r.Render()
	require.NoError(t, err)

	assert.Contains(t, content, "No automatic fixes were applied during this run.")
	assert.Contains(t, content, "- **Issues**: None")
	assert.Equal(t, 0, r.TotalFixes())
}

func TestRenderIncludesRepositoryMetadata(t *testing.T) {
	repo := &git.RepositoryMetadata{
		BranchName: "main",
		CommitHash: "0123abc",
		RemoteURL:  "https://github.com/acme/analytics",
	}
	r := New("./tinybird", sampleFindings(), summarize.Narrative{}, repo)

	content, err := r.Render()
	require.NoError(t, err)

	assert.Contains(t, content, "- **Branch**: main")
	assert.Contains(t, content, "- **Commit**: 0123abc")
	assert.Contains(t, content, "- **Repository**: https://github.com/acme/analytics")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.md")
	r := New("./tinybird", sampleFindings(), summarize.Narrative{}, nil)

	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Check Results")
}
