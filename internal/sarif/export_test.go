package sarif

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinybird-labs/tb-migrate/internal/checks"
)

func TestFromFindings(t *testing.T) {
	findings := []checks.Finding{
		{
			Name:         checks.CheckSinks,
			Status:       checks.StatusFail,
			Issues:       []string{"Sink found in pipes/export.pipe: Sinks are not supported in Tinybird Forward"},
			FilesChecked: []string{"pipes/export.pipe", "pipes/clean.pipe"},
			Details:      "Checked all .pipe files for TYPE sink declarations.",
		},
		{
			Name:         checks.CheckEndpointTypes,
			Status:       checks.StatusPass,
			FilesChecked: []string{"endpoints/top.endpoint"},
			Details:      "Checked endpoint file structures.",
		},
	}

	report, err := FromFindings(findings)
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)

	run := report.Runs[0]
	assert.Equal(t, "tb-migrate", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 2)
	require.Len(t, run.Results, 1)

	result := run.Results[0]
	assert.Equal(t, "sinks-check", *result.RuleID)
	assert.Equal(t, "error", *result.Level)
	require.Len(t, result.Locations, 1)
	assert.Equal(t, "pipes/export.pipe",
		*result.Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestToSarifLevel(t *testing.T) {
	assert.Equal(t, "error", toSarifLevel(checks.StatusFail))
	assert.Equal(t, "warning", toSarifLevel(checks.StatusWarning))
	assert.Equal(t, "note", toSarifLevel(checks.StatusPass))
	assert.Equal(t, "note", toSarifLevel(checks.StatusFixed))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.sarif")
	findings := []checks.Finding{
		{
			Name:         checks.CheckSharedDatasources,
			Status:       checks.StatusFail,
			Issues:       []string{"Shared datasource found in users.datasource: Shared datasources are not supported in Forward"},
			FilesChecked: []string{"users.datasource"},
		},
	}

	require.NoError(t, WriteReport(path, findings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shared-datasources-check")
	assert.Contains(t, string(data), "users.datasource")
}
