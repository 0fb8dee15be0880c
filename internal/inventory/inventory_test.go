package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScanClassifiesByExtension(t *testing.T) {
	root := t.TempDir()
	ds := writeFixture(t, root, "events.datasource", "SCHEMA >\n")
	pipe := writeFixture(t, root, "pipes/hourly.pipe", "NODE hourly\nSQL >\n")
	ep := writeFixture(t, root, "endpoints/top.endpoint", "NODE endpoint\n")
	incl := writeFixture(t, root, "shared.incl", "SQL >\n")
	writeFixture(t, root, "README.md", "docs\n")

	inv, err := Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{ds}, inv.Datasources)
	assert.Equal(t, []string{pipe}, inv.Pipes)
	assert.Equal(t, []string{ep}, inv.Endpoints)
	assert.Equal(t, []string{incl}, inv.Includes)
	assert.Empty(t, inv.Vendor)
}

func TestScanVendorBucketIsAdditive(t *testing.T) {
	root := t.TempDir()
	vendored := writeFixture(t, root, "vendor/legacy/users.datasource", "SCHEMA >\n")

	inv, err := Scan(root)
	require.NoError(t, err)

	// a file under vendor/ must be counted in both buckets
	assert.Contains(t, inv.Datasources, vendored)
	assert.Contains(t, inv.Vendor, vendored)
}

func TestScanMissingRootReturnsEmptyInventory(t *testing.T) {
	inv, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)

	assert.Zero(t, inv.Total())
	assert.Empty(t, inv.DefinitionFiles())
}

func TestScanCollectsVersionMarkers(t *testing.T) {
	root := t.TempDir()
	tagged := writeFixture(t, root, ".tinyenv/VERSION", "0.0.1\n")
	rules := writeFixture(t, root, "rules/forward.mdc", "rules\n")
	writeFixture(t, root, "pipes/hourly.pipe", "NODE hourly\n")

	inv, err := Scan(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{tagged, rules}, inv.VersionMarkers)
}

func TestScanVersionMarkerInDirectorySegment(t *testing.T) {
	root := t.TempDir()
	tagged := writeFixture(t, root, "versions/tags.txt", "v1\n")

	inv, err := Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{tagged}, inv.VersionMarkers)
}

func TestScanRootNameDoesNotTaintVersionMarkers(t *testing.T) {
	root := filepath.Join(t.TempDir(), "versioned-project")
	writeFixture(t, root, "pipes/hourly.pipe", "NODE hourly\n")

	inv, err := Scan(root)
	require.NoError(t, err)

	assert.Empty(t, inv.VersionMarkers)
}

func TestDefinitionFilesOrder(t *testing.T) {
	root := t.TempDir()
	ds := writeFixture(t, root, "a.datasource", "")
	pipe := writeFixture(t, root, "b.pipe", "")
	ep := writeFixture(t, root, "c.endpoint", "")

	inv, err := Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{pipe, ds, ep}, inv.DefinitionFiles())
}
