package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCreatesSiblingCopy(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "events.datasource")
	require.NoError(t, os.WriteFile(original, []byte("SCHEMA >\n  id Int64\n"), 0644))

	svc := NewService(hclog.NewNullLogger())
	backupPath, err := svc.Backup(original)
	require.NoError(t, err)

	assert.Equal(t, original+".backup", backupPath)
	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "SCHEMA >\n  id Int64\n", string(data))

	// the source must be untouched
	data, err = os.ReadFile(original)
	require.NoError(t, err)
	assert.Equal(t, "SCHEMA >\n  id Int64\n", string(data))
}

func TestBackupRunsOncePerFile(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "hourly.pipe")
	require.NoError(t, os.WriteFile(original, []byte("original"), 0644))

	svc := NewService(hclog.NewNullLogger())
	first, err := svc.Backup(original)
	require.NoError(t, err)

	// mutate the file, then ask for a backup again: the first copy wins
	require.NoError(t, os.WriteFile(original, []byte("mutated"), 0644))
	second, err := svc.Backup(original)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.Equal(t, 1, svc.Count())
}

func TestBackupMissingFileFails(t *testing.T) {
	svc := NewService(hclog.NewNullLogger())
	_, err := svc.Backup(filepath.Join(t.TempDir(), "gone.pipe"))
	assert.Error(t, err)
	assert.Equal(t, 0, svc.Count())
}

func TestPathReportsTrackedBackups(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "top.endpoint")
	require.NoError(t, os.WriteFile(original, []byte("SQL >\n"), 0644))

	svc := NewService(hclog.NewNullLogger())
	_, ok := svc.Path(original)
	assert.False(t, ok)

	backupPath, err := svc.Backup(original)
	require.NoError(t, err)

	tracked, ok := svc.Path(original)
	assert.True(t, ok)
	assert.Equal(t, backupPath, tracked)
}
