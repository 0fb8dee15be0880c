package remediate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tinybird-labs/tb-migrate/internal/inventory"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/files"
)

// IncludesBackupDir is the folder created under the project root for
// relocated .incl fragments.
const IncludesBackupDir = "includes_backup"

var includeStatement = regexp.MustCompile(`(?i)^\s*INCLUDE\s+`)

// fixIncludeFiles comments out inline INCLUDE statements in pipe, datasource
// and endpoint files and, after its own confirmation, moves standalone .incl
// fragments into a backup directory under the project root.
func (e *Engine) fixIncludeFiles(inv *inventory.Inventory) ([]string, []error) {
	var fixed []string
	var errs []error

	for _, file := range inv.DefinitionFiles() {
		content, err := os.ReadFile(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %q: %w", file, err))
			continue
		}

		rewritten, changed := commentIncludeStatements(strings.Split(string(content), "\n"))
		if !changed {
			continue
		}

		if _, err := e.backups.Backup(file); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.WriteFile(file, []byte(strings.Join(rewritten, "\n")), 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %q: %w", file, err))
			continue
		}
		fixed = append(fixed, fmt.Sprintf("Commented out INCLUDE statements in %s", file))
	}

	if len(inv.Includes) > 0 {
		moved, moveErrs := e.moveIncludeFiles(inv)
		fixed = append(fixed, moved...)
		errs = append(errs, moveErrs...)
	}

	return fixed, errs
}

// commentIncludeStatements prefixes every active INCLUDE line with the fix
// marker, keeping the original statement text verbatim. Already commented
// lines pass through, which makes the rewrite idempotent.
func commentIncludeStatements(lines []string) ([]string, bool) {
	changed := false
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") || !includeStatement.MatchString(line) {
			out = append(out, line)
			continue
		}
		out = append(out, FixMarker+line)
		changed = true
	}

	return out, changed
}

// moveIncludeFiles relocates every .incl file into IncludesBackupDir under
// the scanned root, gated by its own confirmation.
func (e *Engine) moveIncludeFiles(inv *inventory.Inventory) ([]string, []error) {
	e.logger.Info("found include files", "count", len(inv.Includes))
	if !e.confirmer.Confirm("Move .incl files to a backup directory?") {
		return nil, nil
	}

	backupDir := filepath.Join(inv.Root, IncludesBackupDir)
	if err := files.CreateFolderIfNotExists(backupDir); err != nil {
		return nil, []error{err}
	}

	var moved []string
	var errs []error
	for _, inclFile := range inv.Includes {
		target := filepath.Join(backupDir, filepath.Base(inclFile))
		if err := files.MoveFile(inclFile, target); err != nil {
			errs = append(errs, err)
			continue
		}
		moved = append(moved, fmt.Sprintf("Moved %s to %s", inclFile, target))
	}

	return moved, errs
}
