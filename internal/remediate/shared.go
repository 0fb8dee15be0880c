package remediate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tinybird-labs/tb-migrate/internal/inventory"
)

var (
	sharedWithDeclaration = regexp.MustCompile(`(?i)SHARED_WITH\s*>`)
	// a blank line followed by a capitalized declaration closes the section
	sharedSectionEnd = regexp.MustCompile(`\n[ \t]*\n[A-Z]`)
	blankLineRuns    = regexp.MustCompile(`\n{3,}`)
)

// fixSharedDatasources removes SHARED_WITH sections from triggering
// datasource files and, after its own confirmation, deletes the vendor
// directory wholesale.
func (e *Engine) fixSharedDatasources(inv *inventory.Inventory) ([]string, []error) {
	var fixed []string
	var errs []error

	for _, dsFile := range inv.Datasources {
		content, err := os.ReadFile(dsFile)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %q: %w", dsFile, err))
			continue
		}

		rewritten, changed := stripSharedWith(string(content))
		if !changed {
			continue
		}

		if _, err := e.backups.Backup(dsFile); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.WriteFile(dsFile, []byte(rewritten), 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %q: %w", dsFile, err))
			continue
		}
		fixed = append(fixed, fmt.Sprintf("Removed SHARED_WITH declaration from %s", dsFile))
	}

	if len(inv.Vendor) > 0 {
		vendorFixed, err := e.removeVendorDir(inv)
		if err != nil {
			errs = append(errs, err)
		}
		fixed = append(fixed, vendorFixed...)
	}

	return fixed, errs
}

// stripSharedWith deletes every SHARED_WITH section: from the declaration up
// to (but not including) the next blank line followed by a capitalized
// declaration, or to end of file. Leftover runs of blank lines are collapsed
// to a single blank line.
func stripSharedWith(content string) (string, bool) {
	changed := false

	for {
		loc := sharedWithDeclaration.FindStringIndex(content)
		if loc == nil {
			break
		}
		changed = true

		rest := content[loc[0]:]
		if end := sharedSectionEnd.FindStringIndex(rest); end != nil {
			content = content[:loc[0]] + rest[end[0]:]
		} else {
			content = content[:loc[0]]
		}
	}

	if changed {
		content = blankLineRuns.ReplaceAllString(content, "\n\n")
	}
	return content, changed
}

// removeVendorDir locates the top-most ancestor directory literally named
// "vendor" and deletes it after explicit confirmation.
func (e *Engine) removeVendorDir(inv *inventory.Inventory) ([]string, error) {
	vendorDir := topVendorDir(inv.Vendor[0])
	if vendorDir == "" {
		return nil, nil
	}
	if _, err := os.Stat(vendorDir); os.IsNotExist(err) {
		return nil, nil
	}

	e.logger.Info("found vendor directory", "path", vendorDir)
	if !e.confirmer.Confirm(fmt.Sprintf("Remove entire vendor directory '%s'?", vendorDir)) {
		return nil, nil
	}

	if err := os.RemoveAll(vendorDir); err != nil {
		return nil, fmt.Errorf("failed to remove vendor directory %q: %w", vendorDir, err)
	}
	return []string{fmt.Sprintf("Removed vendor directory %s", vendorDir)}, nil
}

// topVendorDir walks upward from the file's parent and returns the highest
// directory named "vendor", or "" when the walk reaches the filesystem root
// without one.
func topVendorDir(vendorFile string) string {
	found := ""
	dir := filepath.Dir(vendorFile)
	for {
		if filepath.Base(dir) == "vendor" {
			found = dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return found
		}
		dir = parent
	}
}
