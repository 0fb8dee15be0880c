package remediate

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tinybird-labs/tb-migrate/internal/inventory"
)

var sinkDeclaration = regexp.MustCompile(`(?i)^\s*TYPE\s+sink\b`)

// fixSinks comments out sink declarations in every triggering pipe file. The
// sink block is scanned line by line; see commentSinkBlocks for the boundary
// policy.
func (e *Engine) fixSinks(inv *inventory.Inventory) ([]string, []error) {
	var fixed []string
	var errs []error

	for _, pipeFile := range inv.Pipes {
		content, err := os.ReadFile(pipeFile)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %q: %w", pipeFile, err))
			continue
		}

		rewritten, changed := commentSinkBlocks(strings.Split(string(content), "\n"))
		if !changed {
			continue
		}

		if _, err := e.backups.Backup(pipeFile); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.WriteFile(pipeFile, []byte(strings.Join(rewritten, "\n")), 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %q: %w", pipeFile, err))
			continue
		}
		fixed = append(fixed, fmt.Sprintf("Commented out sink declarations in %s", pipeFile))
	}

	return fixed, errs
}

// Line-oriented two-state scan over a pipe file.
//
// outside a block: a line declaring `TYPE sink` (not already commented)
// is commented out and opens a sink block. Everything else passes through.
//
// inside a block: a blank line, a comment, or a line starting with NODE or
// SQL closes the block and is kept as-is. Any other non-blank line, including
// EXPORT_*/IMPORT_* declarations, still belongs to the sink and is commented
// out.
func commentSinkBlocks(lines []string) ([]string, bool) {
	type blockState int
	const (
		outsideBlock blockState = iota
		insideBlock
	)

	state := outsideBlock
	changed := false
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch state {
		case outsideBlock:
			if sinkDeclaration.MatchString(line) && !strings.HasPrefix(trimmed, "#") {
				out = append(out, FixMarker+line)
				state = insideBlock
				changed = true
				continue
			}
			out = append(out, line)

		case insideBlock:
			if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
				strings.HasPrefix(trimmed, "NODE") || strings.HasPrefix(trimmed, "SQL") {
				out = append(out, line)
				state = outsideBlock
				continue
			}
			out = append(out, FixMarker+line)
		}
	}

	return out, changed
}
