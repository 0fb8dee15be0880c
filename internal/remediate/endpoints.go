package remediate

import (
	"fmt"
	"os"
	"strings"

	"github.com/tinybird-labs/tb-migrate/internal/inventory"
)

// fixEndpointTypes prepends a NODE declaration to every endpoint file that
// lacks one.
func (e *Engine) fixEndpointTypes(inv *inventory.Inventory) ([]string, []error) {
	var fixed []string
	var errs []error

	for _, endpointFile := range inv.Endpoints {
		content, err := os.ReadFile(endpointFile)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %q: %w", endpointFile, err))
			continue
		}
		if strings.Contains(string(content), "NODE") {
			continue
		}

		if _, err := e.backups.Backup(endpointFile); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.WriteFile(endpointFile, []byte("NODE endpoint\n"+string(content)), 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %q: %w", endpointFile, err))
			continue
		}
		fixed = append(fixed, fmt.Sprintf("Added missing NODE declaration to %s", endpointFile))
	}

	return fixed, errs
}
