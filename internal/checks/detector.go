package checks

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tinybird-labs/tb-migrate/internal/inventory"
)

// Detector is a read-only rule evaluator producing a Finding from the file
// inventory. Detectors are independent of each other and safe to run in any
// order.
type Detector interface {
	Name() string
	Detect(inv *inventory.Inventory) Finding
}

// Canonical detector names, also used to pair findings with their fixers.
const (
	CheckVersionTags       = "Version Tags Check"
	CheckSinks             = "Sinks Check"
	CheckSharedDatasources = "Shared Datasources Check"
	CheckDynamoDB          = "DynamoDB Connections Check"
	CheckEndpointTypes     = "Endpoint Types Check"
	CheckIncludeFiles      = "Include Files Check"
)

// Registry returns the full detector set in reporting order.
func Registry() []Detector {
	return []Detector{
		VersionTagsDetector{},
		SinksDetector{},
		SharedDatasourcesDetector{},
		DynamoDBDetector{},
		EndpointTypesDetector{},
		IncludeFilesDetector{},
	}
}

var (
	sinkLinePattern    = regexp.MustCompile(`(?i)^\s*TYPE\s+sink\b`)
	sharedWithPattern  = regexp.MustCompile(`(?i)SHARED_WITH\s*>`)
	dynamoDBPattern    = regexp.MustCompile(`(?i)IMPORT_SERVICE\s+"?dynamodb"?`)
	includeLinePattern = regexp.MustCompile(`(?i)^\s*INCLUDE\s+`)
)

// readLines reads a whole file and splits it into lines. Errors are returned
// for the caller to record as an issue string; detectors never abort on them.
func readLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(content), "\n"), nil
}

// anyActiveLine reports whether any line of the file matches the pattern and
// is not commented out. Commented lines are ignored so that a previously
// remediated file no longer triggers the rule.
func anyActiveLine(lines []string, pattern *regexp.Regexp) bool {
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func readIssue(path string, err error) string {
	return fmt.Sprintf("Error reading %s: %v", path, err)
}
