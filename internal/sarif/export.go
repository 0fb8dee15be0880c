package sarif

import (
	"fmt"
	"os"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/tinybird-labs/tb-migrate/internal/checks"
)

const toolName = "tb-migrate"
const toolURI = "https://github.com/tinybird-labs/tb-migrate"

// FromFindings converts the migration findings into a SARIF report, one rule
// per check and one result per issue.
func FromFindings(findings []checks.Finding) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, finding := range findings {
		level := toSarifLevel(finding.Status)

		rule := run.AddRule(ruleID(finding.Name)).
			WithDescription(finding.Details).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: level,
			})

		for _, issue := range finding.Issues {
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(issueArtifact(finding, issue))),
			)

			result := sarif.NewRuleResult(rule.ID).
				WithMessage(sarif.NewTextMessage(issue)).
				WithLevel(level).
				WithLocations([]*sarif.Location{location})
			run.AddResult(result)
		}
	}
	report.AddRun(run)

	return report, nil
}

// WriteReport converts findings and writes the SARIF document to path.
func WriteReport(path string, findings []checks.Finding) error {
	report, err := FromFindings(findings)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := report.PrettyWrite(file); err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	return nil
}

// ruleID maps a check name ("Sinks Check") to a stable rule id ("sinks-check").
func ruleID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// issueArtifact extracts the file path an issue refers to, falling back to
// the first checked file. Issue strings embed the path of the triggering file.
func issueArtifact(finding checks.Finding, issue string) string {
	for _, file := range finding.FilesChecked {
		if strings.Contains(issue, file) {
			return file
		}
	}
	if len(finding.FilesChecked) > 0 {
		return finding.FilesChecked[0]
	}
	return "."
}

func toSarifLevel(status checks.Status) string {
	switch status {
	case checks.StatusFail:
		return "error"
	case checks.StatusWarning:
		return "warning"
	default:
		return "note"
	}
}
