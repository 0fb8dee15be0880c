package checks

import (
	"fmt"
	"os"
	"strings"

	"github.com/tinybird-labs/tb-migrate/internal/inventory"
)

// VersionTagsDetector warns when the project carries no version tagging
// artifacts at all. Version management is recommended for migration tracking.
type VersionTagsDetector struct{}

func (VersionTagsDetector) Name() string { return CheckVersionTags }

func (VersionTagsDetector) Detect(inv *inventory.Inventory) Finding {
	var issues []string

	if len(inv.VersionMarkers) == 0 {
		issues = append(issues, "No version tag files found. Version management is recommended for migration tracking.")
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusWarning
	}
	return Finding{
		Name:         CheckVersionTags,
		Status:       status,
		Issues:       issues,
		FilesChecked: inv.VersionMarkers,
		Details:      "Checked for version tag files and version management practices.",
		AutoFixable:  false,
	}
}

// SinksDetector fails the check for every pipe file declaring a sink node.
// Sinks are not supported in Tinybird Forward.
type SinksDetector struct{}

func (SinksDetector) Name() string { return CheckSinks }

func (SinksDetector) Detect(inv *inventory.Inventory) Finding {
	var issues []string
	filesChecked := []string{}

	for _, pipeFile := range inv.Pipes {
		filesChecked = append(filesChecked, pipeFile)
		lines, err := readLines(pipeFile)
		if err != nil {
			issues = append(issues, readIssue(pipeFile, err))
			continue
		}
		if anyActiveLine(lines, sinkLinePattern) {
			issues = append(issues, fmt.Sprintf("Sink found in %s: Sinks are not supported in Tinybird Forward", pipeFile))
		}
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusFail
	}
	return Finding{
		Name:         CheckSinks,
		Status:       status,
		Issues:       issues,
		FilesChecked: filesChecked,
		Details:      "Checked all .pipe files for TYPE sink declarations.",
		AutoFixable:  len(issues) > 0,
	}
}

// SharedDatasourcesDetector fails the check for SHARED_WITH declarations and
// for the mere presence of vendored files.
type SharedDatasourcesDetector struct{}

func (SharedDatasourcesDetector) Name() string { return CheckSharedDatasources }

func (SharedDatasourcesDetector) Detect(inv *inventory.Inventory) Finding {
	var issues []string
	filesChecked := []string{}

	for _, dsFile := range inv.Datasources {
		filesChecked = append(filesChecked, dsFile)
		content, err := os.ReadFile(dsFile)
		if err != nil {
			issues = append(issues, readIssue(dsFile, err))
			continue
		}
		if sharedWithPattern.Match(content) {
			issues = append(issues, fmt.Sprintf("Shared datasource found in %s: Shared datasources are not supported in Forward", dsFile))
		}
	}

	if len(inv.Vendor) > 0 {
		issues = append(issues, fmt.Sprintf("Vendor directory found with %d files: Vendor datasources are not supported in Forward", len(inv.Vendor)))
		filesChecked = append(filesChecked, inv.Vendor...)
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusFail
	}
	return Finding{
		Name:         CheckSharedDatasources,
		Status:       status,
		Issues:       issues,
		FilesChecked: filesChecked,
		Details:      "Checked for SHARED_WITH declarations and vendor directory.",
		AutoFixable:  len(issues) > 0,
	}
}

// DynamoDBDetector warns about DynamoDB import services. These need a manual
// migration strategy, so the finding is never auto-fixable.
type DynamoDBDetector struct{}

func (DynamoDBDetector) Name() string { return CheckDynamoDB }

func (DynamoDBDetector) Detect(inv *inventory.Inventory) Finding {
	var issues []string
	filesChecked := []string{}

	for _, dsFile := range inv.Datasources {
		filesChecked = append(filesChecked, dsFile)
		content, err := os.ReadFile(dsFile)
		if err != nil {
			issues = append(issues, readIssue(dsFile, err))
			continue
		}
		if dynamoDBPattern.Match(content) {
			issues = append(issues, fmt.Sprintf("DynamoDB connection found in %s: DynamoDB imports may have limitations in Forward", dsFile))
		}
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusWarning
	}
	return Finding{
		Name:         CheckDynamoDB,
		Status:       status,
		Issues:       issues,
		FilesChecked: filesChecked,
		Details:      "Checked all .datasource files for DynamoDB import services.",
		AutoFixable:  false,
	}
}

// EndpointTypesDetector warns about endpoint files lacking a NODE declaration.
type EndpointTypesDetector struct{}

func (EndpointTypesDetector) Name() string { return CheckEndpointTypes }

func (EndpointTypesDetector) Detect(inv *inventory.Inventory) Finding {
	var issues []string
	filesChecked := []string{}

	for _, endpointFile := range inv.Endpoints {
		filesChecked = append(filesChecked, endpointFile)
		content, err := os.ReadFile(endpointFile)
		if err != nil {
			issues = append(issues, readIssue(endpointFile, err))
			continue
		}
		if !strings.Contains(string(content), "NODE") {
			issues = append(issues, fmt.Sprintf("Endpoint %s may have incorrect structure", endpointFile))
		}
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusWarning
	}
	return Finding{
		Name:         CheckEndpointTypes,
		Status:       status,
		Issues:       issues,
		FilesChecked: filesChecked,
		Details:      "Checked endpoint file structures.",
		AutoFixable:  len(issues) > 0,
	}
}

// IncludeFilesDetector warns about inline INCLUDE statements and about the
// presence of standalone .incl fragments.
type IncludeFilesDetector struct{}

func (IncludeFilesDetector) Name() string { return CheckIncludeFiles }

func (IncludeFilesDetector) Detect(inv *inventory.Inventory) Finding {
	var issues []string
	filesChecked := []string{}

	for _, file := range inv.DefinitionFiles() {
		filesChecked = append(filesChecked, file)
		lines, err := readLines(file)
		if err != nil {
			issues = append(issues, readIssue(file, err))
			continue
		}
		if anyActiveLine(lines, includeLinePattern) {
			issues = append(issues, fmt.Sprintf("Include statement found in %s: Verify include file compatibility", file))
		}
	}

	if len(inv.Includes) > 0 {
		filesChecked = append(filesChecked, inv.Includes...)
		issues = append(issues, fmt.Sprintf("Found %d include files: Review for Forward compatibility", len(inv.Includes)))
	}

	status := StatusPass
	if len(issues) > 0 {
		status = StatusWarning
	}
	return Finding{
		Name:         CheckIncludeFiles,
		Status:       status,
		Issues:       issues,
		FilesChecked: filesChecked,
		Details:      "Checked for INCLUDE statements and .incl files.",
		AutoFixable:  len(issues) > 0,
	}
}
