package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

func add(a, b int) int {
	return a + b
}

// formatDateTime formats a timestamp for the report header.
func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 UTC")
}

const reportTemplate = `# Tinybird Classic to Forward Migration Plan

- **Run ID**: {{.RunID}}
- **Generated**: {{formatDateTime .GeneratedAt}}
- **Project Folder**: {{.ProjectFolder}}
{{- if .Repository}}
{{- if .Repository.BranchName}}
- **Branch**: {{.Repository.BranchName}}
{{- end}}
{{- if .Repository.CommitHash}}
- **Commit**: {{.Repository.CommitHash}}
{{- end}}
{{- if .Repository.RemoteURL}}
- **Repository**: {{.Repository.RemoteURL}}
{{- end}}
{{- end}}
{{if .Summary}}
## Executive Summary

{{.Summary}}
{{end}}
## Check Results
{{range $i, $check := .Findings}}
### {{add $i 1}}. {{$check.Name}}
**Status**: {{$check.Status}}
- **Issues**: {{if $check.Issues}}{{join $check.Issues "; "}}{{else}}None{{end}}
- **Files Checked**: {{len $check.FilesChecked}}
{{- if $check.FixedIssues}}
- **Auto-Fixes Applied**: {{len $check.FixedIssues}} issues were automatically fixed
  - {{join $check.FixedIssues "; "}}
{{- end}}
{{end}}
## Important Warning

**BI Connector Deprecation**: Please note that the BI Connector feature is not available in Tinybird Forward. If your current setup relies on BI Connector integrations, you will need to migrate to alternative connection methods such as:
- REST API endpoints
- SQL API
- Direct integrations with supported BI tools
{{if .MigrationPlan}}
## Migration Plan

{{.MigrationPlan}}
{{end}}
## Auto-Fixes Summary
{{if eq .TotalFixes 0}}
No automatic fixes were applied during this run.
{{- else}}
The following issues were automatically fixed during this migration check:
{{range .FixedFindings}}
**{{.Name}}**:
{{- range .FixedIssues}}
- {{.}}
{{- end}}
{{end}}
**Total**: {{.TotalFixes}} issues were automatically resolved.
{{- end}}

## Next Steps

1. Review all identified issues above
2. For any remaining issues, implement the recommended fixes
3. Test your modified configuration in a development environment
4. Contact Tinybird support if you need assistance with specific migration challenges

## Backup Files

If automatic fixes were applied, backup files were created with the ` + "`.backup`" + ` extension. You can restore the original files if needed:

` + "```bash" + `
# To restore a file from backup
cp file.datasource.backup file.datasource
` + "```" + `

---
*Generated by tb-migrate*
`

// Render produces the markdown document for the report.
func (r *Report) Render() (string, error) {
	tmpl, err := template.New("migration.md").
		Funcs(template.FuncMap{
			"add":            add,
			"join":           strings.Join,
			"formatDateTime": formatDateTime,
		}).
		Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, r); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return b.String(), nil
}
