package checks

// Status is the outcome class of a single migration check.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
	// StatusFixed is set by the remediation engine after a successful
	// auto-fix. A finding is never downgraded back from it.
	StatusFixed Status = "FIXED"
)

// Finding is the structured result of one detector run.
type Finding struct {
	Name         string   `json:"name"`
	Status       Status   `json:"status"`
	Issues       []string `json:"issues"`
	FilesChecked []string `json:"files_checked"`
	Details      string   `json:"details"`
	AutoFixable  bool     `json:"auto_fixable"`
	FixedIssues  []string `json:"fixed_issues,omitempty"`
}

// MarkFixed records applied fixes and upgrades the finding status. Calling it
// with an empty list leaves the finding untouched.
func (f *Finding) MarkFixed(fixed []string) {
	if len(fixed) == 0 {
		return
	}
	f.FixedIssues = append(f.FixedIssues, fixed...)
	f.Status = StatusFixed
}
