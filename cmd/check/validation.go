package check

import (
	"fmt"

	"github.com/tinybird-labs/tb-migrate/pkg/shared/config"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/files"
)

// validateCheckArgs validates the arguments provided to the check command.
func validateCheckArgs(options *RunOptionsCheck, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}

	if options.ProjectFolder != "" && len(args) != 0 {
		return fmt.Errorf("you cannot use 'project' flag with a positional project folder")
	}

	if options.NoFix && options.AssumeYes {
		return fmt.Errorf("you cannot use 'yes' flag with 'no-fix'")
	}

	return nil
}

// resolveProjectFolder picks the project folder in precedence order: the
// positional argument, the 'project' flag, then the configuration default.
func resolveProjectFolder(cfg *config.Config, options *RunOptionsCheck, args []string) string {
	folder := cfg.Migrate.ProjectFolder
	if options.ProjectFolder != "" {
		folder = options.ProjectFolder
	}
	if len(args) == 1 {
		folder = args[0]
	}

	expanded, err := files.ExpandPath(folder)
	if err != nil {
		return folder
	}
	return expanded
}

// resolveReportFile picks the report path: the 'output' flag over the
// configuration default.
func resolveReportFile(cfg *config.Config, options *RunOptionsCheck) string {
	if options.ReportFile != "" {
		return options.ReportFile
	}
	return cfg.Migrate.ReportFile
}
