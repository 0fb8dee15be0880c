package check

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/tinybird-labs/tb-migrate/internal/backup"
	"github.com/tinybird-labs/tb-migrate/internal/checks"
	"github.com/tinybird-labs/tb-migrate/internal/git"
	"github.com/tinybird-labs/tb-migrate/internal/interaction"
	"github.com/tinybird-labs/tb-migrate/internal/inventory"
	"github.com/tinybird-labs/tb-migrate/internal/remediate"
	"github.com/tinybird-labs/tb-migrate/internal/report"
	tbsarif "github.com/tinybird-labs/tb-migrate/internal/sarif"
	"github.com/tinybird-labs/tb-migrate/internal/summarize"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/config"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/logger"
)

// RunOptionsCheck holds the arguments for the check command.
type RunOptionsCheck struct {
	ProjectFolder string
	ReportFile    string
	SarifFile     string
	NoFix         bool
	AssumeYes     bool
}

var (
	AppConfig         *config.Config
	checkOptions      RunOptionsCheck
	exampleCheckUsage = `  # Check the default ./tinybird project folder interactively
  tb-migrate check

  # Check a specific project folder
  tb-migrate check /path/to/project

  # Run non-interactively, approving every offered auto-fix
  tb-migrate check --yes /path/to/project

  # Detect only, never offer fixes, and export findings as SARIF
  tb-migrate check --no-fix --sarif migration.sarif /path/to/project`
)

var CheckCmd = &cobra.Command{
	Use:                   "check [--no-fix] [--yes/-y] [--output/-o PATH] [--sarif PATH] [PROJECT_FOLDER]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCheckUsage,
	Short:                 "Checks a Tinybird Classic project for Forward migration compatibility",
	RunE:                  runCheckCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runCheckCommand executes the check command.
func runCheckCommand(cmd *cobra.Command, args []string) error {
	lg := logger.NewLogger(AppConfig, "core-check")

	if err := validateCheckArgs(&checkOptions, args); err != nil {
		lg.Error("invalid check arguments", "error", err)
		return err
	}

	projectFolder := resolveProjectFolder(AppConfig, &checkOptions, args)
	reportFile := resolveReportFile(AppConfig, &checkOptions)

	fmt.Printf("Starting Tinybird migration check for: %s\n", projectFolder)

	inv, err := inventory.Scan(projectFolder)
	if err != nil {
		lg.Error("failed to build file inventory", "error", err)
		return err
	}
	fmt.Printf("Found %d Tinybird files\n\n", inv.Total())

	fmt.Println("Running migration checks:")
	findings := runDetectors(inv)

	if !checkOptions.NoFix {
		engine := remediate.NewEngine(
			backup.NewService(lg),
			newConfirmer(&checkOptions),
			lg,
		)
		engine.Apply(inv, findings)
	}

	narrative := collectNarrative(lg, findings)
	repoMetadata := collectRepoMetadata(lg, projectFolder)

	rep := report.New(projectFolder, findings, narrative, repoMetadata)
	if err := rep.WriteFile(reportFile); err != nil {
		lg.Error("failed to write report", "error", err)
		return err
	}
	fmt.Printf("\nMigration check complete!\nReport saved to: %s\n", reportFile)

	if checkOptions.SarifFile != "" {
		if err := tbsarif.WriteReport(checkOptions.SarifFile, findings); err != nil {
			lg.Error("failed to write SARIF report", "error", err)
			return err
		}
		fmt.Printf("SARIF report saved to: %s\n", checkOptions.SarifFile)
	}

	printSummary(findings)
	lg.Info("check command completed successfully")
	return nil
}

// runDetectors runs the full detector set in reporting order with console
// progress.
func runDetectors(inv *inventory.Inventory) []checks.Finding {
	var findings []checks.Finding
	for i, detector := range checks.Registry() {
		fmt.Printf("  %d. %s...\n", i+1, detector.Name())
		finding := detector.Detect(inv)
		fmt.Printf("     Status: %s\n", finding.Status)
		findings = append(findings, finding)
	}
	return findings
}

// newConfirmer returns the decision gate for remediation: an interactive
// terminal prompt by default, auto-approval with --yes.
func newConfirmer(options *RunOptionsCheck) interaction.Confirmer {
	if options.AssumeYes {
		return interaction.AlwaysConfirm()
	}
	return interaction.NewTerminalConfirmer(os.Stdin, os.Stdout)
}

// collectNarrative asks the configured summarization service for the
// executive summary and migration plan. Failures degrade to an empty
// narrative; the report omits those sections.
func collectNarrative(logger hclog.Logger, findings []checks.Finding) summarize.Narrative {
	var summarizer summarize.Summarizer = summarize.Disabled{}
	if AppConfig.SummarizerEnabled() {
		summarizer = summarize.NewClient(AppConfig, logger)
	}

	narrative, err := summarizer.Summarize(findings)
	if err != nil {
		logger.Warn("summarizer unavailable, omitting narrative sections", "error", err)
		return summarize.Narrative{}
	}
	return narrative
}

// collectRepoMetadata gathers git metadata for the report header; a project
// outside a git working tree is fine.
func collectRepoMetadata(logger hclog.Logger, projectFolder string) *git.RepositoryMetadata {
	metadata, err := git.Collect(projectFolder)
	if err != nil {
		logger.Debug("can't collect repository metadata", "err", err)
		return nil
	}
	return metadata
}

// printSummary prints the per-check status lines at the end of a run.
func printSummary(findings []checks.Finding) {
	fmt.Println("\nSummary:")
	for _, finding := range findings {
		fmt.Printf("   %s: %s\n", finding.Name, finding.Status)
	}
}

func init() {
	CheckCmd.Flags().StringVarP(&checkOptions.ProjectFolder, "project", "p", "", "Path to the Tinybird project folder to check (default from config, else ./tinybird).")
	CheckCmd.Flags().StringVarP(&checkOptions.ReportFile, "output", "o", "", "Path for the generated markdown report (default from config, else migration.md).")
	CheckCmd.Flags().StringVar(&checkOptions.SarifFile, "sarif", "", "Optional path for a SARIF export of the findings.")
	CheckCmd.Flags().BoolVar(&checkOptions.NoFix, "no-fix", false, "Detect only; never offer auto-fixes.")
	CheckCmd.Flags().BoolVarP(&checkOptions.AssumeYes, "yes", "y", false, "Assume yes for every confirmation prompt.")
	CheckCmd.Flags().BoolP("help", "h", false, "Show help for the check command.")
}
