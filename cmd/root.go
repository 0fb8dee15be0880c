package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinybird-labs/tb-migrate/cmd/check"
	"github.com/tinybird-labs/tb-migrate/cmd/version"
	"github.com/tinybird-labs/tb-migrate/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "tb-migrate [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "tb-migrate checks Tinybird Classic projects for Forward compatibility.",
		Long: `tb-migrate inspects a Tinybird Classic project tree for constructs that are
not supported in Tinybird Forward, optionally applies safe auto-fixes with
backups, and writes a migration report.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(check.CheckCmd)
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	check.Init(AppConfig)
}
