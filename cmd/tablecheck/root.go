package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/project"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "tablecheck",
		Short: "Validate tabular datasets against configurable quality rules",
		Long: `tablecheck inspects CSV datasets for data-quality problems: stray
whitespace, missing values, duplicates, vocabulary violations, and
format mismatches. Rules are configured through layered templates, and
every fix it applies is recorded as a reversible patch.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newFixCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newTemplatesCmd())
}

// applyProjectSettings overlays per-project defaults onto flags the
// user did not set explicitly.
func applyProjectSettings(cmd *cobra.Command, projectDir string, templateID, overlayID *string, headerRow *int) project.Settings {
	settings := project.LoadSettings(projectDir)
	if projectDir == "" {
		return settings
	}
	if !cmd.Flags().Changed("template") && settings.Template != "" {
		*templateID = settings.Template
	}
	if !cmd.Flags().Changed("overlay") && settings.Overlay != "" {
		*overlayID = settings.Overlay
	}
	if !cmd.Flags().Changed("header-row") {
		*headerRow = settings.HeaderRow
	}
	return settings
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tablecheck version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}
