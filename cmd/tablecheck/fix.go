package main

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/patch"
	"github.com/arthur-debert/tablecheck/pkg/project"
	"github.com/arthur-debert/tablecheck/pkg/session"
	"github.com/spf13/cobra"
)

type fixOptions struct {
	templateID string
	overlayID  string
	headerRow  int
	projectDir string
	rules      []string
	output     string
	patchDir   string
	dryRun     bool
}

func newFixCmd() *cobra.Command {
	opts := &fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix FILE",
		Short: "Apply suggested fixes and write the corrected file",
		Long: `Fix validates a CSV file and applies every suggested fix whose rule is
listed via --rule (all rules with suggestions when the flag is absent).
Each applied fix is recorded as a patch file, so the run can be audited
and reverted cell by cell.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := applyProjectSettings(cmd, opts.projectDir, &opts.templateID, &opts.overlayID, &opts.headerRow)
			if opts.patchDir == "" && settings.PatchDir != "" {
				opts.patchDir = settings.PatchDir
				if !filepath.IsAbs(opts.patchDir) {
					opts.patchDir = filepath.Join(opts.projectDir, opts.patchDir)
				}
			}
			return runFix(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.templateID, "template", "t", "generic_default", "Base template id")
	cmd.Flags().StringVarP(&opts.overlayID, "overlay", "o", "", "Overlay template id merged on top of the base")
	cmd.Flags().IntVar(&opts.headerRow, "header-row", 0, "Zero-based row index holding the column labels")
	cmd.Flags().StringVar(&opts.projectDir, "project-dir", "", "Directory holding project-scope templates")
	cmd.Flags().StringSliceVarP(&opts.rules, "rule", "r", nil, "Apply fixes for these rule ids only")
	cmd.Flags().StringVar(&opts.output, "output", "", "Write the corrected file here (default: overwrite the input)")
	cmd.Flags().StringVar(&opts.patchDir, "patch-dir", "", "Directory for patch files (default: <file dir>/.tablecheck/patches)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Report what would change without writing anything")

	return cmd
}

func runFix(path string, opts *fixOptions) error {
	ds, err := dataset.LoadCSV(path, opts.headerRow, 0)
	if err != nil {
		return err
	}

	sessOpts := session.Options{}
	if !opts.dryRun {
		patchDir := opts.patchDir
		if patchDir == "" {
			patchDir = filepath.Join(filepath.Dir(path), ".tablecheck", "patches")
		}
		writer, err := patch.NewDirWriter(patchDir)
		if err != nil {
			return err
		}
		sessOpts.Patches = writer
		actionLog, err := project.NewActionLog(filepath.Join(filepath.Dir(path), ".tablecheck", "actions.jsonl"))
		if err != nil {
			return err
		}
		sessOpts.ActionLog = actionLog
	}

	sess := newSession(ds, opts.templateID, opts.overlayID, opts.projectDir, sessOpts)
	sess.Validate()

	targets := opts.rules
	if len(targets) == 0 {
		targets = fixableRules(sess)
	}

	total := 0
	for _, ruleID := range targets {
		if opts.dryRun {
			n := countFixable(sess, ruleID)
			if n > 0 {
				fmt.Printf("would fix %d cell(s) for %s\n", n, ruleID)
				total += n
			}
			continue
		}
		n, err := sess.FixAll(ruleID)
		if err != nil {
			return err
		}
		if n > 0 {
			fmt.Printf("fixed %d cell(s) for %s\n", n, ruleID)
			total += n
		}
	}

	if total == 0 {
		fmt.Println("Nothing to fix.")
		return nil
	}
	if opts.dryRun {
		fmt.Printf("Dry run: %d cell(s) would change.\n", total)
		return nil
	}

	out := opts.output
	if out == "" {
		out = path
	}
	if err := dataset.SaveCSV(sess.Dataset(), out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d cell(s) changed).\n", out, total)
	return nil
}

// fixableRules lists the rule ids with at least one open suggestion,
// in first-seen order.
func fixableRules(sess *session.Session) []string {
	var order []string
	seen := make(map[string]bool)
	for _, issue := range sess.Issues().Open() {
		if !issue.HasSuggestion || seen[issue.RuleID] {
			continue
		}
		seen[issue.RuleID] = true
		order = append(order, issue.RuleID)
	}
	return order
}

func countFixable(sess *session.Session, ruleID string) int {
	n := 0
	for _, issue := range sess.Issues().Open() {
		if issue.RuleID == ruleID && issue.HasSuggestion && !issue.IsWholeRow() {
			n++
		}
	}
	return n
}
