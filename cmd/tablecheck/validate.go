package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/session"
	"github.com/arthur-debert/tablecheck/pkg/template"
	"github.com/arthur-debert/tablecheck/pkg/types"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	templateID string
	overlayID  string
	headerRow  int
	columns    []string
	projectDir string
	showAll    bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a CSV file and report issues",
		Long: `Validate loads a CSV file, compiles the configured template layers,
runs every enabled rule, and prints the findings grouped by column.

The exit status is non-zero when any ERROR-severity issue is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyProjectSettings(cmd, opts.projectDir, &opts.templateID, &opts.overlayID, &opts.headerRow)
			return runValidate(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.templateID, "template", "t", "generic_default", "Base template id")
	cmd.Flags().StringVarP(&opts.overlayID, "overlay", "o", "", "Overlay template id merged on top of the base")
	cmd.Flags().IntVar(&opts.headerRow, "header-row", 0, "Zero-based row index holding the column labels")
	cmd.Flags().StringSliceVarP(&opts.columns, "columns", "c", nil, "Restrict validation to these columns")
	cmd.Flags().StringVar(&opts.projectDir, "project-dir", "", "Directory holding project-scope templates")
	cmd.Flags().BoolVarP(&opts.showAll, "all", "a", false, "Show every finding instead of the per-column summary")

	return cmd
}

func runValidate(path string, opts *validateOptions) error {
	ds, err := dataset.LoadCSV(path, opts.headerRow, 0)
	if err != nil {
		return err
	}

	sess := newSession(ds, opts.templateID, opts.overlayID, opts.projectDir, session.Options{})

	if len(opts.columns) > 0 {
		for _, col := range opts.columns {
			if !ds.HasColumn(col) {
				return errors.Newf(errors.ErrColumnNotFound, "column %q not in dataset", col)
			}
		}
		sess.Revalidate(opts.columns)
		sess.WaitForValidation()
	} else {
		sess.Validate()
	}

	printReport(sess, ds, opts.showAll)

	counts := sess.Issues().CountBySeverity()
	if n := counts[types.SeverityError]; n > 0 {
		return errors.Newf(errors.ErrInvalidInput, "found %d error(s)", n)
	}
	return nil
}

// newSession compiles the template layers for a loaded dataset and
// wraps everything into a session.
func newSession(ds *dataset.Dataset, templateID, overlayID, projectDir string, sessOpts session.Options) *session.Session {
	mgr := template.NewManager(projectDir)
	eng := engine.NewEngine(sessOpts.Rules)
	cfg := mgr.CompileConfig(templateID, template.CompileOptions{
		OverlayID:  overlayID,
		Columns:    ds.Columns(),
		KnownRules: eng.RuleIDs(),
	})
	return session.New(ds, cfg, sessOpts)
}

func printReport(sess *session.Session, ds *dataset.Dataset, showAll bool) {
	open := sess.Issues().Open()
	if len(open) == 0 {
		fmt.Println("No issues found.")
		return
	}

	byColumn := make(map[string][]types.Issue)
	for _, issue := range open {
		byColumn[issue.Column] = append(byColumn[issue.Column], issue)
	}

	cols := ds.Columns()
	cols = append(cols, types.WholeRow)
	for _, col := range cols {
		found := byColumn[col]
		if len(found) == 0 {
			continue
		}
		label := col
		if col == types.WholeRow {
			label = "(whole rows)"
		}
		fmt.Printf("%s (%d)\n", render(styleHeading, label), len(found))
		if showAll {
			for _, issue := range found {
				printIssue(issue)
			}
		} else {
			printColumnSummary(found)
		}
	}

	fmt.Println()
	printSeveritySummary(sess)
}

func printIssue(issue types.Issue) {
	loc := fmt.Sprintf("row %d", issue.Row)
	line := fmt.Sprintf("  %s  %s  %s",
		render(severityStyle(issue.Severity), string(issue.Severity)),
		render(styleMuted, loc),
		issue.Message)
	if issue.HasSuggestion {
		line += render(styleMuted, fmt.Sprintf("  -> %q", issue.Suggestion))
	}
	fmt.Println(line)
}

// printColumnSummary rolls a column's findings up per rule.
func printColumnSummary(found []types.Issue) {
	type ruleLine struct {
		ruleID   string
		severity types.Severity
		count    int
	}
	byRule := make(map[string]*ruleLine)
	for _, issue := range found {
		line, ok := byRule[issue.RuleID]
		if !ok {
			line = &ruleLine{ruleID: issue.RuleID, severity: issue.Severity}
			byRule[issue.RuleID] = line
		}
		line.count++
		if issue.Severity.Worse(line.severity) {
			line.severity = issue.Severity
		}
	}

	lines := make([]*ruleLine, 0, len(byRule))
	for _, line := range byRule {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ruleID < lines[j].ruleID })

	for _, line := range lines {
		fmt.Printf("  %s  %s x%d\n",
			render(severityStyle(line.severity), string(line.severity)),
			line.ruleID, line.count)
	}
}

func printSeveritySummary(sess *session.Session) {
	counts := sess.Issues().CountBySeverity()
	parts := make([]string, 0, 3)
	for _, sev := range types.Severities() {
		if n := counts[sev]; n > 0 {
			parts = append(parts, render(severityStyle(sev), fmt.Sprintf("%d %s", n, sev)))
		}
	}
	fmt.Printf("Total: %s\n", strings.Join(parts, ", "))
}
