package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/dataset"
	"github.com/arthur-debert/tablecheck/pkg/engine"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

func init() {
	engine.Register(&LeadingTrailingSpace{})
	engine.Register(&MultipleSpaces{})
	engine.Register(&UnicodeSuspects{})
	engine.Register(&InvisibleChars{})
}

var multiSpaceRE = regexp.MustCompile(`  +`)

// invisibleRE matches zero-width and otherwise invisible code points
// that survive copy-paste from word processors.
var invisibleRE = regexp.MustCompile("[\u200B\u200C\u200D\u2060\uFEFF\u00AD]")

// LeadingTrailingSpace flags cells with leading or trailing
// whitespace and suggests the trimmed value.
type LeadingTrailingSpace struct{}

func (*LeadingTrailingSpace) ID() string                      { return "generic.hygiene.leading_trailing_space" }
func (*LeadingTrailingSpace) Name() string                    { return "Leading / trailing whitespace" }
func (*LeadingTrailingSpace) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*LeadingTrailingSpace) PerColumn() bool                 { return true }

func (r *LeadingTrailingSpace) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		stripped := strings.TrimSpace(val)
		if stripped != val && val != "" {
			issue := types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Leading or trailing whitespace in %q", col))
			issues = append(issues, issue.WithSuggestion(stripped))
		}
	})
	return issues, nil
}

// MultipleSpaces flags runs of two or more consecutive spaces inside
// a value and suggests collapsing them.
type MultipleSpaces struct{}

func (*MultipleSpaces) ID() string                      { return "generic.hygiene.multiple_spaces" }
func (*MultipleSpaces) Name() string                    { return "Multiple consecutive spaces" }
func (*MultipleSpaces) DefaultSeverity() types.Severity { return types.SeveritySuspicion }
func (*MultipleSpaces) PerColumn() bool                 { return true }

func (r *MultipleSpaces) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if multiSpaceRE.MatchString(val) {
			issue := types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Multiple consecutive spaces in %q", col))
			issues = append(issues, issue.WithSuggestion(multiSpaceRE.ReplaceAllString(val, " ")))
		}
	})
	return issues, nil
}

// unicodeSuspects maps typographic characters that sneak in from word
// processors to their plain ASCII replacements.
var unicodeSuspects = map[rune]string{
	'\u2018': "'",  // left single quotation mark
	'\u2019': "'",  // right single quotation mark
	'\u201C': "\"", // left double quotation mark
	'\u201D': "\"", // right double quotation mark
	'\u2013': "-",  // en dash
	'\u2014': "-",  // em dash
	'\u00A0': " ",  // non-breaking space
}

// UnicodeSuspects flags curly quotes, typographic dashes and
// non-breaking spaces, suggesting the plain-ASCII equivalent.
type UnicodeSuspects struct{}

func (*UnicodeSuspects) ID() string                      { return "generic.hygiene.unicode_chars" }
func (*UnicodeSuspects) Name() string                    { return "Unicode fancy characters" }
func (*UnicodeSuspects) DefaultSeverity() types.Severity { return types.SeveritySuspicion }
func (*UnicodeSuspects) PerColumn() bool                 { return true }

func (r *UnicodeSuspects) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		found := map[rune]struct{}{}
		for _, ch := range val {
			if _, ok := unicodeSuspects[ch]; ok {
				found[ch] = struct{}{}
			}
		}
		if len(found) == 0 {
			return
		}

		fixed := val
		labels := make([]string, 0, len(found))
		for ch, replacement := range unicodeSuspects {
			if _, ok := found[ch]; !ok {
				continue
			}
			fixed = strings.ReplaceAll(fixed, string(ch), replacement)
			labels = append(labels, fmt.Sprintf("U+%04X", ch))
		}
		sort.Strings(labels)

		issue := types.NewIssue(r.ID(), ctx.Severity, row, col, val,
			fmt.Sprintf("Non-standard Unicode character(s) in %q: %s", col, strings.Join(labels, ", ")))
		issues = append(issues, issue.WithSuggestion(fixed))
	})
	return issues, nil
}

// InvisibleChars flags zero-width and invisible characters and
// suggests the cleaned value.
type InvisibleChars struct{}

func (*InvisibleChars) ID() string                      { return "generic.hygiene.invisible_chars" }
func (*InvisibleChars) Name() string                    { return "Invisible characters" }
func (*InvisibleChars) DefaultSeverity() types.Severity { return types.SeverityWarning }
func (*InvisibleChars) PerColumn() bool                 { return true }

func (r *InvisibleChars) Check(ds *dataset.Dataset, col string, ctx *config.RuleContext) ([]types.Issue, error) {
	var issues []types.Issue
	forEachCell(ds, col, func(row int, val string) {
		if invisibleRE.MatchString(val) {
			issue := types.NewIssue(r.ID(), ctx.Severity, row, col, val,
				fmt.Sprintf("Invisible character in %q", col))
			issues = append(issues, issue.WithSuggestion(invisibleRE.ReplaceAllString(val, "")))
		}
	})
	return issues, nil
}
