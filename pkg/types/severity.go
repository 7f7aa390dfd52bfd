package types

// Severity classifies how serious a validation finding is.
// ERROR outranks WARNING, which outranks SUSPICION.
type Severity string

const (
	SeverityError     Severity = "ERROR"
	SeverityWarning   Severity = "WARNING"
	SeveritySuspicion Severity = "SUSPICION"
)

// severityRank maps severities to priorities; lower rank = higher priority.
var severityRank = map[Severity]int{
	SeverityError:     0,
	SeverityWarning:   1,
	SeveritySuspicion: 2,
}

// Rank returns the priority of the severity, lower meaning more severe.
// Unknown severities rank below SUSPICION.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Worse reports whether s is more severe than other.
func (s Severity) Worse(other Severity) bool {
	return s.Rank() < other.Rank()
}

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// Severities lists all severities in descending priority order.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeveritySuspicion}
}

// IssueStatus is the lifecycle state of an Issue.
type IssueStatus string

const (
	StatusOpen     IssueStatus = "OPEN"
	StatusFixed    IssueStatus = "FIXED"
	StatusIgnored  IssueStatus = "IGNORED"
	StatusExcepted IssueStatus = "EXCEPTED"
)

// ColumnKind describes the broad shape of values expected in a column.
type ColumnKind string

const (
	KindFreeTextShort ColumnKind = "free_text_short"
	KindFreeTextLong  ColumnKind = "free_text_long"
	KindControlled    ColumnKind = "controlled"
	KindStructured    ColumnKind = "structured"
	KindList          ColumnKind = "list"
)
