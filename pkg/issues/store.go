// Package issues holds the in-memory indexed collection of validation
// findings. The store keeps three indices (by id, by column, by cell)
// that every mutation updates together.
//
// The store is not safe for concurrent use; the session's owner
// goroutine is its only writer. Background validation results are
// marshalled back and applied on the owner side.
package issues

import (
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// CellKey addresses one cell of the dataset.
type CellKey struct {
	Row    int
	Column string
}

// Store is the in-memory issue collection.
type Store struct {
	byID   map[string]*types.Issue
	byCol  map[string][]string
	byCell map[CellKey][]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.byID = make(map[string]*types.Issue)
	s.byCol = make(map[string][]string)
	s.byCell = make(map[CellKey][]string)
}

// ReplaceAll clears the store and repopulates all indices from the
// given issues.
func (s *Store) ReplaceAll(issues []types.Issue) {
	s.reset()
	for i := range issues {
		s.insert(issues[i])
	}
}

// ReplaceForColumns removes every stored issue whose column is in
// cols, then inserts the supplied issues whose column is in the set or
// carries the whole-row sentinel. Issues for other columns are left
// untouched.
func (s *Store) ReplaceForColumns(cols []string, issues []types.Issue) {
	colSet := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		colSet[col] = struct{}{}
	}

	for _, col := range cols {
		for _, id := range s.byCol[col] {
			issue, ok := s.byID[id]
			if !ok {
				continue
			}
			delete(s.byID, id)
			key := CellKey{Row: issue.Row, Column: issue.Column}
			s.byCell[key] = removeID(s.byCell[key], id)
			if len(s.byCell[key]) == 0 {
				delete(s.byCell, key)
			}
		}
		delete(s.byCol, col)
	}

	for i := range issues {
		_, wanted := colSet[issues[i].Column]
		if wanted || issues[i].IsWholeRow() {
			s.insert(issues[i])
		}
	}
}

// SetStatus mutates only the status of the identified issue, in
// place. Identity never depends on status, so the issue stays where
// it is in every index. An unknown id is a silent no-op: a benign
// race between a consumer and an in-flight revalidation, not an
// error.
func (s *Store) SetStatus(issueID string, status types.IssueStatus) {
	if issue, ok := s.byID[issueID]; ok {
		issue.Status = status
	}
}

func (s *Store) insert(issue types.Issue) {
	stored := issue
	s.byID[issue.ID] = &stored
	s.byCol[issue.Column] = append(s.byCol[issue.Column], issue.ID)
	key := CellKey{Row: issue.Row, Column: issue.Column}
	s.byCell[key] = append(s.byCell[key], issue.ID)
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// Get returns the issue with the given id.
func (s *Store) Get(issueID string) (types.Issue, bool) {
	issue, ok := s.byID[issueID]
	if !ok {
		return types.Issue{}, false
	}
	return *issue, true
}

// ByCell returns the issues for one cell in insertion order.
func (s *Store) ByCell(row int, col string) []types.Issue {
	return s.collect(s.byCell[CellKey{Row: row, Column: col}])
}

// ByColumn returns the issues for one column in insertion order.
func (s *Store) ByColumn(col string) []types.Issue {
	return s.collect(s.byCol[col])
}

// All returns every stored issue. Order is unspecified.
func (s *Store) All() []types.Issue {
	out := make([]types.Issue, 0, len(s.byID))
	for _, issue := range s.byID {
		out = append(out, *issue)
	}
	return out
}

// Open returns every stored issue whose status is OPEN. Order is
// unspecified.
func (s *Store) Open() []types.Issue {
	var out []types.Issue
	for _, issue := range s.byID {
		if issue.Status == types.StatusOpen {
			out = append(out, *issue)
		}
	}
	return out
}

// CountBySeverity counts OPEN issues per severity.
func (s *Store) CountBySeverity() map[types.Severity]int {
	counts := make(map[types.Severity]int, 3)
	for _, sev := range types.Severities() {
		counts[sev] = 0
	}
	for _, issue := range s.byID {
		if issue.Status == types.StatusOpen {
			counts[issue.Severity]++
		}
	}
	return counts
}

// HasIssuesForCell reports whether any issue is recorded at the cell.
func (s *Store) HasIssuesForCell(row int, col string) bool {
	return len(s.byCell[CellKey{Row: row, Column: col}]) > 0
}

// WorstSeverityForCell returns the highest-priority severity among
// OPEN issues at the cell. The second return is false when the cell
// has no open issues.
func (s *Store) WorstSeverityForCell(row int, col string) (types.Severity, bool) {
	var worst types.Severity
	found := false
	for _, issue := range s.ByCell(row, col) {
		if issue.Status != types.StatusOpen {
			continue
		}
		if !found || issue.Severity.Worse(worst) {
			worst = issue.Severity
			found = true
		}
	}
	return worst, found
}

// Len returns the number of stored issues.
func (s *Store) Len() int {
	return len(s.byID)
}

func (s *Store) collect(ids []string) []types.Issue {
	out := make([]types.Issue, 0, len(ids))
	for _, id := range ids {
		if issue, ok := s.byID[id]; ok {
			out = append(out, *issue)
		}
	}
	return out
}
