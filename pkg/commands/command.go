// Package commands implements reversible dataset mutations and the
// bounded undo/redo history. Every user-visible change to the dataset
// goes through a Command so the history stays consistent with the
// issue store and the patch sink.
package commands

import (
	"time"

	"github.com/google/uuid"
)

// Command is one reversible unit of work. Execute and Undo are each
// invoked exactly once per state transition, solely by History.
type Command interface {
	Execute() error
	Undo() error
	Description() string
}

// newActionID returns a short id grouping the patches of one user action.
func newActionID() string {
	return uuid.NewString()[:8]
}

// nowISO returns the current UTC time in ISO-8601, second precision.
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z07:00")
}
