// Package project holds per-project bookkeeping that survives the
// session, currently the append-only action log.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// ActionLog appends one JSON line per user action to a log file.
// A nil *ActionLog is valid and drops everything, so callers never
// need to branch on whether a project folder is open.
type ActionLog struct {
	path string
}

// NewActionLog creates the log's parent directory if needed.
func NewActionLog(path string) (*ActionLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot create log directory for %s", path)
	}
	return &ActionLog{path: path}, nil
}

// Append writes one entry as a JSON line. Logging failures are
// reported as warnings, not errors: the action itself already
// happened and must not be rolled back over bookkeeping.
func (l *ActionLog) Append(entry types.ActionLogEntry) {
	if l == nil {
		return
	}
	logger := logging.GetLogger("project.actionlog")

	raw, err := json.Marshal(entry)
	if err != nil {
		logger.Warn().Err(err).Msg("cannot marshal action log entry")
		return
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn().Err(err).Str("path", l.path).Msg("cannot open action log")
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(raw, '\n')); err != nil {
		logger.Warn().Err(err).Str("path", l.path).Msg("cannot append to action log")
	}
}

// Entries reads the whole log back. Unparsable lines are skipped with
// a warning.
func (l *ActionLog) Entries() ([]types.ActionLogEntry, error) {
	if l == nil {
		return nil, nil
	}
	logger := logging.GetLogger("project.actionlog")

	raw, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot read action log %s", l.path)
	}

	var entries []types.ActionLogEntry
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == '\n' {
			line := raw[start:i]
			start = i + 1
			if len(line) == 0 {
				continue
			}
			var entry types.ActionLogEntry
			if err := json.Unmarshal(line, &entry); err != nil {
				logger.Warn().Err(err).Msg("skipping corrupt action log line")
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
