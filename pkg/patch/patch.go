// Package patch persists cell-fix records. Commands write exactly one
// patch per applied fix and archive it on undo; patches are never
// destroyed.
package patch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/types"
)

// Writer is the persistence sink for patches. Archive means "move out
// of the active set", never destroy: an undone fix stays auditable.
type Writer interface {
	Write(p *types.Patch) error
	Archive(patchID string) error
	Read(patchID string) (*types.Patch, error)
	All() ([]*types.Patch, error)
}

// DirWriter stores each patch as one JSON file in a directory.
// Archived patches move into an undone/ subdirectory.
type DirWriter struct {
	dir string
}

// NewDirWriter creates the patches directory if needed.
func NewDirWriter(dir string) (*DirWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatchWrite, "cannot create patches dir %s", dir)
	}
	return &DirWriter{dir: dir}, nil
}

// Write implements Writer.
func (w *DirWriter) Write(p *types.Patch) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrPatchWrite, "cannot marshal patch")
	}
	path := filepath.Join(w.dir, p.PatchID+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrPatchWrite, "cannot write patch %s", p.PatchID)
	}
	return nil
}

// Archive implements Writer by moving the patch file into undone/.
func (w *DirWriter) Archive(patchID string) error {
	path := filepath.Join(w.dir, patchID+".json")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	undoneDir := filepath.Join(w.dir, "undone")
	if err := os.MkdirAll(undoneDir, 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrPatchWrite, "cannot create %s", undoneDir)
	}
	if err := os.Rename(path, filepath.Join(undoneDir, patchID+".json")); err != nil {
		return errors.Wrapf(err, errors.ErrPatchWrite, "cannot archive patch %s", patchID)
	}
	return nil
}

// Read implements Writer.
func (w *DirWriter) Read(patchID string) (*types.Patch, error) {
	raw, err := os.ReadFile(filepath.Join(w.dir, patchID+".json"))
	if err != nil {
		return nil, errors.Newf(errors.ErrNotFound, "patch %s not found", patchID)
	}
	var p types.Patch
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "corrupt patch file %s", patchID)
	}
	return &p, nil
}

// All returns the active (non-archived) patches, sorted by patch id.
func (w *DirWriter) All() ([]*types.Patch, error) {
	logger := logging.GetLogger("patch.writer")

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot read patches dir %s", w.dir)
	}

	var patches []*types.Patch
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(w.dir, entry.Name()))
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("cannot read patch file")
			continue
		}
		var p types.Patch
		if err := json.Unmarshal(raw, &p); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("cannot parse patch file")
			continue
		}
		patches = append(patches, &p)
	}
	sort.Slice(patches, func(i, j int) bool { return patches[i].PatchID < patches[j].PatchID })
	return patches, nil
}

// NullWriter is a no-op sink for sessions without durable storage.
type NullWriter struct{}

// NewNullWriter returns a Writer that discards everything.
func NewNullWriter() *NullWriter { return &NullWriter{} }

func (*NullWriter) Write(*types.Patch) error                { return nil }
func (*NullWriter) Archive(string) error                    { return nil }
func (*NullWriter) Read(string) (*types.Patch, error)       { return nil, nil }
func (*NullWriter) All() ([]*types.Patch, error)            { return nil, nil }
