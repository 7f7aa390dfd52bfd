package commands

// DefaultHistoryDepth bounds each history stack unless overridden.
const DefaultHistoryDepth = 500

// History manages the bounded undo/redo stacks. It is the only caller
// of Execute and Undo, so each command transitions exactly once per
// push/undo/redo.
type History struct {
	maxDepth  int
	undoStack []Command
	redoStack []Command
}

// NewHistory creates a History; maxDepth <= 0 selects the default.
func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultHistoryDepth
	}
	return &History{maxDepth: maxDepth}
}

// Push executes the command and records it on the undo stack,
// evicting the oldest entry on overflow. The redo stack is cleared
// unconditionally: a new action invalidates any undone future.
// A failing Execute leaves the history untouched.
func (h *History) Push(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = nil
	return nil
}

// Undo reverts the most recent command and moves it to the redo
// stack. An empty stack is a no-op returning (nil, nil).
func (h *History) Undo() (Command, error) {
	if len(h.undoStack) == 0 {
		return nil, nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		return cmd, err
	}
	h.redoStack = append(h.redoStack, cmd)
	if len(h.redoStack) > h.maxDepth {
		h.redoStack = h.redoStack[1:]
	}
	return cmd, nil
}

// Redo re-executes the most recently undone command. An empty stack
// is a no-op returning (nil, nil).
func (h *History) Redo() (Command, error) {
	if len(h.redoStack) == 0 {
		return nil, nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		return cmd, err
	}
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	return cmd, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns the number of commands on the undo stack.
func (h *History) UndoCount() int { return len(h.undoStack) }

// RedoCount returns the number of commands on the redo stack.
func (h *History) RedoCount() int { return len(h.redoStack) }

// UndoDescription describes the command Undo would revert.
func (h *History) UndoDescription() (string, bool) {
	if len(h.undoStack) == 0 {
		return "", false
	}
	return h.undoStack[len(h.undoStack)-1].Description(), true
}

// RedoDescription describes the command Redo would re-apply.
func (h *History) RedoDescription() (string, bool) {
	if len(h.redoStack) == 0 {
		return "", false
	}
	return h.redoStack[len(h.redoStack)-1].Description(), true
}

// Clear drops both stacks without undoing anything.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
