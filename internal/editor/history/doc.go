// Package history records editing operations as undo transactions:
// the applied edit payload plus tagged primitives capturing caret,
// selection, and collapsed-region state on both sides of the edit.
// Undo and redo replay exactly the visible cursor state, not just the
// text. Primitives are tagged plain-data variants interpreted by a
// single replay function.
package history
