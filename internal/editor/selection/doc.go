// Package selection models carets and selections over virtual
// positions: single stream selections, rectangular box selections
// materialized per line from two corner points, and the per-view
// Broker that keeps a multi-selection set ordered, non-overlapping,
// and anchored to exactly one primary selection.
package selection
