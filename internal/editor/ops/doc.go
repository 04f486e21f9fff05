// Package ops is the catalog of semantic editing operations: line
// moves, word deletion, indentation, case conversion, transposition,
// sorting, joining, rectangular paste, and the rest. Every mutating
// operation follows the same three phases — capture state from the
// current snapshot, stage and apply one atomic edit transaction, then
// translate captured positions into the new snapshot and restore
// selection and collapsed-region state.
package ops
