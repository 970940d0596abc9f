// Package score implements the scoreboard: the memoizing query engine at the
// center of semantic analysis.
//
// Clients ask the board for semantic artifacts derived from identifiers: the
// HIR of a design unit, the definition table of a scope-introducing
// construct, or its scope record. Every query is memoized per identifier,
// cached failures included, so repeated and shared dependencies cost one
// computation each. Queries execute depth-first on the caller's stack; an
// in-progress mark per (artifact, construct) pair turns would-be infinite
// recursion across use clauses into a circular-dependency diagnostic.
//
// Failure is deliberately information-free: a query that detects a problem
// reports it through the diagnostic reporter once and returns ErrFailed.
// Dependent queries propagate the failure without reporting again, so one
// input defect yields one diagnostic.
package score
