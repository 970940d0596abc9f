// Package hir provides the High-level Intermediate Representation of a VHDL
// design.
//
// HIR nodes are resolved, typed facts built lazily from syntax-tree
// fragments by the scoreboard (internal/score). Nodes live in per-kind
// arenas and cross-reference each other exclusively through typed IDs; no
// node ever owns another. This keeps the node graph acyclic at the ownership
// level even though the semantic references it encodes are mutually
// recursive (an architecture references its entity, the entity's ports
// reference types declared in packages the architecture uses).
//
// Once committed to an arena a node is immutable. The model assumes a
// single-shot batch compilation: nothing is ever invalidated or recomputed.
//
// ScopeRef and Def are closed tagged unions over identifier kinds. They play
// the role single-dispatch virtual calls would, but the dispatcher switches
// on the tag and the compiler checks exhaustiveness at review time rather
// than through runtime indirection.
package hir
