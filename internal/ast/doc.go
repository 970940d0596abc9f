// Package ast holds the VHDL syntax tree consumed by the semantic core.
//
// Nodes live in append-only arenas and reference each other through 1-based
// typed IDs; zero is the "no node" sentinel everywhere. The tree is assumed
// syntactically valid: the parser (an external collaborator) is responsible
// for producing it, and nothing in this package re-checks syntax.
//
// Identifiers are interned case-folded (VHDL basic identifiers are
// case-insensitive); spans always point at the original spelling.
package ast
