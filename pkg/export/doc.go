// Package export serializes converted blocks for tools other than the C
// engine.
//
// The C array written by [blocks.WriteC] is the primary output. This package
// produces the same block list, in the same order, as JSON ([WriteJSON]) or
// YAML ([WriteYAML]), parsed into numbers and annotated with each block's
// origin, engine type id and the document metadata (name, build and goal
// areas). Both formats are generated from a single [Table].
package export
