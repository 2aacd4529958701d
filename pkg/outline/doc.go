// Package outline extracts a navigable element tree from XAML-family markup.
//
// The scanner is deliberately lenient: it walks the document line by line,
// reconstructs nesting with an explicit stack and never rejects input.
// Malformed or partial markup produces a best-effort forest.
//
// # Layout
//
//   - attr.go: attribute substring parsing
//   - scanner.go: tag recognition, comments, multi-line openings
//   - builder.go: nesting stack and arena, forest materialization
//   - exclude.go: non-visual definition tags that never reach the outline
//   - classify.go: display label and category for each element
//   - convert.go: element forest to outline symbols
//   - lookup.go, walk.go: point lookup, traversal and flattening
//   - parse.go: public entry points
//
// # Positions
//
// All positions are zero-based (line, byte column) pairs from pkg/token.
// Spans are half-open.
package outline
