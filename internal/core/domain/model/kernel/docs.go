// Package kernel provides core domain primitives shared across the order
// lifecycle model.
//
// The package currently contains a single primitive:
//   - UUID: a value object for unique identifiers with validation, comparison,
//     and text (de)serialization support
//
// Primitives in this package enforce their own invariants, are immutable, and
// are safe for concurrent use.
package kernel
