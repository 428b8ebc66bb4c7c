// Package model provides the intermediate representation (IR) consumed by
// the structure analyzers and the document model they produce.
//
// This package defines the user-facing data structures on both sides of the
// analysis pipeline. All analyzers consume the flat record types and
// ultimately produce a [Document], making these types the primary API for
// both feeding and consuming structural analysis.
//
// # Input Records
//
// The IR is a flat, already-sanitized record set. Each record carries a
// doc_index: a strictly increasing integer position in document reading
// order.
//
//   - [ParagraphRecord] - paragraph text with optional numbering metadata
//   - [TableRecord] - a normalized 2-D cell matrix
//   - [DrawingRecord] - a vector shape with pseudo-coordinates in EMU-like
//     relative units
//
// [IR.Validate] enforces the position-order invariant the analyzers depend
// on; a non-monotonic record set is rejected with [ErrInvalidIR] before any
// analysis runs.
//
// # Output Model
//
// The [Document] type holds the assembled result: a forest of [Section]
// values, each owning ordered [ContentBlock] values, plus
// [DocumentMetadata].
//
// Content blocks form a closed tagged variant. The [BlockType] tag selects
// exactly one payload:
//
//   - [BlockTypeParagraph] - plain text
//   - [BlockTypeList] - [ListData] with ordered flag, scheme, and items
//   - [BlockTypeTable] - [TableData] with the cell matrix
//   - [BlockTypeDiagram] - [DiagramData] with steps and connectors
//
// All output types carry JSON tags and serialize with ToJSON for handoff to
// a downstream persistence layer.
package model
