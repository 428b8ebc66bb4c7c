// Package lists groups consecutive list-marked paragraphs into ordered or
// unordered list blocks.
//
// A paragraph counts as list content if, in priority order: the upstream
// parser tagged it with an explicit list type; it carries a numbering id;
// one of its style tokens matches the list-style vocabulary; or its text
// begins with a marker pattern ("1.", "(a)", "iv)", "•").
//
// Consecutive list paragraphs merge into one run while they share the
// grouping key - the numbering id when present, otherwise the normalized
// style-token bundle - along with the same indentation level and
// contiguous positions. Each run becomes a single list block whose items
// preserve paragraph order, and every grouped position lands in the
// consumed set so paragraph-block construction skips it:
//
//	e := lists.NewExtractor()
//	blocks, consumed := e.Extract(paragraphs)
//
// Ordering classification consults the fixed numbering-format
// vocabularies; formats found in neither table classify as unordered
// bullets. Extraction is idempotent: the same input always yields the same
// groupings and consumed set.
package lists
