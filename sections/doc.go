// Package sections builds a hierarchical section tree from a flat
// paragraph sequence by detecting numbered headings.
//
// A heading is a paragraph whose text starts with one or more
// dot-separated integer groups followed by a title: "1 Overview",
// "1.1 Details", "2.1.3) Item". Whitespace around the dots is normalized
// away ("1. 1" becomes "1.1"), and the heading level is the number of
// numeric segments. Korean ("제 1 장 개요") and English ("Section 1.2
// Title") heading prefixes are recognized as well.
//
// Tree construction walks the paragraphs in position order with a stack of
// open sections. Every section claims a half-open span [start, end) of
// doc_index positions: start is the heading's position, end is the
// position of the next heading at the same or a shallower level, or one
// past the last paragraph.
//
//	b := sections.NewBuilder()
//	roots, headings := b.Build(paragraphs)
//	for sec := range sections.Iterate(roots) {
//		fmt.Println(sec.Number, sec.Title, sec.Span)
//	}
//
// Numbering continuity is deliberately not validated: "3.1" with no prior
// "3" sibling is accepted and placed by level alone.
package sections
