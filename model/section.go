package model

// Section is one node of the reconstructed section tree. Sections claim a
// half-open span of doc_index positions; a section's span always contains
// the union of its subsections' spans, and sibling spans never overlap.
type Section struct {
	ID string `json:"id"`

	// Number is the normalized dotted heading number ("1.1"). Empty for
	// the synthetic preamble section covering content before the first
	// heading.
	Number string `json:"number"`

	// Title is the heading title with the number stripped.
	Title string `json:"title"`

	// Level is the count of dot-separated numeric segments in Number.
	Level int `json:"level"`

	// DocIndex is the position of the heading paragraph.
	DocIndex int `json:"doc_index"`

	// Span is the half-open range of positions the section claims,
	// heading included.
	Span Span `json:"span"`

	// Path holds "number title" strings from the root section down to
	// this one.
	Path []string `json:"path"`

	// Subsections are the child sections in document order.
	Subsections []*Section `json:"subsections"`

	// Blocks are the content blocks assigned directly to this section
	// (not to any subsection), ascending by doc_index. BlockIDs mirrors
	// their ids.
	Blocks   []*ContentBlock `json:"blocks"`
	BlockIDs []string        `json:"block_ids"`

	// HeadingBlockID identifies the heading paragraph ("h<doc_index>").
	HeadingBlockID string `json:"heading_block_id"`
}

// Label returns the section's "number title" display form, or just the
// title when the section has no number.
func (s *Section) Label() string {
	if s.Number == "" {
		return s.Title
	}
	if s.Title == "" {
		return s.Number
	}
	return s.Number + " " + s.Title
}

// BlockCount returns the number of blocks assigned to the section and all
// of its subsections.
func (s *Section) BlockCount() int {
	n := len(s.Blocks)
	for _, sub := range s.Subsections {
		n += sub.BlockCount()
	}
	return n
}
