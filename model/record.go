package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIR is returned when the input record set violates the
// position-order invariant the analyzers assume.
var ErrInvalidIR = errors.New("invalid IR")

// ParagraphRecord is a single paragraph from the sanitized input.
type ParagraphRecord struct {
	// DocIndex is the paragraph's position in document reading order.
	DocIndex int `json:"doc_index"`

	// Text is the normalized paragraph text.
	Text string `json:"text"`

	// ListType is an explicit list tag set by the upstream parser
	// (e.g. "bullet", "number"). Empty when the parser made no call.
	ListType string `json:"list_type,omitempty"`

	// NumID is the numbering definition id, empty when the paragraph
	// carries no numbering.
	NumID string `json:"num_id,omitempty"`

	// NumLevel is the numbering indentation level (0-based).
	NumLevel int `json:"num_level,omitempty"`

	// NumFormat is the numbering format name (e.g. "decimal",
	// "lowerRoman", "bullet").
	NumFormat string `json:"num_format,omitempty"`

	// Styles holds raw paragraph style tokens as reported upstream.
	Styles []string `json:"styles,omitempty"`
}

// HasNumbering reports whether the paragraph carries a numbering id.
func (p *ParagraphRecord) HasNumbering() bool {
	return p.NumID != ""
}

// TableRecord is a normalized table from the sanitized input. Cell merges
// are already resolved upstream; Cells is a plain rows-by-columns matrix.
type TableRecord struct {
	ID       string     `json:"tid"`
	DocIndex int        `json:"doc_index"`
	Cells    [][]string `json:"data"`
}

// RowCount returns the number of rows in the table.
func (t *TableRecord) RowCount() int {
	return len(t.Cells)
}

// ColCount returns the number of columns in the first row, or 0 for an
// empty table.
func (t *TableRecord) ColCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// DrawingRecord is a single vector shape from the sanitized input.
// Coordinates are pseudo-positions in EMU-like relative units, comparable
// between shapes but not tied to any absolute page coordinate.
type DrawingRecord struct {
	ID string `json:"did"`

	// DocIndex is the doc_index of the paragraph owning the shape's
	// anchor. Multiple shapes may share one owning paragraph.
	DocIndex int `json:"doc_index"`

	// Preset is the shape-preset tag (e.g. "rect", "rightArrow").
	Preset string `json:"preset"`

	// X, Y are the relative offset and W, H the relative extent, all in
	// EMU-like units.
	X int64 `json:"x_rel"`
	Y int64 `json:"y_rel"`
	W int64 `json:"w_rel"`
	H int64 `json:"h_rel"`

	// Z is the z-order value of the shape's anchor.
	Z int `json:"z"`

	// CellRef is the owning table-cell context signature, empty when the
	// shape is anchored directly in body text.
	CellRef string `json:"cell_ref,omitempty"`

	// Runs holds the raw text runs found inside the shape.
	Runs []string `json:"raw_runs,omitempty"`

	// WrapMode is the anchor wrap mode (e.g. "none", "square").
	WrapMode string `json:"wrap,omitempty"`
}

// Text returns the shape's text runs joined with single spaces.
func (d *DrawingRecord) Text() string {
	return strings.TrimSpace(strings.Join(d.Runs, " "))
}

// Center returns the shape's center point in the relative coordinate space.
func (d *DrawingRecord) Center() Point {
	return Point{
		X: float64(d.X) + float64(d.W)/2,
		Y: float64(d.Y) + float64(d.H)/2,
	}
}

// IR is the complete sanitized input for one document.
type IR struct {
	Paragraphs []ParagraphRecord `json:"paragraphs"`
	Tables     []TableRecord     `json:"tables"`
	Drawings   []DrawingRecord   `json:"drawings"`

	// Headers and Footers hold header/footer text lines, used only by
	// metadata extraction.
	Headers []string `json:"headers,omitempty"`
	Footers []string `json:"footers,omitempty"`

	// PageCount is the page count reported upstream, 0 when unknown.
	PageCount int `json:"page_count,omitempty"`
}

// Validate checks the position-order invariant: paragraph and table
// doc_index values must be unique and strictly increasing, and drawing
// doc_index values non-decreasing (shapes may share an owning paragraph).
// A violation is fatal for the whole pipeline, since span and clustering
// logic assumes position order.
func (ir *IR) Validate() error {
	for i := 1; i < len(ir.Paragraphs); i++ {
		if ir.Paragraphs[i].DocIndex <= ir.Paragraphs[i-1].DocIndex {
			return fmt.Errorf("%w: paragraph doc_index %d at position %d not strictly increasing",
				ErrInvalidIR, ir.Paragraphs[i].DocIndex, i)
		}
	}
	for i := 1; i < len(ir.Tables); i++ {
		if ir.Tables[i].DocIndex <= ir.Tables[i-1].DocIndex {
			return fmt.Errorf("%w: table doc_index %d at position %d not strictly increasing",
				ErrInvalidIR, ir.Tables[i].DocIndex, i)
		}
	}
	for i := 1; i < len(ir.Drawings); i++ {
		if ir.Drawings[i].DocIndex < ir.Drawings[i-1].DocIndex {
			return fmt.Errorf("%w: drawing doc_index %d at position %d decreasing",
				ErrInvalidIR, ir.Drawings[i].DocIndex, i)
		}
	}
	return nil
}

// LastDocIndex returns the highest paragraph doc_index, or -1 when the IR
// contains no paragraphs.
func (ir *IR) LastDocIndex() int {
	if len(ir.Paragraphs) == 0 {
		return -1
	}
	return ir.Paragraphs[len(ir.Paragraphs)-1].DocIndex
}
