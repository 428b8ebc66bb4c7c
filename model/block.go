package model

import "fmt"

// BlockType represents the kind of a content block.
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeParagraph
	BlockTypeList
	BlockTypeTable
	BlockTypeDiagram
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "paragraph"
	case BlockTypeList:
		return "list"
	case BlockTypeTable:
		return "table"
	case BlockTypeDiagram:
		return "diagram"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the block type as its string tag.
func (bt BlockType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + bt.String() + `"`), nil
}

// UnmarshalJSON parses a block type from its string tag.
func (bt *BlockType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"paragraph"`:
		*bt = BlockTypeParagraph
	case `"list"`:
		*bt = BlockTypeList
	case `"table"`:
		*bt = BlockTypeTable
	case `"diagram"`:
		*bt = BlockTypeDiagram
	case `"unknown"`:
		*bt = BlockTypeUnknown
	default:
		return fmt.Errorf("unknown block type %s", data)
	}
	return nil
}

// ListData is the payload of a list block.
type ListData struct {
	// Ordered reports whether the list uses a sequential numbering
	// scheme rather than bullets.
	Ordered bool `json:"ordered"`

	// Scheme names the numbering scheme ("decimal", "roman", "alpha",
	// "ganada", "bullet", ...).
	Scheme string `json:"scheme"`

	// Level is the indentation level shared by the run (0-based).
	Level int `json:"level"`

	// Items holds the item texts in paragraph order.
	Items []string `json:"items"`
}

// TableData is the payload of a table block: the upstream-normalized cell
// matrix, unchanged.
type TableData struct {
	DocIndex int        `json:"doc_index"`
	Rows     int        `json:"rows"`
	Cols     int        `json:"cols"`
	Cells    [][]string `json:"data"`
}

// ContentBlock is one unit of section content. Type selects exactly one of
// the payload fields; the others are nil (Text is meaningful only for
// paragraph blocks). After assembly a block belongs to at most one section.
type ContentBlock struct {
	ID       string    `json:"id"`
	Type     BlockType `json:"type"`
	DocIndex int       `json:"doc_index"`

	Text    string       `json:"text,omitempty"`
	List    *ListData    `json:"list_data,omitempty"`
	Table   *TableData   `json:"table,omitempty"`
	Diagram *DiagramData `json:"diagram,omitempty"`
}

// NewParagraphBlock creates a paragraph block with the deterministic id
// "p<doc_index>".
func NewParagraphBlock(docIndex int, text string) *ContentBlock {
	return &ContentBlock{
		ID:       fmt.Sprintf("p%d", docIndex),
		Type:     BlockTypeParagraph,
		DocIndex: docIndex,
		Text:     text,
	}
}

// NewListBlock creates a list block anchored at the run's first position,
// with the deterministic id "list_<doc_index>".
func NewListBlock(docIndex int, data *ListData) *ContentBlock {
	return &ContentBlock{
		ID:       fmt.Sprintf("list_%d", docIndex),
		Type:     BlockTypeList,
		DocIndex: docIndex,
		List:     data,
	}
}

// NewTableBlock creates a table block with the deterministic id
// "table_<table id>".
func NewTableBlock(tableID string, data *TableData) *ContentBlock {
	return &ContentBlock{
		ID:       fmt.Sprintf("table_%s", tableID),
		Type:     BlockTypeTable,
		DocIndex: data.DocIndex,
		Table:    data,
	}
}

// NewDiagramBlock creates a diagram block reusing the diagram's own id.
func NewDiagramBlock(data *DiagramData) *ContentBlock {
	return &ContentBlock{
		ID:       data.ID,
		Type:     BlockTypeDiagram,
		DocIndex: data.DocIndex,
		Diagram:  data,
	}
}
