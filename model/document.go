package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DocumentMetadata contains document-level information extracted from
// headers, footers, tables, and full text. Every field is independently
// optional; an empty field means no source matched.
type DocumentMetadata struct {
	DocumentType  string `json:"document_type,omitempty"`
	Category      string `json:"category,omitempty"`
	Title         string `json:"title,omitempty"`
	DocNumber     string `json:"doc_number,omitempty"`
	Revision      string `json:"revision,omitempty"`
	EffectiveDate string `json:"effective_date,omitempty"`
	Author        string `json:"author,omitempty"`
	PageCount     int    `json:"page_count,omitempty"`
}

// Document is the assembled result of one analysis run: the section forest
// with attached content blocks plus document metadata.
type Document struct {
	// ID identifies the analysis run, not the source file.
	ID string `json:"id"`

	// Sections are the root sections in document order.
	Sections []*Section `json:"sections"`

	Metadata DocumentMetadata `json:"metadata"`
}

// NewDocument creates an empty document with a fresh run id.
func NewDocument() *Document {
	return &Document{
		ID:       uuid.NewString(),
		Sections: make([]*Section, 0),
	}
}

// BlockCount returns the total number of blocks attached anywhere in the
// section forest.
func (d *Document) BlockCount() int {
	n := 0
	for _, s := range d.Sections {
		n += s.BlockCount()
	}
	return n
}

// ToJSON serializes the document to JSON.
func (d *Document) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

// ToJSONIndent serializes the document to indented JSON.
func (d *Document) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
