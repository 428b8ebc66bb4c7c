// Package docstruct reconstructs the logical structure of an office
// document from a flat, already-normalized intermediate representation of
// its content.
//
// The input is a [model.IR]: paragraphs, tables, and vector-drawing
// records, each tagged with a document-order position. The output is a
// [model.Document]: a tree of sections owning typed content blocks
// (paragraph, list, table, diagram) plus document-level metadata.
//
// Basic usage:
//
//	doc, err := docstruct.Analyze(ir)
//	if err != nil {
//	    // handle error
//	}
//	data, _ := doc.ToJSONIndent()
//
// With configuration:
//
//	a := docstruct.NewAnalyzer()
//	if err := a.ConfigureDiagrams(diagramConfig); err != nil {
//	    // handle error
//	}
//	doc, err := a.Analyze(ir)
//
// For advanced use cases, the lower-level sections, lists, tables,
// diagram, layout, and metadata packages are also available.
package docstruct

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/docstruct/diagram"
	"github.com/tsawler/docstruct/layout"
	"github.com/tsawler/docstruct/lists"
	"github.com/tsawler/docstruct/metadata"
	"github.com/tsawler/docstruct/model"
	"github.com/tsawler/docstruct/sections"
	"github.com/tsawler/docstruct/tables"
)

// Analyzer runs the full structure-analysis pipeline over one IR snapshot.
// The section, list, table, and diagram stages read disjoint fields of the
// IR and run concurrently; layout assembly waits for all four, and
// metadata extraction runs last.
type Analyzer struct {
	sections *sections.Builder
	lists    *lists.Extractor
	diagrams *diagram.Reconstructor
	metadata *metadata.Extractor
	logger   *log.Logger
}

// NewAnalyzer creates an analyzer with default configuration throughout.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		sections: sections.NewBuilder(),
		lists:    lists.NewExtractor(),
		diagrams: diagram.NewReconstructor(),
		metadata: metadata.NewExtractor(),
		logger:   log.Default(),
	}
}

// SetLogger replaces the diagnostic logger for the analyzer and its
// stages. A nil logger restores the default. Returns the analyzer for
// chaining.
func (a *Analyzer) SetLogger(logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	a.logger = logger
	a.diagrams.SetLogger(logger)
	a.metadata.SetLogger(logger)
	return a
}

// ConfigureSections sets the section-builder configuration.
func (a *Analyzer) ConfigureSections(config sections.Config) error {
	return a.sections.Configure(config)
}

// ConfigureLists sets the list-extractor configuration.
func (a *Analyzer) ConfigureLists(config lists.Config) error {
	return a.lists.Configure(config)
}

// ConfigureDiagrams sets the diagram-reconstruction configuration.
func (a *Analyzer) ConfigureDiagrams(config diagram.Config) error {
	return a.diagrams.Configure(config)
}

// ConfigureMetadata sets the metadata-extraction configuration.
func (a *Analyzer) ConfigureMetadata(config metadata.Config) error {
	return a.metadata.Configure(config)
}

// Analyze validates the IR and runs the full pipeline, returning the
// assembled document model. The IR is treated as immutable; every call
// produces a freshly constructed model.
func (a *Analyzer) Analyze(ir *model.IR) (*model.Document, error) {
	if ir == nil {
		return nil, fmt.Errorf("docstruct: nil IR")
	}
	if err := ir.Validate(); err != nil {
		return nil, err
	}

	var (
		roots    []*model.Section
		headings map[int]bool
		consumed map[int]bool

		listBlocks  []*model.ContentBlock
		tableBlocks []*model.ContentBlock
		diagrams    []*model.DiagramData
	)

	// The four extraction stages are independent of one another.
	var g errgroup.Group
	g.Go(func() error {
		roots, headings = a.sections.Build(ir.Paragraphs)
		return nil
	})
	g.Go(func() error {
		listBlocks, consumed = a.lists.Extract(ir.Paragraphs)
		return nil
	})
	g.Go(func() error {
		tableBlocks = tables.BuildBlocks(ir.Tables)
		return nil
	})
	g.Go(func() error {
		diagrams = a.diagrams.Extract(ir.Drawings)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A single-segment heading like "1. 개요" also matches the list marker
	// fallback; a run made up entirely of heading paragraphs is headings,
	// not a list.
	listBlocks = dropHeadingRuns(listBlocks, headings)

	blocks := make([]*model.ContentBlock, 0,
		len(ir.Paragraphs)+len(listBlocks)+len(tableBlocks)+len(diagrams))
	blocks = append(blocks, layout.BuildParagraphBlocks(ir.Paragraphs, consumed, headings)...)
	blocks = append(blocks, listBlocks...)
	blocks = append(blocks, tableBlocks...)
	for _, d := range diagrams {
		blocks = append(blocks, model.NewDiagramBlock(d))
	}

	forest, unassigned := layout.Assign(roots, blocks)
	if len(unassigned) > 0 {
		a.logger.Warn("docstruct: blocks outside every section span", "count", len(unassigned))
	}

	doc := model.NewDocument()
	doc.Sections = forest
	doc.Metadata = a.metadata.Extract(ir)
	return doc, nil
}

func dropHeadingRuns(listBlocks []*model.ContentBlock, headings map[int]bool) []*model.ContentBlock {
	out := listBlocks[:0]
	for _, lb := range listBlocks {
		allHeadings := true
		for off := range lb.List.Items {
			if !headings[lb.DocIndex+off] {
				allHeadings = false
				break
			}
		}
		if !allHeadings {
			out = append(out, lb)
		}
	}
	return out
}

// Analyze runs the pipeline with default configuration. It is shorthand
// for NewAnalyzer().Analyze(ir).
func Analyze(ir *model.IR) (*model.Document, error) {
	return NewAnalyzer().Analyze(ir)
}
