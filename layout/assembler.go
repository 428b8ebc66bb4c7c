// Package layout partitions content blocks across the section tree by
// position span.
//
// Assignment is recursive and top-down: a section's candidate blocks are
// offered to each subsection first, and whatever no subsection claims
// belongs directly to the section itself. Every block therefore lands in
// the deepest section whose span contains its position. Blocks positioned
// before the first heading attach to a synthetic preamble section rather
// than being dropped.
package layout

import (
	"sort"

	"github.com/tsawler/docstruct/internal/textnorm"
	"github.com/tsawler/docstruct/model"
)

// BuildParagraphBlocks creates paragraph blocks for every paragraph that
// was not consumed as a heading or list item and is not blank after
// whitespace collapsing.
func BuildParagraphBlocks(paragraphs []model.ParagraphRecord, consumed, headings map[int]bool) []*model.ContentBlock {
	var out []*model.ContentBlock
	for i := range paragraphs {
		p := &paragraphs[i]
		if consumed[p.DocIndex] || headings[p.DocIndex] {
			continue
		}
		text := textnorm.CollapseSpaces(p.Text)
		if text == "" {
			continue
		}
		out = append(out, model.NewParagraphBlock(p.DocIndex, text))
	}
	return out
}

// Assign attaches each block to the deepest section whose span contains
// its position. Per-section block order is ascending by doc_index. Blocks
// positioned before the first root section are collected under a
// synthetic preamble section, which is prepended to the returned forest
// only when it would own at least one block. Blocks covered by no span at
// all are returned as unassigned.
func Assign(roots []*model.Section, blocks []*model.ContentBlock) (forest []*model.Section, unassigned []*model.ContentBlock) {
	claimed := make(map[string]bool, len(blocks))
	for _, root := range roots {
		put(root, blocksWithin(blocks, root.Span), claimed)
	}

	var preamble []*model.ContentBlock
	firstStart := 0
	if len(roots) > 0 {
		firstStart = roots[0].Span.Start
	}
	for _, b := range blocks {
		if claimed[b.ID] {
			continue
		}
		if len(roots) == 0 || b.DocIndex < firstStart {
			preamble = append(preamble, b)
		} else {
			unassigned = append(unassigned, b)
		}
	}

	forest = roots
	if len(preamble) > 0 {
		sortBlocks(preamble)
		end := firstStart
		if len(roots) == 0 {
			end = preamble[len(preamble)-1].DocIndex + 1
		}
		pre := &model.Section{
			ID:          "sec_preamble",
			Title:       "",
			Level:       0,
			DocIndex:    preamble[0].DocIndex,
			Span:        model.Span{Start: 0, End: end},
			Path:        []string{},
			Subsections: make([]*model.Section, 0),
			Blocks:      preamble,
			BlockIDs:    blockIDs(preamble),
		}
		forest = append([]*model.Section{pre}, roots...)
	}
	return forest, unassigned
}

// put assigns candidate blocks within sec's span, delegating to
// subsections first.
func put(sec *model.Section, cands []*model.ContentBlock, claimed map[string]bool) {
	for _, child := range sec.Subsections {
		put(child, blocksWithin(cands, child.Span), claimed)
	}

	var mine []*model.ContentBlock
	for _, b := range cands {
		if !claimed[b.ID] {
			mine = append(mine, b)
			claimed[b.ID] = true
		}
	}
	sortBlocks(mine)
	sec.Blocks = append(sec.Blocks, mine...)
	sec.BlockIDs = append(sec.BlockIDs, blockIDs(mine)...)
}

func blocksWithin(blocks []*model.ContentBlock, span model.Span) []*model.ContentBlock {
	var out []*model.ContentBlock
	for _, b := range blocks {
		if span.Contains(b.DocIndex) {
			out = append(out, b)
		}
	}
	return out
}

func sortBlocks(blocks []*model.ContentBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].DocIndex < blocks[j].DocIndex
	})
}

func blockIDs(blocks []*model.ContentBlock) []string {
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	return ids
}
