package sections

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/tsawler/docstruct/internal/textnorm"
	"github.com/tsawler/docstruct/model"
)

// Config holds configuration for heading detection.
type Config struct {
	// MaxDepth is the maximum number of dot-separated numeric segments
	// recognized in a heading number ("1.1.1" has depth 3).
	MaxDepth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth: 8,
	}
}

// Builder converts a paragraph sequence into a hierarchical section forest
// with half-open position spans.
type Builder struct {
	config Config

	// Heading patterns, tried in order. All capture (number, title).
	plainRe   *regexp.Regexp // "1.1 Title", "2.1.3) Item"
	koreanRe  *regexp.Regexp // "제 1 장 개요", "1 절 정의"
	englishRe *regexp.Regexp // "Section 1.2 Title", "Chapter 3) Text"

	dotSpaceRe *regexp.Regexp
}

// NewBuilder creates a section builder with default configuration.
func NewBuilder() *Builder {
	b := &Builder{config: DefaultConfig()}
	b.compile()
	return b
}

// Configure sets the builder configuration.
func (b *Builder) Configure(config Config) error {
	if config.MaxDepth < 1 {
		return fmt.Errorf("sections: MaxDepth must be at least 1, got %d", config.MaxDepth)
	}
	b.config = config
	b.compile()
	return nil
}

func (b *Builder) compile() {
	// "number" is one integer group plus up to MaxDepth-1 dot-separated
	// groups, with whitespace tolerated around the dots ("1. 1" == "1.1").
	num := fmt.Sprintf(`(\d+(?:\s*\.\s*\d+){0,%d})`, b.config.MaxDepth-1)

	b.plainRe = regexp.MustCompile(`^\s*` + num + `[.)]?\s+(.*\S)\s*$`)
	b.koreanRe = regexp.MustCompile(`^\s*(?:제\s*)?` + num + `\s*(?:장|절|항)?[.)]?\s+(.*\S)\s*$`)
	b.englishRe = regexp.MustCompile(`(?i)^\s*(?:section|sec\.|chapter|chap\.|part)\s*` + num + `[.)]?\s+(.*\S)\s*$`)
	b.dotSpaceRe = regexp.MustCompile(`\s*\.\s*`)
}

// DetectHeading reports whether the paragraph text is a numbered heading.
// On a match it returns the normalized dotted number ("1. 1 Title" yields
// "1.1"), the title with surrounding whitespace collapsed, and the level
// (count of numeric segments).
func (b *Builder) DetectHeading(text string) (number, title string, level int, ok bool) {
	folded := textnorm.Fold(text)

	m := b.plainRe.FindStringSubmatch(folded)
	if m == nil {
		m = b.koreanRe.FindStringSubmatch(folded)
	}
	if m == nil {
		m = b.englishRe.FindStringSubmatch(folded)
	}
	if m == nil {
		return "", "", 0, false
	}

	number = b.dotSpaceRe.ReplaceAllString(strings.TrimSpace(m[1]), ".")
	title = textnorm.CollapseSpaces(m[2])
	return number, title, strings.Count(number, ".") + 1, true
}

// Build constructs the section forest from the paragraph sequence. It
// returns the root sections in document order plus the set of heading
// positions, so downstream paragraph-block construction can skip heading
// paragraphs.
//
// The walk keeps a stack of open sections ordered by level. Each heading
// closes every open section of the same or deeper level at its own
// doc_index, then opens a new section whose parent is the remaining stack
// top. Sections still open after the last paragraph close at
// last_doc_index+1. Numbering continuity is not validated; duplicate or
// out-of-sequence numbers are accepted as given.
func (b *Builder) Build(paragraphs []model.ParagraphRecord) ([]*model.Section, map[int]bool) {
	var roots []*model.Section
	var stack []*model.Section
	headings := make(map[int]bool, len(paragraphs)/8)

	closeUntil := func(level, end int) {
		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			top := stack[len(stack)-1]
			if top.Span.End == 0 {
				top.Span.End = end
			}
			stack = stack[:len(stack)-1]
		}
	}

	for _, p := range paragraphs {
		number, title, level, ok := b.DetectHeading(p.Text)
		if !ok {
			continue
		}
		headings[p.DocIndex] = true
		closeUntil(level, p.DocIndex)

		sec := &model.Section{
			ID:             fmt.Sprintf("sec_%s", number),
			Number:         number,
			Title:          title,
			Level:          level,
			DocIndex:       p.DocIndex,
			Span:           model.Span{Start: p.DocIndex},
			Subsections:    make([]*model.Section, 0),
			Blocks:         make([]*model.ContentBlock, 0),
			BlockIDs:       make([]string, 0),
			HeadingBlockID: fmt.Sprintf("h%d", p.DocIndex),
		}
		if len(stack) == 0 {
			sec.Path = []string{sec.Label()}
			roots = append(roots, sec)
		} else {
			parent := stack[len(stack)-1]
			sec.Path = append(append([]string{}, parent.Path...), sec.Label())
			parent.Subsections = append(parent.Subsections, sec)
		}
		stack = append(stack, sec)
	}

	last := -1
	if len(paragraphs) > 0 {
		last = paragraphs[len(paragraphs)-1].DocIndex
	}
	closeUntil(0, last+1)

	return roots, headings
}

// Iterate returns a restartable depth-first pre-order traversal of the
// section forest. The traversal does not mutate the tree.
func Iterate(roots []*model.Section) iter.Seq[*model.Section] {
	return func(yield func(*model.Section) bool) {
		var walk func(s *model.Section) bool
		walk = func(s *model.Section) bool {
			if !yield(s) {
				return false
			}
			for _, sub := range s.Subsections {
				if !walk(sub) {
					return false
				}
			}
			return true
		}
		for _, root := range roots {
			if !walk(root) {
				return
			}
		}
	}
}
