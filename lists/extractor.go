package lists

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/docstruct/internal/textnorm"
	"github.com/tsawler/docstruct/model"
)

// Config holds configuration for list detection.
type Config struct {
	// StyleTokens extends the built-in list-style vocabulary with
	// additional canonical tokens (see textnorm.Token).
	StyleTokens []string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// Extractor groups consecutive list-marked paragraphs into list blocks.
type Extractor struct {
	config      Config
	styleTokens map[string]bool

	markerRe *regexp.Regexp
}

// Bullet glyphs accepted as a last-resort list marker.
var bulletGlyphs = map[rune]bool{
	'•': true, '·': true, '▪': true, '◦': true,
	'–': true, '—': true, '-': true, '*': true,
}

// NewExtractor creates a list extractor with default configuration.
func NewExtractor() *Extractor {
	e := &Extractor{config: DefaultConfig()}
	e.compile()
	return e
}

// Configure sets the extractor configuration.
func (e *Extractor) Configure(config Config) error {
	e.config = config
	e.compile()
	return nil
}

func (e *Extractor) compile() {
	// Digit, roman-numeral, or letter marker followed by "." or ")",
	// with an optional opening parenthesis: "1.", "(a)", "iv)".
	e.markerRe = regexp.MustCompile(`^\(?(\d+|[ivxlcdmIVXLCDM]+|[A-Za-z])[.)]\s+`)

	e.styleTokens = make(map[string]bool, len(listStyleTokens)+len(e.config.StyleTokens))
	for t := range listStyleTokens {
		e.styleTokens[t] = true
	}
	for _, t := range e.config.StyleTokens {
		if c := textnorm.Token(t); c != "" {
			e.styleTokens[c] = true
		}
	}
}

// IsListParagraph reports whether the paragraph is list content. Checks in
// priority order: explicit list-type tag, numbering id, style-token
// vocabulary, and finally the text marker pattern.
func (e *Extractor) IsListParagraph(p *model.ParagraphRecord) bool {
	if p.ListType != "" {
		return true
	}
	if p.HasNumbering() {
		return true
	}
	for _, t := range textnorm.Tokens(p.Styles) {
		if e.styleTokens[t] {
			return true
		}
	}
	return e.looksLikeMarker(p.Text)
}

// looksLikeMarker reports whether the text begins with a list marker
// (digit/roman/letter plus "." or ")") or a bullet glyph.
func (e *Extractor) looksLikeMarker(text string) bool {
	t := strings.TrimSpace(textnorm.Fold(text))
	if t == "" {
		return false
	}
	if e.markerRe.MatchString(t) {
		return true
	}
	r := []rune(t)[0]
	return bulletGlyphs[r]
}

// ClassifyOrdering determines whether the paragraph's list is ordered and
// which numbering scheme it uses. The numbering format is consulted first,
// then the explicit list-type tag; formats found in neither vocabulary
// classify as unordered bullets.
func (e *Extractor) ClassifyOrdering(p *model.ParagraphRecord) (ordered bool, scheme string) {
	if f := textnorm.Token(p.NumFormat); f != "" {
		if unorderedFormats[f] {
			return false, "bullet"
		}
		if orderedFormats[f] {
			return true, schemeFor(f)
		}
	}
	switch lt := textnorm.Token(p.ListType); lt {
	case "bullet", "unordered":
		return false, "bullet"
	case "number", "decimal":
		return true, "decimal"
	case "roman", "alpha", "ganada":
		return true, lt
	}
	return false, "bullet"
}

// Extract scans the paragraphs in position order and groups consecutive
// list paragraphs into list blocks. Paragraphs merge into the current run
// while they share the grouping key (numbering id when present, otherwise
// the style-token bundle), the same indentation level, and contiguous
// doc_index positions. Every grouped position is recorded in the returned
// consumed set so paragraph-block construction skips it.
func (e *Extractor) Extract(paragraphs []model.ParagraphRecord) ([]*model.ContentBlock, map[int]bool) {
	var blocks []*model.ContentBlock
	consumed := make(map[int]bool)

	i := 0
	for i < len(paragraphs) {
		p := &paragraphs[i]
		if !e.IsListParagraph(p) {
			i++
			continue
		}

		numID := p.NumID
		level := p.NumLevel
		ordered, scheme := e.ClassifyOrdering(p)
		baseBundle := styleBundle(p)

		var items []string
		prevIdx := p.DocIndex - 1

		for i < len(paragraphs) {
			q := &paragraphs[i]
			if !e.IsListParagraph(q) || q.DocIndex != prevIdx+1 {
				break
			}
			if !e.sameRun(q, numID, level, ordered, baseBundle) {
				break
			}
			items = append(items, textnorm.CollapseSpaces(q.Text))
			consumed[q.DocIndex] = true
			prevIdx = q.DocIndex
			i++
		}

		if len(items) > 0 {
			start := prevIdx - len(items) + 1
			blocks = append(blocks, model.NewListBlock(start, &model.ListData{
				Ordered: ordered,
				Scheme:  scheme,
				Level:   level,
				Items:   items,
			}))
		} else {
			i++
		}
	}

	return blocks, consumed
}

// sameRun reports whether paragraph q continues the current run.
func (e *Extractor) sameRun(q *model.ParagraphRecord, numID string, level int, ordered bool, baseBundle string) bool {
	if numID != "" {
		// Numbering-id runs require the same id and level.
		return q.NumID == numID && q.NumLevel == level
	}
	// Style runs require no numbering id, the same level, the same
	// style-token bundle, and a matching ordering classification.
	if q.HasNumbering() || q.NumLevel != level {
		return false
	}
	if styleBundle(q) != baseBundle {
		return false
	}
	qOrdered, _ := e.ClassifyOrdering(q)
	return qOrdered == ordered
}

// styleBundle derives the paragraph's grouping key from its canonical
// style tokens. Paragraphs with no style tokens share the empty bundle,
// so marker-only runs still group.
func styleBundle(p *model.ParagraphRecord) string {
	tokens := textnorm.Tokens(p.Styles)
	sort.Strings(tokens)
	return strings.Join(tokens, "|")
}
