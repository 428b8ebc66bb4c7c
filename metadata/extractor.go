// Package metadata derives document-level metadata from headers, footers,
// tables, and full text.
//
// Every field is searched through an ordered list of sources - headers and
// footers first, then table cells, then the concatenated full text - with
// a field-specific pattern. The first match wins; a field with no match in
// any source stays empty, which is never an error.
package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tsawler/docstruct/internal/textnorm"
	"github.com/tsawler/docstruct/model"
)

// Config holds the field-specific extraction patterns. The defaults match
// the technical-standard document templates this library was built for;
// other templates supply their own patterns.
type Config struct {
	// DocNumberRe matches the hyphenated alphanumeric document code.
	DocNumberRe *regexp.Regexp

	// RevisionRe captures the revision number after a "Rev." label.
	RevisionRe *regexp.Regexp

	// DateLabel gates effective-date extraction; DateRes are the
	// accepted date-literal shapes, each capturing (year, month, day).
	DateLabel string
	DateRes   []*regexp.Regexp

	// AuthorLabel marks the table cell whose right neighbor holds the
	// author name.
	AuthorLabel string

	// DocTypeRe, CategoryRe, and HeaderTitleRe extract the document
	// type, category, and title from header text.
	DocTypeRe     *regexp.Regexp
	CategoryRe    *regexp.Regexp
	HeaderTitleRe *regexp.Regexp

	// Boilerplate tokens are stripped from extracted category text.
	Boilerplate []string
}

// DefaultConfig returns the patterns for the default document template.
func DefaultConfig() Config {
	return Config{
		DocNumberRe: regexp.MustCompile(`[A-Z]{2,4}-\d{3}-\d{3}-\d{3}`),
		RevisionRe:  regexp.MustCompile(`Rev[.\s]*:?\s*(\d+)`),
		DateLabel:   "시행일",
		DateRes: []*regexp.Regexp{
			regexp.MustCompile(`시행일[:\s]*['"]?\s*(\d{2,4})[.\-/](\d{1,2})[.\-/](\d{1,2})`),
			regexp.MustCompile(`(?s)시행일.*?['"]?\s*(\d{2})[.\-/](\d{1,2})[.\-/](\d{1,2})`),
		},
		AuthorLabel:   "작성자",
		DocTypeRe:     regexp.MustCompile(`(기술기준\s*\S+)`),
		CategoryRe:    regexp.MustCompile(`포항제철소\s*(.*?)\s*[A-Z]{2}`),
		HeaderTitleRe: regexp.MustCompile(`Page:\s*\d+\s*/\s*\d+\s*(.*?)\s*Rev\.`),
		Boilerplate:   []string{"기술기준", "포항제철소"},
	}
}

// Extractor derives DocumentMetadata from the raw IR.
type Extractor struct {
	config Config
	logger *log.Logger
}

// NewExtractor creates a metadata extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{
		config: DefaultConfig(),
		logger: log.Default(),
	}
}

// Configure sets the extractor configuration.
func (e *Extractor) Configure(config Config) error {
	if config.DocNumberRe == nil || config.RevisionRe == nil {
		return fmt.Errorf("metadata: DocNumberRe and RevisionRe are required")
	}
	e.config = config
	return nil
}

// SetLogger replaces the diagnostic logger. A nil logger restores the
// default.
func (e *Extractor) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	e.logger = logger
}

// Extract derives all metadata fields from the IR. Fields are independent;
// any of them may come back empty.
func (e *Extractor) Extract(ir *model.IR) model.DocumentMetadata {
	md := model.DocumentMetadata{
		DocNumber:     e.findDocNumber(ir),
		Revision:      e.findRevision(ir),
		EffectiveDate: e.findEffectiveDate(ir),
		Author:        e.findAuthor(ir),
		PageCount:     ir.PageCount,
	}

	md.DocumentType = e.fromHeaders(ir, e.config.DocTypeRe, "document_type")
	if md.DocumentType == "" {
		md.DocumentType = e.typeFromTables(ir)
	}

	md.Category = e.categoryFromHeaders(ir)
	if md.Category == "" {
		md.Category = e.categoryFromTables(ir)
	}

	md.Title = e.fromHeaders(ir, e.config.HeaderTitleRe, "title")
	if md.Title == "" {
		md.Title = e.titleFromTables(ir)
	}

	md.DocumentType = textnorm.CollapseSpaces(md.DocumentType)
	md.Category = textnorm.CollapseSpaces(md.Category)
	md.Title = textnorm.CollapseSpaces(md.Title)
	md.DocNumber = textnorm.CollapseSpaces(md.DocNumber)
	md.Revision = textnorm.CollapseSpaces(md.Revision)
	md.EffectiveDate = textnorm.CollapseSpaces(md.EffectiveDate)
	md.Author = textnorm.CollapseSpaces(md.Author)
	return md
}

// sources yields the search texts in precedence order: header/footer
// lines, table cells, then the concatenated full text.
func (e *Extractor) sources(ir *model.IR) []source {
	var out []source
	for _, h := range ir.Headers {
		out = append(out, source{name: "header", text: h})
	}
	for _, f := range ir.Footers {
		out = append(out, source{name: "footer", text: f})
	}
	for ti := range ir.Tables {
		for _, row := range ir.Tables[ti].Cells {
			for _, cell := range row {
				out = append(out, source{name: "table", text: cell})
			}
		}
	}
	out = append(out, source{name: "full_text", text: fullText(ir)})
	return out
}

type source struct {
	name string
	text string
}

func fullText(ir *model.IR) string {
	var sb strings.Builder
	for _, h := range ir.Headers {
		sb.WriteString(h)
		sb.WriteByte('\n')
	}
	for _, f := range ir.Footers {
		sb.WriteString(f)
		sb.WriteByte('\n')
	}
	for i := range ir.Paragraphs {
		sb.WriteString(ir.Paragraphs[i].Text)
		sb.WriteByte('\n')
	}
	for ti := range ir.Tables {
		for _, row := range ir.Tables[ti].Cells {
			for _, cell := range row {
				sb.WriteString(cell)
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func (e *Extractor) findDocNumber(ir *model.IR) string {
	for _, src := range e.sources(ir) {
		if m := e.config.DocNumberRe.FindString(src.text); m != "" {
			e.logger.Info("metadata: doc_number detected", "source", src.name, "value", m)
			return m
		}
	}
	return ""
}

func (e *Extractor) findRevision(ir *model.IR) string {
	for _, src := range e.sources(ir) {
		if m := e.config.RevisionRe.FindStringSubmatch(src.text); m != nil {
			e.logger.Info("metadata: revision detected", "source", src.name, "value", m[1])
			return m[1]
		}
	}
	return ""
}

func (e *Extractor) findEffectiveDate(ir *model.IR) string {
	for _, src := range e.sources(ir) {
		if e.config.DateLabel != "" && !strings.Contains(src.text, e.config.DateLabel) {
			continue
		}
		for _, re := range e.config.DateRes {
			if m := re.FindStringSubmatch(src.text); m != nil {
				date := fmt.Sprintf("%s.%s.%s", m[1], pad2(m[2]), pad2(m[3]))
				e.logger.Info("metadata: effective_date detected", "source", src.name, "value", date)
				return date
			}
		}
	}
	return ""
}

// findAuthor looks for the author label in table rows and returns the
// neighboring cell to its right.
func (e *Extractor) findAuthor(ir *model.IR) string {
	if e.config.AuthorLabel == "" {
		return ""
	}
	for ti := range ir.Tables {
		for _, row := range ir.Tables[ti].Cells {
			for i, cell := range row {
				if strings.Contains(cell, e.config.AuthorLabel) && i+1 < len(row) {
					if author := strings.TrimSpace(row[i+1]); author != "" {
						e.logger.Info("metadata: author detected", "source", "table", "value", author)
						return author
					}
				}
			}
		}
	}
	return ""
}

func (e *Extractor) fromHeaders(ir *model.IR, re *regexp.Regexp, field string) string {
	if re == nil {
		return ""
	}
	for _, h := range ir.Headers {
		if m := re.FindStringSubmatch(h); m != nil {
			value := strings.TrimSpace(m[len(m)-1])
			e.logger.Info("metadata: "+field+" detected", "source", "header", "value", value)
			return value
		}
	}
	return ""
}

func (e *Extractor) categoryFromHeaders(ir *model.IR) string {
	raw := e.fromHeaders(ir, e.config.CategoryRe, "category")
	return e.stripBoilerplate(raw)
}

func (e *Extractor) stripBoilerplate(s string) string {
	for _, tok := range e.config.Boilerplate {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.TrimSpace(s)
}

// typeFromTables scans the first table for a cell matching the document
// type pattern.
func (e *Extractor) typeFromTables(ir *model.IR) string {
	if len(ir.Tables) == 0 || e.config.DocTypeRe == nil {
		return ""
	}
	for _, row := range ir.Tables[0].Cells {
		for _, cell := range row {
			if e.config.DocTypeRe.MatchString(cell) {
				e.logger.Info("metadata: document_type detected", "source", "table", "value", cell)
				return strings.TrimSpace(cell)
			}
		}
	}
	return ""
}

// categoryFromTables scans the first table for a cell matching the
// category pattern.
func (e *Extractor) categoryFromTables(ir *model.IR) string {
	if len(ir.Tables) == 0 || e.config.CategoryRe == nil {
		return ""
	}
	for _, row := range ir.Tables[0].Cells {
		for _, cell := range row {
			if e.config.CategoryRe.MatchString(cell) {
				value := e.stripBoilerplate(cell)
				e.logger.Info("metadata: category detected", "source", "table", "value", value)
				return value
			}
		}
	}
	return ""
}

// titleFromTables applies the proximity rule: the title sits in the cell
// adjacent to a cell whose text carries the "Rev." label - preferably the
// cell to its left.
func (e *Extractor) titleFromTables(ir *model.IR) string {
	for ti := range ir.Tables {
		for _, row := range ir.Tables[ti].Cells {
			for i, cell := range row {
				if !strings.Contains(cell, "Rev.") {
					continue
				}
				if i > 0 {
					if title := strings.TrimSpace(row[i-1]); title != "" {
						e.logger.Info("metadata: title detected", "source", "table", "value", title)
						return title
					}
				}
				if i+1 < len(row) {
					if title := strings.TrimSpace(row[i+1]); title != "" {
						e.logger.Info("metadata: title detected", "source", "table", "value", title)
						return title
					}
				}
			}
		}
	}
	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
