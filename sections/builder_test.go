package sections

import (
	"testing"

	"github.com/tsawler/docstruct/model"
)

func para(idx int, text string) model.ParagraphRecord {
	return model.ParagraphRecord{DocIndex: idx, Text: text}
}

func TestDetectHeading(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		text       string
		wantNumber string
		wantTitle  string
		wantLevel  int
		wantOK     bool
	}{
		{"1 개요", "1", "개요", 1, true},
		{"1.1 정의", "1.1", "정의", 2, true},
		{"1. 1  세부  항목", "1.1", "세부 항목", 2, true},
		{"2.1.3.4) 세부 항목", "2.1.3.4", "세부 항목", 4, true},
		{"제 1 장 개요", "1", "개요", 1, true},
		{"Section 1.2 Scope", "1.2", "Scope", 2, true},
		{"Chapter 3) Intro", "3", "Intro", 1, true},
		{"일반 본문 문단", "", "", 0, false},
		{"1", "", "", 0, false},
		{"   ", "", "", 0, false},
	}
	for _, tt := range tests {
		number, title, level, ok := b.DetectHeading(tt.text)
		if ok != tt.wantOK {
			t.Errorf("DetectHeading(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if number != tt.wantNumber || title != tt.wantTitle || level != tt.wantLevel {
			t.Errorf("DetectHeading(%q) = (%q, %q, %d), want (%q, %q, %d)",
				tt.text, number, title, level, tt.wantNumber, tt.wantTitle, tt.wantLevel)
		}
	}
}

func TestDetectHeadingFullWidth(t *testing.T) {
	b := NewBuilder()
	number, _, level, ok := b.DetectHeading("１．１ 정의")
	if !ok || number != "1.1" || level != 2 {
		t.Errorf("full-width heading = (%q, %d, %v)", number, level, ok)
	}
}

func TestBuildParentChild(t *testing.T) {
	b := NewBuilder()
	paragraphs := []model.ParagraphRecord{
		para(0, "1 개요"),
		para(1, "본문"),
		para(2, "1.1 세부"),
		para(3, "내용"),
	}

	roots, headings := b.Build(paragraphs)

	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	root := roots[0]
	if root.Number != "1" || root.Level != 1 {
		t.Errorf("root = %q level %d", root.Number, root.Level)
	}
	// The root stays open across its subsection, so its span covers the
	// subsection's span too.
	if root.Span != (model.Span{Start: 0, End: 4}) {
		t.Errorf("root span = %+v, want [0,4)", root.Span)
	}

	if len(root.Subsections) != 1 {
		t.Fatalf("expected 1 subsection, got %d", len(root.Subsections))
	}
	child := root.Subsections[0]
	if child.Number != "1.1" || child.Level != 2 {
		t.Errorf("child = %q level %d", child.Number, child.Level)
	}
	if child.Span != (model.Span{Start: 2, End: 4}) {
		t.Errorf("child span = %+v, want [2,4)", child.Span)
	}

	if !headings[0] || !headings[2] || len(headings) != 2 {
		t.Errorf("headings = %v, want {0, 2}", headings)
	}
}

func TestBuildSiblingClosesSpan(t *testing.T) {
	b := NewBuilder()
	paragraphs := []model.ParagraphRecord{
		para(0, "1 첫째"),
		para(1, "본문"),
		para(2, "2 둘째"),
		para(3, "본문"),
	}

	roots, _ := b.Build(paragraphs)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Span != (model.Span{Start: 0, End: 2}) {
		t.Errorf("first span = %+v, want [0,2)", roots[0].Span)
	}
	if roots[1].Span != (model.Span{Start: 2, End: 4}) {
		t.Errorf("second span = %+v, want [2,4)", roots[1].Span)
	}
	if roots[0].Span.Overlaps(roots[1].Span) {
		t.Error("sibling spans overlap")
	}
}

func TestBuildDeepNesting(t *testing.T) {
	b := NewBuilder()
	paragraphs := []model.ParagraphRecord{
		para(0, "1 하나"),
		para(1, "1.1 하나하나"),
		para(2, "1.1.1 하나하나하나"),
		para(3, "1.2 하나둘"),
		para(4, "2 둘"),
	}

	roots, _ := b.Build(paragraphs)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	one := roots[0]
	if len(one.Subsections) != 2 {
		t.Fatalf("section 1 has %d subsections, want 2", len(one.Subsections))
	}
	// "1.2" closes both "1.1.1" and "1.1" at position 3.
	oneone := one.Subsections[0]
	if oneone.Span != (model.Span{Start: 1, End: 3}) {
		t.Errorf("1.1 span = %+v, want [1,3)", oneone.Span)
	}
	if len(oneone.Subsections) != 1 || oneone.Subsections[0].Span != (model.Span{Start: 2, End: 3}) {
		t.Errorf("1.1.1 = %+v", oneone.Subsections)
	}
	if one.Subsections[1].Span != (model.Span{Start: 3, End: 4}) {
		t.Errorf("1.2 span = %+v, want [3,4)", one.Subsections[1].Span)
	}
	// "2" closes the whole "1" subtree at position 4.
	if one.Span != (model.Span{Start: 0, End: 4}) {
		t.Errorf("1 span = %+v, want [0,4)", one.Span)
	}
	if roots[1].Span != (model.Span{Start: 4, End: 5}) {
		t.Errorf("2 span = %+v, want [4,5)", roots[1].Span)
	}
}

func TestBuildOutOfSequenceNumbering(t *testing.T) {
	// "3.1" with no prior "3" sibling is accepted as given; placement
	// follows level alone.
	b := NewBuilder()
	paragraphs := []model.ParagraphRecord{
		para(0, "1 하나"),
		para(1, "3.1 미아"),
	}
	roots, _ := b.Build(paragraphs)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if len(roots[0].Subsections) != 1 || roots[0].Subsections[0].Number != "3.1" {
		t.Errorf("out-of-sequence heading not nested under open section: %+v", roots[0].Subsections)
	}
}

func TestBuildPath(t *testing.T) {
	b := NewBuilder()
	paragraphs := []model.ParagraphRecord{
		para(0, "1 개요"),
		para(1, "1.1 정의"),
	}
	roots, _ := b.Build(paragraphs)
	child := roots[0].Subsections[0]
	if len(child.Path) != 2 || child.Path[0] != "1 개요" || child.Path[1] != "1.1 정의" {
		t.Errorf("path = %v", child.Path)
	}
}

func TestBuildNoHeadings(t *testing.T) {
	b := NewBuilder()
	roots, headings := b.Build([]model.ParagraphRecord{para(0, "그냥 본문")})
	if len(roots) != 0 || len(headings) != 0 {
		t.Errorf("roots = %v, headings = %v", roots, headings)
	}
}

func TestConfigureRejectsZeroDepth(t *testing.T) {
	b := NewBuilder()
	if err := b.Configure(Config{MaxDepth: 0}); err == nil {
		t.Error("MaxDepth 0 accepted")
	}
}

func TestConfigureDepthLimit(t *testing.T) {
	b := NewBuilder()
	if err := b.Configure(Config{MaxDepth: 2}); err != nil {
		t.Fatal(err)
	}
	// Three segments exceed the limit; the greedy number match stops at
	// two segments and the rest fails the title shape, or matches as a
	// shorter heading. Either way depth never exceeds 2.
	_, _, level, ok := b.DetectHeading("1.2 제목")
	if !ok || level != 2 {
		t.Errorf("two-segment heading = (%d, %v)", level, ok)
	}
}

func TestIteratePreOrder(t *testing.T) {
	b := NewBuilder()
	paragraphs := []model.ParagraphRecord{
		para(0, "1 하나"),
		para(1, "1.1 하나하나"),
		para(2, "2 둘"),
	}
	roots, _ := b.Build(paragraphs)

	var numbers []string
	for sec := range Iterate(roots) {
		numbers = append(numbers, sec.Number)
	}
	want := []string{"1", "1.1", "2"}
	if len(numbers) != len(want) {
		t.Fatalf("iterated %v, want %v", numbers, want)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, numbers[i], want[i])
		}
	}

	// Restartable: a second pass yields the same sequence.
	count := 0
	for range Iterate(roots) {
		count++
	}
	if count != 3 {
		t.Errorf("second traversal visited %d sections, want 3", count)
	}

	// Early break must not panic or over-visit.
	visited := 0
	for range Iterate(roots) {
		visited++
		break
	}
	if visited != 1 {
		t.Errorf("early break visited %d", visited)
	}
}
