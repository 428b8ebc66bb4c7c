package diagram

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/tsawler/docstruct/model"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		text     string
		wantSeq  int
		wantTite string
		wantType model.MarkerType
		wantLit  string
	}{
		{"① 가열", 1, "가열", model.MarkerCircled, "①"},
		{"⑳ 마지막", 20, "마지막", model.MarkerCircled, "⑳"},
		{"2. 냉각", 2, "냉각", model.MarkerArabic, "2"},
		{"STEP 3) 검사", 3, "검사", model.MarkerArabic, "3"},
		{"iv. 포장", 4, "포장", model.MarkerRoman, "iv"},
		{"II) 출하", 2, "출하", model.MarkerRoman, "II"},
		{"7 단순 번호", 7, "단순 번호", model.MarkerArabic, "7"},
		{"가열 공정", 0, "가열 공정", model.MarkerNone, ""},
		{"", 0, "", model.MarkerNone, ""},
	}
	for _, tt := range tests {
		seq, title, mt, lit := parseMarker(tt.text)
		if seq != tt.wantSeq || title != tt.wantTite || mt != tt.wantType || lit != tt.wantLit {
			t.Errorf("parseMarker(%q) = (%d, %q, %v, %q), want (%d, %q, %v, %q)",
				tt.text, seq, title, mt, lit, tt.wantSeq, tt.wantTite, tt.wantType, tt.wantLit)
		}
	}
}

func TestParseMarkerFullWidth(t *testing.T) {
	seq, title, mt, _ := parseMarker("２．냉각")
	if seq != 2 || title != "냉각" || mt != model.MarkerArabic {
		t.Errorf("full-width marker = (%d, %q, %v)", seq, title, mt)
	}
}

// shape builds a step-like rectangle record.
func shape(id string, docIndex int, x, y int64, text string) model.DrawingRecord {
	return model.DrawingRecord{
		ID: id, DocIndex: docIndex, Preset: "rect",
		X: x, Y: y, W: 200000, H: 100000,
		Runs: []string{text},
	}
}

// arrow builds a connector record.
func arrow(id string, docIndex int, x, y int64) model.DrawingRecord {
	return model.DrawingRecord{
		ID: id, DocIndex: docIndex, Preset: "rightArrow",
		X: x, Y: y, W: 100000, H: 20000,
	}
}

func TestExtractMarkedSteps(t *testing.T) {
	r := NewReconstructor()
	drawings := []model.DrawingRecord{
		shape("s1", 10, 0, 0, "① 가열"),
		arrow("c1", 10, 210000, 40000),
		shape("s2", 10, 320000, 0, "② 냉각"),
	}

	diagrams := r.Extract(drawings)
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 diagram, got %d", len(diagrams))
	}
	d := diagrams[0]
	if d.ID != "diag_10" || d.DocIndex != 10 {
		t.Errorf("diagram identity = %q at %d", d.ID, d.DocIndex)
	}
	if d.Type != model.DiagramTypeSequential {
		t.Errorf("type = %v, want SEQUENTIAL", d.Type)
	}
	if len(d.Steps) != 2 {
		t.Fatalf("steps = %+v", d.Steps)
	}
	if d.Steps[0].Sequence != 1 || d.Steps[0].Title != "가열" || d.Steps[0].MarkerType != model.MarkerCircled {
		t.Errorf("step 1 = %+v", d.Steps[0])
	}
	if d.Steps[1].Sequence != 2 || d.Steps[1].Title != "냉각" {
		t.Errorf("step 2 = %+v", d.Steps[1])
	}
	if len(d.Connectors) != 1 {
		t.Fatalf("connectors = %+v", d.Connectors)
	}
	c := d.Connectors[0]
	if c.FromStep != 1 || c.ToStep != 2 {
		t.Errorf("connector = %+v, want from 1 to 2", c)
	}
}

func TestExtractSyntheticOrder(t *testing.T) {
	// No markers anywhere: reading order is ascending x+y.
	r := NewReconstructor()
	drawings := []model.DrawingRecord{
		shape("b", 3, 300000, 0, "둘째"),
		shape("a", 3, 0, 0, "첫째"),
	}

	diagrams := r.Extract(drawings)
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 diagram, got %d", len(diagrams))
	}
	steps := diagrams[0].Steps
	if steps[0].Title != "첫째" || steps[0].Sequence != 1 {
		t.Errorf("first step = %+v", steps[0])
	}
	if steps[1].Title != "둘째" || steps[1].Sequence != 2 {
		t.Errorf("second step = %+v", steps[1])
	}
	if steps[0].MarkerType != model.MarkerNone {
		t.Errorf("synthetic step has marker type %v", steps[0].MarkerType)
	}
}

func TestExtractUnresolvedConnector(t *testing.T) {
	r := NewReconstructor()
	drawings := []model.DrawingRecord{
		shape("s1", 5, 0, 0, "단독"),
		arrow("c1", 5, 100000, 0),
	}

	diagrams := r.Extract(drawings)
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 diagram, got %d", len(diagrams))
	}
	d := diagrams[0]
	if len(d.Connectors) != 1 {
		t.Fatalf("connector dropped: %+v", d.Connectors)
	}
	if d.Connectors[0].Resolved() {
		t.Errorf("connector with a single step resolved: %+v", d.Connectors[0])
	}
}

func TestExtractStrongRuleSeparatesDistantShapes(t *testing.T) {
	r := NewReconstructor()
	// Same paragraph, but far beyond StrongDelta and with no cell
	// context: two clusters.
	drawings := []model.DrawingRecord{
		shape("s1", 5, 0, 0, "하나"),
		shape("s2", 5, 5000000, 5000000, "둘"),
	}
	diagrams := r.Extract(drawings)
	if len(diagrams) != 2 {
		t.Fatalf("expected 2 diagrams, got %d", len(diagrams))
	}
	if diagrams[0].ID == diagrams[1].ID {
		t.Errorf("cluster ids collide: %q", diagrams[0].ID)
	}
}

func TestExtractCellContextMerges(t *testing.T) {
	r := NewReconstructor()
	// Far apart, but the shared cell signature merges unconditionally.
	a := shape("s1", 5, 0, 0, "하나")
	a.CellRef = "tbl1:r2c3"
	b := shape("s2", 5, 5000000, 5000000, "둘")
	b.CellRef = "tbl1:r2c3"

	diagrams := r.Extract([]model.DrawingRecord{a, b})
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 diagram, got %d", len(diagrams))
	}
}

func TestExtractWeakRuleStitchesAdjacentParagraphs(t *testing.T) {
	r := NewReconstructor()
	drawings := []model.DrawingRecord{
		shape("s1", 19, 0, 0, "① 준비"),
		shape("s2", 20, 100000, 300000, "② 실행"),
		shape("s3", 21, 200000, 600000, "③ 완료"),
	}

	diagrams := r.Extract(drawings)
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 stitched diagram, got %d", len(diagrams))
	}
	d := diagrams[0]
	if !reflect.DeepEqual(d.DocIndices, []int{19, 20, 21}) {
		t.Errorf("doc indices = %v", d.DocIndices)
	}
	if len(d.Steps) != 3 || d.Type != model.DiagramTypeSequential {
		t.Errorf("steps = %d, type = %v", len(d.Steps), d.Type)
	}
}

func TestExtractStitchRenumbersRestartedMarkers(t *testing.T) {
	// Two stitched paragraphs both numbered ①②: the second run continues
	// the count instead of duplicating it.
	r := NewReconstructor()
	drawings := []model.DrawingRecord{
		shape("s1", 10, 0, 0, "① 장입"),
		shape("s2", 10, 300000, 0, "② 가열"),
		shape("s3", 11, 0, 300000, "① 압연"),
		shape("s4", 11, 300000, 300000, "② 권취"),
	}

	diagrams := r.Extract(drawings)
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 stitched diagram, got %d", len(diagrams))
	}
	d := diagrams[0]
	if len(d.Steps) != 4 || d.Type != model.DiagramTypeSequential {
		t.Fatalf("steps = %d, type = %v", len(d.Steps), d.Type)
	}
	wantTitles := []string{"장입", "가열", "압연", "권취"}
	for i, s := range d.Steps {
		if s.Sequence != i+1 || s.Title != wantTitles[i] {
			t.Errorf("step %d = seq %d %q, want seq %d %q", i, s.Sequence, s.Title, i+1, wantTitles[i])
		}
	}
}

func TestExtractStitchKeepsContinuingMarkers(t *testing.T) {
	r := NewReconstructor()
	drawings := []model.DrawingRecord{
		shape("s1", 10, 0, 0, "① 장입"),
		shape("s2", 11, 0, 300000, "② 가열"),
	}
	diagrams := r.Extract(drawings)
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 diagram, got %d", len(diagrams))
	}
	steps := diagrams[0].Steps
	if steps[0].Sequence != 1 || steps[1].Sequence != 2 {
		t.Errorf("continuing markers renumbered: %+v", steps)
	}
}

func TestExtractWeakRuleRespectsDocGap(t *testing.T) {
	r := NewReconstructor()
	drawings := []model.DrawingRecord{
		shape("s1", 10, 0, 0, "하나"),
		shape("s2", 14, 0, 300000, "둘"),
	}
	diagrams := r.Extract(drawings)
	if len(diagrams) != 2 {
		t.Fatalf("groups 4 paragraphs apart stitched: %d diagrams", len(diagrams))
	}
}

func TestExtractOrderIndependent(t *testing.T) {
	base := []model.DrawingRecord{
		shape("s1", 10, 0, 0, "① 가열"),
		arrow("c1", 10, 210000, 40000),
		shape("s2", 10, 320000, 0, "② 냉각"),
		shape("s3", 12, 100000, 400000, "③ 검사"),
		shape("t1", 30, 0, 0, "별도"),
	}

	r := NewReconstructor()
	want := r.Extract(base)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]model.DrawingRecord, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := r.Extract(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: shuffled input changed result\n got: %+v\nwant: %+v", trial, got, want)
		}
	}
}

func TestExtractEmpty(t *testing.T) {
	r := NewReconstructor()
	if got := r.Extract(nil); got != nil {
		t.Errorf("Extract(nil) = %v", got)
	}
}

func TestExtractConnectorOnlyCluster(t *testing.T) {
	r := NewReconstructor()
	diagrams := r.Extract([]model.DrawingRecord{arrow("c1", 4, 0, 0)})
	if len(diagrams) != 0 {
		t.Errorf("connector-only cluster produced a diagram: %+v", diagrams)
	}
}

func TestConfigureRejectsInvertedBand(t *testing.T) {
	r := NewReconstructor()
	cfg := DefaultConfig()
	cfg.AspectRatioMin = 5
	cfg.AspectRatioMax = 1
	if err := r.Configure(cfg); err == nil {
		t.Error("inverted aspect band accepted")
	}
}

func TestClassify(t *testing.T) {
	seq := []model.ProcessStep{{Sequence: 1}, {Sequence: 2}, {Sequence: 3}}
	if classify(seq) != model.DiagramTypeSequential {
		t.Error("increasing steps not SEQUENTIAL")
	}
	dup := []model.ProcessStep{{Sequence: 1}, {Sequence: 1}}
	if classify(dup) != model.DiagramTypeUnknown {
		t.Error("duplicate sequences classified SEQUENTIAL")
	}
	single := []model.ProcessStep{{Sequence: 1}}
	if classify(single) != model.DiagramTypeUnknown {
		t.Error("single step classified SEQUENTIAL")
	}
}
