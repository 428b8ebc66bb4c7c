package diagram

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tsawler/docstruct/model"
)

// Reconstructor clusters independent vector-shape records into diagrams
// with ordered steps and resolved connectors.
type Reconstructor struct {
	config Config
	logger *log.Logger
}

// NewReconstructor creates a reconstructor with default configuration and
// the default logger.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		config: DefaultConfig(),
		logger: log.Default(),
	}
}

// Configure sets the reconstructor configuration.
func (r *Reconstructor) Configure(config Config) error {
	if config.MaxDocGap < 0 {
		return fmt.Errorf("diagram: MaxDocGap must not be negative, got %d", config.MaxDocGap)
	}
	if config.AspectRatioMin > config.AspectRatioMax {
		return fmt.Errorf("diagram: aspect ratio band [%g, %g] is inverted",
			config.AspectRatioMin, config.AspectRatioMax)
	}
	r.config = config
	return nil
}

// SetLogger replaces the diagnostic logger. A nil logger restores the
// default.
func (r *Reconstructor) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	r.logger = logger
}

// Extract clusters the drawing records and reconstructs one diagram per
// cluster. The clustering keys are order-independent: shuffling the input
// yields the same clusters and step/connector assignments. A structural
// failure inside one cluster skips that cluster with a logged diagnostic
// and never aborts the remaining clusters.
func (r *Reconstructor) Extract(drawings []model.DrawingRecord) []*model.DiagramData {
	if len(drawings) == 0 {
		return nil
	}

	// Canonical order first, so cluster identity never depends on the
	// caller's record order.
	recs := make([]model.DrawingRecord, len(drawings))
	copy(recs, drawings)
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].DocIndex != recs[j].DocIndex {
			return recs[i].DocIndex < recs[j].DocIndex
		}
		return recs[i].ID < recs[j].ID
	})

	uf := newUnionFind(len(recs))
	r.applyStrongRule(recs, uf)
	r.applyWeakRule(recs, uf)

	clusters := uf.clusters()
	sort.Slice(clusters, func(i, j int) bool {
		return recs[clusters[i][0]].DocIndex < recs[clusters[j][0]].DocIndex
	})

	var diagrams []*model.DiagramData
	seen := make(map[int]int)
	for _, cluster := range clusters {
		items := make([]model.DrawingRecord, 0, len(cluster))
		for _, idx := range cluster {
			items = append(items, recs[idx])
		}

		anchor := items[0].DocIndex
		seen[anchor]++
		id := fmt.Sprintf("diag_%d", anchor)
		if n := seen[anchor]; n > 1 {
			id = fmt.Sprintf("diag_%d_%d", anchor, n)
		}

		d, err := r.buildCluster(id, items)
		if err != nil {
			r.logger.Error("diagram: skipping cluster", "id", id, "doc_index", anchor, "err", err)
			continue
		}
		if d != nil {
			diagrams = append(diagrams, d)
		}
	}
	return diagrams
}

// applyStrongRule merges shapes anchored in the same paragraph when they
// share a table-cell context signature or sit within StrongDelta of each
// other.
func (r *Reconstructor) applyStrongRule(recs []model.DrawingRecord, uf *unionFind) {
	for i := 0; i < len(recs); i++ {
		for j := i + 1; j < len(recs) && recs[j].DocIndex == recs[i].DocIndex; j++ {
			if recs[i].CellRef != "" && recs[i].CellRef == recs[j].CellRef {
				uf.union(i, j)
				continue
			}
			dx := abs64(recs[i].X - recs[j].X)
			dy := abs64(recs[i].Y - recs[j].Y)
			if dx+dy <= r.config.StrongDelta {
				uf.union(i, j)
			}
		}
	}
}

// applyWeakRule stitches groups whose owning paragraphs are at most
// MaxDocGap apart when their centroids are close and both bounding boxes
// fall inside the aspect-ratio band. This reattaches a diagram whose
// shapes were split across adjacent paragraphs.
func (r *Reconstructor) applyWeakRule(recs []model.DrawingRecord, uf *unionFind) {
	groups := uf.clusters()
	stats := make([]groupStats, len(groups))
	for g, members := range groups {
		stats[g] = computeStats(recs, members)
	}

	for a := 0; a < len(groups); a++ {
		for b := a + 1; b < len(groups); b++ {
			if !r.stitchable(stats[a], stats[b]) {
				continue
			}
			uf.union(groups[a][0], groups[b][0])
		}
	}
}

func (r *Reconstructor) stitchable(a, b groupStats) bool {
	if docGap(a, b) > r.config.MaxDocGap {
		return false
	}
	if int64(math.Abs(a.centroid.Y-b.centroid.Y)) > r.config.WeakVerticalDelta {
		return false
	}
	if int64(math.Abs(a.centroid.X-b.centroid.X)) > r.config.WeakHorizontalDelta {
		return false
	}
	return r.aspectOK(a) && r.aspectOK(b)
}

func (r *Reconstructor) aspectOK(s groupStats) bool {
	if s.height <= 0 {
		return false
	}
	ratio := s.width / s.height
	return ratio >= r.config.AspectRatioMin && ratio <= r.config.AspectRatioMax
}

// buildCluster reconstructs one diagram from a merged shape cluster. Any
// panic inside the cluster is converted to an error so the caller can skip
// just this cluster.
func (r *Reconstructor) buildCluster(id string, items []model.DrawingRecord) (d *model.DiagramData, err error) {
	defer func() {
		if p := recover(); p != nil {
			d = nil
			err = fmt.Errorf("cluster panic: %v", p)
		}
	}()

	var shapes, conns []model.DrawingRecord
	for _, it := range items {
		if isConnector(&it) {
			conns = append(conns, it)
		} else {
			shapes = append(shapes, it)
		}
	}
	if len(shapes) == 0 {
		return nil, nil
	}

	steps, centers := r.buildSteps(shapes)
	connectors := r.resolveConnectors(conns, centers)

	docIndices := uniqueDocIndices(items)
	return &model.DiagramData{
		ID:         id,
		DocIndex:   docIndices[0],
		Type:       classify(steps),
		DocIndices: docIndices,
		Steps:      steps,
		Connectors: connectors,
	}, nil
}

// buildSteps parses markers and resolves step order. When no shape in the
// cluster carries a marker, synthetic sequence numbers follow ascending
// x+y (top-left-first reading order). It also returns each resolved
// sequence's shape center for connector resolution.
func (r *Reconstructor) buildSteps(shapes []model.DrawingRecord) ([]model.ProcessStep, map[int]model.Point) {
	steps := make([]model.ProcessStep, 0, len(shapes))
	stepCenters := make([]model.Point, 0, len(shapes))
	for i := range shapes {
		s := &shapes[i]
		raw := s.Text()
		seq, title, markerType, literal := parseMarker(raw)
		if title == "" {
			title = raw
		}
		steps = append(steps, model.ProcessStep{
			Sequence:   seq,
			Title:      title,
			Marker:     literal,
			MarkerType: markerType,
			RawText:    raw,
			DrawingIDs: []string{s.ID},
			DocIndex:   s.DocIndex,
		})
		stepCenters = append(stepCenters, s.Center())
	}

	resequenceAcrossParagraphs(steps)

	order := make([]int, len(steps))
	for i := range order {
		order[i] = i
	}

	anyMarked := false
	for i := range steps {
		if steps[i].Sequence > 0 {
			anyMarked = true
			break
		}
	}

	if !anyMarked {
		// Reading order: ascending x+y.
		sort.SliceStable(order, func(a, b int) bool {
			return stepCenters[order[a]].X+stepCenters[order[a]].Y <
				stepCenters[order[b]].X+stepCenters[order[b]].Y
		})
		for rank, idx := range order {
			steps[idx].Sequence = rank + 1
		}
	} else {
		// Marked steps keep their declared order; unmarked stragglers
		// fall in after the highest marker, in reading order.
		maxSeq := 0
		for i := range steps {
			if steps[i].Sequence > maxSeq {
				maxSeq = steps[i].Sequence
			}
		}
		var unmarked []int
		for i := range steps {
			if steps[i].Sequence == 0 {
				unmarked = append(unmarked, i)
			}
		}
		sort.SliceStable(unmarked, func(a, b int) bool {
			return stepCenters[unmarked[a]].X+stepCenters[unmarked[a]].Y <
				stepCenters[unmarked[b]].X+stepCenters[unmarked[b]].Y
		})
		for _, idx := range unmarked {
			maxSeq++
			steps[idx].Sequence = maxSeq
		}
	}

	centers := make(map[int]model.Point, len(steps))
	for i := range steps {
		centers[steps[i].Sequence] = stepCenters[i]
	}

	sort.SliceStable(steps, func(a, b int) bool {
		return steps[a].Sequence < steps[b].Sequence
	})
	return steps, centers
}

// resequenceAcrossParagraphs renumbers marker sequences that restart in a
// later owning paragraph, so a stitched cluster counts continuously. A
// paragraph whose markers already continue the running maximum keeps them
// unchanged.
func resequenceAcrossParagraphs(steps []model.ProcessStep) {
	byDoc := make(map[int][]int)
	for i := range steps {
		if steps[i].Sequence > 0 {
			byDoc[steps[i].DocIndex] = append(byDoc[steps[i].DocIndex], i)
		}
	}
	if len(byDoc) < 2 {
		return
	}
	docs := make([]int, 0, len(byDoc))
	for d := range byDoc {
		docs = append(docs, d)
	}
	sort.Ints(docs)

	runningMax := 0
	for _, d := range docs {
		minSeq, maxSeq := steps[byDoc[d][0]].Sequence, steps[byDoc[d][0]].Sequence
		for _, i := range byDoc[d] {
			if steps[i].Sequence < minSeq {
				minSeq = steps[i].Sequence
			}
			if steps[i].Sequence > maxSeq {
				maxSeq = steps[i].Sequence
			}
		}
		offset := 0
		if minSeq <= runningMax {
			offset = runningMax
		}
		for _, i := range byDoc[d] {
			steps[i].Sequence += offset
		}
		if maxSeq+offset > runningMax {
			runningMax = maxSeq + offset
		}
	}
}

// resolveConnectors assigns each connector the two nearest step centers by
// Euclidean distance. The from-step is the endpoint with the smaller
// center (x, then y), giving a left-to-right, top-to-bottom bias. With
// fewer than two steps, connectors are retained with unresolved endpoints.
func (r *Reconstructor) resolveConnectors(conns []model.DrawingRecord, centers map[int]model.Point) []model.DiagramConnector {
	out := make([]model.DiagramConnector, 0, len(conns))
	for i := range conns {
		c := &conns[i]
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("conn_%d_%d", c.DocIndex, i)
		}
		conn := model.DiagramConnector{ID: id, Kind: "arrow"}

		if len(centers) >= 2 {
			first, second := nearestTwo(c.Center(), centers)
			from, to := first, second
			if pointLess(centers[second], centers[first]) {
				from, to = second, first
			}
			conn.FromStep = from
			conn.ToStep = to
		}
		out = append(out, conn)
	}
	return out
}

// nearestTwo returns the sequences of the two step centers closest to p,
// breaking distance ties by sequence for determinism.
func nearestTwo(p model.Point, centers map[int]model.Point) (int, int) {
	type cand struct {
		seq  int
		dist float64
	}
	cands := make([]cand, 0, len(centers))
	for seq, c := range centers {
		cands = append(cands, cand{seq: seq, dist: p.Distance(c)})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].seq < cands[j].seq
	})
	return cands[0].seq, cands[1].seq
}

func pointLess(a, b model.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// classify labels a diagram SEQUENTIAL when its steps carry a strictly
// increasing resolved sequence, UNKNOWN otherwise.
func classify(steps []model.ProcessStep) model.DiagramType {
	if len(steps) < 2 {
		return model.DiagramTypeUnknown
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Sequence <= steps[i-1].Sequence {
			return model.DiagramTypeUnknown
		}
	}
	return model.DiagramTypeSequential
}

// isConnector classifies a shape as a connector by its preset tag.
func isConnector(d *model.DrawingRecord) bool {
	preset := strings.ToLower(d.Preset)
	return strings.Contains(preset, "arrow") || strings.Contains(preset, "connector")
}

type groupStats struct {
	minDoc, maxDoc int
	centroid       model.Point
	width, height  float64
}

func computeStats(recs []model.DrawingRecord, members []int) groupStats {
	s := groupStats{minDoc: recs[members[0]].DocIndex, maxDoc: recs[members[0]].DocIndex}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, idx := range members {
		d := &recs[idx]
		if d.DocIndex < s.minDoc {
			s.minDoc = d.DocIndex
		}
		if d.DocIndex > s.maxDoc {
			s.maxDoc = d.DocIndex
		}
		c := d.Center()
		s.centroid.X += c.X
		s.centroid.Y += c.Y
		minX = math.Min(minX, float64(d.X))
		minY = math.Min(minY, float64(d.Y))
		maxX = math.Max(maxX, float64(d.X+d.W))
		maxY = math.Max(maxY, float64(d.Y+d.H))
	}
	n := float64(len(members))
	s.centroid.X /= n
	s.centroid.Y /= n
	s.width = maxX - minX
	s.height = maxY - minY
	return s
}

// docGap returns the owning-paragraph distance between two groups' ranges,
// 0 when the ranges touch or overlap.
func docGap(a, b groupStats) int {
	if a.maxDoc < b.minDoc {
		return b.minDoc - a.maxDoc
	}
	if b.maxDoc < a.minDoc {
		return a.minDoc - b.maxDoc
	}
	return 0
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func uniqueDocIndices(items []model.DrawingRecord) []int {
	seen := make(map[int]bool, len(items))
	var out []int
	for i := range items {
		if !seen[items[i].DocIndex] {
			seen[items[i].DocIndex] = true
			out = append(out, items[i].DocIndex)
		}
	}
	sort.Ints(out)
	return out
}

// unionFind is a plain disjoint-set over record indices.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(i, j int) {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return
	}
	// Smaller root wins so cluster identity is stable.
	if rj < ri {
		ri, rj = rj, ri
	}
	uf.parent[rj] = ri
}

// clusters returns the member indices per set, members ascending, sets
// ordered by their smallest member.
func (uf *unionFind) clusters() [][]int {
	byRoot := make(map[int][]int)
	for i := range uf.parent {
		root := uf.find(i)
		byRoot[root] = append(byRoot[root], i)
	}
	roots := make([]int, 0, len(byRoot))
	for root := range byRoot {
		roots = append(roots, root)
	}
	sort.Ints(roots)
	out := make([][]int, 0, len(roots))
	for _, root := range roots {
		out = append(out, byRoot[root])
	}
	return out
}
