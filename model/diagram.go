package model

import "fmt"

// DiagramType classifies a reconstructed diagram.
type DiagramType int

const (
	// DiagramTypeUnknown means step ordering could not be established.
	DiagramTypeUnknown DiagramType = iota
	// DiagramTypeSequential means the steps form a strictly increasing
	// sequence.
	DiagramTypeSequential
)

func (dt DiagramType) String() string {
	switch dt {
	case DiagramTypeSequential:
		return "SEQUENTIAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON serializes the diagram type as its string tag.
func (dt DiagramType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

// UnmarshalJSON parses a diagram type from its string tag.
func (dt *DiagramType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"SEQUENTIAL"`:
		*dt = DiagramTypeSequential
	case `"UNKNOWN"`:
		*dt = DiagramTypeUnknown
	default:
		return fmt.Errorf("unknown diagram type %s", data)
	}
	return nil
}

// MarkerType classifies the leading order marker of a diagram step.
type MarkerType int

const (
	MarkerNone MarkerType = iota
	MarkerCircled
	MarkerArabic
	MarkerRoman
)

func (mt MarkerType) String() string {
	switch mt {
	case MarkerCircled:
		return "circled"
	case MarkerArabic:
		return "arabic"
	case MarkerRoman:
		return "roman"
	default:
		return "none"
	}
}

// MarshalJSON serializes the marker type as its string tag.
func (mt MarkerType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + mt.String() + `"`), nil
}

// UnmarshalJSON parses a marker type from its string tag.
func (mt *MarkerType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"circled"`:
		*mt = MarkerCircled
	case `"arabic"`:
		*mt = MarkerArabic
	case `"roman"`:
		*mt = MarkerRoman
	case `"none"`:
		*mt = MarkerNone
	default:
		return fmt.Errorf("unknown marker type %s", data)
	}
	return nil
}

// ProcessStep is one step of a reconstructed diagram.
type ProcessStep struct {
	// Sequence is the resolved step order, 1-based. Steps without a
	// marker receive synthetic sequence numbers in reading order.
	Sequence int `json:"sequence"`

	// Title is the step text with the marker stripped.
	Title string `json:"title"`

	// Marker is the raw marker literal (e.g. "①", "2"), empty when the
	// step carried none.
	Marker string `json:"marker,omitempty"`

	// MarkerType classifies the marker.
	MarkerType MarkerType `json:"marker_type"`

	// RawText is the step's text before marker parsing.
	RawText string `json:"raw_text,omitempty"`

	// DrawingIDs references the originating drawing records.
	DrawingIDs []string `json:"dids,omitempty"`

	// DocIndex is the owning paragraph position of the step's shape.
	DocIndex int `json:"doc_index"`
}

// DiagramConnector links two resolved steps of a diagram. FromStep and
// ToStep are step sequence numbers; both are 0 when the connector could
// not be resolved (fewer than two steps in the cluster).
type DiagramConnector struct {
	ID       string `json:"did"`
	Kind     string `json:"type"`
	FromStep int    `json:"from_step,omitempty"`
	ToStep   int    `json:"to_step,omitempty"`
}

// Resolved reports whether both endpoints were resolved to steps.
func (c DiagramConnector) Resolved() bool {
	return c.FromStep > 0 && c.ToStep > 0
}

// DiagramData is one reconstructed diagram: an ordered set of steps plus
// the connectors between them.
type DiagramData struct {
	ID       string      `json:"id"`
	DocIndex int         `json:"doc_index"`
	Type     DiagramType `json:"diagram_type"`

	// DocIndices lists every owning paragraph position the diagram's
	// shapes were stitched from, ascending.
	DocIndices []int `json:"doc_indices"`

	Steps      []ProcessStep      `json:"steps"`
	Connectors []DiagramConnector `json:"connectors"`
}
