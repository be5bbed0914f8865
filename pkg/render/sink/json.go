package sink

import (
	"encoding/json"

	"github.com/matzehuels/ferris/pkg/geom"
	"github.com/matzehuels/ferris/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	arc    bool
	indent bool
}

// WithJSONArc includes the arc's table points in the output.
func WithJSONArc() JSONOption { return func(r *jsonRenderer) { r.arc = true } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	render.Frame
	Visible int          `json:"visible"`
	Arc     []geom.Point `json:"arc,omitempty"`
}

// RenderJSON serializes the frame.
func RenderJSON(f render.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{Frame: f, Visible: f.VisibleCount()}
	if r.arc {
		out.Arc = f.Arc
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
