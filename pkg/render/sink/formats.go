package sink

import (
	"fmt"

	"github.com/matzehuels/ferris/pkg/render"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats lists the formats accepted by [Render].
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Options are the format independent drawing switches.
type Options struct {
	Arc      bool    `json:"arc"`
	Cross    bool    `json:"cross"`
	NoLabels bool    `json:"no_labels,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// Render draws f in the named format.
func Render(f render.Frame, format string, o Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(f, o.svg()...), nil
	case FormatPDF:
		return RenderPDF(f, WithPDFSVGOptions(o.svg()...))
	case FormatJSON:
		var opts []JSONOption
		if o.Arc {
			opts = append(opts, WithJSONArc())
		}
		return RenderJSON(f, opts...)
	case FormatPNG:
		opts := []PNGOption{WithScale(o.Scale)}
		if o.Arc {
			opts = append(opts, WithPNGArc())
		}
		if o.Cross {
			opts = append(opts, WithPNGCross())
		}
		if o.NoLabels {
			opts = append(opts, WithoutPNGLabels())
		}
		return RenderPNG(f, opts...)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func (o Options) svg() []SVGOption {
	var opts []SVGOption
	if o.Arc {
		opts = append(opts, WithArc())
	}
	if o.Cross {
		opts = append(opts, WithCross())
	}
	if o.NoLabels {
		opts = append(opts, WithoutLabels())
	}
	return opts
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}
