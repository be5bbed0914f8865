package pipeline

import (
	"fmt"

	"github.com/matzehuels/ferris/pkg/render"
	"github.com/matzehuels/ferris/pkg/render/sink"
)

// Render draws f in every format.
func Render(f render.Frame, formats []string, opts sink.Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := sink.Render(f, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
