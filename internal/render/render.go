package render

import (
	"fmt"

	"github.com/dshills/rootcause/internal/schema"
)

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(report *schema.Report) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md", "term" (styled markdown for a terminal).
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "term":
		return &terminalRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md, term", format)
	}
}
