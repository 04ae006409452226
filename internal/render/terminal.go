package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/dshills/rootcause/internal/schema"
)

// terminalWrap is the column at which terminal output is wrapped.
const terminalWrap = 100

// terminalRenderer styles the markdown report for a terminal.
type terminalRenderer struct {
	md markdownRenderer
}

func (r *terminalRenderer) Render(report *schema.Report) ([]byte, error) {
	md, err := r.md.Render(report)
	if err != nil {
		return nil, err
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStylePath("notty"),
		glamour.WithWordWrap(terminalWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := tr.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("rendering terminal output: %w", err)
	}
	return out, nil
}
