package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour. Other formats fall
// through to PlainRenderer.
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path to
	// a style file. Empty or "auto" picks one from the terminal.
	Style string
	// Width wraps output at the given column; 0 keeps glamour's default.
	Width int
}

// NewGlamourRenderer creates a markdown renderer using glamour with auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// NewPlainGlamourRenderer renders markdown without colors, for pipes and
// NO_COLOR.
func NewPlainGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "notty"}
}

// Render converts markdown to terminal output, falling back to the raw
// content when glamour fails.
func (r *GlamourRenderer) Render(content string, format string) string {
	plain := &PlainRenderer{}
	if format != ".md" {
		return plain.Render(content, format)
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "dracula", "pink", "ascii":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return plain.Render(content, format)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return plain.Render(content, format)
	}
	return rendered
}
