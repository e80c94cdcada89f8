package topics

import "strings"

// Renderer turns raw topic content into terminal output. format is the
// topic file's extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics as they are stored, with a trailing newline.
type PlainRenderer struct{}

// Render returns the content unchanged apart from the final newline.
func (r *PlainRenderer) Render(content string, format string) string {
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
