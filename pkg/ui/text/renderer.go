// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/binlink/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult writes one line per link followed by a status summary.
func (r *Renderer) RenderResult(result *display.DisplayResult) error {
	if result == nil {
		return nil
	}

	header := result.Command
	if result.DryRun {
		header += " (dry run)"
	}
	if _, err := fmt.Fprintln(r.output, header); err != nil {
		return err
	}

	if result.Message != "" {
		if _, err := fmt.Fprintf(r.output, "  %s\n", result.Message); err != nil {
			return err
		}
	}

	if len(result.Links) == 0 {
		if result.Message == "" {
			_, err := fmt.Fprintln(r.output, "  No links to process")
			return err
		}
		return nil
	}

	for _, link := range result.Links {
		line := fmt.Sprintf("  %s -> %s", link.Destination, link.Target)
		if link.Filemode != "" {
			line += fmt.Sprintf(" [%s]", link.Filemode)
		}
		line += " " + link.Status
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(r.output, Summary(result))
	return err
}

// Summary formats the per-status counts, e.g. "3 links: 2 created, 1 unchanged".
func Summary(result *display.DisplayResult) string {
	noun := "links"
	if len(result.Links) == 1 {
		noun = "link"
	}
	parts := make([]string, 0, len(result.Counts()))
	for _, c := range result.Counts() {
		parts = append(parts, fmt.Sprintf("%d %s", c.Count, c.Status))
	}
	return fmt.Sprintf("%d %s: %s", len(result.Links), noun, strings.Join(parts, ", "))
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
