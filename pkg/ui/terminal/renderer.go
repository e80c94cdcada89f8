// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/binlink/pkg/ui/display"
	"github.com/arthur-debert/binlink/pkg/ui/styles"
	"github.com/arthur-debert/binlink/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Renderer prints results as a pterm table with lipgloss-styled cells.
type Renderer struct {
	output io.Writer
	lg     *lipgloss.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		lg:     lipgloss.NewRenderer(w),
	}, nil
}

func (r *Renderer) style(name, s string) string {
	return styles.GetStyle(name).Renderer(r.lg).Render(s)
}

// RenderResult renders the header, a link table and a summary line.
func (r *Renderer) RenderResult(result *display.DisplayResult) error {
	if result == nil {
		return nil
	}

	header := r.style("Header", "binlink "+result.Command)
	if result.DryRun {
		header += " " + r.style("DryRun", "(dry run, nothing written)")
	}
	if _, err := fmt.Fprintln(r.output, header); err != nil {
		return err
	}

	if result.Message != "" {
		if _, err := fmt.Fprintln(r.output, r.style("Message", result.Message)); err != nil {
			return err
		}
	}

	if len(result.Links) == 0 {
		if result.Message == "" {
			_, err := fmt.Fprintln(r.output, r.style("Message", "No links to process"))
			return err
		}
		return nil
	}

	data := pterm.TableData{{"Status", "Link", "Target", "Mode"}}
	for _, link := range result.Links {
		data = append(data, []string{
			styles.ForStatus(link.Status).Renderer(r.lg).Render(link.Status),
			r.style("Path", link.Destination),
			r.style("Target", link.Target),
			r.style("Mode", link.Filemode),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render link table: %w", err)
	}
	if _, err := fmt.Fprintln(r.output, table); err != nil {
		return err
	}

	_, err = fmt.Fprintln(r.output, r.style("Message", text.Summary(result)))
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", r.style("Error", "Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
