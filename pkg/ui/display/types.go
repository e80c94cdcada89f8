// Package display holds the render-ready view of a binlink run. Renderers in
// pkg/ui consume these types so they never reach into planner or applier
// internals.
package display

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/binlink/pkg/applier"
	"github.com/arthur-debert/binlink/pkg/hook"
)

// StatusPending marks links of a plan that was never applied.
const StatusPending = "pending"

// DisplayResult is the top-level structure rendered by the plan and install
// commands.
type DisplayResult struct {
	Command    string        `json:"command"` // "plan", "install"
	Message    string        `json:"message,omitempty"`
	DryRun     bool          `json:"dryRun"`
	Root       string        `json:"root,omitempty"`
	SourceBase string        `json:"sourceBase,omitempty"`
	DestBase   string        `json:"destBase,omitempty"`
	Links      []DisplayLink `json:"links"`
	Timestamp  time.Time     `json:"timestamp"`
}

// DisplayLink is one row of output.
type DisplayLink struct {
	// Source is the real file, relative to Root when possible.
	Source string `json:"source"`
	// Destination is the symlink path, relative to Root when possible.
	Destination string `json:"destination"`
	// Target is what the symlink holds.
	Target   string `json:"target"`
	Filemode string `json:"filemode,omitempty"`
	Status   string `json:"status"`
}

// NewDisplayResult converts a hook report into a DisplayResult. A nil report
// (the hook skipped the run) yields an empty result carrying only message.
func NewDisplayResult(command string, report *hook.Report, message string) *DisplayResult {
	result := &DisplayResult{
		Command:   command,
		Message:   message,
		Links:     []DisplayLink{},
		Timestamp: time.Now(),
	}
	if report == nil {
		return result
	}

	opts := report.Options
	if opts != nil {
		result.Root = opts.Root
		result.SourceBase = relTo(opts.Root, opts.SourceBase())
		result.DestBase = relTo(opts.Root, opts.DestBase())
	}

	statuses := make(map[string]applier.Outcome)
	if report.Result != nil {
		result.DryRun = report.Result.DryRun
		for _, o := range report.Result.Outcomes {
			statuses[o.Link.To] = o
		}
	}

	for _, link := range report.Links {
		row := DisplayLink{
			Source:      link.Source,
			Destination: link.To,
			Target:      link.From,
			Filemode:    link.Filemode(),
			Status:      StatusPending,
		}
		if opts != nil {
			row.Source = relTo(opts.Root, link.Source)
			row.Destination = relTo(opts.Root, link.To)
		}
		if o, ok := statuses[link.To]; ok {
			row.Status = string(o.Status)
		}
		result.Links = append(result.Links, row)
	}

	return result
}

// Counts tallies links per status, in first-seen order.
func (r *DisplayResult) Counts() []StatusCount {
	var counts []StatusCount
	index := make(map[string]int)
	for _, link := range r.Links {
		i, ok := index[link.Status]
		if !ok {
			i = len(counts)
			index[link.Status] = i
			counts = append(counts, StatusCount{Status: link.Status})
		}
		counts[i].Count++
	}
	return counts
}

// StatusCount is one entry of DisplayResult.Counts.
type StatusCount struct {
	Status string
	Count  int
}

// relTo shows path relative to root when it lives below it.
func relTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
