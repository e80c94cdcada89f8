package applier

import "github.com/arthur-debert/binlink/pkg/planner"

// Status describes what happened to one link.
type Status string

const (
	// StatusCreated means a new symlink was created.
	StatusCreated Status = "created"
	// StatusReplaced means a symlink pointing elsewhere (or a file, with
	// force) was removed and the link recreated.
	StatusReplaced Status = "replaced"
	// StatusUnchanged means the destination already pointed at the target.
	StatusUnchanged Status = "unchanged"
	// StatusPlanned is reported by dry runs.
	StatusPlanned Status = "planned"
)

// Outcome records the handling of a single link.
type Outcome struct {
	Link        planner.Link `json:"link"`
	Status      Status       `json:"status"`
	ModeApplied bool         `json:"modeApplied"`
}

// Result is the outcome of applying a plan.
type Result struct {
	DryRun   bool      `json:"dryRun"`
	Outcomes []Outcome `json:"outcomes"`
}

// Count returns how many outcomes have the given status.
func (r *Result) Count(status Status) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
