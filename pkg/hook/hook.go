// Package hook is the entry point a host build tool calls after installing
// dependencies. It does nothing outside development mode; in development
// mode it resolves the binlink block, plans the links and applies them.
package hook

import (
	"context"

	"github.com/arthur-debert/binlink/pkg/applier"
	"github.com/arthur-debert/binlink/pkg/config"
	"github.com/arthur-debert/binlink/pkg/logging"
	"github.com/arthur-debert/binlink/pkg/options"
	"github.com/arthur-debert/binlink/pkg/planner"
	"github.com/spf13/afero"
)

// Event is what the host hands over when it triggers the hook.
type Event struct {
	// Name of the host lifecycle event, for logging only.
	Name string
	// DevMode is the host's development flag; the hook is a no-op without it.
	DevMode bool
	// Root is the project root; relative directories resolve against it.
	Root string
	// Extra is the host manifest's extra section.
	Extra map[string]interface{}
}

// Options tune a hook run.
type Options struct {
	// Block names the binlink block in Event.Extra; config.DefaultBlock when empty.
	Block  string
	DryRun bool
	Force  bool
}

// Report is returned by a run that went past the dev-mode gate.
type Report struct {
	Options *options.Options
	Links   []planner.Link
	Result  *applier.Result
}

// InstallBinary runs the link installation for ev. Outside development mode
// it returns a nil report and a nil error. Configuration errors are reported
// before the filesystem is touched.
func InstallBinary(ctx context.Context, fs afero.Fs, ev Event, opts Options) (*Report, error) {
	logger := logging.GetLogger("hook").With().Str("event", ev.Name).Logger()

	if !ev.DevMode {
		logger.Debug().Msg("Not in development mode, skipping link installation")
		return nil, nil
	}

	report, err := Plan(fs, ev, opts.Block)
	if err != nil {
		return nil, err
	}

	result, err := applier.New(fs).
		EnableDryRun(opts.DryRun).
		EnableForce(opts.Force).
		Apply(ctx, report.Links)
	report.Result = result
	if err != nil {
		return report, err
	}

	logger.Info().
		Int("links", len(report.Links)).
		Bool("dryRun", opts.DryRun).
		Msg("Link installation finished")

	return report, nil
}

// Plan resolves and plans the block without applying anything. It is not
// gated by development mode.
func Plan(fs afero.Fs, ev Event, block string) (*Report, error) {
	if block == "" {
		block = config.DefaultBlock
	}

	opts, err := options.Resolve(config.Block(ev.Extra, block), ev.Root)
	if err != nil {
		return nil, err
	}

	links, err := planner.Plan(fs, opts)
	if err != nil {
		return nil, err
	}

	return &Report{Options: opts, Links: links}, nil
}
