package applier

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/logging"
	"github.com/arthur-debert/binlink/pkg/planner"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Applier creates planned links on a filesystem.
type Applier struct {
	fs     afero.Fs
	dryRun bool
	force  bool
	logger zerolog.Logger
}

// New creates an applier working on fs. The filesystem must support
// symlinks (afero.Linker) for a real run; afero.NewOsFs does.
func New(fs afero.Fs) *Applier {
	return &Applier{
		fs:     fs,
		logger: logging.GetLogger("applier"),
	}
}

// EnableDryRun makes Apply report what it would do without touching anything.
func (a *Applier) EnableDryRun(dryRun bool) *Applier {
	a.dryRun = dryRun
	return a
}

// EnableForce allows replacing regular files that sit where a link should go.
func (a *Applier) EnableForce(force bool) *Applier {
	a.force = force
	return a
}

// Apply chmods sources and creates symlinks for every link, in order.
func (a *Applier) Apply(ctx context.Context, links []planner.Link) (*Result, error) {
	done := logging.LogOperationStart(a.logger, "apply")
	defer done()

	result := &Result{DryRun: a.dryRun}

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, errors.ErrCanceled, "apply canceled")
		}

		outcome, err := a.applyOne(link)
		if err != nil {
			a.logger.Error().Err(err).Str("to", link.To).Msg("Failed to apply link")
			return result, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	a.logger.Info().
		Bool("dryRun", a.dryRun).
		Int("created", result.Count(StatusCreated)).
		Int("replaced", result.Count(StatusReplaced)).
		Int("unchanged", result.Count(StatusUnchanged)).
		Msg("Links applied")

	return result, nil
}

func (a *Applier) applyOne(link planner.Link) (Outcome, error) {
	logger := a.logger.With().Str("from", link.From).Str("to", link.To).Logger()
	outcome := Outcome{Link: link}

	if _, err := a.fs.Stat(link.Source); err != nil {
		if os.IsNotExist(err) {
			return outcome, errors.Wrapf(err, errors.ErrFileNotFound, "source %s does not exist", link.Source).
				WithDetail("source", link.Source)
		}
		return outcome, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat source %s", link.Source)
	}

	if a.dryRun {
		logger.Info().Str("filemode", link.Filemode()).Msg("Would create symlink")
		outcome.Status = StatusPlanned
		return outcome, nil
	}

	if link.Mode != nil {
		if err := a.fs.Chmod(link.Source, *link.Mode); err != nil {
			return outcome, errors.Wrapf(err, errors.ErrChmod, "failed to chmod %s to %s", link.Source, link.Filemode()).
				WithDetail("source", link.Source).
				WithDetail("filemode", link.Filemode())
		}
		outcome.ModeApplied = true
		logger.Debug().Str("filemode", link.Filemode()).Msg("Applied filemode")
	}

	dir := filepath.Dir(link.To)
	if err := a.fs.MkdirAll(dir, 0755); err != nil {
		return outcome, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}

	status, err := a.clearDestination(link)
	if err != nil {
		return outcome, err
	}
	outcome.Status = status
	if status == StatusUnchanged {
		logger.Debug().Msg("Symlink already in place")
		return outcome, nil
	}

	linker, ok := a.fs.(afero.Linker)
	if !ok {
		return outcome, errors.Newf(errors.ErrSymlinkCreate,
			"filesystem %s does not support symlinks", a.fs.Name())
	}
	if err := linker.SymlinkIfPossible(link.From, link.To); err != nil {
		return outcome, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink %s", link.To).
			WithDetail("from", link.From).
			WithDetail("to", link.To)
	}

	logger.Info().Str("status", string(status)).Msg("Symlink created")
	return outcome, nil
}

// clearDestination makes room for the link at link.To. It reports
// StatusUnchanged when an identical link is already there.
func (a *Applier) clearDestination(link planner.Link) (Status, error) {
	info, err := a.lstat(link.To)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusCreated, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", link.To)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if reader, ok := a.fs.(afero.LinkReader); ok {
			target, err := reader.ReadlinkIfPossible(link.To)
			if err == nil && target == link.From {
				return StatusUnchanged, nil
			}
		}
		if err := a.fs.Remove(link.To); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to remove stale symlink %s", link.To)
		}
		return StatusReplaced, nil
	}

	if info.IsDir() || !a.force {
		return "", errors.Newf(errors.ErrSymlinkExists, "%s already exists and is not a symlink", link.To).
			WithDetail("to", link.To)
	}

	a.logger.Warn().Str("to", link.To).Msg("Replacing existing file in force mode")
	if err := a.fs.Remove(link.To); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", link.To)
	}
	return StatusReplaced, nil
}

func (a *Applier) lstat(name string) (os.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}
