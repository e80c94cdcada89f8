package planner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/logging"
	"github.com/arthur-debert/binlink/pkg/options"
	"github.com/spf13/afero"
)

// Link is one resolved symlink to create.
type Link struct {
	// From is the symlink target, relative to the directory of To.
	From string `json:"from"`
	// To is the absolute destination path of the symlink.
	To string `json:"to"`
	// Source is the absolute path of the real source file.
	Source string `json:"source"`
	// Mode is applied to Source before linking when set.
	Mode *os.FileMode `json:"-"`
}

// Filemode returns the link's mode as an octal string, or "" when unset.
func (l Link) Filemode() string {
	return options.FormatFileMode(l.Mode)
}

// Plan expands opts into the list of links to create, in declaration order.
// Directories are walked in lexical order.
//
// Two links that would land on the same destination from different sources
// are rejected with ErrLinkConflict. Exact duplicates are dropped.
func Plan(fs afero.Fs, opts *options.Options) ([]Link, error) {
	logger := logging.GetLogger("planner")
	done := logging.LogOperationStart(logger, "plan")
	defer done()

	sourceBase := opts.SourceBase()
	destBase := opts.DestBase()

	var links []Link
	seen := make(map[string]string)

	for _, spec := range opts.Links {
		expanded, err := expand(fs, spec, sourceBase, destBase, opts.Flatten)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Stringer("link", spec).
			Int("expanded", len(expanded)).
			Msg("Expanded link")

		for _, link := range expanded {
			if existing, ok := seen[link.To]; ok {
				if existing == link.Source {
					logger.Debug().Str("to", link.To).Msg("Skipping duplicate link")
					continue
				}
				return nil, errors.Newf(errors.ErrLinkConflict,
					"link conflict: both %s and %s want to link to %s",
					existing, link.Source, link.To).
					WithDetail("to", link.To).
					WithDetail("first", existing).
					WithDetail("second", link.Source)
			}
			seen[link.To] = link.Source
			links = append(links, link)
		}
	}

	logger.Info().
		Int("specs", len(opts.Links)).
		Int("links", len(links)).
		Msg("Planned links")

	return links, nil
}

// expand resolves a single links entry into one link per file.
func expand(fs afero.Fs, spec options.LinkSpec, sourceBase, destBase string, flatten bool) ([]Link, error) {
	source := options.Join(sourceBase, spec.From)

	isDir, err := afero.IsDir(fs, source)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", source)
	}

	if !isDir {
		to := spec.To
		if to == "" {
			to = filepath.Base(spec.From)
		}
		link, err := newLink(source, options.Join(destBase, to), spec.Mode)
		if err != nil {
			return nil, err
		}
		return []Link{link}, nil
	}

	// An explicit to on a directory names a subdirectory of the destination.
	dirDest := destBase
	if spec.To != "" {
		dirDest = options.Join(destBase, spec.To)
	}

	files, err := ScanDir(fs, source)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(files))
	for _, rel := range files {
		name := rel
		if flatten {
			name = filepath.Base(rel)
		}
		link, err := newLink(filepath.Join(source, rel), filepath.Join(dirDest, name), spec.Mode)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func newLink(source, to string, mode *os.FileMode) (Link, error) {
	from, err := RelativeTarget(source, to)
	if err != nil {
		return Link{}, err
	}
	return Link{From: from, To: to, Source: source, Mode: mode}, nil
}

// RelativeTarget returns the path a symlink at to must hold to reach source.
// Both paths must be absolute.
func RelativeTarget(source, to string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(to), source)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput,
			"cannot make %s relative to %s", source, filepath.Dir(to))
	}
	return rel, nil
}
