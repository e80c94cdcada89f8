package planner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/logging"
	"github.com/spf13/afero"
)

// ScanDir lists every file below dir, recursively, as paths relative to dir.
// Entries come back in lexical order.
//
// dir itself may be a symlink to a directory. Below it, symlinks to files are
// listed like files while symlinks to directories and dangling symlinks are
// skipped, so the scan never leaves the tree through a nested link.
func ScanDir(fs afero.Fs, dir string) ([]string, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to scan %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", dir)
	}

	var files []string
	if err := scan(fs, dir, "", &files); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to scan %s", dir)
	}
	return files, nil
}

func scan(fs afero.Fs, dir, rel string, files *[]string) error {
	entries, err := afero.ReadDir(fs, filepath.Join(dir, rel))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := filepath.Join(rel, entry.Name())

		if entry.IsDir() {
			if err := scan(fs, dir, name, files); err != nil {
				return err
			}
			continue
		}

		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := fs.Stat(filepath.Join(dir, name))
			if err != nil || target.IsDir() {
				logger := logging.GetLogger("planner")
				logger.Debug().
					Str("path", filepath.Join(dir, name)).
					Msg("Skipping symlink that is not a file")
				continue
			}
		}

		*files = append(*files, name)
	}
	return nil
}
