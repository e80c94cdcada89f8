// pkg/applier/applier_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), afero OsFs
// PURPOSE: Test chmod and symlink creation, idempotency and failure handling

package applier_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/binlink/pkg/applier"
	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/planner"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mode(m os.FileMode) *os.FileMode { return &m }

// writeSource creates root/app/<name> and returns its absolute path.
func writeSource(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, "app", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func linkFor(t *testing.T, source, to string, m *os.FileMode) planner.Link {
	t.Helper()
	from, err := planner.RelativeTarget(source, to)
	require.NoError(t, err)
	return planner.Link{From: from, To: to, Source: source, Mode: m}
}

func TestApply_CreatesRelativeSymlink(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "echo run")
	to := filepath.Join(root, "bin", "run.sh")

	result, err := applier.New(afero.NewOsFs()).Apply(context.Background(),
		[]planner.Link{linkFor(t, source, to, nil)})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, applier.StatusCreated, result.Outcomes[0].Status)
	assert.False(t, result.Outcomes[0].ModeApplied)

	target, err := os.Readlink(to)
	require.NoError(t, err)
	assert.Equal(t, "../app/run.sh", target)
	assert.False(t, filepath.IsAbs(target))

	content, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Equal(t, "echo run", string(content))
}

func TestApply_LinkSurvivesMovingTheTree(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "project")
	source := writeSource(t, root, "run.sh", "moved")
	to := filepath.Join(root, "bin", "run.sh")

	_, err := applier.New(afero.NewOsFs()).Apply(context.Background(),
		[]planner.Link{linkFor(t, source, to, nil)})
	require.NoError(t, err)

	moved := filepath.Join(parent, "renamed")
	require.NoError(t, os.Rename(root, moved))

	content, err := os.ReadFile(filepath.Join(moved, "bin", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, "moved", string(content))
}

func TestApply_AppliesFilemode(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "x")

	result, err := applier.New(afero.NewOsFs()).Apply(context.Background(),
		[]planner.Link{linkFor(t, source, filepath.Join(root, "bin", "run.sh"), mode(0o711))})
	require.NoError(t, err)
	assert.True(t, result.Outcomes[0].ModeApplied)

	info, err := os.Stat(source)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o711), info.Mode().Perm())
}

func TestApply_Idempotent(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "x")
	links := []planner.Link{linkFor(t, source, filepath.Join(root, "bin", "run.sh"), nil)}
	a := applier.New(afero.NewOsFs())

	_, err := a.Apply(context.Background(), links)
	require.NoError(t, err)

	result, err := a.Apply(context.Background(), links)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count(applier.StatusUnchanged))
}

func TestApply_ReplacesStaleSymlink(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "new")
	to := filepath.Join(root, "bin", "run.sh")
	require.NoError(t, os.MkdirAll(filepath.Dir(to), 0755))
	require.NoError(t, os.Symlink("../elsewhere/run.sh", to))

	result, err := applier.New(afero.NewOsFs()).Apply(context.Background(),
		[]planner.Link{linkFor(t, source, to, nil)})
	require.NoError(t, err)
	assert.Equal(t, applier.StatusReplaced, result.Outcomes[0].Status)

	target, err := os.Readlink(to)
	require.NoError(t, err)
	assert.Equal(t, "../app/run.sh", target)
}

func TestApply_RegularFileAtDestination(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "linked")
	to := filepath.Join(root, "bin", "run.sh")
	require.NoError(t, os.MkdirAll(filepath.Dir(to), 0755))
	require.NoError(t, os.WriteFile(to, []byte("precious"), 0644))
	links := []planner.Link{linkFor(t, source, to, nil)}

	t.Run("refused_without_force", func(t *testing.T) {
		_, err := applier.New(afero.NewOsFs()).Apply(context.Background(), links)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkExists))

		content, err := os.ReadFile(to)
		require.NoError(t, err)
		assert.Equal(t, "precious", string(content))
	})

	t.Run("replaced_with_force", func(t *testing.T) {
		result, err := applier.New(afero.NewOsFs()).EnableForce(true).Apply(context.Background(), links)
		require.NoError(t, err)
		assert.Equal(t, applier.StatusReplaced, result.Outcomes[0].Status)

		content, err := os.ReadFile(to)
		require.NoError(t, err)
		assert.Equal(t, "linked", string(content))
	})
}

func TestApply_DirectoryAtDestinationIsNeverReplaced(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "x")
	to := filepath.Join(root, "bin", "run.sh")
	require.NoError(t, os.MkdirAll(to, 0755))

	_, err := applier.New(afero.NewOsFs()).EnableForce(true).Apply(context.Background(),
		[]planner.Link{linkFor(t, source, to, nil)})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkExists))
}

func TestApply_MissingSourceStopsTheRun(t *testing.T) {
	root := t.TempDir()
	good := writeSource(t, root, "good.sh", "x")
	missing := filepath.Join(root, "app", "missing.sh")
	links := []planner.Link{
		linkFor(t, good, filepath.Join(root, "bin", "good.sh"), nil),
		linkFor(t, missing, filepath.Join(root, "bin", "missing.sh"), mode(0o755)),
		linkFor(t, good, filepath.Join(root, "bin", "after.sh"), nil),
	}

	result, err := applier.New(afero.NewOsFs()).Apply(context.Background(), links)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	// No rollback: the first link stays, nothing after the failure is created.
	require.Len(t, result.Outcomes, 1)
	_, err = os.Lstat(filepath.Join(root, "bin", "good.sh"))
	assert.NoError(t, err)
	_, err = os.Lstat(filepath.Join(root, "bin", "after.sh"))
	assert.True(t, os.IsNotExist(err))
}

func TestApply_DryRun(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "x")
	to := filepath.Join(root, "bin", "run.sh")

	result, err := applier.New(afero.NewOsFs()).EnableDryRun(true).Apply(context.Background(),
		[]planner.Link{linkFor(t, source, to, mode(0o700))})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Count(applier.StatusPlanned))

	_, err = os.Lstat(filepath.Join(root, "bin"))
	assert.True(t, os.IsNotExist(err), "dry run must not create directories")

	info, err := os.Stat(source)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm(), "dry run must not chmod")
}

func TestApply_CanceledContext(t *testing.T) {
	root := t.TempDir()
	source := writeSource(t, root, "run.sh", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := applier.New(afero.NewOsFs()).Apply(ctx,
		[]planner.Link{linkFor(t, source, filepath.Join(root, "bin", "run.sh"), nil)})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
	assert.Empty(t, result.Outcomes)
}

func TestApply_FilesystemWithoutSymlinks(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/app/run.sh", []byte("x"), 0644))

	_, err := applier.New(fs).Apply(context.Background(), []planner.Link{{
		From:   "../app/run.sh",
		To:     "/p/bin/run.sh",
		Source: "/p/app/run.sh",
	}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
}

func TestResultCount_Nil(t *testing.T) {
	var r *applier.Result
	assert.Equal(t, 0, r.Count(applier.StatusCreated))
}
