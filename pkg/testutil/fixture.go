package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ScriptFiles is the source layout used across link scenarios, relative to
// the source directory.
var ScriptFiles = []string{
	"1.sh",
	"2.sh",
	"subdir0/3.sh",
	"subdir0/4.sh",
	"subdir1/5.sh",
	"subdir1/6.sh",
}

// ScriptContent is the content WriteScripts gives name.
func ScriptContent(name string) string {
	return fmt.Sprintf("#!/bin/sh\necho %s\n", name)
}

// WriteTree creates every file below root with mode 0644, creating parent
// directories as needed.
func WriteTree(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

// WriteScripts writes ScriptFiles below dir.
func WriteScripts(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	files := make(map[string]string, len(ScriptFiles))
	for _, name := range ScriptFiles {
		files[name] = ScriptContent(name)
	}
	WriteTree(t, fs, dir, files)
}

// AssertLinkTo checks that link is a symlink holding a relative target which
// resolves to a file with the same content as source.
func AssertLinkTo(t *testing.T, link, source string) {
	t.Helper()

	target, err := os.Readlink(link)
	require.NoError(t, err, "%s should be a symlink", link)
	assert.False(t, filepath.IsAbs(target), "link target %q should be relative", target)

	want, err := os.ReadFile(source)
	require.NoError(t, err)
	got, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got), "%s should read through to %s", link, source)
}

// AssertPerm checks the permission bits of path, as a four digit octal string.
func AssertPerm(t *testing.T, path, want string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, want, fmt.Sprintf("%04o", info.Mode().Perm()), "mode of %s", path)
}

// AssertNotExist checks that nothing, not even a dangling link, sits at path.
func AssertNotExist(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}
