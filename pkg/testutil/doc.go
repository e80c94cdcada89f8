// Package testutil provides fixtures and assertions shared by binlink's
// tests. Tree helpers take an afero.Fs so the same layout can be written to
// memory for planner tests and to t.TempDir for tests that need real
// symlinks.
package testutil
