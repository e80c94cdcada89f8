// Package applier performs the filesystem side of a plan: it applies the
// requested permission bits to each source and creates the symlinks.
//
// Links are applied one after another. There is no rollback; the first
// failure stops the run and the outcomes gathered so far are returned next
// to the error.
package applier
