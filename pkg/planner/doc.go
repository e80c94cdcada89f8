// Package planner turns resolved options into concrete link records.
//
// Planning is pure with respect to the filesystem: it only stats and walks
// the sources to expand directories. Each Link carries the relative target
// the symlink will hold, the destination path, the absolute source path and
// the optional mode.
//
// Relative targets are computed from the destination's directory back to the
// source, so a tree containing both sides can be moved without breaking the
// links.
package planner
