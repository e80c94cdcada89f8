// Package config loads the binlink configuration block from a host manifest.
//
// A manifest is either a host build file whose extra section carries the
// block under its name (composer.json style):
//
//	{"extra": {"binlink": {"links": ["console"]}}}
//
// or a standalone binlink.toml / .binlink.toml / binlink.yaml file that is the
// block itself. Parsing goes through koanf so JSON, TOML and YAML behave the
// same way. BINLINK_* environment variables overlay the scalar options of
// the block after the file is read.
package config
