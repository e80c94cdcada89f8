package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/logging"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultBlock is the name of the block inside the manifest's extra section.
	DefaultBlock = "binlink"
	// ExtraKey is the host manifest section holding tool specific blocks.
	ExtraKey = "extra"
	// EnvPrefix prefixes the environment overrides (BINLINK_TO_DIR, ...).
	EnvPrefix = "BINLINK_"

	// Link paths routinely contain dots, so koanf must not split on them.
	keyDelim = "::"
)

// ManifestCandidates are looked up in the root, in order, when no manifest is
// given explicitly.
var ManifestCandidates = []string{
	"binlink.toml",
	".binlink.toml",
	"binlink.yaml",
	"binlink.yml",
	"composer.json",
}

// envKeys lists the block keys environment variables may override.
var envKeys = map[string]bool{
	"from-dir": true,
	"to-dir":   true,
	"filemode": true,
	"use-root": true,
	"flatten":  true,
}

// LoadOptions selects which manifest and block to load.
type LoadOptions struct {
	// Root is searched for ManifestCandidates when Manifest is empty.
	Root string
	// Manifest is an explicit manifest path; relative paths resolve against Root.
	Manifest string
	// Block names the block inside the extra section; DefaultBlock when empty.
	Block string
}

// Manifest is a loaded host manifest.
type Manifest struct {
	// Path of the file the manifest was read from; empty when none was found.
	Path string
	// Standalone is set for binlink.* files, which are the block themselves.
	Standalone bool
	// Extra is the host's extra section; for standalone files it holds the
	// file contents under the block name.
	Extra map[string]interface{}
}

// Load finds and parses the manifest, then overlays environment overrides on
// the selected block. A missing manifest is not an error: Extra then only
// carries whatever the environment provides, and option resolution reports
// the absent links.
func Load(opts LoadOptions) (*Manifest, error) {
	logger := logging.GetLogger("config")
	block := opts.Block
	if block == "" {
		block = DefaultBlock
	}

	path := opts.Manifest
	if path != "" && !filepath.IsAbs(path) && opts.Root != "" {
		path = filepath.Join(opts.Root, path)
	}
	if path == "" {
		path = FindManifest(opts.Root)
	}

	manifest := &Manifest{Extra: map[string]interface{}{}}
	if path != "" {
		loaded, err := LoadManifest(path, block)
		if err != nil {
			return nil, err
		}
		manifest = loaded
	} else {
		logger.Debug().Str("root", opts.Root).Msg("No manifest found")
	}

	merged, err := overlayEnv(Block(manifest.Extra, block))
	if err != nil {
		return nil, err
	}
	if merged != nil {
		manifest.Extra[block] = merged
	}

	logger.Debug().
		Str("path", manifest.Path).
		Bool("standalone", manifest.Standalone).
		Str("block", block).
		Msg("Loaded manifest")

	return manifest, nil
}

// FindManifest returns the first ManifestCandidates entry present in root,
// or "" when there is none.
func FindManifest(root string) string {
	for _, name := range ManifestCandidates {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadManifest parses a single manifest file. The parser is picked from the
// file extension.
func LoadManifest(path, block string) (*Manifest, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "manifest %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest %s", path)
	}

	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load manifest from %s", path)
	}

	manifest := &Manifest{Path: path, Extra: map[string]interface{}{}}
	if IsStandalone(path) {
		manifest.Standalone = true
		manifest.Extra[block] = k.Raw()
		return manifest, nil
	}

	if k.Exists(ExtraKey) {
		manifest.Extra = k.Cut(ExtraKey).Raw()
	}
	return manifest, nil
}

// IsStandalone reports whether path names a dedicated binlink file rather
// than a host manifest.
func IsStandalone(path string) bool {
	base := strings.TrimPrefix(filepath.Base(path), ".")
	return strings.HasPrefix(base, DefaultBlock+".")
}

// Block returns the named block of an extra section, or nil when it is absent
// or not a table.
func Block(extra map[string]interface{}, name string) map[string]interface{} {
	if extra == nil {
		return nil
	}
	block, _ := extra[name].(map[string]interface{})
	return block
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported manifest format: %s", path)
	}
}

// overlayEnv merges BINLINK_* variables over block. It returns nil when both
// the block and the environment are empty so an absent block stays absent.
func overlayEnv(block map[string]interface{}) (map[string]interface{}, error) {
	envK := koanf.New(keyDelim)
	err := envK.Load(env.Provider(EnvPrefix, keyDelim, func(s string) string {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
		if !envKeys[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	if len(block) == 0 && len(envK.Keys()) == 0 {
		return block, nil
	}

	k := koanf.New(keyDelim)
	if err := k.Load(confmap.Provider(block, keyDelim), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load manifest block")
	}
	if err := k.Merge(envK); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge environment overrides")
	}

	return k.Raw(), nil
}
