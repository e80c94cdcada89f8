package options

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
)

// Configuration keys recognised inside the binlink block.
const (
	KeyFromDir  = "from-dir"
	KeyToDir    = "to-dir"
	KeyFrom     = "from"
	KeyTo       = "to"
	KeyFilemode = "filemode"
	KeyUseRoot  = "use-root"
	KeyFlatten  = "flatten"
	KeyLinks    = "links"
)

// Defaults applied when the block leaves a key out.
const (
	DefaultFromDir = "app"
	DefaultToDir   = "bin"
)

// MsgMissingLinks is the message of the configuration error raised when the
// block carries no links.
const MsgMissingLinks = "cannot find links options"

// LinkSpec is one normalized entry of the links list.
type LinkSpec struct {
	// From is the source path, relative to the from directory unless absolute.
	From string
	// To is the destination name relative to the to directory. Empty means
	// "derive it": the basename of From for files, the to directory itself
	// for expanded directories.
	To string
	// Mode is the permission to apply to the source before linking. It is
	// already resolved against the block-level default.
	Mode *os.FileMode
}

// Options is the fully resolved configuration for one run.
type Options struct {
	// Root is the absolute working root every relative directory resolves against.
	Root     string
	FromDir  string
	ToDir    string
	Filemode *os.FileMode
	// UseRoot resolves link sources against Root instead of FromDir.
	UseRoot bool
	// Flatten links every file of an expanded directory directly into the
	// destination directory, keeping only its basename.
	Flatten bool
	Links   []LinkSpec
}

type rawOptions struct {
	FromDir  string      `mapstructure:"from-dir"`
	ToDir    string      `mapstructure:"to-dir"`
	From     string      `mapstructure:"from"`
	To       string      `mapstructure:"to"`
	Filemode string      `mapstructure:"filemode"`
	UseRoot  bool        `mapstructure:"use-root"`
	Flatten  *bool       `mapstructure:"flatten"`
	Links    interface{} `mapstructure:"links"`
}

// Resolve builds Options from a raw configuration block. root is the working
// root; an empty root means the current directory.
func Resolve(block map[string]interface{}, root string) (*Options, error) {
	if len(block) == 0 {
		return nil, errors.New(errors.ErrConfigInvalid, MsgMissingLinks)
	}

	var raw rawOptions
	if err := decode(block, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode binlink options")
	}
	if raw.Links == nil {
		return nil, errors.New(errors.ErrConfigInvalid, MsgMissingLinks)
	}

	absRoot, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	mode, err := ParseFileMode(raw.Filemode)
	if err != nil {
		return nil, err
	}

	links, err := NormalizeLinks(raw.Links, mode)
	if err != nil {
		return nil, err
	}

	opts := &Options{
		Root:     absRoot,
		FromDir:  firstNonEmpty(raw.FromDir, raw.From, DefaultFromDir),
		ToDir:    firstNonEmpty(raw.ToDir, raw.To, DefaultToDir),
		Filemode: mode,
		UseRoot:  raw.UseRoot,
		Flatten:  raw.Flatten == nil || *raw.Flatten,
		Links:    links,
	}

	logger := logging.GetLogger("options")
	logger.Debug().
		Str("root", opts.Root).
		Str("fromDir", opts.FromDir).
		Str("toDir", opts.ToDir).
		Str("filemode", FormatFileMode(opts.Filemode)).
		Bool("useRoot", opts.UseRoot).
		Bool("flatten", opts.Flatten).
		Int("links", len(opts.Links)).
		Msg("Resolved options")

	return opts, nil
}

// SourceBase returns the absolute directory link sources resolve against.
func (o *Options) SourceBase() string {
	if o.UseRoot {
		return o.Root
	}
	return Join(o.Root, o.FromDir)
}

// DestBase returns the absolute directory links are created in.
func (o *Options) DestBase() string {
	return Join(o.Root, o.ToDir)
}

// Join resolves p against base unless p is already absolute.
func Join(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// ResolveRoot returns root as an absolute path. An empty root means the
// current working directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to determine working directory")
		}
		return wd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid root %s", root)
	}
	return abs, nil
}

func decode(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
