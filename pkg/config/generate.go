package config

import (
	"bytes"
	_ "embed"

	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/options"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed embedded/header.toml
var sampleHeader []byte

// SampleFileName is the file written by GenerateSample callers by default.
const SampleFileName = "binlink.toml"

// SampleOptions seeds a starter configuration.
type SampleOptions struct {
	FromDir  string
	ToDir    string
	Filemode string
	Links    []string
}

type sampleFile struct {
	FromDir  string       `toml:"from-dir"`
	ToDir    string       `toml:"to-dir"`
	Filemode string       `toml:"filemode,omitempty"`
	Links    []sampleLink `toml:"links"`
}

type sampleLink struct {
	From string `toml:"from"`
}

// GenerateSample renders a standalone binlink.toml. Empty directories fall
// back to the defaults and an empty link list gets a placeholder entry.
func GenerateSample(opts SampleOptions) ([]byte, error) {
	out := sampleFile{
		FromDir:  opts.FromDir,
		ToDir:    opts.ToDir,
		Filemode: opts.Filemode,
	}
	if out.FromDir == "" {
		out.FromDir = options.DefaultFromDir
	}
	if out.ToDir == "" {
		out.ToDir = options.DefaultToDir
	}

	links := opts.Links
	if len(links) == 0 {
		links = []string{"console"}
	}
	for _, l := range links {
		out.Links = append(out.Links, sampleLink{From: l})
	}

	body, err := toml.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render sample config")
	}

	var buf bytes.Buffer
	buf.Write(sampleHeader)
	buf.Write(body)
	return buf.Bytes(), nil
}
