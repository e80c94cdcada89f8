package options

import (
	"fmt"
	"os"
	"sort"

	"github.com/arthur-debert/binlink/pkg/errors"
)

type rawRecord struct {
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
	Filemode string `mapstructure:"filemode"`
}

// NormalizeLinks converts any accepted shape of the links value into an
// ordered list of LinkSpec. defaultMode is used for entries that carry no
// filemode of their own.
//
// Map shapes are processed in sorted key order because decoded maps do not
// keep the declaration order.
func NormalizeLinks(raw interface{}, defaultMode *os.FileMode) ([]LinkSpec, error) {
	switch v := raw.(type) {
	case nil:
		return nil, errors.New(errors.ErrConfigInvalid, MsgMissingLinks)

	case string:
		spec, err := fromString(v, defaultMode)
		if err != nil {
			return nil, err
		}
		return []LinkSpec{spec}, nil

	case []string:
		specs := make([]LinkSpec, 0, len(v))
		for _, from := range v {
			spec, err := fromString(from, defaultMode)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
		return specs, nil

	case []interface{}:
		specs := make([]LinkSpec, 0, len(v))
		for i, item := range v {
			spec, err := fromListItem(item, defaultMode)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid link at index %d", i)
			}
			specs = append(specs, spec)
		}
		return specs, nil

	case map[string]string:
		specs := make([]LinkSpec, 0, len(v))
		for _, from := range sortedKeys(v) {
			spec, err := fromPair(from, v[from], defaultMode)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
		return specs, nil

	case map[string]interface{}:
		specs := make([]LinkSpec, 0, len(v))
		for _, key := range sortedKeys(v) {
			spec, err := fromMapEntry(key, v[key], defaultMode)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid link %q", key)
			}
			specs = append(specs, spec)
		}
		return specs, nil

	default:
		return nil, errors.Newf(errors.ErrConfigInvalid,
			"links must be a string, a list or a map, got %T", raw)
	}
}

func fromString(from string, defaultMode *os.FileMode) (LinkSpec, error) {
	if from == "" {
		return LinkSpec{}, errors.New(errors.ErrConfigInvalid, "link source must not be empty")
	}
	return LinkSpec{From: from, Mode: defaultMode}, nil
}

func fromPair(from, to string, defaultMode *os.FileMode) (LinkSpec, error) {
	spec, err := fromString(from, defaultMode)
	if err != nil {
		return LinkSpec{}, err
	}
	spec.To = to
	return spec, nil
}

func fromListItem(item interface{}, defaultMode *os.FileMode) (LinkSpec, error) {
	switch v := item.(type) {
	case string:
		return fromString(v, defaultMode)
	case map[string]interface{}:
		return fromRecord(v, "", defaultMode)
	default:
		return LinkSpec{}, errors.Newf(errors.ErrConfigInvalid,
			"link must be a string or a record, got %T", item)
	}
}

func fromMapEntry(key string, value interface{}, defaultMode *os.FileMode) (LinkSpec, error) {
	switch v := value.(type) {
	case string:
		return fromPair(key, v, defaultMode)
	case map[string]interface{}:
		return fromRecord(v, key, defaultMode)
	default:
		return LinkSpec{}, errors.Newf(errors.ErrConfigInvalid,
			"link target must be a string or a record, got %T", value)
	}
}

// fromRecord decodes an explicit {from, to, filemode} record. fallbackFrom is
// the map key the record was declared under, if any.
func fromRecord(record map[string]interface{}, fallbackFrom string, defaultMode *os.FileMode) (LinkSpec, error) {
	var raw rawRecord
	if err := decode(record, &raw); err != nil {
		return LinkSpec{}, errors.Wrap(err, errors.ErrConfigParse, "failed to decode link record")
	}

	from := firstNonEmpty(raw.From, fallbackFrom)
	if from == "" {
		return LinkSpec{}, errors.Newf(errors.ErrConfigInvalid, "link record requires %q", KeyFrom)
	}

	mode := defaultMode
	if raw.Filemode != "" {
		parsed, err := ParseFileMode(raw.Filemode)
		if err != nil {
			return LinkSpec{}, err
		}
		mode = parsed
	}

	return LinkSpec{From: from, To: raw.To, Mode: mode}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the entry the way it would be written as a record.
func (s LinkSpec) String() string {
	out := fmt.Sprintf("from=%s", s.From)
	if s.To != "" {
		out += fmt.Sprintf(" to=%s", s.To)
	}
	if s.Mode != nil {
		out += fmt.Sprintf(" filemode=%s", FormatFileMode(s.Mode))
	}
	return out
}
