package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/binlink/pkg/errors"
)

const maxFileMode = 0o7777

// ParseFileMode parses an octal permission string such as "0755", "755" or
// "0o4755". An empty string means no mode and yields nil.
//
// The special bits (setuid, setgid, sticky) are translated to their os.FileMode
// flags so os.Chmod applies them.
func ParseFileMode(s string) (*os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	v, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid filemode %q", s).
			WithDetail(KeyFilemode, s)
	}
	if v > maxFileMode {
		return nil, errors.Newf(errors.ErrConfigInvalid, "filemode %q is out of range", s).
			WithDetail(KeyFilemode, s)
	}

	mode := os.FileMode(v & 0o777)
	if v&0o4000 != 0 {
		mode |= os.ModeSetuid
	}
	if v&0o2000 != 0 {
		mode |= os.ModeSetgid
	}
	if v&0o1000 != 0 {
		mode |= os.ModeSticky
	}
	return &mode, nil
}

// FormatFileMode renders a mode back as a four digit octal string. A nil mode
// renders as the empty string.
func FormatFileMode(mode *os.FileMode) string {
	if mode == nil {
		return ""
	}
	v := uint32(mode.Perm())
	if *mode&os.ModeSetuid != 0 {
		v |= 0o4000
	}
	if *mode&os.ModeSetgid != 0 {
		v |= 0o2000
	}
	if *mode&os.ModeSticky != 0 {
		v |= 0o1000
	}
	return fmt.Sprintf("%04o", v)
}
