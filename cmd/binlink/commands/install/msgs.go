package install

import (
	_ "embed"
	"strings"
)

// Message constants
const (
	MsgShort      = "Create the configured symlinks (development mode only)"
	MsgFlagDev    = "Run as if the host reported development mode (also " + EnvDev + "=1)"
	MsgFlagDryRun = "Show what would be linked without touching the filesystem"
	MsgFlagForce  = "Replace regular files that sit where a link should go"
	MsgNotDevMode = "Not in development mode, nothing to do. Pass --dev or set " + EnvDev + "=1."
	MsgErrDevEnv  = "invalid " + EnvDev + " value %q"
)

// Embedded message files
var (
	//go:embed install-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)

	//go:embed install-example.txt
	msgExampleRaw string
	MsgExample    = strings.TrimSpace(msgExampleRaw)
)
