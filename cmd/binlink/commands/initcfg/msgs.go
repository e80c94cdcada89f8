package initcfg

// Message constants
const (
	MsgShort = "Generate a starter binlink.toml"
	MsgLong  = `Init prints a commented binlink.toml seeded with the given links, or with a
placeholder when none are given. With --write the file is created in the
project root instead; an existing file is only overwritten with --force.`
	MsgExample = `  binlink init                      # print to stdout
  binlink init console phpunit -w   # write ./binlink.toml
  binlink init --filemode 0755 -w`

	MsgFlagFromDir  = "Source directory (default app)"
	MsgFlagToDir    = "Destination directory (default bin)"
	MsgFlagFilemode = "Octal mode applied to every source, e.g. 0755"
	MsgFlagWrite    = "Write the file instead of printing it"
	MsgFlagForce    = "Overwrite an existing file"

	MsgWritten   = "Wrote %s"
	MsgErrExists = "%s already exists (use --force to overwrite)"
)
