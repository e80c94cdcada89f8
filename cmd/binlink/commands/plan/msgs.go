package plan

// Message constants
const (
	MsgShort = "Show the links install would create"
	MsgLong  = `Plan resolves the binlink block and expands directories into one link per
file, then prints the result. It never changes the filesystem and does not
require development mode.

Destination conflicts and configuration errors are reported exactly as
install would report them.`
	MsgExample = `  binlink plan
  binlink plan --format json
  binlink plan --manifest tools/binlink.yaml`
)
