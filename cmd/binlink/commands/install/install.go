package install

import (
	"github.com/spf13/cobra"
)

// EnvDev turns on development mode when set to a true value (1, true, ...).
const EnvDev = "BINLINK_DEV"

// NewCommand creates the install command. RunE is attached by the root
// command, which owns the shared flags.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
	}

	cmd.Flags().Bool("dev", false, MsgFlagDev)
	cmd.Flags().Bool("dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolP("force", "f", false, MsgFlagForce)

	return cmd
}
