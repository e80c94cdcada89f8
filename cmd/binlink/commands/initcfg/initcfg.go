// Package initcfg holds the init command. The package is not named init,
// which Go reserves for package initializers.
package initcfg

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the init command. RunE is attached by the root command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init [links...]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "config",
	}

	cmd.Flags().String("from-dir", "", MsgFlagFromDir)
	cmd.Flags().String("to-dir", "", MsgFlagToDir)
	cmd.Flags().String("filemode", "", MsgFlagFilemode)
	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolP("force", "f", false, MsgFlagForce)

	return cmd
}
