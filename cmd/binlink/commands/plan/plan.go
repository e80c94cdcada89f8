package plan

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the plan command. RunE is attached by the root command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
	}
}
