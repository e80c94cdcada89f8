package topics

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the topics command. It forwards to "help topics".
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgShort,
		Long:    MsgLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
	}
}
