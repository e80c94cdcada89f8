package binlink

import (
	"fmt"
	"io"

	"github.com/arthur-debert/binlink/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// ManHeader is the header used for generated man pages.
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "BINLINK",
		Section: "1",
		Source:  "binlink " + version.Version,
		Manual:  "binlink manual",
	}
}

// GenCompletion writes the completion script for shell.
func GenCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unknown shell %q (supported: bash, zsh, fish, powershell)", shell)
	}
}
