package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/binlink/cmd/binlink"
	"github.com/arthur-debert/binlink/pkg/ui/styles"
)

func main() {
	rootCmd := binlink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
