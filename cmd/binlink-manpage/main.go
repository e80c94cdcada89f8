package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/binlink/cmd/binlink"
)

func main() {
	rootCmd := binlink.NewRootCmd()

	if err := doc.GenMan(rootCmd, binlink.ManHeader(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
