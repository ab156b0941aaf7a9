package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotr/cmd/dotr"
	"github.com/arthur-debert/dotr/pkg/ui"
)

func main() {
	rootCmd := dotr.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error with the stderr terminal's styling
		renderer := ui.RendererFor(ui.Resolve(ui.FormatAuto, os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
