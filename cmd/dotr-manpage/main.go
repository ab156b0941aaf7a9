package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotr/cmd/dotr"
	"github.com/arthur-debert/dotr/internal/version"
)

func main() {
	rootCmd := dotr.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DOTR",
		Section: "1",
		Source:  "dotr " + version.Version,
		Manual:  "dotr manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
