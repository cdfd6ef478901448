package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/runtimeup/internal/cli"
	"github.com/arthur-debert/runtimeup/pkg/errors"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
		os.Exit(1)
	}
}
