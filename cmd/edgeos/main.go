package main

import (
	"fmt"
	"os"

	"edgeos-client/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorText(err))
		os.Exit(1)
	}
}
