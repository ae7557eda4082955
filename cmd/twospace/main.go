package main

import (
	"fmt"
	"os"

	"github.com/patrickward/twospace/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "twospace: %v\n", err)
		os.Exit(1)
	}
}
