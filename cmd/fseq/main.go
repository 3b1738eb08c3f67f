package main

import (
	"fmt"
	"os"

	"github.com/arloliu/fseq/internal/cli"
)

func main() {
	if err := cli.NewRoot(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fseq: %v\n", err)
		os.Exit(1)
	}
}
