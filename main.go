package main

import (
	"context"
	"os"

	"github.com/vertag/vertag/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
