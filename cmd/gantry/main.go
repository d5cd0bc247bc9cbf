// Package main is the entry point for the gantry CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/gantry/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
