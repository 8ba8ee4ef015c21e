// Package main is the CLI command itself.
package main

import (
	"os"

	"go.viam.com/leatherman/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		//nolint:errcheck
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
