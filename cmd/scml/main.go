// Command scml inspects, checks and renders contact sheets for Spriter
// SCML documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

var errCheckFailed = errors.New("check failed")

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "scml",
		Usage:     "inspect and verify Spriter SCML documents",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			inspectCommand(),
			checkCommand(),
			sheetCommand(),
			batchCommand(),
		},
	}
}

// fileArg returns the single positional argument of cmd.
func fileArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one SCML file, got %d arguments", cmd.Name, cmd.NArg())
	}
	return cmd.Args().First(), nil
}
