package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"spriter-scml/internal/scml"
	"spriter-scml/internal/texture"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "load a document and verify its images",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict", Usage: "fail on loader warnings too"},
			&cli.BoolFlag{Name: "skip-images", Usage: "do not look at image files"},
			&cli.StringFlag{Name: "image-dir", Usage: "directory image names are relative to (default: the document's directory)"},
		},
		Action: runCheck,
	}
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	out, errOut := cmd.Root().Writer, cmd.Root().ErrWriter
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}

	var warnings []scml.Warning
	loader := scml.Loader{Hooks: scml.Hooks{
		Warning: func(w scml.Warning) { warnings = append(warnings, w) },
	}}
	data, err := loader.ParseFile(path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(errOut, "Warning: %s\n", w)
	}

	var issues []texture.Issue
	if !cmd.Bool("skip-images") {
		imageDir := cmd.String("image-dir")
		if imageDir == "" {
			imageDir = filepath.Dir(path)
		}
		idx := texture.BuildIndex(imageDir, data)
		issues = texture.Verify(data, idx)
		for _, issue := range issues {
			fmt.Fprintf(errOut, "Image: %s\n", issue)
		}
		fmt.Fprintf(out, "Images: %s checked, %s issues\n",
			humanize.Comma(int64(idx.Len())), humanize.Comma(int64(len(issues))))
	}

	fmt.Fprintf(out, "Entities: %d, warnings: %d\n", len(data.Entities), len(warnings))

	if len(issues) > 0 || (cmd.Bool("strict") && len(warnings) > 0) {
		return fmt.Errorf("%s: %w", path, errCheckFailed)
	}
	fmt.Fprintln(out, "OK")
	return nil
}
