package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"spriter-scml/internal/scml"
	"spriter-scml/internal/sheet"
	"spriter-scml/internal/texture"
)

func sheetCommand() *cli.Command {
	return &cli.Command{
		Name:      "sheet",
		Usage:     "write a WebP contact sheet per folder",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output directory (default: <file>-sheets next to the document)"},
			&cli.StringFlag{Name: "image-dir", Usage: "directory image names are relative to (default: the document's directory)"},
			&cli.IntFlag{Name: "cell", Value: 128, Usage: "cell edge in pixels"},
			&cli.IntFlag{Name: "columns", Value: 8, Usage: "cells per row"},
		},
		Action: runSheet,
	}
}

func runSheet(ctx context.Context, cmd *cli.Command) error {
	out, errOut := cmd.Root().Writer, cmd.Root().ErrWriter
	path, err := fileArg(cmd)
	if err != nil {
		return err
	}
	data, err := scml.ParseFile(path)
	if err != nil {
		return err
	}

	imageDir := cmd.String("image-dir")
	if imageDir == "" {
		imageDir = filepath.Dir(path)
	}
	outDir := cmd.String("output")
	if outDir == "" {
		outDir = strings.TrimSuffix(path, filepath.Ext(path)) + "-sheets"
	}

	cache := texture.NewCache(texture.BuildIndex(imageDir, data))
	opts := sheet.Options{Cell: cmd.Int("cell"), Columns: cmd.Int("columns")}

	written := 0
	for _, folder := range data.Folders {
		if len(folder.Files) == 0 {
			continue
		}
		img, missing, err := sheet.Compose(folder, cache, opts)
		if err != nil {
			return err
		}
		for _, ref := range missing {
			fmt.Fprintf(errOut, "Warning: no image for %s\n", ref)
		}
		sheetPath := filepath.Join(outDir, sheet.FileName(folder))
		if err := sheet.Write(sheetPath, img); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%d files)\n", sheetPath, len(folder.Files))
		written++
	}
	fmt.Fprintf(out, "Sheets: %d\n", written)
	return nil
}
