package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"spriter-scml/internal/batch"
	"spriter-scml/internal/config"
)

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "load every SCML file under a directory and write a manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a JSON or YAML config file", TakesFile: true},
			&cli.StringFlag{Name: "input", Usage: "directory to scan (default: .)"},
			&cli.StringFlag{Name: "output", Usage: "output directory (default: <input>/scml-out)"},
			&cli.IntFlag{Name: "workers", Usage: "number of worker goroutines (default: NumCPU)"},
			&cli.BoolFlag{Name: "sheets", Usage: "write contact sheets"},
			&cli.BoolFlag{Name: "verify", Usage: "verify image files"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no progress output"},
		},
		Action: runBatch,
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	out, errOut := cmd.Root().Writer, cmd.Root().ErrWriter
	var cfg config.Config
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}
	cfg.Resolve(config.Flags{
		InputDir:    cmd.String("input"),
		OutputDir:   cmd.String("output"),
		Workers:     cmd.Int("workers"),
		Sheets:      cmd.Bool("sheets"),
		VerifyFiles: cmd.Bool("verify"),
	})

	paths, err := batch.Find(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(out, "No SCML files found.")
		return nil
	}

	fmt.Fprintf(out, "Files: %s, Workers: %d\n", humanize.Comma(int64(len(paths))), cfg.Workers)
	fmt.Fprintf(out, "Output: %s\n", cfg.OutputDir)
	fmt.Fprintln(out, "------------------------------------------------------------")

	start := time.Now()
	bcfg := batch.FromConfig(cfg)
	if !cmd.Bool("quiet") {
		bcfg.Progress = out
	}
	results := batch.Run(bcfg, paths)

	fmt.Fprintln(out, "------------------------------------------------------------")
	fmt.Fprintf(out, "Done in %.1fs\n", time.Since(start).Seconds())

	manifest := batch.NewManifest(cfg.InputDir, results)
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	warnings, issues := 0, 0
	for _, r := range results {
		warnings += len(r.Warnings)
		issues += len(r.Issues)
	}
	fmt.Fprintf(out, "Loaded: %s/%s, warnings: %s, image issues: %s\n",
		humanize.Comma(int64(manifest.Succeeded)), humanize.Comma(int64(manifest.Total)),
		humanize.Comma(int64(warnings)), humanize.Comma(int64(issues)))
	fmt.Fprintf(out, "Manifest: %s\n", manifestPath)

	if manifest.Failed > 0 {
		fmt.Fprintf(errOut, "\nFailed (%d):\n", manifest.Failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			if shown == 20 {
				fmt.Fprintf(errOut, "  ... and %d more\n", manifest.Failed-shown)
				break
			}
			fmt.Fprintf(errOut, "  %s: %s\n", r.Path, r.Error)
			shown++
		}
		return fmt.Errorf("%d of %d files failed", manifest.Failed, manifest.Total)
	}
	return nil
}
