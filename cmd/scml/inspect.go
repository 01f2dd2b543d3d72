package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"spriter-scml/internal/scml"
	"spriter-scml/internal/spriter"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the model tree of a document",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "also list files, timelines and mainline keys"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out, errOut := cmd.Root().Writer, cmd.Root().ErrWriter
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			loader := scml.Loader{Hooks: scml.Hooks{
				Warning: func(w scml.Warning) {
					fmt.Fprintf(errOut, "Warning: %s\n", w)
				},
			}}
			data, err := loader.ParseFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
			printTree(out, data, cmd.Bool("verbose"))
			return nil
		},
	}
}

func printTree(w io.Writer, data *spriter.Data, verbose bool) {
	generator := data.Generator
	if generator == "" {
		generator = "unknown generator"
	} else if data.GeneratorVersion != "" {
		generator += " " + data.GeneratorVersion
	}
	fmt.Fprintf(w, "SCML %s, %s, pixel mode %s\n", data.SCMLVersion, generator, data.PixelMode)

	files := 0
	for _, f := range data.Folders {
		files += len(f.Files)
	}
	fmt.Fprintf(w, "Folders: %s, Files: %s\n", humanize.Comma(int64(len(data.Folders))), humanize.Comma(int64(files)))
	for _, folder := range data.Folders {
		fmt.Fprintf(w, "  folder %d %q: %s files\n", folder.ID, folder.Name, humanize.Comma(int64(len(folder.Files))))
		if !verbose {
			continue
		}
		for _, file := range folder.Files {
			fmt.Fprintf(w, "    file %d %s %gx%g pivot (%g,%g)\n",
				file.ID, file.Name, file.Size.Width, file.Size.Height, file.Pivot.X, file.Pivot.Y)
		}
	}

	fmt.Fprintf(w, "Entities: %s\n", humanize.Comma(int64(len(data.Entities))))
	for _, e := range data.Entities {
		fmt.Fprintf(w, "  entity %d %q: %d object infos, %d character maps, %d animations\n",
			e.ID, e.Name, len(e.ObjectInfos), len(e.CharacterMaps), len(e.Animations))
		for _, info := range e.ObjectInfos {
			fmt.Fprintf(w, "    obj_info %q %s %gx%g", info.Name, info.Type, info.Size.Width, info.Size.Height)
			if len(info.Frames) > 0 {
				fmt.Fprintf(w, " frames %v", info.Frames)
			}
			fmt.Fprintln(w)
		}
		for _, m := range e.CharacterMaps {
			fmt.Fprintf(w, "    character_map %d %q: %d entries\n", m.ID, m.Name, m.Len())
			if verbose {
				for _, entry := range m.Entries() {
					fmt.Fprintf(w, "      %s -> %s\n", entry.Source, entry.Target)
				}
			}
		}
		for _, a := range e.Animations {
			printAnimation(w, a, verbose)
		}
	}
}

func printAnimation(w io.Writer, a *spriter.Animation, verbose bool) {
	loop := "once"
	if a.Looping {
		loop = "looping"
	}
	fmt.Fprintf(w, "    animation %d %q %dms %s: %d mainline keys, %d timelines\n",
		a.ID, a.Name, a.Length, loop, len(a.Mainline.Keys), len(a.Timelines))
	if !verbose {
		return
	}
	for _, k := range a.Mainline.Keys {
		fmt.Fprintf(w, "      key %d @%dms %s: %d bones, %d objects\n",
			k.ID, k.Time, k.Curve.Type, len(k.BoneRefs), len(k.ObjectRefs))
		for _, r := range k.ObjectRefs {
			parent := "root"
			if p, ok := k.Parent(r.Ref); ok {
				parent = fmt.Sprintf("bone %d", p.ID)
			}
			fmt.Fprintf(w, "        object %d z=%d timeline %d key %d (%s)\n",
				r.ID, r.ZIndex, r.Timeline, r.Key, parent)
		}
	}
	for _, t := range a.Timelines {
		typ := "?"
		if t.ObjectInfo != nil {
			typ = t.ObjectInfo.Type.String()
		}
		fmt.Fprintf(w, "      timeline %d %q (%s): %d keys\n", t.ID, t.Name, typ, len(t.Keys))
	}
}
