// Package sheet lays out the images of a folder on a contact sheet.
package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"spriter-scml/internal/spriter"
	"spriter-scml/internal/texture"
)

// ErrEmptyFolder is returned by Compose for a folder without files.
var ErrEmptyFolder = errors.New("sheet: folder has no files")

// Options controls the sheet grid.
type Options struct {
	Cell    int // cell edge in pixels
	Columns int
}

func (o Options) withDefaults() Options {
	if o.Cell <= 0 {
		o.Cell = 128
	}
	if o.Columns <= 0 {
		o.Columns = 8
	}
	return o
}

// Layout returns the sheet size for n cells.
func (o Options) Layout(n int) (width, height int) {
	o = o.withDefaults()
	cols := min(n, o.Columns)
	rows := (n + o.Columns - 1) / o.Columns
	return cols * o.Cell, rows * o.Cell
}

// Compose draws every file of folder into its own cell, in document order.
// Each image is fitted into the cell and centered. Files the resolver cannot
// produce leave their cell transparent; their references are returned.
func Compose(folder *spriter.Folder, resolver texture.Resolver, opts Options) (*image.NRGBA, []spriter.FileReference, error) {
	if len(folder.Files) == 0 {
		return nil, nil, fmt.Errorf("%w: %d %q", ErrEmptyFolder, folder.ID, folder.Name)
	}
	opts = opts.withDefaults()

	w, h := opts.Layout(len(folder.Files))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	var missing []spriter.FileReference
	for i, file := range folder.Files {
		ref := spriter.FileReference{Folder: folder.ID, File: file.ID}
		img := resolver.Resolve(ref)
		if img == nil {
			missing = append(missing, ref)
			continue
		}
		img = Fit(img, opts.Cell, opts.Cell)

		b := img.Bounds()
		cx := (i%opts.Columns)*opts.Cell + (opts.Cell-b.Dx())/2
		cy := (i/opts.Columns)*opts.Cell + (opts.Cell-b.Dy())/2
		r := image.Rect(cx, cy, cx+b.Dx(), cy+b.Dy())
		draw.Draw(dst, r, img, b.Min, draw.Over)
	}
	return dst, missing, nil
}

// Write encodes img as lossless WebP at path, creating parent directories.
func Write(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("sheet: mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sheet: create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("sheet: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sheet: close %s: %w", path, err)
	}
	return nil
}

// FileName is the sheet file name used for a folder.
func FileName(folder *spriter.Folder) string {
	return fmt.Sprintf("folder_%d.webp", folder.ID)
}
