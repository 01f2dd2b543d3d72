package sheet

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"

	"spriter-scml/internal/spriter"
)

type mapResolver map[spriter.FileReference]*image.NRGBA

func (m mapResolver) Resolve(ref spriter.FileReference) *image.NRGBA {
	return m[ref]
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestLayout(t *testing.T) {
	tests := []struct {
		n, cell, cols int
		w, h          int
	}{
		{1, 10, 4, 10, 10},
		{4, 10, 4, 40, 10},
		{5, 10, 4, 40, 20},
		{9, 16, 3, 48, 48},
	}
	for _, tt := range tests {
		w, h := Options{Cell: tt.cell, Columns: tt.cols}.Layout(tt.n)
		if w != tt.w || h != tt.h {
			t.Errorf("Layout(%d) cell=%d cols=%d = %dx%d, want %dx%d", tt.n, tt.cell, tt.cols, w, h, tt.w, tt.h)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		box    int
		wantW  int
		wantH  int
		sameIn bool
	}{
		{"already fits", 8, 4, 16, 8, 4, true},
		{"wide", 64, 32, 16, 16, 8, false},
		{"tall", 10, 40, 20, 5, 20, false},
		{"thin", 400, 1, 10, 10, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := solid(tt.w, tt.h, color.NRGBA{R: 255, A: 255})
			got := Fit(src, tt.box, tt.box)
			if b := got.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if (got == src) != tt.sameIn {
				t.Errorf("returned input = %v, want %v", got == src, tt.sameIn)
			}
		})
	}
}

func TestFitKeepsColorUnderAlpha(t *testing.T) {
	src := solid(32, 32, color.NRGBA{R: 255, G: 255, B: 255, A: 64})
	got := Fit(src, 8, 8)
	c := got.NRGBAAt(4, 4)
	if c.R < 250 || c.G < 250 || c.B < 250 {
		t.Errorf("color darkened to %+v", c)
	}
	if c.A < 60 || c.A > 68 {
		t.Errorf("alpha = %d, want about 64", c.A)
	}
}

func TestCompose(t *testing.T) {
	folder := spriter.NewFolder(2, "arm", 3)
	for id := 0; id < 3; id++ {
		if err := folder.AddFile(&spriter.File{ID: id, Name: "x.png"}); err != nil {
			t.Fatal(err)
		}
	}
	red := color.NRGBA{R: 255, A: 255}
	res := mapResolver{
		{Folder: 2, File: 0}: solid(4, 4, red),
		{Folder: 2, File: 2}: solid(40, 20, red),
	}

	img, missing, err := Compose(folder, res, Options{Cell: 10, Columns: 2})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("sheet = %v, want 20x20", b)
	}
	if len(missing) != 1 || missing[0] != (spriter.FileReference{Folder: 2, File: 1}) {
		t.Errorf("missing = %v", missing)
	}

	// Cell 0: 4x4 centered at (3,3).
	if c := img.NRGBAAt(4, 4); c.A != 255 {
		t.Errorf("cell 0 center alpha = %d", c.A)
	}
	if c := img.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("cell 0 corner alpha = %d", c.A)
	}
	// Cell 1 is missing.
	if c := img.NRGBAAt(15, 5); c.A != 0 {
		t.Errorf("cell 1 alpha = %d", c.A)
	}
	// Cell 2: fitted to 10x5, centered vertically in row 1.
	if c := img.NRGBAAt(5, 15); c.A == 0 {
		t.Error("cell 2 center is empty")
	}
	if c := img.NRGBAAt(5, 10); c.A != 0 {
		t.Errorf("cell 2 top alpha = %d", c.A)
	}
}

func TestComposeEmptyFolder(t *testing.T) {
	_, _, err := Compose(spriter.NewFolder(0, "empty", 0), mapResolver{}, Options{})
	if !errors.Is(err, ErrEmptyFolder) {
		t.Errorf("err = %v, want ErrEmptyFolder", err)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sheet.webp")
	src := solid(12, 7, color.NRGBA{G: 200, A: 255})
	if err := Write(path, src); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 12 || cfg.Height != 7 {
		t.Errorf("decoded %dx%d, want 12x7", cfg.Width, cfg.Height)
	}
}
