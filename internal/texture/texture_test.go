package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"spriter-scml/internal/mathutil"
	"spriter-scml/internal/spriter"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 128})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// testData builds a document with one folder holding the named files.
func testData(t *testing.T, files ...*spriter.File) *spriter.Data {
	t.Helper()
	data := spriter.NewData("1.0", "", "", spriter.PixelModeNone, 1, 0)
	folder := spriter.NewFolder(0, "body", len(files))
	for _, f := range files {
		if err := folder.AddFile(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := data.AddFolder(folder); err != nil {
		t.Fatal(err)
	}
	return data
}

func TestBuildIndexNormalizesNames(t *testing.T) {
	dir := t.TempDir()
	data := testData(t,
		&spriter.File{ID: 0, Name: `body\head.png`},
		&spriter.File{ID: 1, Name: "body/torso.png"},
	)

	idx := BuildIndex(dir, data)
	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}
	path, ok := idx.ResolvePath(spriter.FileReference{Folder: 0, File: 0})
	if !ok {
		t.Fatal("file 0/0 not indexed")
	}
	if want := filepath.Join(dir, "body", "head.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, ok := idx.ResolvePath(spriter.FileReference{Folder: 0, File: 7}); ok {
		t.Error("unknown file resolved")
	}
}

func TestLoadImageAndProbe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 6, 4)

	cfg, err := Probe(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 6 || cfg.Height != 4 {
		t.Errorf("Probe = %dx%d, want 6x4", cfg.Width, cfg.Height)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 6, 4) {
		t.Errorf("bounds = %v", got)
	}
	if c := img.NRGBAAt(2, 2); c.A != 128 || c.R != 200 {
		t.Errorf("pixel = %+v", c)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"unknown extension", filepath.Join(dir, "a.psd")},
		{"missing file", filepath.Join(dir, "missing.png")},
		{"corrupt file", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadImage(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.png", "b.JPG", "c.tga", "d.webp", "e.bmp", "f.gif"} {
		if !Supported(p) {
			t.Errorf("Supported(%q) = false", p)
		}
	}
	if Supported("a.txt") {
		t.Error("Supported(a.txt) = true")
	}
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 3, 3)
	data := testData(t,
		&spriter.File{ID: 0, Name: "a.png"},
		&spriter.File{ID: 1, Name: "gone.png"},
	)
	cache := NewCache(BuildIndex(dir, data))

	var wg sync.WaitGroup
	imgs := make([]*image.NRGBA, 8)
	for i := range imgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			imgs[i] = cache.Resolve(spriter.FileReference{Folder: 0, File: 0})
		}(i)
	}
	wg.Wait()
	for i, img := range imgs {
		if img == nil {
			t.Fatalf("Resolve %d returned nil", i)
		}
		if img != imgs[0] {
			t.Errorf("Resolve %d returned a different image", i)
		}
	}

	if img := cache.Resolve(spriter.FileReference{Folder: 0, File: 1}); img != nil {
		t.Error("missing file resolved")
	}
	if cache.Len() != 2 {
		t.Errorf("Len = %d, want 2", cache.Len())
	}
	if _, err := cache.Load(spriter.FileReference{Folder: 3, File: 0}); !errors.Is(err, ErrUnknownFile) {
		t.Errorf("err = %v, want ErrUnknownFile", err)
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "ok.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "small.png"), 2, 2)
	writePNG(t, filepath.Join(dir, "nosize.png"), 5, 5)
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("xx"), 0644); err != nil {
		t.Fatal(err)
	}
	data := testData(t,
		&spriter.File{ID: 0, Name: "ok.png", Size: mathutil.Dimension{Width: 4, Height: 4}},
		&spriter.File{ID: 1, Name: "small.png", Size: mathutil.Dimension{Width: 4, Height: 4}},
		&spriter.File{ID: 2, Name: "nosize.png"},
		&spriter.File{ID: 3, Name: "gone.png"},
		&spriter.File{ID: 4, Name: "broken.png"},
	)

	issues := Verify(data, BuildIndex(dir, data))
	want := []struct {
		file int
		kind IssueKind
	}{
		{1, IssueSizeMismatch},
		{3, IssueMissing},
		{4, IssueUnreadable},
	}
	if len(issues) != len(want) {
		t.Fatalf("got %d issues %v, want %d", len(issues), issues, len(want))
	}
	for i, w := range want {
		if issues[i].Ref.File != w.file || issues[i].Kind != w.kind {
			t.Errorf("issue %d = %v, want file %d %v", i, issues[i], w.file, w.kind)
		}
	}
}
