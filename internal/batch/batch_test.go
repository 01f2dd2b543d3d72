package batch

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spriter-scml/internal/config"
	"spriter-scml/internal/sheet"
)

const goodSCML = `<spriter_data scml_version="1.0">
	<folder id="0" name="parts">
		<file id="0" name="parts/a.png" width="8" height="8"/>
		<file id="1" name="parts/b.png" width="4" height="4"/>
	</folder>
	<entity id="0" name="e">
		<animation id="0" name="idle" length="100">
			<mainline>
				<key id="0" curve_type="wobbly">
					<object_ref id="0" timeline="0" key="0"/>
				</key>
			</mainline>
			<timeline id="0" name="a">
				<key id="0"><object folder="0" file="0"/></key>
			</timeline>
		</animation>
	</entity>
</spriter_data>`

const badSCML = `<spriter_data scml_version="1.0"><folder name="x"/></spriter_data>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

// fixture lays out an input tree with one good and one broken document.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "chars", "hero.scml"), goodSCML)
	writePNG(t, filepath.Join(dir, "chars", "parts", "a.png"), 8, 8)
	writePNG(t, filepath.Join(dir, "chars", "parts", "b.png"), 5, 4)
	writeFile(t, filepath.Join(dir, "broken.scml"), badSCML)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	return dir
}

func TestFind(t *testing.T) {
	dir := fixture(t)
	paths, err := Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "broken.scml"),
		filepath.Join(dir, "chars", "hero.scml"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestRun(t *testing.T) {
	dir := fixture(t)
	out := t.TempDir()
	paths, err := Find(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		InputDir:    dir,
		OutputDir:   out,
		Sheets:      true,
		Sheet:       sheet.Options{Cell: 16, Columns: 4},
		VerifyFiles: true,
		Workers:     3,
	}
	results := Run(cfg, paths)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}

	broken, hero := results[0], results[1]
	if broken.Success || broken.Error == "" {
		t.Errorf("broken = %+v, want failure", broken)
	}
	if !strings.Contains(broken.Error, "id") {
		t.Errorf("broken error %q does not name the attribute", broken.Error)
	}

	if !hero.Success {
		t.Fatalf("hero failed: %s", hero.Error)
	}
	if hero.Entities != 1 || hero.Animations != 1 || hero.Timelines != 1 || hero.Files != 2 {
		t.Errorf("counts = %+v", hero)
	}
	if len(hero.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", hero.Warnings)
	}
	if len(hero.Issues) != 1 || !strings.Contains(hero.Issues[0], "size mismatch") {
		t.Errorf("issues = %v, want one size mismatch", hero.Issues)
	}
	if len(hero.Sheets) != 1 || hero.Sheets[0] != "chars/hero/folder_0.webp" {
		t.Fatalf("sheets = %v", hero.Sheets)
	}
	if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(hero.Sheets[0]))); err != nil {
		t.Errorf("sheet not written: %v", err)
	}
}

func TestRunSeparateImageDir(t *testing.T) {
	dir := t.TempDir()
	images := t.TempDir()
	writeFile(t, filepath.Join(dir, "chars", "hero.scml"), goodSCML)
	writePNG(t, filepath.Join(images, "chars", "parts", "a.png"), 8, 8)
	writePNG(t, filepath.Join(images, "chars", "parts", "b.png"), 4, 4)

	results := Run(Config{InputDir: dir, ImageDir: images, VerifyFiles: true, Workers: 1},
		[]string{filepath.Join(dir, "chars", "hero.scml")})
	if !results[0].Success {
		t.Fatal(results[0].Error)
	}
	if len(results[0].Issues) != 0 {
		t.Errorf("issues = %v, want none", results[0].Issues)
	}
}

func TestFromConfig(t *testing.T) {
	c := config.Config{InputDir: "in", CellSize: 64, Columns: 3, Workers: 2, Sheets: true}
	got := FromConfig(c)
	if got.Sheet.Cell != 64 || got.Sheet.Columns != 3 || got.Workers != 2 || !got.Sheets {
		t.Errorf("FromConfig = %+v", got)
	}
}

func TestWriteManifestError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "taken")
	writeFile(t, blocker, "not a directory")

	err := WriteManifest(filepath.Join(blocker, "manifest.json"), Manifest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "batch: ") {
		t.Errorf("error %q lacks the package prefix", err)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	results := []Result{
		{Path: filepath.Join(dir, "a.scml"), Success: true, Entities: 2, Sheets: []string{"a/folder_0.webp"}},
		{Path: filepath.Join(dir, "sub", "b.scml"), Error: "scml: boom"},
	}
	m := NewManifest(dir, results)
	if m.Total != 2 || m.Succeeded != 1 || m.Failed != 1 {
		t.Errorf("summary = %+v", m)
	}

	path := filepath.Join(dir, "out", "manifest.json")
	if err := WriteManifest(path, m); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if got.Entries[1].Source != "sub/b.scml" || got.Entries[1].Error != "scml: boom" {
		t.Errorf("entry = %+v", got.Entries[1])
	}
	if got.Entries[0].Entities != 2 || got.Entries[0].Sheets[0] != "a/folder_0.webp" {
		t.Errorf("entry = %+v", got.Entries[0])
	}
}
