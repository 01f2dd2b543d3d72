package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	cases := []struct {
		name string
		file string
		body string
	}{
		{"json", "config.json", `{"input_dir": "/data/anims", "cell_size": 64, "sheets": true}`},
		{"yaml", "config.yaml", "input_dir: /data/anims\ncell_size: 64\nsheets: true\n"},
		{"yml", "config.yml", "input_dir: /data/anims\ncell_size: 64\nsheets: true\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, c.file, c.body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.InputDir != "/data/anims" || cfg.CellSize != 64 || !cfg.Sheets {
				t.Fatalf("cfg = %+v", cfg)
			}
			if cfg.Columns != 0 {
				t.Fatalf("unset fields should stay zero, got columns=%d", cfg.Columns)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected read error")
	}
	if _, err := Load(writeFile(t, "bad.json", "{")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "cell_size: [1")); err == nil {
		t.Fatalf("expected yaml parse error")
	}
}

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg Config
		cfg.Resolve(Flags{})
		if cfg.InputDir != "." || cfg.ImageDir != "." {
			t.Fatalf("dirs = %q %q", cfg.InputDir, cfg.ImageDir)
		}
		if cfg.OutputDir != "scml-out" {
			t.Fatalf("output = %q", cfg.OutputDir)
		}
		if cfg.CellSize != 128 || cfg.Columns != 8 || cfg.Workers != runtime.NumCPU() {
			t.Fatalf("settings = %+v", cfg)
		}
	})

	t.Run("flags_override", func(t *testing.T) {
		cfg := Config{InputDir: "/a", OutputDir: "/out", Workers: 2, ImageDir: "img"}
		cfg.Resolve(Flags{InputDir: "/b", Workers: 5, Sheets: true})
		if cfg.InputDir != "/b" || cfg.Workers != 5 || !cfg.Sheets {
			t.Fatalf("cfg = %+v", cfg)
		}
		if cfg.ImageDir != filepath.Join("/b", "img") {
			t.Fatalf("relative image dir = %q", cfg.ImageDir)
		}
		if cfg.OutputDir != "/out" {
			t.Fatalf("absolute output dir changed: %q", cfg.OutputDir)
		}
	})
}
