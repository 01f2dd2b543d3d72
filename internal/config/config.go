package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and batch settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	ImageDir  string `json:"image_dir" yaml:"image_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Sheet settings
	Sheets      bool `json:"sheets" yaml:"sheets"`
	CellSize    int  `json:"cell_size" yaml:"cell_size"`
	Columns     int  `json:"columns" yaml:"columns"`
	VerifyFiles bool `json:"verify_files" yaml:"verify_files"`
	Workers     int  `json:"workers" yaml:"workers"`
}

// Load reads a config file and returns Config. Files ending in .yaml or
// .yml are YAML, anything else JSON. Fields not set in the file keep their
// zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Sheets {
		c.Sheets = true
	}
	if flags.VerifyFiles {
		c.VerifyFiles = true
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}

	// Images live next to the SCML files unless configured otherwise
	if c.ImageDir == "" {
		c.ImageDir = c.InputDir
	} else if !filepath.IsAbs(c.ImageDir) {
		c.ImageDir = filepath.Join(c.InputDir, c.ImageDir)
	}

	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "scml-out")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}

	// Defaults for sheet settings
	if c.CellSize <= 0 {
		c.CellSize = 128
	}
	if c.Columns <= 0 {
		c.Columns = 8
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir    string
	OutputDir   string
	Workers     int
	Sheets      bool
	VerifyFiles bool
}
