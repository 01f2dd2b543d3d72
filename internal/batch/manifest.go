package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEntry represents one SCML file in the output manifest.
type ManifestEntry struct {
	Source     string   `json:"source"`
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	Entities   int      `json:"entities"`
	Animations int      `json:"animations"`
	Timelines  int      `json:"timelines"`
	Files      int      `json:"files"`
	Warnings   []string `json:"warnings,omitempty"`
	Issues     []string `json:"issues,omitempty"`
	Sheets     []string `json:"sheets,omitempty"`
}

// Manifest summarizes a batch run.
type Manifest struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Entries   []ManifestEntry `json:"entries"`
}

// NewManifest summarizes results. Sources are made relative to inputDir when
// possible.
func NewManifest(inputDir string, results []Result) Manifest {
	m := Manifest{
		Total:   len(results),
		Entries: make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		src := r.Path
		if rel, err := filepath.Rel(inputDir, r.Path); err == nil {
			src = filepath.ToSlash(rel)
		}
		if r.Success {
			m.Succeeded++
		} else {
			m.Failed++
		}
		m.Entries[i] = ManifestEntry{
			Source:     src,
			Success:    r.Success,
			Error:      r.Error,
			Entities:   r.Entities,
			Animations: r.Animations,
			Timelines:  r.Timelines,
			Files:      r.Files,
			Warnings:   r.Warnings,
			Issues:     r.Issues,
			Sheets:     r.Sheets,
		}
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
