package batch

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"spriter-scml/internal/config"
	"spriter-scml/internal/scml"
	"spriter-scml/internal/sheet"
	"spriter-scml/internal/spriter"
	"spriter-scml/internal/texture"
)

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir    string
	ImageDir    string
	OutputDir   string
	Sheets      bool
	Sheet       sheet.Options
	VerifyFiles bool
	Workers     int

	// Progress receives a status line every ProgressEvery. Nil disables it.
	Progress      io.Writer
	ProgressEvery time.Duration
}

// FromConfig builds a batch Config from resolved settings.
func FromConfig(c config.Config) Config {
	return Config{
		InputDir:      c.InputDir,
		ImageDir:      c.ImageDir,
		OutputDir:     c.OutputDir,
		Sheets:        c.Sheets,
		Sheet:         sheet.Options{Cell: c.CellSize, Columns: c.Columns},
		VerifyFiles:   c.VerifyFiles,
		Workers:       c.Workers,
		ProgressEvery: 2 * time.Second,
	}
}

// Result holds the outcome of processing one SCML file.
type Result struct {
	Path       string
	Success    bool
	Error      string
	Warnings   []string
	Issues     []string
	Entities   int
	Animations int
	Timelines  int
	Files      int
	Sheets     []string // relative to OutputDir
}

// Find returns every .scml file under dir in lexical order.
func Find(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".scml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Run processes all paths using a worker pool. Results keep the order of
// paths. Every file is loaded independently; one failure does not stop the
// others.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	done := make(chan struct{})
	var reporter sync.WaitGroup
	if cfg.Progress != nil && cfg.ProgressEvery > 0 {
		reporter.Add(1)
		go func() {
			defer reporter.Done()
			ticker := time.NewTicker(cfg.ProgressEvery)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						fmt.Fprintf(cfg.Progress, "  [%s/%s] %.1f files/sec\n",
							humanize.Comma(p), humanize.Comma(int64(total)), rate)
					}
				}
			}
		}()
	}

	pathChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = processFile(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)
	reporter.Wait()

	return results
}

// relDir is the directory of path relative to the input root, or "." when
// path lies outside it.
func (cfg Config) relDir(path string) string {
	rel, err := filepath.Rel(cfg.InputDir, filepath.Dir(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "."
	}
	return rel
}

func (cfg Config) imageDir(path string) string {
	if cfg.ImageDir == "" {
		return filepath.Dir(path)
	}
	return filepath.Join(cfg.ImageDir, cfg.relDir(path))
}

func processFile(cfg Config, path string) Result {
	res := Result{Path: path}

	loader := scml.Loader{Hooks: scml.Hooks{
		Warning: func(w scml.Warning) {
			res.Warnings = append(res.Warnings, w.String())
		},
	}}
	data, err := loader.ParseFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.countModel(data)

	idx := texture.BuildIndex(cfg.imageDir(path), data)

	if cfg.VerifyFiles {
		for _, issue := range texture.Verify(data, idx) {
			res.Issues = append(res.Issues, issue.String())
		}
	}

	if cfg.Sheets {
		cache := texture.NewCache(idx)
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outDir := filepath.Join(cfg.relDir(path), stem)
		for _, folder := range data.Folders {
			if len(folder.Files) == 0 {
				continue
			}
			img, _, err := sheet.Compose(folder, cache, cfg.Sheet)
			if err != nil {
				res.Error = err.Error()
				return res
			}
			rel := filepath.Join(outDir, sheet.FileName(folder))
			if err := sheet.Write(filepath.Join(cfg.OutputDir, rel), img); err != nil {
				res.Error = err.Error()
				return res
			}
			res.Sheets = append(res.Sheets, filepath.ToSlash(rel))
		}
	}

	res.Success = true
	return res
}

func (r *Result) countModel(data *spriter.Data) {
	r.Entities = len(data.Entities)
	for _, folder := range data.Folders {
		r.Files += len(folder.Files)
	}
	for _, e := range data.Entities {
		r.Animations += len(e.Animations)
		for _, a := range e.Animations {
			r.Timelines += len(a.Timelines)
		}
	}
}
