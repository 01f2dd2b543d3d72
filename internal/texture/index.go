package texture

import (
	"path/filepath"
	"strings"

	"spriter-scml/internal/spriter"
)

// Index maps file references to filesystem paths.
type Index struct {
	baseDir string
	entries map[spriter.FileReference]string
}

// BuildIndex maps every file of data to a path under baseDir. File names in
// SCML documents are relative to the document and may use backslashes.
func BuildIndex(baseDir string, data *spriter.Data) *Index {
	idx := &Index{
		baseDir: baseDir,
		entries: make(map[spriter.FileReference]string),
	}
	for _, folder := range data.Folders {
		for _, file := range folder.Files {
			ref := spriter.FileReference{Folder: folder.ID, File: file.ID}
			idx.entries[ref] = filepath.Join(baseDir, filepath.FromSlash(normalizeName(file.Name)))
		}
	}
	return idx
}

func normalizeName(name string) string {
	return strings.TrimLeft(strings.ReplaceAll(name, "\\", "/"), "/")
}

// BaseDir returns the directory the index resolves against.
func (idx *Index) BaseDir() string {
	return idx.baseDir
}

// ResolvePath returns the filesystem path for a file reference, or ("", false).
func (idx *Index) ResolvePath(ref spriter.FileReference) (string, bool) {
	path, ok := idx.entries[ref]
	return path, ok
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	return len(idx.entries)
}
