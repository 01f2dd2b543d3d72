package spriter

import (
	"fmt"

	"spriter-scml/internal/mathutil"
)

// PixelMode selects how the player snaps coordinates. It is carried through
// untouched by the loader.
type PixelMode int

const (
	PixelModeNone PixelMode = iota
	PixelModeFull
	PixelModeReal
)

// PixelModeFromInt maps the pixel_mode attribute. Unknown values fall back to None.
func PixelModeFromInt(v int) PixelMode {
	switch PixelMode(v) {
	case PixelModeFull, PixelModeReal:
		return PixelMode(v)
	}
	return PixelModeNone
}

func (m PixelMode) String() string {
	switch m {
	case PixelModeFull:
		return "full"
	case PixelModeReal:
		return "real"
	}
	return "none"
}

// FileReference points at a File inside a Folder by their ids.
type FileReference struct {
	Folder int
	File   int
}

// NoFile is the reference carried by poses without an image (bones, points).
var NoFile = FileReference{Folder: -1, File: -1}

// HasFile reports whether both ids are set.
func (r FileReference) HasFile() bool {
	return r.Folder >= 0 && r.File >= 0
}

func (r FileReference) String() string {
	return fmt.Sprintf("%d/%d", r.Folder, r.File)
}

// DefaultFilePivot is the pivot of a file that declares none: bottom-left.
var DefaultFilePivot = mathutil.Point{X: 0, Y: 1}

// File is an image resource. Ids are unique within the owning Folder.
type File struct {
	ID    int
	Name  string
	Size  mathutil.Dimension
	Pivot mathutil.Point
}

// Folder groups Files. Ids are unique within Data.
type Folder struct {
	ID    int
	Name  string
	Files []*File

	byID map[int]int
}

// NewFolder creates a folder with capacity for n files.
func NewFolder(id int, name string, n int) *Folder {
	return &Folder{
		ID:    id,
		Name:  name,
		Files: make([]*File, 0, n),
		byID:  make(map[int]int, n),
	}
}

// AddFile appends f in document order.
func (f *Folder) AddFile(file *File) error {
	if _, ok := f.byID[file.ID]; ok {
		return fmt.Errorf("file %d in folder %d: %w", file.ID, f.ID, ErrDuplicateID)
	}
	f.byID[file.ID] = len(f.Files)
	f.Files = append(f.Files, file)
	return nil
}

// File returns the file with the given id.
func (f *Folder) File(id int) (*File, bool) {
	i, ok := f.byID[id]
	if !ok {
		return nil, false
	}
	return f.Files[i], true
}

// Data is the root of a loaded SCML document. After loading it is read-only
// and may be shared between goroutines.
type Data struct {
	SCMLVersion      string
	Generator        string
	GeneratorVersion string
	PixelMode        PixelMode
	Folders          []*Folder
	Entities         []*Entity

	folderByID   map[int]int
	entityByID   map[int]int
	entityByName map[string]int
}

// NewData creates an empty Data sized for the given folder and entity counts.
func NewData(version, generator, generatorVersion string, mode PixelMode, folders, entities int) *Data {
	return &Data{
		SCMLVersion:      version,
		Generator:        generator,
		GeneratorVersion: generatorVersion,
		PixelMode:        mode,
		Folders:          make([]*Folder, 0, folders),
		Entities:         make([]*Entity, 0, entities),
		folderByID:       make(map[int]int, folders),
		entityByID:       make(map[int]int, entities),
		entityByName:     make(map[string]int, entities),
	}
}

// AddFolder appends a folder.
func (d *Data) AddFolder(f *Folder) error {
	if _, ok := d.folderByID[f.ID]; ok {
		return fmt.Errorf("folder %d: %w", f.ID, ErrDuplicateID)
	}
	d.folderByID[f.ID] = len(d.Folders)
	d.Folders = append(d.Folders, f)
	return nil
}

// Folder returns the folder with the given id.
func (d *Data) Folder(id int) (*Folder, bool) {
	i, ok := d.folderByID[id]
	if !ok {
		return nil, false
	}
	return d.Folders[i], true
}

// File resolves a file reference.
func (d *Data) File(ref FileReference) (*File, bool) {
	folder, ok := d.Folder(ref.Folder)
	if !ok {
		return nil, false
	}
	return folder.File(ref.File)
}

// AddEntity appends an entity. Names are indexed but need not be unique;
// the first entity with a name wins EntityByName.
func (d *Data) AddEntity(e *Entity) error {
	if _, ok := d.entityByID[e.ID]; ok {
		return fmt.Errorf("entity %d: %w", e.ID, ErrDuplicateID)
	}
	d.entityByID[e.ID] = len(d.Entities)
	if _, ok := d.entityByName[e.Name]; !ok {
		d.entityByName[e.Name] = len(d.Entities)
	}
	d.Entities = append(d.Entities, e)
	return nil
}

// Entity returns the entity with the given id.
func (d *Data) Entity(id int) (*Entity, bool) {
	i, ok := d.entityByID[id]
	if !ok {
		return nil, false
	}
	return d.Entities[i], true
}

// EntityByName returns the first entity with the given name.
func (d *Data) EntityByName(name string) (*Entity, bool) {
	i, ok := d.entityByName[name]
	if !ok {
		return nil, false
	}
	return d.Entities[i], true
}
