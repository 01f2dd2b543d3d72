package texture

import (
	"errors"
	"fmt"
	"io/fs"

	"spriter-scml/internal/spriter"
)

// ErrUnknownFile is returned for references the index does not know.
var ErrUnknownFile = errors.New("texture: unknown file reference")

func errUnknownRef(ref spriter.FileReference) error {
	return fmt.Errorf("%w %s", ErrUnknownFile, ref)
}

// IssueKind classifies a verification finding.
type IssueKind int

const (
	IssueMissing IssueKind = iota
	IssueUnreadable
	IssueSizeMismatch
)

func (k IssueKind) String() string {
	switch k {
	case IssueMissing:
		return "missing"
	case IssueUnreadable:
		return "unreadable"
	case IssueSizeMismatch:
		return "size mismatch"
	}
	return "unknown"
}

// Issue is one problem found between a document's files and the disk.
type Issue struct {
	Kind   IssueKind
	Ref    spriter.FileReference
	Path   string
	Detail string
}

func (i Issue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s %s: %s", i.Ref, i.Path, i.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %s", i.Ref, i.Path, i.Kind, i.Detail)
}

// Verify checks that every file of data exists under the index and, when a
// file declares a size, that the image on disk has that size. Issues come
// back in folder then file order.
func Verify(data *spriter.Data, idx *Index) []Issue {
	var issues []Issue
	for _, folder := range data.Folders {
		for _, file := range folder.Files {
			ref := spriter.FileReference{Folder: folder.ID, File: file.ID}
			path, ok := idx.ResolvePath(ref)
			if !ok {
				issues = append(issues, Issue{Kind: IssueMissing, Ref: ref, Path: file.Name})
				continue
			}
			cfg, err := Probe(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					issues = append(issues, Issue{Kind: IssueMissing, Ref: ref, Path: path})
				} else {
					issues = append(issues, Issue{Kind: IssueUnreadable, Ref: ref, Path: path, Detail: err.Error()})
				}
				continue
			}
			if file.Size.IsZero() {
				continue
			}
			if int(file.Size.Width) != cfg.Width || int(file.Size.Height) != cfg.Height {
				issues = append(issues, Issue{
					Kind: IssueSizeMismatch,
					Ref:  ref,
					Path: path,
					Detail: fmt.Sprintf("declared %gx%g, image %dx%d",
						file.Size.Width, file.Size.Height, cfg.Width, cfg.Height),
				})
			}
		}
	}
	return issues
}
