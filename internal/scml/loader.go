// Package scml builds a spriter.Data model from a Spriter SCML document.
//
// Loading is a single synchronous pass: folders first, then for each entity
// its object infos, character maps and animations. Each animation builds its
// mainline, then its timelines, then links the two with Prepare. Any
// structural problem aborts the load with an *Error; no partial model is
// returned.
package scml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"spriter-scml/internal/mathutil"
	"spriter-scml/internal/spriter"
	"spriter-scml/internal/xmldoc"
)

// Loader turns parsed documents into models. The zero value is ready to use
// and a Loader may be used from several goroutines.
type Loader struct {
	Hooks Hooks
}

// ParseFile loads the SCML file at path with a default Loader.
func ParseFile(path string) (*spriter.Data, error) {
	var l Loader
	return l.ParseFile(path)
}

// Decode loads an SCML document from r with a default Loader.
func Decode(r io.Reader) (*spriter.Data, error) {
	var l Loader
	return l.Decode(r)
}

// ParseFile loads the SCML file at path.
func (l *Loader) ParseFile(path string) (*spriter.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scml: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Decode parses r and loads the document.
func (l *Loader) Decode(r io.Reader) (*spriter.Data, error) {
	root, err := xmldoc.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("scml: %w", err)
	}
	return l.Load(root)
}

// Load builds the model from the document root (<spriter_data>).
func (l *Loader) Load(root *xmldoc.Element) (*spriter.Data, error) {
	b := &builder{hooks: l.Hooks}
	data, err := b.load(root)
	if err != nil {
		return nil, err
	}
	return data, nil
}

type builder struct {
	hooks Hooks
	data  *spriter.Data
}

func (b *builder) warn(path, attr, value, msg string) {
	b.hooks.warn(Warning{Path: path, Attr: attr, Value: value, Message: msg})
}

func (b *builder) load(root *xmldoc.Element) (*spriter.Data, error) {
	if root == nil || root.Name != "spriter_data" {
		name := ""
		if root != nil {
			name = root.Name
		}
		return nil, &Error{Path: name, Err: fmt.Errorf("%w: root must be <spriter_data>", ErrMissingElement)}
	}

	const path = "spriter_data"
	folders := root.ChildrenByName("folder")
	entities := root.ChildrenByName("entity")

	a := newAttrs(root, path)
	version := a.str("scml_version")
	generator := a.strOr("generator", "")
	generatorVersion := a.strOr("generator_version", "")
	pixelMode := a.intOr("pixel_mode", defaultPixelMode)
	if a.err != nil {
		return nil, a.err
	}
	mode := spriter.PixelModeFromInt(pixelMode)
	if int(mode) != pixelMode {
		b.warn(path, "pixel_mode", fmt.Sprint(pixelMode), "unknown pixel mode, using "+mode.String())
	}

	b.data = spriter.NewData(version, generator, generatorVersion, mode, len(folders), len(entities))
	if err := b.loadFolders(folders); err != nil {
		return nil, err
	}
	if err := b.loadEntities(entities); err != nil {
		return nil, err
	}
	return b.data, nil
}

func (b *builder) loadFolders(folders []*xmldoc.Element) error {
	for i, el := range folders {
		path := segment("folder", i, "")
		a := newAttrs(el, path)
		id := a.int("id")
		name := a.strOr("name", folderName(i))
		if a.err != nil {
			return a.err
		}

		files := el.ChildrenByName("file")
		folder := spriter.NewFolder(id, name, len(files))
		if err := b.loadFiles(path, files, folder); err != nil {
			return err
		}
		if err := b.data.AddFolder(folder); err != nil {
			return &Error{Path: path, Attr: "id", Value: fmt.Sprint(id), Err: err}
		}
		b.hooks.folderLoaded(folder)
	}
	return nil
}

func (b *builder) loadFiles(parent string, files []*xmldoc.Element, folder *spriter.Folder) error {
	for i, el := range files {
		path := join(parent, segment("file", i, ""))
		a := newAttrs(el, path)
		file := &spriter.File{
			ID:   a.int("id"),
			Name: a.str("name"),
			Size: mathutil.Dimension{
				Width:  a.floatOr("width", 0),
				Height: a.floatOr("height", 0),
			},
			Pivot: mathutil.Point{
				X: a.floatOr("pivot_x", spriter.DefaultFilePivot.X),
				Y: a.floatOr("pivot_y", spriter.DefaultFilePivot.Y),
			},
		}
		if a.err != nil {
			return a.err
		}
		if err := folder.AddFile(file); err != nil {
			return &Error{Path: path, Attr: "id", Value: fmt.Sprint(file.ID), Err: err}
		}
	}
	return nil
}

func (b *builder) loadEntities(entities []*xmldoc.Element) error {
	for i, el := range entities {
		a := newAttrs(el, segment("entity", i, ""))
		id := a.int("id")
		name := a.str("name")
		if a.err != nil {
			return a.err
		}
		path := segment("entity", i, name)

		infos := el.ChildrenByName("obj_info")
		charMaps := el.ChildrenByName("character_map")
		animations := el.ChildrenByName("animation")
		entity := spriter.NewEntity(id, name, len(animations), len(charMaps), len(infos))
		if err := b.data.AddEntity(entity); err != nil {
			return &Error{Path: path, Attr: "id", Value: fmt.Sprint(id), Err: err}
		}

		// Order matters: timelines resolve object infos by name.
		if err := b.loadObjectInfos(path, infos, entity); err != nil {
			return err
		}
		if err := b.loadCharacterMaps(path, charMaps, entity); err != nil {
			return err
		}
		if err := b.loadAnimations(path, animations, entity); err != nil {
			return err
		}
		b.hooks.entityLoaded(entity)
	}
	return nil
}

// objectType parses a type token, warning about unknown ones.
func (b *builder) objectType(path, attr, token string) spriter.ObjectType {
	typ, ok := spriter.ParseObjectType(token)
	if !ok {
		b.warn(path, attr, token, "unknown object type, using "+typ.String())
	}
	return typ
}

// fileRef checks that ref names a file in the catalog.
func (b *builder) fileRef(path, attr string, ref spriter.FileReference) error {
	if _, ok := b.data.File(ref); !ok {
		return &Error{Path: path, Attr: attr, Value: ref.String(), Err: fmt.Errorf("file %s: %w", ref, spriter.ErrDanglingReference)}
	}
	return nil
}

func (b *builder) loadObjectInfos(parent string, infos []*xmldoc.Element, entity *spriter.Entity) error {
	for i, el := range infos {
		path := join(parent, segment("obj_info", i, ""))
		a := newAttrs(el, path)
		name := a.strOr("name", objectInfoName(i))
		token := a.strOr("type", defaultObjectType)
		size := mathutil.Dimension{
			Width:  a.floatOr("w", 0),
			Height: a.floatOr("h", 0),
		}
		if a.err != nil {
			return a.err
		}

		info := spriter.NewObjectInfo(name, b.objectType(path, "type", token), size)
		if frames := el.Child("frames"); frames != nil {
			indices := frames.ChildrenByName("i")
			info.Frames = make([]spriter.FileReference, 0, len(indices))
			for j, fi := range indices {
				fpath := join(path, segment("frames/i", j, ""))
				fa := newAttrs(fi, fpath)
				ref := spriter.FileReference{
					Folder: fa.intOr("folder", 0),
					File:   fa.intOr("file", 0),
				}
				if fa.err != nil {
					return fa.err
				}
				if err := b.fileRef(fpath, "file", ref); err != nil {
					return err
				}
				info.Frames = append(info.Frames, ref)
			}
		}

		if err := entity.AddObjectInfo(info); err != nil {
			return &Error{Path: path, Attr: "name", Value: name, Err: err}
		}
	}
	return nil
}

func (b *builder) loadCharacterMaps(parent string, maps []*xmldoc.Element, entity *spriter.Entity) error {
	for i, el := range maps {
		a := newAttrs(el, join(parent, segment("character_map", i, "")))
		id := a.int("id")
		name := a.strOr("name", characterMapName(i))
		if a.err != nil {
			return a.err
		}
		path := join(parent, segment("character_map", i, name))

		charMap := spriter.NewCharacterMap(id, name)
		if err := entity.AddCharacterMap(charMap); err != nil {
			return &Error{Path: path, Attr: "id", Value: fmt.Sprint(id), Err: err}
		}

		for j, m := range el.ChildrenByName("map") {
			mpath := join(path, segment("map", j, ""))
			ma := newAttrs(m, mpath)
			src := spriter.FileReference{
				Folder: ma.int("folder"),
				File:   ma.int("file"),
			}
			// Without a target the entry maps a file onto itself.
			dst := spriter.FileReference{
				Folder: ma.intOr("target_folder", src.Folder),
				File:   ma.intOr("target_file", src.File),
			}
			if ma.err != nil {
				return ma.err
			}
			if err := b.fileRef(mpath, "file", src); err != nil {
				return err
			}
			// A negative target hides the sprite.
			if dst.HasFile() {
				if err := b.fileRef(mpath, "target_file", dst); err != nil {
					return err
				}
			}
			charMap.Put(src, dst)
		}
	}
	return nil
}

func (b *builder) loadAnimations(parent string, animations []*xmldoc.Element, entity *spriter.Entity) error {
	for i, el := range animations {
		a := newAttrs(el, join(parent, segment("animation", i, "")))
		id := a.int("id")
		name := a.str("name")
		length := a.int("length")
		looping := a.boolOr("looping", defaultLooping)
		if a.err != nil {
			return a.err
		}
		path := join(parent, segment("animation", i, name))

		mainline := el.Child("mainline")
		if mainline == nil {
			return &Error{Path: path, Err: fmt.Errorf("%w: <mainline>", ErrMissingElement)}
		}
		keys := mainline.ChildrenByName("key")
		timelines := el.ChildrenByName("timeline")

		anim := spriter.NewAnimation(spriter.NewMainline(len(keys)), id, name, length, looping, len(timelines))
		if err := entity.AddAnimation(anim); err != nil {
			return &Error{Path: path, Attr: "id", Value: fmt.Sprint(id), Err: err}
		}

		if err := b.loadMainlineKeys(join(path, "mainline"), keys, anim.Mainline); err != nil {
			return err
		}
		if err := b.loadTimelines(path, timelines, anim, entity); err != nil {
			return err
		}
		if err := anim.Prepare(); err != nil {
			return &Error{Path: path, Err: err}
		}
		b.hooks.animationLoaded(entity, anim)
	}
	return nil
}

// curve reads curve_type and c1..c4 from a key.
func (b *builder) curve(a *attrs) spriter.Curve {
	token := a.strOr("curve_type", defaultCurveType)
	typ, ok := spriter.ParseCurveType(token)
	if !ok {
		b.warn(a.path, "curve_type", token, "unknown curve type, using "+typ.String())
	}
	return spriter.Curve{
		Type: typ,
		C1:   a.floatOr("c1", 0),
		C2:   a.floatOr("c2", 0),
		C3:   a.floatOr("c3", 0),
		C4:   a.floatOr("c4", 0),
	}
}

func (b *builder) loadMainlineKeys(parent string, keys []*xmldoc.Element, mainline *spriter.Mainline) error {
	for i, el := range keys {
		path := join(parent, segment("key", i, ""))
		a := newAttrs(el, path)
		id := a.int("id")
		time := a.intOr("time", 0)
		curve := b.curve(a)
		if a.err != nil {
			return a.err
		}

		boneRefs := el.ChildrenByName("bone_ref")
		objectRefs := el.ChildrenByName("object_ref")
		key := spriter.NewMainlineKey(id, time, curve, len(boneRefs), len(objectRefs))

		// Bones first: object refs may be parented to any of them.
		for j, r := range boneRefs {
			rpath := join(path, segment("bone_ref", j, ""))
			ref, _, err := readRef(r, rpath, false)
			if err != nil {
				return err
			}
			if err := key.AddBoneRef(spriter.BoneRef{Ref: ref}); err != nil {
				return refError(rpath, ref, err)
			}
		}
		for j, r := range objectRefs {
			rpath := join(path, segment("object_ref", j, ""))
			ref, z, err := readRef(r, rpath, true)
			if err != nil {
				return err
			}
			if err := key.AddObjectRef(spriter.ObjectRef{Ref: ref, ZIndex: z}); err != nil {
				return refError(rpath, ref, err)
			}
		}
		key.SortObjectRefs()

		if err := mainline.AddKey(key); err != nil {
			if errors.Is(err, spriter.ErrDuplicateID) {
				return &Error{Path: path, Attr: "id", Value: fmt.Sprint(id), Err: err}
			}
			return &Error{Path: path, Attr: "time", Value: fmt.Sprint(time), Err: err}
		}
	}
	return nil
}

// refError blames the attribute a rejected ref failed on.
func refError(path string, ref spriter.Ref, err error) error {
	if errors.Is(err, spriter.ErrDuplicateID) {
		return &Error{Path: path, Attr: "id", Value: fmt.Sprint(ref.ID), Err: err}
	}
	return &Error{Path: path, Attr: "parent", Value: fmt.Sprint(ref.Parent), Err: err}
}

func readRef(el *xmldoc.Element, path string, withZ bool) (spriter.Ref, int, error) {
	a := newAttrs(el, path)
	ref := spriter.NewRef(
		a.int("id"),
		a.int("timeline"),
		a.int("key"),
		a.intOr("parent", spriter.NoParent),
	)
	z := defaultZIndex
	if withZ {
		z = a.intOr("z_index", defaultZIndex)
	}
	if a.err != nil {
		return spriter.Ref{}, 0, a.err
	}
	return ref, z, nil
}

func (b *builder) loadTimelines(parent string, timelines []*xmldoc.Element, anim *spriter.Animation, entity *spriter.Entity) error {
	for i, el := range timelines {
		a := newAttrs(el, join(parent, segment("timeline", i, "")))
		id := a.int("id")
		name := a.str("name")
		token := a.strOr("object_type", defaultObjectType)
		if a.err != nil {
			return a.err
		}
		path := join(parent, segment("timeline", i, name))

		info, ok := entity.ObjectInfo(name)
		if !ok {
			// Undeclared objects get a zero-sized info that later
			// timelines of the entity share.
			info = placeholderInfo(name, b.objectType(path, "object_type", token))
			if err := entity.AddObjectInfo(info); err != nil {
				return &Error{Path: path, Attr: "name", Value: name, Err: err}
			}
		}

		keys := el.ChildrenByName("key")
		timeline := spriter.NewTimeline(id, name, info, len(keys))
		if err := anim.AddTimeline(timeline); err != nil {
			return &Error{Path: path, Attr: "id", Value: fmt.Sprint(id), Err: err}
		}
		if err := b.loadTimelineKeys(path, keys, timeline); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) loadTimelineKeys(parent string, keys []*xmldoc.Element, timeline *spriter.Timeline) error {
	for i, el := range keys {
		path := join(parent, segment("key", i, ""))
		a := newAttrs(el, path)
		id := a.int("id")
		time := a.intOr("time", 0)
		spin := a.intOr("spin", defaultSpin)
		curve := b.curve(a)
		if a.err != nil {
			return a.err
		}
		if spin < -1 || spin > 1 {
			return &Error{Path: path, Attr: "spin", Value: fmt.Sprint(spin), Err: fmt.Errorf("%w: spin must be -1, 0 or 1", ErrInvalidAttribute)}
		}

		bone, object := el.Child("bone"), el.Child("object")
		var pose *xmldoc.Element
		switch {
		case bone != nil && object != nil:
			return &Error{Path: path, Err: fmt.Errorf("%w: both <bone> and <object>", ErrInvalidElement)}
		case bone != nil:
			pose = bone
		case object != nil:
			pose = object
		default:
			return &Error{Path: path, Err: fmt.Errorf("%w: <bone> or <object>", ErrMissingElement)}
		}

		obj, err := b.pose(join(path, pose.Name), pose, timeline.ObjectInfo)
		if err != nil {
			return err
		}

		key := &spriter.TimelineKey{ID: id, Time: time, Spin: spin, Curve: curve, Object: obj}
		if err := timeline.AddKey(key); err != nil {
			return &Error{Path: path, Err: err}
		}
	}
	return nil
}

// pose reads a <bone> or <object> sample. For a sprite that references a
// file, the file supplies the default pivot and the pose size, and the
// object info's size is set to the file size. Every such key overwrites the
// info size, so the last one loaded wins.
func (b *builder) pose(path string, el *xmldoc.Element, info *spriter.ObjectInfo) (spriter.Object, error) {
	a := newAttrs(el, path)
	obj := spriter.Object{
		Position: mathutil.Point{
			X: a.floatOr("x", defaultPosition.X),
			Y: a.floatOr("y", defaultPosition.Y),
		},
		Scale: mathutil.Point{
			X: a.floatOr("scale_x", defaultScale.X),
			Y: a.floatOr("scale_y", defaultScale.Y),
		},
		Angle: a.floatOr("angle", 0),
		Alpha: defaultAlpha,
		Ref:   spriter.NoFile,
	}
	pivot := posePivot(el.Name, info.Type)

	if el.Name == "object" && info.Type == spriter.ObjectSprite {
		obj.Alpha = a.floatOr("a", defaultAlpha)
		obj.Ref = spriter.FileReference{
			Folder: a.intOr("folder", noID),
			File:   a.intOr("file", noID),
		}
		if a.err != nil {
			return spriter.Object{}, a.err
		}
		if obj.Ref.HasFile() {
			file, ok := b.data.File(obj.Ref)
			if !ok {
				return spriter.Object{}, &Error{Path: path, Attr: "file", Value: obj.Ref.String(), Err: fmt.Errorf("file %s: %w", obj.Ref, spriter.ErrDanglingReference)}
			}
			pivot = file.Pivot
			obj.Size = file.Size
			info.Size = file.Size
		}
	}

	obj.Pivot = mathutil.Point{
		X: a.floatOr("pivot_x", pivot.X),
		Y: a.floatOr("pivot_y", pivot.Y),
	}
	if a.err != nil {
		return spriter.Object{}, a.err
	}
	return obj, nil
}
