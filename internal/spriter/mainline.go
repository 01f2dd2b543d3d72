package spriter

import (
	"cmp"
	"fmt"
	"slices"
)

// NoParent marks a root ref.
const NoParent = -1

// Ref points from a mainline key at the timeline key that is live at that
// time. Parent is the index of a BoneRef within the same MainlineKey, or
// NoParent.
type Ref struct {
	ID       int
	Timeline int
	Key      int
	Parent   int

	// TimelineIndex and KeyIndex are the positions of the referenced
	// timeline in Animation.Timelines and of the key in Timeline.Keys.
	// They are filled in by Animation.Prepare.
	TimelineIndex int
	KeyIndex      int
}

// NewRef returns a ref that is not yet linked to its timeline.
func NewRef(id, timeline, key, parent int) Ref {
	return Ref{
		ID:            id,
		Timeline:      timeline,
		Key:           key,
		Parent:        parent,
		TimelineIndex: -1,
		KeyIndex:      -1,
	}
}

// HasParent reports whether the ref is attached to a bone.
func (r Ref) HasParent() bool { return r.Parent != NoParent }

// BoneRef is a bone that is active in a mainline key.
type BoneRef struct {
	Ref
}

// ObjectRef is an object that is active in a mainline key. Refs with a
// lower ZIndex are drawn first.
type ObjectRef struct {
	Ref
	ZIndex int
}

// MainlineKey is one composition key: which timeline keys are live and
// how bones are parented from Time until the next key.
type MainlineKey struct {
	ID         int
	Time       int
	Curve      Curve
	BoneRefs   []BoneRef
	ObjectRefs []ObjectRef

	boneIDs   map[int]struct{}
	objectIDs map[int]struct{}
}

// NewMainlineKey creates a key sized for its refs.
func NewMainlineKey(id, time int, curve Curve, bones, objects int) *MainlineKey {
	return &MainlineKey{
		ID:         id,
		Time:       time,
		Curve:      curve,
		BoneRefs:   make([]BoneRef, 0, bones),
		ObjectRefs: make([]ObjectRef, 0, objects),
		boneIDs:    make(map[int]struct{}, bones),
		objectIDs:  make(map[int]struct{}, objects),
	}
}

// claim records id in ids, rejecting repeats.
func claim(ids *map[int]struct{}, kind string, id int) error {
	if *ids == nil {
		*ids = make(map[int]struct{})
	}
	if _, ok := (*ids)[id]; ok {
		return fmt.Errorf("%s %d: %w", kind, id, ErrDuplicateID)
	}
	(*ids)[id] = struct{}{}
	return nil
}

// parents must be declared before children, so a valid parent index is
// always below the current bone count.
func (k *MainlineKey) checkParent(parent int) error {
	if parent == NoParent {
		return nil
	}
	if parent < 0 || parent >= len(k.BoneRefs) {
		return fmt.Errorf("parent %d (have %d bone refs): %w", parent, len(k.BoneRefs), ErrDanglingReference)
	}
	return nil
}

// AddBoneRef appends a bone ref whose parent, if any, is already present.
// Bone ref ids are unique within the key.
func (k *MainlineKey) AddBoneRef(r BoneRef) error {
	if err := k.checkParent(r.Parent); err != nil {
		return err
	}
	if err := claim(&k.boneIDs, "bone ref", r.ID); err != nil {
		return err
	}
	k.BoneRefs = append(k.BoneRefs, r)
	return nil
}

// AddObjectRef appends an object ref whose parent, if any, is already present.
// Object ref ids are unique within the key. Call SortObjectRefs once all
// refs are in.
func (k *MainlineKey) AddObjectRef(r ObjectRef) error {
	if err := k.checkParent(r.Parent); err != nil {
		return err
	}
	if err := claim(&k.objectIDs, "object ref", r.ID); err != nil {
		return err
	}
	k.ObjectRefs = append(k.ObjectRefs, r)
	return nil
}

// SortObjectRefs orders object refs by ascending ZIndex, keeping the
// insertion order of equal z values.
func (k *MainlineKey) SortObjectRefs() {
	slices.SortStableFunc(k.ObjectRefs, func(a, b ObjectRef) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
}

// Parent returns the bone ref r is attached to.
func (k *MainlineKey) Parent(r Ref) (*BoneRef, bool) {
	if r.Parent < 0 || r.Parent >= len(k.BoneRefs) {
		return nil, false
	}
	return &k.BoneRefs[r.Parent], true
}

// Mainline is the time-ordered list of composition keys of an animation.
type Mainline struct {
	Keys []*MainlineKey

	keyByID map[int]int
}

// NewMainline creates a mainline with capacity for n keys.
func NewMainline(n int) *Mainline {
	return &Mainline{
		Keys:    make([]*MainlineKey, 0, n),
		keyByID: make(map[int]int, n),
	}
}

// AddKey appends a key. Ids must be unique and times strictly ascending.
func (m *Mainline) AddKey(k *MainlineKey) error {
	if m.keyByID == nil {
		m.keyByID = make(map[int]int)
	}
	if _, ok := m.keyByID[k.ID]; ok {
		return fmt.Errorf("mainline key %d: %w", k.ID, ErrDuplicateID)
	}
	if n := len(m.Keys); n > 0 && k.Time <= m.Keys[n-1].Time {
		return fmt.Errorf("mainline key %d at %d after %d: %w", k.ID, k.Time, m.Keys[n-1].Time, ErrOutOfOrder)
	}
	m.keyByID[k.ID] = len(m.Keys)
	m.Keys = append(m.Keys, k)
	return nil
}

// Key returns the key with the given id.
func (m *Mainline) Key(id int) (*MainlineKey, bool) {
	i, ok := m.keyByID[id]
	if !ok {
		return nil, false
	}
	return m.Keys[i], true
}

// KeyBeforeTime returns the last key starting at or before t, the first key
// when t precedes all keys, or nil for an empty mainline.
func (m *Mainline) KeyBeforeTime(t int) *MainlineKey {
	if len(m.Keys) == 0 {
		return nil
	}
	i, found := slices.BinarySearchFunc(m.Keys, t, func(k *MainlineKey, t int) int {
		return cmp.Compare(k.Time, t)
	})
	if found {
		return m.Keys[i]
	}
	if i == 0 {
		return m.Keys[0]
	}
	return m.Keys[i-1]
}
