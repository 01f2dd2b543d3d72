package spriter

import (
	"fmt"

	"spriter-scml/internal/mathutil"
)

// Object is the pose sampled at a timeline key. It is a value: copying a
// key copies its pose.
type Object struct {
	Position mathutil.Point
	Scale    mathutil.Point
	Pivot    mathutil.Point
	// Size is the referenced image size for sprites, zero otherwise.
	Size  mathutil.Dimension
	Angle float64
	Alpha float64
	Ref   FileReference
}

// TimelineKey is one keyframe. Spin is the direction the angle turns towards
// the next key: 1 counter-clockwise, -1 clockwise, 0 none.
type TimelineKey struct {
	ID     int
	Time   int
	Spin   int
	Curve  Curve
	Object Object
}

// Timeline is the ordered keyframes of one bone or object.
type Timeline struct {
	ID         int
	Name       string
	ObjectInfo *ObjectInfo
	Keys       []*TimelineKey

	keyByID map[int]int
}

// NewTimeline creates a timeline animating info with capacity for n keys.
func NewTimeline(id int, name string, info *ObjectInfo, n int) *Timeline {
	return &Timeline{
		ID:         id,
		Name:       name,
		ObjectInfo: info,
		Keys:       make([]*TimelineKey, 0, n),
		keyByID:    make(map[int]int, n),
	}
}

// AddKey appends a key. Ids must be unique and times strictly ascending.
func (t *Timeline) AddKey(k *TimelineKey) error {
	if _, ok := t.keyByID[k.ID]; ok {
		return fmt.Errorf("timeline %d key %d: %w", t.ID, k.ID, ErrDuplicateID)
	}
	if n := len(t.Keys); n > 0 && k.Time <= t.Keys[n-1].Time {
		return fmt.Errorf("timeline %d key %d at %d after %d: %w", t.ID, k.ID, k.Time, t.Keys[n-1].Time, ErrOutOfOrder)
	}
	t.keyByID[k.ID] = len(t.Keys)
	t.Keys = append(t.Keys, k)
	return nil
}

// KeyIndex returns the position of the key with the given id.
func (t *Timeline) KeyIndex(id int) (int, bool) {
	i, ok := t.keyByID[id]
	return i, ok
}

// Key returns the key with the given id.
func (t *Timeline) Key(id int) (*TimelineKey, bool) {
	i, ok := t.keyByID[id]
	if !ok {
		return nil, false
	}
	return t.Keys[i], true
}
