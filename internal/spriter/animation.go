package spriter

import "fmt"

// Animation is a named clip of an entity.
type Animation struct {
	ID        int
	Name      string
	Length    int
	Looping   bool
	Mainline  *Mainline
	Timelines []*Timeline

	timelineByID map[int]int
	prepared     bool
}

// NewAnimation creates an animation around mainline with capacity for n timelines.
func NewAnimation(mainline *Mainline, id int, name string, length int, looping bool, n int) *Animation {
	return &Animation{
		ID:           id,
		Name:         name,
		Length:       length,
		Looping:      looping,
		Mainline:     mainline,
		Timelines:    make([]*Timeline, 0, n),
		timelineByID: make(map[int]int, n),
	}
}

// AddTimeline appends a timeline.
func (a *Animation) AddTimeline(t *Timeline) error {
	if _, ok := a.timelineByID[t.ID]; ok {
		return fmt.Errorf("timeline %d: %w", t.ID, ErrDuplicateID)
	}
	a.timelineByID[t.ID] = len(a.Timelines)
	a.Timelines = append(a.Timelines, t)
	return nil
}

// Timeline returns the timeline with the given id.
func (a *Animation) Timeline(id int) (*Timeline, bool) {
	i, ok := a.timelineByID[id]
	if !ok {
		return nil, false
	}
	return a.Timelines[i], true
}

// TimelineByName returns the first timeline with the given name.
func (a *Animation) TimelineByName(name string) (*Timeline, bool) {
	for _, t := range a.Timelines {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Prepared reports whether Prepare completed.
func (a *Animation) Prepared() bool { return a.prepared }

// Prepare links every mainline ref to the timeline and key it names by
// filling Ref.TimelineIndex and Ref.KeyIndex. It must run after all
// timelines are added; a ref naming a missing timeline or key fails.
func (a *Animation) Prepare() error {
	for _, key := range a.Mainline.Keys {
		for i := range key.BoneRefs {
			if err := a.link(&key.BoneRefs[i].Ref); err != nil {
				return fmt.Errorf("mainline key %d: bone_ref %d: %w", key.ID, key.BoneRefs[i].ID, err)
			}
		}
		for i := range key.ObjectRefs {
			if err := a.link(&key.ObjectRefs[i].Ref); err != nil {
				return fmt.Errorf("mainline key %d: object_ref %d: %w", key.ID, key.ObjectRefs[i].ID, err)
			}
		}
	}
	a.prepared = true
	return nil
}

func (a *Animation) link(r *Ref) error {
	ti, ok := a.timelineByID[r.Timeline]
	if !ok {
		return fmt.Errorf("timeline %d: %w", r.Timeline, ErrDanglingReference)
	}
	ki, ok := a.Timelines[ti].KeyIndex(r.Key)
	if !ok {
		return fmt.Errorf("timeline %d key %d: %w", r.Timeline, r.Key, ErrDanglingReference)
	}
	r.TimelineIndex = ti
	r.KeyIndex = ki
	return nil
}

// BoneKey returns the timeline key a bone ref points at. Valid after Prepare.
func (a *Animation) BoneKey(r BoneRef) *TimelineKey {
	return a.Timelines[r.TimelineIndex].Keys[r.KeyIndex]
}

// ObjectKey returns the timeline key an object ref points at. Valid after Prepare.
func (a *Animation) ObjectKey(r ObjectRef) *TimelineKey {
	return a.Timelines[r.TimelineIndex].Keys[r.KeyIndex]
}
