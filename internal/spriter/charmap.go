package spriter

// CharacterMap remaps file references to swap a skin without touching
// timeline data.
type CharacterMap struct {
	ID   int
	Name string

	targets map[FileReference]FileReference
	order   []FileReference
}

// MapEntry is a single remapping.
type MapEntry struct {
	Source FileReference
	Target FileReference
}

// NewCharacterMap creates an empty map.
func NewCharacterMap(id int, name string) *CharacterMap {
	return &CharacterMap{
		ID:      id,
		Name:    name,
		targets: make(map[FileReference]FileReference),
	}
}

// Put maps src to dst. A later Put for the same source replaces the target
// but keeps its original position in Entries.
func (m *CharacterMap) Put(src, dst FileReference) {
	if _, ok := m.targets[src]; !ok {
		m.order = append(m.order, src)
	}
	m.targets[src] = dst
}

// Resolve returns the replacement for ref, or ref itself when unmapped.
func (m *CharacterMap) Resolve(ref FileReference) FileReference {
	if dst, ok := m.targets[ref]; ok {
		return dst
	}
	return ref
}

// Lookup returns the explicit target for src.
func (m *CharacterMap) Lookup(src FileReference) (FileReference, bool) {
	dst, ok := m.targets[src]
	return dst, ok
}

// Len returns the number of mapped sources.
func (m *CharacterMap) Len() int { return len(m.order) }

// Entries returns the mappings in insertion order.
func (m *CharacterMap) Entries() []MapEntry {
	out := make([]MapEntry, len(m.order))
	for i, src := range m.order {
		out[i] = MapEntry{Source: src, Target: m.targets[src]}
	}
	return out
}
