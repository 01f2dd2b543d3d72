package spriter

import "fmt"

// Entity is an animated character: its objects, skins and animations.
type Entity struct {
	ID            int
	Name          string
	ObjectInfos   []*ObjectInfo
	CharacterMaps []*CharacterMap
	Animations    []*Animation

	infoByName map[string]*ObjectInfo
	mapByID    map[int]int
	animByID   map[int]int
	animByName map[string]int
}

// NewEntity creates an entity sized for its children.
func NewEntity(id int, name string, animations, charMaps, infos int) *Entity {
	return &Entity{
		ID:            id,
		Name:          name,
		ObjectInfos:   make([]*ObjectInfo, 0, infos),
		CharacterMaps: make([]*CharacterMap, 0, charMaps),
		Animations:    make([]*Animation, 0, animations),
		infoByName:    make(map[string]*ObjectInfo, infos),
		mapByID:       make(map[int]int, charMaps),
		animByID:      make(map[int]int, animations),
		animByName:    make(map[string]int, animations),
	}
}

// AddObjectInfo registers info. At most one info exists per name.
func (e *Entity) AddObjectInfo(info *ObjectInfo) error {
	if _, ok := e.infoByName[info.Name]; ok {
		return fmt.Errorf("object info %q: %w", info.Name, ErrDuplicateID)
	}
	e.infoByName[info.Name] = info
	e.ObjectInfos = append(e.ObjectInfos, info)
	return nil
}

// ObjectInfo returns the info with the given name.
func (e *Entity) ObjectInfo(name string) (*ObjectInfo, bool) {
	info, ok := e.infoByName[name]
	return info, ok
}

// AddCharacterMap appends a character map.
func (e *Entity) AddCharacterMap(m *CharacterMap) error {
	if _, ok := e.mapByID[m.ID]; ok {
		return fmt.Errorf("character map %d: %w", m.ID, ErrDuplicateID)
	}
	e.mapByID[m.ID] = len(e.CharacterMaps)
	e.CharacterMaps = append(e.CharacterMaps, m)
	return nil
}

// CharacterMap returns the character map with the given id.
func (e *Entity) CharacterMap(id int) (*CharacterMap, bool) {
	i, ok := e.mapByID[id]
	if !ok {
		return nil, false
	}
	return e.CharacterMaps[i], true
}

// CharacterMapByName returns the first character map with the given name.
func (e *Entity) CharacterMapByName(name string) (*CharacterMap, bool) {
	for _, m := range e.CharacterMaps {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// AddAnimation appends an animation.
func (e *Entity) AddAnimation(a *Animation) error {
	if _, ok := e.animByID[a.ID]; ok {
		return fmt.Errorf("animation %d: %w", a.ID, ErrDuplicateID)
	}
	e.animByID[a.ID] = len(e.Animations)
	if _, ok := e.animByName[a.Name]; !ok {
		e.animByName[a.Name] = len(e.Animations)
	}
	e.Animations = append(e.Animations, a)
	return nil
}

// Animation returns the animation with the given id.
func (e *Entity) Animation(id int) (*Animation, bool) {
	i, ok := e.animByID[id]
	if !ok {
		return nil, false
	}
	return e.Animations[i], true
}

// AnimationByName returns the first animation with the given name.
func (e *Entity) AnimationByName(name string) (*Animation, bool) {
	i, ok := e.animByName[name]
	if !ok {
		return nil, false
	}
	return e.Animations[i], true
}
