package spriter

import (
	"strings"

	"spriter-scml/internal/mathutil"
)

// ObjectType is the kind of an object info or timeline.
type ObjectType int

const (
	ObjectUnknown ObjectType = iota
	ObjectSprite
	ObjectBone
	ObjectBox
	ObjectPoint
	ObjectSound
	ObjectEntity
	ObjectVariable
	ObjectSkin
)

var objectTypeNames = [...]string{
	ObjectUnknown:  "unknown",
	ObjectSprite:   "sprite",
	ObjectBone:     "bone",
	ObjectBox:      "box",
	ObjectPoint:    "point",
	ObjectSound:    "sound",
	ObjectEntity:   "entity",
	ObjectVariable: "variable",
	ObjectSkin:     "skin",
}

// ParseObjectType maps an SCML type token. Unrecognized tokens yield
// ObjectUnknown and ok == false.
func ParseObjectType(token string) (ObjectType, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	for t, name := range objectTypeNames {
		if name == token && ObjectType(t) != ObjectUnknown {
			return ObjectType(t), true
		}
	}
	return ObjectUnknown, false
}

func (t ObjectType) String() string {
	if t < 0 || int(t) >= len(objectTypeNames) {
		return objectTypeNames[ObjectUnknown]
	}
	return objectTypeNames[t]
}

// ObjectInfo is the static description of a named object in an entity.
//
// Size starts as the declared w/h and is overwritten by the loader with the
// image size of every sprite key that references a file, so the last such
// key wins.
type ObjectInfo struct {
	Name   string
	Type   ObjectType
	Size   mathutil.Dimension
	Frames []FileReference
}

// NewObjectInfo returns an info with no frames.
func NewObjectInfo(name string, typ ObjectType, size mathutil.Dimension) *ObjectInfo {
	return &ObjectInfo{Name: name, Type: typ, Size: size}
}
