package scml

import (
	"fmt"

	"spriter-scml/internal/mathutil"
	"spriter-scml/internal/spriter"
)

// Values substituted for optional attributes.
const (
	defaultPixelMode  = 0
	defaultCurveType  = "linear"
	defaultObjectType = "sprite"
	defaultSpin       = 1
	defaultLooping    = true
	defaultZIndex     = 0
	defaultAlpha      = 1.0
	noID              = -1
)

var (
	defaultPosition  = mathutil.Point{X: 0, Y: 0}
	defaultScale     = mathutil.Point{X: 1, Y: 1}
	bonePivot        = mathutil.Point{X: 0.5, Y: 0.5}
	untypedBonePivot = mathutil.Point{X: 0, Y: 0}
)

func folderName(i int) string       { return fmt.Sprintf("no_name_%d", i) }
func objectInfoName(i int) string   { return fmt.Sprintf("info%d", i) }
func characterMapName(i int) string { return fmt.Sprintf("charMap%d", i) }

// posePivot is the pivot a pose gets when it declares none. Sprites that
// reference a file use the file's pivot instead.
func posePivot(element string, typ spriter.ObjectType) mathutil.Point {
	if element == "bone" {
		if typ == spriter.ObjectBone {
			return bonePivot
		}
		return untypedBonePivot
	}
	return spriter.DefaultFilePivot
}

// placeholderInfo is the info a timeline animates when its entity declares
// no obj_info of that name.
func placeholderInfo(name string, typ spriter.ObjectType) *spriter.ObjectInfo {
	return spriter.NewObjectInfo(name, typ, mathutil.Dimension{})
}
