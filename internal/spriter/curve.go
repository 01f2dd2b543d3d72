package spriter

import (
	"math"
	"strings"

	"spriter-scml/internal/mathutil"
)

// CurveType selects how a key blends into the next one.
type CurveType int

const (
	CurveLinear CurveType = iota
	CurveInstant
	CurveQuadratic
	CurveCubic
	CurveQuartic
	CurveQuintic
	CurveBezier
)

var curveTypeNames = [...]string{
	CurveLinear:    "linear",
	CurveInstant:   "instant",
	CurveQuadratic: "quadratic",
	CurveCubic:     "cubic",
	CurveQuartic:   "quartic",
	CurveQuintic:   "quintic",
	CurveBezier:    "bezier",
}

// ParseCurveType maps a curve_type token. Unrecognized tokens yield
// CurveLinear and ok == false.
func ParseCurveType(token string) (CurveType, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	for t, name := range curveTypeNames {
		if name == token {
			return CurveType(t), true
		}
	}
	return CurveLinear, false
}

func (t CurveType) String() string {
	if t < 0 || int(t) >= len(curveTypeNames) {
		return curveTypeNames[CurveLinear]
	}
	return curveTypeNames[t]
}

// Curve describes the easing from one key to the next. The constants are
// the c1..c4 attributes; their meaning depends on Type:
//
//	quadratic  c1
//	cubic      c1 c2
//	quartic    c1 c2 c3
//	quintic    c1 c2 c3 c4
//	bezier     control points (c1,c2) and (c3,c4)
//
// The zero value is a linear curve.
type Curve struct {
	Type           CurveType
	C1, C2, C3, C4 float64
}

// Ease maps progress t in [0,1] between two keys to eased progress.
func (c Curve) Ease(t float64) float64 {
	switch c.Type {
	case CurveInstant:
		return 0
	case CurveQuadratic:
		return quadratic(0, c.C1, 1, t)
	case CurveCubic:
		return cubic(0, c.C1, c.C2, 1, t)
	case CurveQuartic:
		return quartic(0, c.C1, c.C2, c.C3, 1, t)
	case CurveQuintic:
		return quintic(0, c.C1, c.C2, c.C3, c.C4, 1, t)
	case CurveBezier:
		return bezier(c.C1, c.C2, c.C3, c.C4, t)
	}
	return t
}

// Tween blends a and b at progress t.
func (c Curve) Tween(a, b, t float64) float64 {
	return mathutil.Lerp(a, b, c.Ease(t))
}

// TweenPoint blends two points at progress t.
func (c Curve) TweenPoint(a, b mathutil.Point, t float64) mathutil.Point {
	return a.Lerp(b, c.Ease(t))
}

// TweenAngle blends two angles in degrees, turning in the spin direction.
func (c Curve) TweenAngle(a, b, t float64, spin int) float64 {
	return mathutil.LerpAngle(a, b, c.Ease(t), spin)
}

func quadratic(a, b, c, t float64) float64 {
	return mathutil.Lerp(mathutil.Lerp(a, b, t), mathutil.Lerp(b, c, t), t)
}

func cubic(a, b, c, d, t float64) float64 {
	return mathutil.Lerp(quadratic(a, b, c, t), quadratic(b, c, d, t), t)
}

func quartic(a, b, c, d, e, t float64) float64 {
	return mathutil.Lerp(cubic(a, b, c, d, t), cubic(b, c, d, e, t), t)
}

func quintic(a, b, c, d, e, f, t float64) float64 {
	return mathutil.Lerp(quartic(a, b, c, d, e, t), quartic(b, c, d, e, f, t), t)
}

const bezierEpsilon = 1.0 / 200

// bezier evaluates the unit cubic Bézier through (0,0), (x1,y1), (x2,y2),
// (1,1): it finds the parameter whose x equals t and returns its y.
func bezier(x1, y1, x2, y2, t float64) float64 {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	derivX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	// Newton's method first, it converges in a few steps for sane curves.
	s := t
	for i := 0; i < 8; i++ {
		x := sampleX(s) - t
		if math.Abs(x) < bezierEpsilon {
			return sampleY(s)
		}
		d := derivX(s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= x / d
	}

	lo, hi := 0.0, 1.0
	s = t
	if s < lo {
		return sampleY(lo)
	}
	if s > hi {
		return sampleY(hi)
	}
	for i := 0; i < 64 && lo < hi; i++ {
		x := sampleX(s)
		if math.Abs(x-t) < bezierEpsilon {
			break
		}
		if t > x {
			lo = s
		} else {
			hi = s
		}
		s = lo + (hi-lo)/2
	}
	return sampleY(s)
}
