package mathutil

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAngleDist(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 90, 90},
		{350, 10, 20},
		{10, 350, 20},
		{-90, 90, 180},
		{720, 0, 0},
	}
	for _, c := range cases {
		if got := AngleDist(c.a, c.b); !almostEqual(got, c.want) {
			t.Fatalf("AngleDist(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestLerpAngle(t *testing.T) {
	cases := []struct {
		name    string
		a, b, t float64
		spin    int
		want    float64
	}{
		{"ccw_simple", 10, 90, 0.5, 1, 50},
		{"ccw_wraps", 350, 10, 0.5, 1, 360},
		{"cw_simple", 90, 10, 0.5, -1, 50},
		{"cw_wraps", 10, 350, 0.5, -1, 0},
		{"cw_long_way", 10, 90, 0.5, -1, -130},
		{"no_spin", 10, 90, 0.5, 0, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LerpAngle(c.a, c.b, c.t, c.spin); !almostEqual(got, c.want) {
				t.Fatalf("LerpAngle = %v, want %v", got, c.want)
			}
		})
	}
}

func TestPointOps(t *testing.T) {
	p := Point{1, 2}
	q := Point{3, 6}
	if got := p.Lerp(q, 0.5); got != (Point{2, 4}) {
		t.Fatalf("Lerp = %v", got)
	}
	if got := q.Sub(p).Scale(Point{2, 0.5}); got != (Point{4, 2}) {
		t.Fatalf("Sub/Scale = %v", got)
	}
	if !(Dimension{}).IsZero() || (Dimension{Width: 1}).IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}
