package mathutil

// Point is a 2D coordinate or vector. Spriter uses a Y-up coordinate system.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale multiplies both components by the components of s.
func (p Point) Scale(s Point) Point {
	return Point{p.X * s.X, p.Y * s.Y}
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{Lerp(p.X, q.X, t), Lerp(p.Y, q.Y, t)}
}

// Dimension is a width/height pair in pixels.
type Dimension struct {
	Width, Height float64
}

// IsZero reports whether both sides are zero.
func (d Dimension) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}
