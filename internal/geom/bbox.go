package geom

// BBox is an axis-aligned bounding box anchored at its lower-left corner.
// A negative width or height marks the empty box.
type BBox struct {
	LowerLeft Point `json:"lowerLeft"`
	Width     int   `json:"width"`
	Height    int   `json:"height"`
}

// EmptyBBox returns a box that contains nothing and is absorbed by Union.
func EmptyBBox() BBox {
	return BBox{Width: -1, Height: -1}
}

// IsEmpty reports whether the box contains no points.
func (b BBox) IsEmpty() bool {
	return b.Width < 0 || b.Height < 0
}

// UpperRight returns the corner opposite LowerLeft.
func (b BBox) UpperRight() Point {
	return Point{b.LowerLeft.X + b.Width, b.LowerLeft.Y + b.Height}
}

// Corners returns the four corners in the order lower-left, upper-left,
// upper-right, lower-right.
func (b BBox) Corners() [4]Point {
	ur := b.UpperRight()
	return [4]Point{
		b.LowerLeft,
		{b.LowerLeft.X, ur.Y},
		ur,
		{ur.X, b.LowerLeft.Y},
	}
}

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{b.LowerLeft.X + b.Width/2, b.LowerLeft.Y + b.Height/2}
}

// Contains reports whether p lies inside or on the box.
func (b BBox) Contains(p Point) bool {
	if b.IsEmpty() {
		return false
	}
	ur := b.UpperRight()
	return p.X >= b.LowerLeft.X && p.X <= ur.X && p.Y >= b.LowerLeft.Y && p.Y <= ur.Y
}

// Intersects reports whether the two boxes overlap or touch.
func (b BBox) Intersects(o BBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	bur, our := b.UpperRight(), o.UpperRight()
	return b.LowerLeft.X <= our.X && o.LowerLeft.X <= bur.X &&
		b.LowerLeft.Y <= our.Y && o.LowerLeft.Y <= bur.Y
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(o BBox) BBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}

	bur, our := b.UpperRight(), o.UpperRight()
	minX := min(b.LowerLeft.X, o.LowerLeft.X)
	minY := min(b.LowerLeft.Y, o.LowerLeft.Y)
	maxX := max(bur.X, our.X)
	maxY := max(bur.Y, our.Y)

	return BBox{
		LowerLeft: Point{minX, minY},
		Width:     maxX - minX,
		Height:    maxY - minY,
	}
}

// Extend grows the box by n units on every side.
func (b BBox) Extend(n int) BBox {
	if b.IsEmpty() {
		return b
	}
	return BBox{
		LowerLeft: Point{b.LowerLeft.X - n, b.LowerLeft.Y - n},
		Width:     b.Width + 2*n,
		Height:    b.Height + 2*n,
	}
}

// BoundsOf returns the box enclosing all points, or the empty box.
func BoundsOf(points ...Point) BBox {
	if len(points) == 0 {
		return EmptyBBox()
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return BBox{LowerLeft: Point{minX, minY}, Width: maxX - minX, Height: maxY - minY}
}

// FBoundsOf returns the integer box enclosing the fractional points.
func FBoundsOf(points ...FPoint) BBox {
	ip := make([]Point, len(points))
	for i, p := range points {
		ip[i] = p.Round()
	}
	return BoundsOf(ip...)
}
