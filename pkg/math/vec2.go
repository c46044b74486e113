package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// FlipV returns the coordinate with V mirrored (1 - v).
func (v Vec2) FlipV() Vec2 {
	return Vec2{v.X, 1 - v.Y}
}

// Array returns the components as [u, v].
func (v Vec2) Array() [2]float32 {
	return [2]float32{v.X, v.Y}
}
