package formats

import (
	"fmt"

	"github.com/Faultbox/godtool/pkg/math"
)

// GODVertexColor is a per-vertex color stored as four native ints in b, g, r, a order.
type GODVertexColor struct {
	B, G, R, A int32
}

// readGODCount reads an array count and returns the number of records to
// decode along with a safe initial capacity.
func readGODCount(c *GODCursor, recordSize, limit int, strict bool) (count, capacity int, err error) {
	n, err := c.ReadInt32()
	if err != nil {
		return 0, 0, err
	}
	if n < 0 {
		return 0, 0, nil
	}
	if strict && int(n) > limit {
		return 0, 0, fmt.Errorf("%w: %d > %d", ErrGODCountExceedsLimit, n, limit)
	}

	count = int(n)
	capacity = min(count, c.Remaining()/recordSize)
	return count, capacity, nil
}

func decodeGODVec3Array(c *GODCursor, strict bool) ([]math.Vec3, error) {
	count, capacity, err := readGODCount(c, 12, GODMaxVerts, strict)
	if err != nil {
		return nil, err
	}

	out := make([]math.Vec3, 0, capacity)
	for i := 0; i < count; i++ {
		var v [3]float32
		if err := c.readVec3(&v); err != nil {
			return nil, err
		}
		out = append(out, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	return out, nil
}

func decodeGODVertices(c *GODCursor, strict bool) ([]math.Vec3, error) {
	v, err := decodeGODVec3Array(c, strict)
	return v, withGODField(err, "vertices")
}

func decodeGODNormals(c *GODCursor, strict bool) ([]math.Vec3, error) {
	n, err := decodeGODVec3Array(c, strict)
	return n, withGODField(err, "normals")
}

func decodeGODUVs(c *GODCursor, strict bool) ([]math.Vec2, error) {
	count, capacity, err := readGODCount(c, 8, GODMaxVerts, strict)
	if err != nil {
		return nil, withGODField(err, "uvs")
	}

	out := make([]math.Vec2, 0, capacity)
	for i := 0; i < count; i++ {
		var uv math.Vec2
		if err := godSeq(c, godFloat(&uv.X), godFloat(&uv.Y)); err != nil {
			return nil, withGODField(err, "uvs")
		}
		out = append(out, uv)
	}
	return out, nil
}

func decodeGODColors(c *GODCursor, strict bool) ([]GODVertexColor, error) {
	count, capacity, err := readGODCount(c, 16, GODMaxVerts, strict)
	if err != nil {
		return nil, withGODField(err, "colors")
	}

	out := make([]GODVertexColor, 0, capacity)
	for i := 0; i < count; i++ {
		var col GODVertexColor
		if err := godSeq(c, godInt(&col.B), godInt(&col.G), godInt(&col.R), godInt(&col.A)); err != nil {
			return nil, withGODField(err, "colors")
		}
		out = append(out, col)
	}
	return out, nil
}
