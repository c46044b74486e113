package formats

import (
	"fmt"

	"github.com/Faultbox/godtool/pkg/math"
)

// GODShadowType is the shadow rendering mode stored in the header.
type GODShadowType int32

const (
	GODShadowOval     GODShadowType = 0
	GODShadowSemiLive GODShadowType = 2
)

// String returns a human-readable shadow type name.
func (s GODShadowType) String() string {
	switch s {
	case GODShadowOval:
		return "Oval"
	case GODShadowSemiLive:
		return "SemiLive"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// GODHeader is the scene-level record at the start of a GOD file.
type GODHeader struct {
	ObjectName string

	// Bounds
	Radius  float32
	Width   float32
	Height  float32
	Breadth float32
	Offset  math.Vec3 // v2+

	Scale       float32
	QuickLight  int32
	ShadowPlane int32

	EnvMap   int32   // v2+
	TexTimer float32 // v2+, seconds (stored as integer milliseconds)

	ShadowRadX float32   // v12+
	ShadowRadY float32   // v12+
	ShadowP1   math.Vec3 // v12+, copy of ShadowP2
	ShadowP2   math.Vec3 // v12+

	Unknown1 float32 // v13+

	HasTread   int32 // v6+
	HasControl int32 // v6+

	ShadowType    GODShadowType // v9+
	ShadowRadius  float32
	TreadPerMeter float32 // v8+
}

func godFloat(dst *float32) func(c *GODCursor) error {
	return func(c *GODCursor) error {
		v, err := c.ReadFloat32()
		*dst = v
		return err
	}
}

func godInt(dst *int32) func(c *GODCursor) error {
	return func(c *GODCursor) error {
		v, err := c.ReadInt32()
		*dst = v
		return err
	}
}

func godSeq(c *GODCursor, reads ...func(c *GODCursor) error) error {
	for _, read := range reads {
		if err := read(c); err != nil {
			return err
		}
	}
	return nil
}

// godHeaderPolicy lists the header fields in stream order.
var godHeaderPolicy = GODPolicy[GODHeader]{
	{Name: "objectName", When: GODAlways, Decode: func(c *GODCursor, h *GODHeader) (err error) {
		h.ObjectName, err = c.readName()
		return err
	}},
	{Name: "bounds", When: GODAfter(GODVersion1), Decode: func(c *GODCursor, h *GODHeader) error {
		return godSeq(c,
			godFloat(&h.Radius),
			godFloat(&h.Width), godFloat(&h.Height), godFloat(&h.Breadth),
			godFloat(&h.Offset.X), godFloat(&h.Offset.Y), godFloat(&h.Offset.Z),
		)
	}},
	{Name: "boundsV1", When: GODOnly(GODVersion1), Decode: func(c *GODCursor, h *GODHeader) error {
		return godSeq(c,
			godFloat(&h.Radius),
			func(c *GODCursor) error { return c.Skip(64) }, // unused transform matrix
			godFloat(&h.Width), godFloat(&h.Height), godFloat(&h.Breadth),
		)
	}},
	{Name: "scale", When: GODAlways, Decode: func(c *GODCursor, h *GODHeader) error {
		return godFloat(&h.Scale)(c)
	}},
	{Name: "quickLight", When: GODAlways, Decode: func(c *GODCursor, h *GODHeader) error {
		return godInt(&h.QuickLight)(c)
	}},
	{Name: "shadowPlane", When: GODAlways, Decode: func(c *GODCursor, h *GODHeader) error {
		return godInt(&h.ShadowPlane)(c)
	}},
	{Name: "envMap", When: GODAfter(GODVersion1), Decode: func(c *GODCursor, h *GODHeader) error {
		return godInt(&h.EnvMap)(c)
	}},
	{Name: "texTimer", When: GODAfter(GODVersion1), Decode: func(c *GODCursor, h *GODHeader) error {
		ms, err := c.ReadInt32()
		if err != nil {
			return err
		}
		h.TexTimer = float32(ms) * 0.001
		return nil
	}},
	{Name: "shadowInfo", When: GODAfter(GODVersion11), Decode: func(c *GODCursor, h *GODHeader) error {
		err := godSeq(c,
			godFloat(&h.ShadowRadX), godFloat(&h.ShadowRadY),
			godFloat(&h.ShadowP2.X), godFloat(&h.ShadowP2.Y), godFloat(&h.ShadowP2.Z),
		)
		if err != nil {
			return err
		}
		h.ShadowP1 = h.ShadowP2
		return nil
	}},
	{Name: "unknown1", When: GODAfter(GODVersion12), Decode: func(c *GODCursor, h *GODHeader) error {
		return godFloat(&h.Unknown1)(c)
	}},
	{Name: "hasTread", When: GODAfter(GODVersion5), Decode: func(c *GODCursor, h *GODHeader) error {
		return godInt(&h.HasTread)(c)
	}},
	{Name: "hasControl", When: GODAfter(GODVersion5), Decode: func(c *GODCursor, h *GODHeader) error {
		return godInt(&h.HasControl)(c)
	}},
	{Name: "shadowType", When: GODAfter(GODVersion10), Decode: func(c *GODCursor, h *GODHeader) error {
		v, err := c.ReadInt32()
		h.ShadowType = GODShadowType(v)
		return err
	}},
	{Name: "shadowSemiLive", When: GODBetween(GODVersion8, GODVersion11), Decode: func(c *GODCursor, h *GODHeader) error {
		v, err := c.ReadInt32()
		if err != nil {
			return err
		}
		// Only a literal 1 counts as true.
		if v == 1 {
			h.ShadowType = GODShadowSemiLive
		} else {
			h.ShadowType = GODShadowOval
		}
		return nil
	}},
	{Name: "shadowRadius", When: GODAlways, Decode: func(c *GODCursor, h *GODHeader) error {
		return godFloat(&h.ShadowRadius)(c)
	}},
	{Name: "treadPerMeter", When: GODAfter(GODVersion7), Decode: func(c *GODCursor, h *GODHeader) error {
		return godFloat(&h.TreadPerMeter)(c)
	}},
}

// GODHeaderFields returns the header field groups present in version v.
func GODHeaderFields(v GODVersion) []string {
	return godHeaderPolicy.Fields(v)
}

func decodeGODHeader(c *GODCursor, v GODVersion) (GODHeader, error) {
	var h GODHeader
	if err := godHeaderPolicy.Apply(c, v, "header", &h); err != nil {
		return GODHeader{}, err
	}
	return h, nil
}
