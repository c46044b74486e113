package formats

import (
	"fmt"

	"go.uber.org/zap"
)

// Chunk tags. They are hashes of the chunk names; the hash function is
// unknown so the values are kept as literals.
const (
	GODTagMaterial  int32 = -1760997058 // 0x9709513E "Material"
	GODTagTexture0  int32 = -163263693  // 0xF644CB33 "Texture0"
	GODTagTexture1  int32 = -226109820  // 0xF285D684 "Texture1"
	GODTagTextureV1 int32 = 2035416075  // 0x7951FC0B "Texture" (v1)
)

// GODColor is an RGBA color with float components.
type GODColor [4]float32

// GODTextureSlot identifies which texture chunk a record came from.
type GODTextureSlot int

const (
	GODTextureSlot0 GODTextureSlot = iota
	GODTextureSlot1
	GODTextureSlotV1
)

// String returns the chunk name of the slot.
func (s GODTextureSlot) String() string {
	switch s {
	case GODTextureSlot0:
		return "Texture0"
	case GODTextureSlot1:
		return "Texture1"
	case GODTextureSlotV1:
		return "Texture"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// GODTexture is an optional texture record attached to a material.
type GODTexture struct {
	Slot        GODTextureSlot
	Name        string
	Type        int32
	MipMapCount int32
}

// GODMaterial is the material record of a bucket.
type GODMaterial struct {
	Name          string
	Diffuse       GODColor
	Specular      GODColor
	SpecularPower float32
	Emissive      GODColor
	Ambient       GODColor

	Textures []GODTexture // Matched texture records in stream order

	TeamColor int32 // v2+
	EnvMap    int32 // v2+
	Overlay   int32 // v2+
}

// TextureName returns the name of the last matched texture record, so
// Texture1 takes precedence over Texture0. Empty if none matched.
func (m *GODMaterial) TextureName() string {
	if m == nil || len(m.Textures) == 0 {
		return ""
	}
	return m.Textures[len(m.Textures)-1].Name
}

// GODBucket is a material group descriptor.
type GODBucket struct {
	Flags0     int32
	VertCount  int32 // Declared maximum, not necessarily used
	IndexCount int32 // Declared maximum, not necessarily used

	Material *GODMaterial // nil when the bucket had no Material chunk
}

// MaterialName returns the bucket's material name or "".
func (b *GODBucket) MaterialName() string {
	if b.Material == nil {
		return ""
	}
	return b.Material.Name
}

// TextureName returns the bucket's effective texture name or "".
func (b *GODBucket) TextureName() string {
	return b.Material.TextureName()
}

// tryGODChunk reads a tag and, if it equals tag, decodes the chunk body.
// On a mismatch the cursor is restored and ok is false. Fewer than four
// remaining bytes count as a mismatch.
func tryGODChunk[T any](c *GODCursor, tag int32, decode func(c *GODCursor) (T, error)) (val T, ok bool, err error) {
	if c.Remaining() < 4 {
		return val, false, nil
	}
	start := c.Pos()

	got, err := c.ReadInt32()
	if err != nil {
		return val, false, err
	}
	if got != tag {
		return val, false, c.Seek(start)
	}

	val, err = decode(c)
	if err != nil {
		return val, false, err
	}
	return val, true, nil
}

func godTextureChunk(slot GODTextureSlot) func(c *GODCursor) (GODTexture, error) {
	return func(c *GODCursor) (GODTexture, error) {
		tex := GODTexture{Slot: slot}
		name, err := c.readName()
		if err != nil {
			return tex, err
		}
		tex.Name = name
		err = godSeq(c, godInt(&tex.Type), godInt(&tex.MipMapCount))
		return tex, err
	}
}

func godTextureStep(name string, when GODVersionPredicate, tag int32, slot GODTextureSlot) GODStep[GODMaterial] {
	return GODStep[GODMaterial]{Name: name, When: when, Decode: func(c *GODCursor, m *GODMaterial) error {
		tex, ok, err := tryGODChunk(c, tag, godTextureChunk(slot))
		if err != nil {
			return err
		}
		if ok {
			m.Textures = append(m.Textures, tex)
		}
		return nil
	}}
}

// godMaterialPolicy lists the material chunk fields in stream order.
var godMaterialPolicy = GODPolicy[GODMaterial]{
	{Name: "name", When: GODAlways, Decode: func(c *GODCursor, m *GODMaterial) (err error) {
		m.Name, err = c.readName()
		return err
	}},
	{Name: "colors", When: GODAlways, Decode: func(c *GODCursor, m *GODMaterial) error {
		return godSeq(c,
			func(c *GODCursor) error { return c.readColor(&m.Diffuse) },
			func(c *GODCursor) error { return c.readColor(&m.Specular) },
			godFloat(&m.SpecularPower),
			func(c *GODCursor) error { return c.readColor(&m.Emissive) },
			func(c *GODCursor) error { return c.readColor(&m.Ambient) },
		)
	}},
	{Name: "legacy", When: GODBetween(GODVersion1, GODVersion10), Decode: func(c *GODCursor, m *GODMaterial) error {
		return c.Skip(3 * 4)
	}},
	godTextureStep("texture0", GODAfter(GODVersion1), GODTagTexture0, GODTextureSlot0),
	godTextureStep("texture1", GODAfter(GODVersion1), GODTagTexture1, GODTextureSlot1),
	godTextureStep("texture", GODOnly(GODVersion1), GODTagTextureV1, GODTextureSlotV1),
	{Name: "textureFlags", When: GODAfter(GODVersion1), Decode: func(c *GODCursor, m *GODMaterial) error {
		return godSeq(c, godInt(&m.TeamColor), godInt(&m.EnvMap), godInt(&m.Overlay))
	}},
}

// GODMaterialFields returns the material field groups present in version v.
func GODMaterialFields(v GODVersion) []string {
	return godMaterialPolicy.Fields(v)
}

func decodeGODBuckets(c *GODCursor, v GODVersion, strict bool, log *zap.Logger) ([]GODBucket, error) {
	count, capacity, err := readGODCount(c, 16, GODMaxBuckets, strict)
	if err != nil {
		return nil, withGODField(err, "buckets")
	}

	buckets := make([]GODBucket, 0, capacity)
	for i := 0; i < count; i++ {
		b, err := decodeGODBucket(c, v, i, log)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

func decodeGODBucket(c *GODCursor, v GODVersion, i int, log *zap.Logger) (GODBucket, error) {
	field := fmt.Sprintf("buckets[%d]", i)

	var b GODBucket
	if err := godSeq(c, godInt(&b.Flags0), godInt(&b.VertCount), godInt(&b.IndexCount)); err != nil {
		return b, withGODField(err, field)
	}

	tagPos := c.Pos()
	tag, err := c.ReadInt32()
	if err != nil {
		return b, withGODField(err, field+".tag")
	}
	if tag != GODTagMaterial {
		// The tag is consumed even though it did not match. Every known file
		// carries a material per bucket, so this path has not been verified.
		log.Debug("bucket without material chunk",
			zap.Int("bucket", i),
			zap.Int("offset", tagPos),
			zap.Int32("tag", tag))
		return b, nil
	}

	m := &GODMaterial{}
	if err := godMaterialPolicy.Apply(c, v, field+".material", m); err != nil {
		return b, err
	}
	b.Material = m
	return b, nil
}
