package formats

import (
	"bytes"
	"encoding/binary"
)

// godBuilder assembles little-endian GOD fixtures in memory.
type godBuilder struct {
	buf bytes.Buffer
}

func (b *godBuilder) i32(vals ...int32) *godBuilder {
	for _, v := range vals {
		binary.Write(&b.buf, binary.LittleEndian, v)
	}
	return b
}

func (b *godBuilder) f32(vals ...float32) *godBuilder {
	for _, v := range vals {
		binary.Write(&b.buf, binary.LittleEndian, v)
	}
	return b
}

func (b *godBuilder) u16(vals ...uint16) *godBuilder {
	for _, v := range vals {
		binary.Write(&b.buf, binary.LittleEndian, v)
	}
	return b
}

func (b *godBuilder) raw(p []byte) *godBuilder {
	b.buf.Write(p)
	return b
}

// name writes a length-prefixed, NUL-terminated string.
func (b *godBuilder) name(s string) *godBuilder {
	b.u16(uint16(len(s) + 1))
	b.buf.WriteString(s)
	b.buf.WriteByte(0)
	return b
}

func (b *godBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// testHeader holds the values written by writeHeader.
var testHeader = GODHeader{
	ObjectName:    "Box",
	Radius:        1.0,
	Width:         2.0,
	Height:        3.0,
	Breadth:       4.0,
	Scale:         1.5,
	QuickLight:    1,
	ShadowPlane:   0,
	EnvMap:        7,
	ShadowRadX:    0.5,
	ShadowRadY:    0.25,
	Unknown1:      9.5,
	HasTread:      1,
	HasControl:    1,
	ShadowType:    GODShadowSemiLive,
	ShadowRadius:  6.0,
	TreadPerMeter: 0.125,
}

const testTexTimerMS = 1500

// writeHeader writes testHeader using the field layout of version v.
func writeHeader(b *godBuilder, v GODVersion) {
	h := testHeader
	b.name(h.ObjectName)

	if v > 1 {
		b.f32(h.Radius, h.Width, h.Height, h.Breadth)
		b.f32(10, 20, 30) // offset
	} else {
		b.f32(h.Radius)
		b.raw(make([]byte, 64))
		b.f32(h.Width, h.Height, h.Breadth)
	}

	b.f32(h.Scale)
	b.i32(h.QuickLight, h.ShadowPlane)

	if v > 1 {
		b.i32(h.EnvMap, testTexTimerMS)
	}
	if v > 11 {
		b.f32(h.ShadowRadX, h.ShadowRadY)
		b.f32(-1, -2, -3) // p2
	}
	if v > 12 {
		b.f32(h.Unknown1)
	}
	if v > 5 {
		b.i32(h.HasTread, h.HasControl)
	}
	if v > 10 {
		b.i32(int32(h.ShadowType))
	} else if v > 8 {
		b.i32(1)
	}
	b.f32(h.ShadowRadius)
	if v > 7 {
		b.f32(h.TreadPerMeter)
	}
}

// testMaterial describes a material chunk for writeMaterial.
type testMaterial struct {
	name     string
	texture0 string
	texture1 string
	textureV string // v1 only
	team     [3]int32
}

func writeMaterial(b *godBuilder, v GODVersion, m testMaterial) {
	b.i32(GODTagMaterial)
	b.name(m.name)
	b.f32(0.1, 0.2, 0.3, 1.0) // diffuse
	b.f32(0.4, 0.5, 0.6, 1.0) // specular
	b.f32(32)                 // specular power
	b.f32(0.7, 0.8, 0.9, 1.0) // emissive
	b.f32(0.0, 0.1, 0.0, 1.0) // ambient

	if v > 1 && v < 10 {
		b.i32(0, 0, 0)
	}

	if v > 1 {
		if m.texture0 != "" {
			b.i32(GODTagTexture0).name(m.texture0).i32(1, 4)
		}
		if m.texture1 != "" {
			b.i32(GODTagTexture1).name(m.texture1).i32(2, 5)
		}
		b.i32(m.team[0], m.team[1], m.team[2])
	} else if m.textureV != "" {
		b.i32(GODTagTextureV1).name(m.textureV).i32(3, 1)
	}
}

// makeScene builds a complete single-triangle scene for version v.
func makeScene(v GODVersion, faces []GODFace) []byte {
	return makeSceneWith(v, faces, testMaterial{name: "mat0", texture0: "box.tga", textureV: "box.tga", team: [3]int32{1, 0, 0}})
}

// makeSceneWith is makeScene with the material of its single bucket given.
func makeSceneWith(v GODVersion, faces []GODFace, m testMaterial) []byte {
	b := &godBuilder{}
	writeHeader(b, v)

	// vertices
	b.i32(3)
	b.f32(0, 0, 0, 1, 0, 0, 0, 1, 0)
	// normals
	b.i32(1)
	b.f32(0, 0, 1)
	// uvs
	b.i32(3)
	b.f32(0, 0, 1, 0, 0, 1)
	// colors
	b.i32(3)
	for i := 0; i < 3; i++ {
		b.i32(255, 128, 64, 255)
	}

	b.i32(int32(len(faces)))
	for _, f := range faces {
		b.u16(f.Bucket)
		b.u16(f.Verts[:]...)
		b.u16(f.Norms[:]...)
		b.u16(f.UVs[:]...)
	}

	// one bucket
	b.i32(1)
	b.i32(0, 3, 3)
	writeMaterial(b, v, m)

	return b.bytes()
}

func triangle(bucket uint16) GODFace {
	return GODFace{
		Bucket: bucket,
		Verts:  [3]uint16{0, 1, 2},
		Norms:  [3]uint16{0, 0, 0},
		UVs:    [3]uint16{0, 1, 2},
	}
}
