//go:build ignore

// This program generates a sample GOD file for manual testing of godtool.
// Run with: go run generate_god.go
package main

import (
	"bytes"
	"encoding/binary"
	"os"
)

const (
	tagMaterial = -1760997058
	tagTexture0 = -163263693
)

func main() {
	var buf bytes.Buffer

	// File preamble, the scene starts at offset 52
	buf.Write(make([]byte, 52))

	// Header (version 13)
	writeName(&buf, "Crate")
	writeF32(&buf, 1.8, 2, 2, 2)   // radius, width, height, breadth
	writeF32(&buf, 0, 1, 0)        // offset
	writeF32(&buf, 1)              // scale
	writeI32(&buf, 0, 0)           // quickLight, shadowPlane
	writeI32(&buf, 0, 0)           // envMap, texTimer (ms)
	writeF32(&buf, 1, 1)           // shadowRadX, shadowRadY
	writeF32(&buf, 0, 0, 0)        // shadowP2
	writeF32(&buf, 0)              // unknown1
	writeI32(&buf, 0, 0)           // hasTread, hasControl
	writeI32(&buf, 0)              // shadowType
	writeF32(&buf, 1.5)            // shadowRadius
	writeF32(&buf, 0)              // treadPerMeter

	// Two triangles forming a unit quad
	writeI32(&buf, 4)
	writeF32(&buf, -1, 0, -1, 1, 0, -1, 1, 0, 1, -1, 0, 1)
	writeI32(&buf, 1)
	writeF32(&buf, 0, 1, 0)
	writeI32(&buf, 4)
	writeF32(&buf, 0, 0, 1, 0, 1, 1, 0, 1)
	writeI32(&buf, 0) // no vertex colors

	writeI32(&buf, 2)
	writeU16(&buf, 0, 0, 1, 2, 0, 0, 0, 0, 1, 2)
	writeU16(&buf, 0, 0, 2, 3, 0, 0, 0, 0, 2, 3)

	// One bucket with a textured material
	writeI32(&buf, 1)
	writeI32(&buf, 0, 4, 6)
	writeI32(&buf, tagMaterial)
	writeName(&buf, "crate")
	writeF32(&buf, 1, 1, 1, 1) // diffuse
	writeF32(&buf, 0, 0, 0, 1) // specular
	writeF32(&buf, 8)          // specular power
	writeF32(&buf, 0, 0, 0, 1) // emissive
	writeF32(&buf, 0.2, 0.2, 0.2, 1)
	writeI32(&buf, tagTexture0)
	writeName(&buf, `textures\crate.tga`)
	writeI32(&buf, 0, 1)    // type, mipmaps
	writeI32(&buf, 0, 0, 0) // teamColor, envMap, overlay

	if err := os.WriteFile("crate.god", buf.Bytes(), 0644); err != nil {
		panic(err)
	}

	println("Generated crate.god:", buf.Len(), "bytes")
	println("  - version 13, data offset 52")
	println("  - 4 vertices, 2 faces, 1 bucket (textures/crate.tga)")
}

func writeName(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint16(len(s)+1))
	buf.WriteString(s)
	buf.WriteByte(0)
}

func writeI32(buf *bytes.Buffer, vals ...int32) {
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v)
	}
}

func writeF32(buf *bytes.Buffer, vals ...float32) {
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v)
	}
}

func writeU16(buf *bytes.Buffer, vals ...uint16) {
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v)
	}
}
