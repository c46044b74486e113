// Package export converts decoded GOD scenes into glTF 2.0 documents.
package export

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/godtool/pkg/formats"
	"github.com/Faultbox/godtool/pkg/math"
)

// ErrNoGeometry is returned when a scene has no faces left to export.
var ErrNoGeometry = errors.New("scene has no faces")

// Options controls how a scene is mapped into glTF space.
type Options struct {
	MirrorX        bool    // Negate X and swap winding
	FlipV          bool    // Store 1-v texture coordinates
	RotateXDegrees float32 // Root node rotation about X
	TextureDir     string  // Prefix for texture image URIs
}

// DefaultOptions matches the orientation GOD scenes are authored in.
func DefaultOptions() Options {
	return Options{MirrorX: true, FlipV: true, RotateXDegrees: 90}
}

// corner identifies one unwelded glTF vertex.
type corner struct {
	vert, norm, uv uint16
}

// primitiveData collects the attribute streams of one bucket.
type primitiveData struct {
	lookup    map[corner]uint32
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	colors    [][4]uint8
	indices   []uint32
}

// Build creates a glTF document with one mesh, one primitive per non-empty
// bucket and one node holding the root rotation.
func Build(g *formats.GOD, opts Options) (*gltf.Document, error) {
	if len(g.Faces) == 0 {
		return nil, ErrNoGeometry
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "godtool"

	mats := newMaterialBuilder(doc, opts.TextureDir)
	withColors := len(g.Colors) > 0 && len(g.Colors) == len(g.Vertices)

	mesh := &gltf.Mesh{Name: g.Header.ObjectName}
	groups := g.FacesByBucket()

	for bucket := range g.Buckets {
		faces := groups[bucket]
		if len(faces) == 0 {
			continue
		}

		pd := buildPrimitive(g, faces, opts, withColors)

		attributes := map[string]uint32{
			"POSITION":   modeler.WritePosition(doc, pd.positions),
			"NORMAL":     modeler.WriteNormal(doc, pd.normals),
			"TEXCOORD_0": modeler.WriteTextureCoord(doc, pd.uvs),
		}
		if withColors {
			attributes["COLOR_0"] = modeler.WriteColor(doc, pd.colors)
		}

		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Indices:    gltf.Index(modeler.WriteIndices(doc, pd.indices)),
			Attributes: attributes,
			Material:   gltf.Index(mats.add(&g.Buckets[bucket], bucket)),
		})
	}

	if len(mesh.Primitives) == 0 {
		return nil, fmt.Errorf("%w: no face references a bucket", ErrNoGeometry)
	}

	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:     g.Header.ObjectName,
		Mesh:     gltf.Index(uint32(len(doc.Meshes) - 1)),
		Rotation: math.QuatFromEulerX(opts.RotateXDegrees).Array(),
		Scale:    [3]float32{1, 1, 1},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))

	return doc, nil
}

// buildPrimitive unwelds the faces of one bucket. Corners sharing the same
// vertex/normal/uv triple map to the same output vertex.
func buildPrimitive(g *formats.GOD, faces []int, opts Options, withColors bool) *primitiveData {
	pd := &primitiveData{lookup: make(map[corner]uint32)}

	order := [3]int{0, 1, 2}
	if opts.MirrorX {
		order = [3]int{0, 2, 1}
	}

	for _, fi := range faces {
		f := g.Faces[fi]
		for _, k := range order {
			key := corner{vert: f.Verts[k], norm: f.Norms[k], uv: f.UVs[k]}
			idx, ok := pd.lookup[key]
			if !ok {
				idx = pd.addCorner(g, key, opts, withColors)
				pd.lookup[key] = idx
			}
			pd.indices = append(pd.indices, idx)
		}
	}
	return pd
}

func (pd *primitiveData) addCorner(g *formats.GOD, key corner, opts Options, withColors bool) uint32 {
	pos := g.Vertices[key.vert]
	norm := g.Normals[key.norm]
	uv := g.UVs[key.uv]

	if opts.MirrorX {
		pos = pos.MirrorX()
		norm = norm.MirrorX()
	}
	if opts.FlipV {
		uv = uv.FlipV()
	}

	pd.positions = append(pd.positions, pos.Array())
	pd.normals = append(pd.normals, norm.Array())
	pd.uvs = append(pd.uvs, uv.Array())
	if withColors {
		pd.colors = append(pd.colors, vertexColor(g.Colors[key.vert]))
	}
	return uint32(len(pd.positions) - 1)
}

// vertexColor converts a stored BGRA color to RGBA bytes.
func vertexColor(c formats.GODVertexColor) [4]uint8 {
	return [4]uint8{clampByte(c.R), clampByte(c.G), clampByte(c.B), clampByte(c.A)}
}

func clampByte(v int32) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
