package export

import (
	"fmt"
	"net/url"
	"path"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/godtool/pkg/encoding"
	"github.com/Faultbox/godtool/pkg/formats"
)

// Alpha cutoff used for MASK materials.
const alphaCutoff = 0.5

// materialBuilder appends materials and shares texture entries between
// buckets that reference the same file.
type materialBuilder struct {
	doc        *gltf.Document
	textureDir string
	sampler    *uint32
	textures   map[string]uint32
}

func newMaterialBuilder(doc *gltf.Document, textureDir string) *materialBuilder {
	return &materialBuilder{
		doc:        doc,
		textureDir: textureDir,
		textures:   make(map[string]uint32),
	}
}

// add appends the material of bucket b and returns its index.
func (mb *materialBuilder) add(b *formats.GODBucket, index int) uint32 {
	cutoff := float32(alphaCutoff)
	mat := &gltf.Material{
		Name:        fmt.Sprintf("bucket%d", index),
		AlphaMode:   gltf.AlphaMask,
		AlphaCutoff: &cutoff,
	}

	m := b.Material
	if m == nil {
		white := [4]float32{1, 1, 1, 1}
		mat.PBRMetallicRoughness = &gltf.PBRMetallicRoughness{BaseColorFactor: &white}
		return mb.append(mat)
	}

	if m.Name != "" {
		mat.Name = m.Name
	}
	diffuse := [4]float32(m.Diffuse)
	mat.PBRMetallicRoughness = &gltf.PBRMetallicRoughness{BaseColorFactor: &diffuse}
	mat.EmissiveFactor = [3]float32{clampUnit(m.Emissive[0]), clampUnit(m.Emissive[1]), clampUnit(m.Emissive[2])}
	mat.Extras = map[string]any{
		"specular":      m.Specular,
		"specularPower": m.SpecularPower,
		"ambient":       m.Ambient,
		"teamColor":     m.TeamColor,
		"envMap":        m.EnvMap,
		"overlay":       m.Overlay,
	}

	if name := m.TextureName(); name != "" {
		mat.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: mb.texture(name)}
	}

	return mb.append(mat)
}

func (mb *materialBuilder) append(mat *gltf.Material) uint32 {
	mb.doc.Materials = append(mb.doc.Materials, mat)
	return uint32(len(mb.doc.Materials) - 1)
}

// texture returns the texture index for a stored texture name, adding the
// image on first use. The image is referenced by URI only.
func (mb *materialBuilder) texture(name string) uint32 {
	if idx, ok := mb.textures[name]; ok {
		return idx
	}

	if mb.sampler == nil {
		mb.doc.Samplers = append(mb.doc.Samplers, &gltf.Sampler{
			MagFilter: gltf.MagLinear,
			MinFilter: gltf.MinLinear,
			WrapS:     gltf.WrapRepeat,
			WrapT:     gltf.WrapRepeat,
		})
		mb.sampler = gltf.Index(uint32(len(mb.doc.Samplers) - 1))
	}

	mb.doc.Images = append(mb.doc.Images, &gltf.Image{
		Name: name,
		URI:  TextureURI(mb.textureDir, name),
	})
	mb.doc.Textures = append(mb.doc.Textures, &gltf.Texture{
		Name:    name,
		Sampler: mb.sampler,
		Source:  gltf.Index(uint32(len(mb.doc.Images) - 1)),
	})

	idx := uint32(len(mb.doc.Textures) - 1)
	mb.textures[name] = idx
	return idx
}

// TextureURI builds a relative, escaped image URI for a stored texture name.
func TextureURI(dir, name string) string {
	p := encoding.NormalizeTexturePath(name)
	if dir != "" {
		p = path.Join(encoding.NormalizeTexturePath(dir), p)
	}
	return (&url.URL{Path: p}).String()
}

func clampUnit(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
