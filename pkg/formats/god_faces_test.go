package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/godtool/pkg/math"
)

func TestDecodeGODFaces(t *testing.T) {
	b := &godBuilder{}
	b.i32(2)
	b.u16(1, 0, 1, 2, 3, 4, 5, 6, 7, 8)
	b.u16(0xFFFF, 9, 10, 11, 12, 13, 14, 15, 16, 17)

	c := NewGODCursor(b.bytes())
	faces, err := decodeGODFaces(c, false)
	require.NoError(t, err)
	require.Len(t, faces, 2)
	assert.Equal(t, 4+2*20, c.Pos())

	assert.Equal(t, GODFace{
		Bucket: 1,
		Verts:  [3]uint16{0, 1, 2},
		Norms:  [3]uint16{3, 4, 5},
		UVs:    [3]uint16{6, 7, 8},
	}, faces[0])
	assert.Equal(t, uint16(65535), faces[1].Bucket)
}

func TestDecodeGODFaces_Truncated(t *testing.T) {
	b := &godBuilder{}
	b.i32(2)
	b.u16(0, 0, 1, 2, 0, 0, 0, 0, 1, 2)
	b.u16(0, 0, 1)

	_, err := decodeGODFaces(NewGODCursor(b.bytes()), false)
	require.Error(t, err)

	var te *GODTruncatedError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "faces[1]", te.Field)
}

func TestValidateGODFaces(t *testing.T) {
	bad := triangle(0)
	bad.Verts[2] = 3 // only 3 vertices

	badBucket := triangle(1) // only 1 bucket

	g := &GOD{
		Vertices: make([]math.Vec3, 3),
		Normals:  make([]math.Vec3, 1),
		UVs:      make([]math.Vec2, 3),
		Buckets:  make([]GODBucket, 1),
		Faces:    []GODFace{triangle(0), bad, triangle(0), badBucket},
	}
	g.Faces[2].Verts = [3]uint16{2, 1, 0}

	validateGODFaces(g)

	require.Len(t, g.Faces, 2)
	assert.Equal(t, [3]uint16{0, 1, 2}, g.Faces[0].Verts)
	assert.Equal(t, [3]uint16{2, 1, 0}, g.Faces[1].Verts, "order must be preserved")

	require.Len(t, g.Diagnostics, 2)
	assert.Equal(t, 1, g.Diagnostics[0].Face)
	assert.Equal(t, 3, g.Diagnostics[1].Face)

	var ie *GODIndexError
	require.True(t, errors.As(g.Diagnostics[0].Err, &ie))
	assert.Equal(t, GODIndexVertex, ie.Kind)
	assert.Equal(t, 2, ie.Corner)
	assert.Equal(t, 3, ie.Index)
	assert.Equal(t, 3, ie.Limit)
	assert.True(t, errors.Is(g.Diagnostics[0].Err, ErrInvalidGODIndex))

	require.True(t, errors.As(g.Diagnostics[1].Err, &ie))
	assert.Equal(t, GODIndexBucket, ie.Kind)
	assert.Equal(t, -1, ie.Corner)
}

func TestCheckGODFace(t *testing.T) {
	tests := []struct {
		name string
		face GODFace
		kind GODIndexKind
	}{
		{"valid", triangle(0), ""},
		{"normal", GODFace{Norms: [3]uint16{0, 1, 0}}, GODIndexNormal},
		{"uv", GODFace{UVs: [3]uint16{0, 0, 9}}, GODIndexUV},
		{"bucket", GODFace{Bucket: 2}, GODIndexBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkGODFace(0, tt.face, 3, 1, 3, 2)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			var ie *GODIndexError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.kind, ie.Kind)
		})
	}
}

func TestGODIndexError_Message(t *testing.T) {
	err := &GODIndexError{Face: 4, Kind: GODIndexUV, Corner: 1, Index: 12, Limit: 10}
	assert.Equal(t, "face 4: uv index 12 at corner 1 out of range (10)", err.Error())

	err = &GODIndexError{Face: 0, Kind: GODIndexBucket, Corner: -1, Index: 3, Limit: 1}
	assert.Equal(t, "face 0: bucket index 3 out of range (1)", err.Error())
}
