package formats

import "fmt"

// GODFace is one indexed triangle. Corner j uses Verts[j], Norms[j] and UVs[j]
// against the scene's vertex, normal and UV buffers.
type GODFace struct {
	Bucket uint16    // Material group index
	Verts  [3]uint16 // Indices into GOD.Vertices
	Norms  [3]uint16 // Indices into GOD.Normals
	UVs    [3]uint16 // Indices into GOD.UVs
}

// GODIndexKind names the buffer a face index points into.
type GODIndexKind string

const (
	GODIndexBucket GODIndexKind = "bucket"
	GODIndexVertex GODIndexKind = "vertex"
	GODIndexNormal GODIndexKind = "normal"
	GODIndexUV     GODIndexKind = "uv"
)

// GODIndexError reports a face index outside its buffer.
type GODIndexError struct {
	Face   int
	Kind   GODIndexKind
	Corner int // -1 for the bucket index
	Index  int
	Limit  int
}

func (e *GODIndexError) Error() string {
	if e.Corner < 0 {
		return fmt.Sprintf("face %d: %s index %d out of range (%d)", e.Face, e.Kind, e.Index, e.Limit)
	}
	return fmt.Sprintf("face %d: %s index %d at corner %d out of range (%d)", e.Face, e.Kind, e.Index, e.Corner, e.Limit)
}

// Is lets errors.Is match ErrInvalidGODIndex.
func (e *GODIndexError) Is(target error) bool {
	return target == ErrInvalidGODIndex
}

// GODFaceDiagnostic records a face that was dropped during decoding.
type GODFaceDiagnostic struct {
	Face int   // Position of the face in the stream
	Err  error // *GODIndexError
}

func decodeGODFaces(c *GODCursor, strict bool) ([]GODFace, error) {
	count, capacity, err := readGODCount(c, 20, GODMaxTris, strict)
	if err != nil {
		return nil, withGODField(err, "faces")
	}

	faces := make([]GODFace, 0, capacity)
	for i := 0; i < count; i++ {
		var f GODFace
		if err := readGODFace(c, &f); err != nil {
			return nil, withGODField(err, fmt.Sprintf("faces[%d]", i))
		}
		faces = append(faces, f)
	}
	return faces, nil
}

func readGODFace(c *GODCursor, f *GODFace) error {
	fields := make([]*uint16, 0, 10)
	fields = append(fields, &f.Bucket)
	for _, group := range []*[3]uint16{&f.Verts, &f.Norms, &f.UVs} {
		for j := range group {
			fields = append(fields, &group[j])
		}
	}

	for _, dst := range fields {
		v, err := c.ReadUint16()
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

// checkGODFace returns the first index of face i that falls outside its buffer.
func checkGODFace(i int, f GODFace, verts, norms, uvs, buckets int) error {
	if int(f.Bucket) >= buckets {
		return &GODIndexError{Face: i, Kind: GODIndexBucket, Corner: -1, Index: int(f.Bucket), Limit: buckets}
	}

	groups := []struct {
		kind    GODIndexKind
		indices [3]uint16
		limit   int
	}{
		{GODIndexVertex, f.Verts, verts},
		{GODIndexNormal, f.Norms, norms},
		{GODIndexUV, f.UVs, uvs},
	}
	for _, g := range groups {
		for j, idx := range g.indices {
			if int(idx) >= g.limit {
				return &GODIndexError{Face: i, Kind: g.kind, Corner: j, Index: int(idx), Limit: g.limit}
			}
		}
	}
	return nil
}

// validateGODFaces drops faces with out-of-range indices. Surviving faces
// keep their relative order.
func validateGODFaces(g *GOD) {
	kept := g.Faces[:0]
	for i, f := range g.Faces {
		err := checkGODFace(i, f, len(g.Vertices), len(g.Normals), len(g.UVs), len(g.Buckets))
		if err != nil {
			g.Diagnostics = append(g.Diagnostics, GODFaceDiagnostic{Face: i, Err: err})
			continue
		}
		kept = append(kept, f)
	}
	g.Faces = kept
}
