// GOD (MeshRoot) scene decoder.

package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/godtool/pkg/encoding"
	"github.com/Faultbox/godtool/pkg/math"
)

// GOD format errors.
var (
	ErrTruncatedGODData      = errors.New("truncated GOD data")
	ErrUnsupportedGODVersion = errors.New("unsupported GOD version")
	ErrInvalidGODIndex       = errors.New("invalid GOD face index")
	ErrGODCountExceedsLimit  = errors.New("GOD array count exceeds limit")
	ErrInvalidGODOffset      = errors.New("invalid GOD data offset")
)

// Format limits.
const (
	GODMaxGameIdent = 64
	GODMaxVerts     = 22000
	GODMaxTris      = 22000
	GODMaxBuckets   = 16
)

// GODDefaultDataOffset is where scene data starts in files on disk.
const GODDefaultDataOffset = 52

// GODTruncatedError reports a read past the end of the buffer.
type GODTruncatedError struct {
	Offset int    // Cursor position when the read was attempted
	Need   int    // Bytes requested
	Len    int    // Buffer length
	Field  string // Field being decoded, if known
}

func (e *GODTruncatedError) Error() string {
	msg := fmt.Sprintf("%s: need %d bytes at offset %d, buffer is %d", ErrTruncatedGODData, e.Need, e.Offset, e.Len)
	if e.Field != "" {
		msg += " (reading " + e.Field + ")"
	}
	return msg
}

// Is lets errors.Is match ErrTruncatedGODData.
func (e *GODTruncatedError) Is(target error) bool {
	return target == ErrTruncatedGODData
}

// withGODField tags a truncation error with the innermost field name.
func withGODField(err error, field string) error {
	var te *GODTruncatedError
	if errors.As(err, &te) && te.Field == "" {
		te.Field = field
	}
	return err
}

// GODOptions controls a single decode.
type GODOptions struct {
	Version      GODVersion  // Required, the file has no version marker
	DataOffset   int         // Offset of the scene header in the buffer
	Encoding     string      // Code page for names, empty keeps raw bytes
	StrictLimits bool        // Fail on counts above GODMaxVerts/GODMaxTris/GODMaxBuckets
	Logger       *zap.Logger // nil disables logging
}

// GOD represents a decoded GOD scene.
type GOD struct {
	Version  GODVersion
	Header   GODHeader
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2
	Colors   []GODVertexColor
	Faces    []GODFace
	Buckets  []GODBucket

	// Diagnostics lists faces dropped for out-of-range indices.
	Diagnostics []GODFaceDiagnostic

	// Consumed is the buffer offset just past the bucket section.
	Consumed int
}

// ParseGOD decodes a GOD scene from raw bytes.
func ParseGOD(data []byte, opts GODOptions) (*GOD, error) {
	if !opts.Version.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedGODVersion, opts.Version)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("version", opts.Version))

	names, err := encoding.NewNameDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	c := &GODCursor{data: data, name: names}
	if err := c.Seek(opts.DataOffset); err != nil {
		return nil, fmt.Errorf("%w: %d (buffer is %d bytes)", ErrInvalidGODOffset, opts.DataOffset, len(data))
	}

	g := &GOD{Version: opts.Version}

	if g.Header, err = decodeGODHeader(c, opts.Version); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}
	log.Debug("header decoded", zap.String("object", g.Header.ObjectName), zap.Int("offset", c.Pos()))

	if g.Vertices, err = decodeGODVertices(c, opts.StrictLimits); err != nil {
		return nil, fmt.Errorf("decoding vertices: %w", err)
	}
	if g.Normals, err = decodeGODNormals(c, opts.StrictLimits); err != nil {
		return nil, fmt.Errorf("decoding normals: %w", err)
	}
	if g.UVs, err = decodeGODUVs(c, opts.StrictLimits); err != nil {
		return nil, fmt.Errorf("decoding uvs: %w", err)
	}
	if g.Colors, err = decodeGODColors(c, opts.StrictLimits); err != nil {
		return nil, fmt.Errorf("decoding colors: %w", err)
	}
	log.Debug("arrays decoded",
		zap.Int("vertices", len(g.Vertices)),
		zap.Int("normals", len(g.Normals)),
		zap.Int("uvs", len(g.UVs)),
		zap.Int("colors", len(g.Colors)),
		zap.Int("offset", c.Pos()))

	if g.Faces, err = decodeGODFaces(c, opts.StrictLimits); err != nil {
		return nil, fmt.Errorf("decoding faces: %w", err)
	}
	if g.Buckets, err = decodeGODBuckets(c, opts.Version, opts.StrictLimits, log); err != nil {
		return nil, fmt.Errorf("decoding buckets: %w", err)
	}
	g.Consumed = c.Pos()
	log.Debug("buckets decoded",
		zap.Int("faces", len(g.Faces)),
		zap.Int("buckets", len(g.Buckets)),
		zap.Int("offset", g.Consumed),
		zap.Int("trailing", c.Remaining()))

	validateGODFaces(g)
	for _, d := range g.Diagnostics {
		log.Warn("dropping face", zap.Int("face", d.Face), zap.Error(d.Err))
	}

	return g, nil
}

// ParseGODFile parses a GOD file from disk.
func ParseGODFile(path string, opts GODOptions) (*GOD, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GOD file: %w", err)
	}
	return ParseGOD(data, opts)
}

// ProbeGODVersions decodes data under every supported version and returns
// those that succeed and end exactly at the end of the buffer.
// opts.Version is ignored.
func ProbeGODVersions(data []byte, opts GODOptions) []GODVersion {
	opts.Logger = nil

	var matches []GODVersion
	for _, v := range godVersions {
		opts.Version = v
		g, err := ParseGOD(data, opts)
		if err != nil || g.Consumed != len(data) {
			continue
		}
		matches = append(matches, v)
	}
	return matches
}

// TotalVertexCount returns the number of vertices in the scene.
func (g *GOD) TotalVertexCount() int {
	return len(g.Vertices)
}

// HasDiagnostics reports whether any face was dropped.
func (g *GOD) HasDiagnostics() bool {
	return len(g.Diagnostics) > 0
}

// FacesByBucket groups face positions (into g.Faces) by bucket index.
func (g *GOD) FacesByBucket() map[int][]int {
	groups := make(map[int][]int)
	for i, f := range g.Faces {
		groups[int(f.Bucket)] = append(groups[int(f.Bucket)], i)
	}
	return groups
}

// Bounds returns the axis-aligned box of all vertices.
// ok is false when the scene has no vertices.
func (g *GOD) Bounds() (lo, hi math.Vec3, ok bool) {
	if len(g.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = g.Vertices[0], g.Vertices[0]
	for _, v := range g.Vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi, true
}

// TexturedBuckets returns the indices of buckets with a texture name.
func (g *GOD) TexturedBuckets() []int {
	var out []int
	for i := range g.Buckets {
		if g.Buckets[i].TextureName() != "" {
			out = append(out, i)
		}
	}
	return out
}

// TexturePaths maps bucket index to the texture path resolved against dir,
// usually the directory of the source file. Files are not checked.
func (g *GOD) TexturePaths(dir string) map[int]string {
	paths := make(map[int]string)
	for _, i := range g.TexturedBuckets() {
		name := encoding.NormalizeTexturePath(g.Buckets[i].TextureName())
		paths[i] = filepath.Join(dir, filepath.FromSlash(name))
	}
	return paths
}
