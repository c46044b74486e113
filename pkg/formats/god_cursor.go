package formats

import (
	"encoding/binary"
	"math"

	"github.com/Faultbox/godtool/pkg/encoding"
)

// GODCursor reads little-endian fields from an immutable GOD buffer.
// All seeking during a decode goes through the cursor.
type GODCursor struct {
	data []byte
	off  int
	name encoding.NameDecoder
}

// NewGODCursor creates a cursor at offset 0 that keeps name bytes as-is.
func NewGODCursor(data []byte) *GODCursor {
	return &GODCursor{data: data, name: encoding.RawDecoder}
}

// Pos returns the current offset.
func (c *GODCursor) Pos() int {
	return c.off
}

// Len returns the size of the underlying buffer.
func (c *GODCursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of unread bytes.
func (c *GODCursor) Remaining() int {
	return len(c.data) - c.off
}

// Seek moves the cursor to an absolute offset within [0, Len()].
func (c *GODCursor) Seek(off int) error {
	if off < 0 || off > len(c.data) {
		return &GODTruncatedError{Offset: off, Len: len(c.data)}
	}
	c.off = off
	return nil
}

// Read returns the next n bytes. The slice aliases the buffer.
func (c *GODCursor) Read(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.data) {
		return nil, &GODTruncatedError{Offset: c.off, Need: n, Len: len(c.data)}
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *GODCursor) Skip(n int) error {
	_, err := c.Read(n)
	return err
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (c *GODCursor) ReadInt32() (int32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadFloat32 reads a little-endian IEEE-754 float.
func (c *GODCursor) ReadFloat32() (float32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadUint16 reads a little-endian unsigned 16-bit integer.
func (c *GODCursor) ReadUint16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadString reads a length-prefixed name. The 2-byte length L counts the
// terminator, so min(GODMaxGameIdent-1, L-1) payload bytes are read and the
// terminator is left for the caller to skip. NUL padding inside the
// payload is dropped.
func (c *GODCursor) ReadString() (string, error) {
	length, err := c.ReadUint16()
	if err != nil {
		return "", err
	}

	n := min(GODMaxGameIdent-1, int(length)-1)
	if n <= 0 {
		return "", nil
	}

	b, err := c.Read(n)
	if err != nil {
		return "", err
	}
	return c.name(encoding.TrimNullBytes(b)), nil
}

// readName reads a string field followed by its 1-byte terminator.
func (c *GODCursor) readName() (string, error) {
	s, err := c.ReadString()
	if err != nil {
		return "", err
	}
	if err := c.Skip(1); err != nil {
		return "", err
	}
	return s, nil
}

func (c *GODCursor) readVec3(dst *[3]float32) error {
	for i := range dst {
		v, err := c.ReadFloat32()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (c *GODCursor) readColor(dst *GODColor) error {
	for i := range dst {
		v, err := c.ReadFloat32()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}
