// Package encoding provides text decoding for names stored in GOD files.
package encoding

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Raw is the encoding name for names kept byte-for-byte.
const Raw = ""

// NameDecoder converts raw name bytes into a Go string.
type NameDecoder func(data []byte) string

// RawDecoder returns the bytes unchanged as a string.
func RawDecoder(data []byte) string {
	return string(data)
}

// NewNameDecoder returns a decoder for the named single-byte code page
// (for example "Windows 1252"). An empty name selects RawDecoder.
func NewNameDecoder(name string) (NameDecoder, error) {
	if name == Raw {
		return RawDecoder, nil
	}

	cm := lookup(name)
	if cm == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}

	return func(data []byte) string {
		result, _, err := transform.Bytes(cm.NewDecoder(), data)
		if err != nil {
			// Return as-is if decoding fails
			return string(data)
		}
		return string(result)
	}, nil
}

// ListEncodings returns the names accepted by NewNameDecoder.
func ListEncodings() []string {
	list := make([]string, 0, len(charmap.All))
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			list = append(list, cm.String())
		}
	}
	return list
}

func lookup(name string) *charmap.Charmap {
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if strings.EqualFold(cm.String(), name) {
				return cm
			}
		}
	}
	return nil
}

// TrimNullBytes removes trailing null bytes from a byte slice.
func TrimNullBytes(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}

// NormalizeTexturePath converts a stored texture name to a forward-slash path.
func NormalizeTexturePath(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}
