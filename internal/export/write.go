package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

// Write encodes doc to w as a .glb when binary is set, otherwise as .gltf
// JSON with buffers embedded as data URIs.
func Write(w io.Writer, doc *gltf.Document, binary bool) error {
	if !binary {
		for _, b := range doc.Buffers {
			if b.URI == "" {
				b.EmbeddedResource()
			}
		}
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding glTF: %w", err)
	}
	return nil
}

// WriteFile writes doc to path, creating parent directories as needed.
func WriteFile(path string, doc *gltf.Document, binary bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, doc, binary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OutputPath returns the export path for src inside dir.
func OutputPath(src, dir string, binary bool) string {
	ext := ".gltf"
	if binary {
		ext = ".glb"
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, base+ext)
}
