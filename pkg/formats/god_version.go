package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// GODVersion is the MeshRoot revision a GOD file was written with.
// The file carries no version marker, so the caller has to supply it.
type GODVersion uint8

// Supported GOD versions. Version 4 was never used.
const (
	GODVersion1  GODVersion = 1
	GODVersion2  GODVersion = 2
	GODVersion3  GODVersion = 3
	GODVersion5  GODVersion = 5
	GODVersion6  GODVersion = 6
	GODVersion7  GODVersion = 7
	GODVersion8  GODVersion = 8
	GODVersion9  GODVersion = 9
	GODVersion10 GODVersion = 10
	GODVersion11 GODVersion = 11
	GODVersion12 GODVersion = 12
	GODVersion13 GODVersion = 13
)

var godVersions = []GODVersion{
	GODVersion1, GODVersion2, GODVersion3, GODVersion5, GODVersion6, GODVersion7,
	GODVersion8, GODVersion9, GODVersion10, GODVersion11, GODVersion12, GODVersion13,
}

// GODVersions returns all supported versions in ascending order.
func GODVersions() []GODVersion {
	out := make([]GODVersion, len(godVersions))
	copy(out, godVersions)
	return out
}

// Valid reports whether v is one of the supported versions.
func (v GODVersion) Valid() bool {
	for _, known := range godVersions {
		if v == known {
			return true
		}
	}
	return false
}

// String returns the version number.
func (v GODVersion) String() string {
	return strconv.Itoa(int(v))
}

// BlockName returns the MeshRoot block key for the version, e.g. "MeshRootBlock13".
func (v GODVersion) BlockName() string {
	return "MeshRootBlock" + v.String()
}

// ParseGODVersion parses "13", "v13" or "MeshRootBlock13".
func ParseGODVersion(s string) (GODVersion, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "MeshRootBlock")
	t = strings.TrimPrefix(strings.ToLower(t), "v")

	n, err := strconv.Atoi(t)
	if err != nil || n < 0 || n > 255 {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedGODVersion, s)
	}

	v := GODVersion(n)
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedGODVersion, s)
	}
	return v, nil
}

// GODVersionPredicate selects the versions a field is present in.
type GODVersionPredicate func(v GODVersion) bool

// GODAlways matches every version.
func GODAlways(GODVersion) bool { return true }

// GODAfter matches versions strictly greater than n.
func GODAfter(n GODVersion) GODVersionPredicate {
	return func(v GODVersion) bool { return v > n }
}

// GODOnly matches exactly version n.
func GODOnly(n GODVersion) GODVersionPredicate {
	return func(v GODVersion) bool { return v == n }
}

// GODBetween matches lo < v < hi.
func GODBetween(lo, hi GODVersion) GODVersionPredicate {
	return func(v GODVersion) bool { return v > lo && v < hi }
}

// GODStep decodes one positional field group into T.
type GODStep[T any] struct {
	Name   string
	When   GODVersionPredicate
	Decode func(c *GODCursor, dst *T) error
}

// GODPolicy is an ordered list of steps. Field presence is positional in the
// stream, so the order must never change.
type GODPolicy[T any] []GODStep[T]

// Apply runs every step whose predicate matches v, in order.
// A failing step's truncation error is tagged with prefix.step.
func (p GODPolicy[T]) Apply(c *GODCursor, v GODVersion, prefix string, dst *T) error {
	for _, step := range p {
		if !step.When(v) {
			continue
		}
		if err := step.Decode(c, dst); err != nil {
			return withGODField(err, prefix+"."+step.Name)
		}
	}
	return nil
}

// Fields returns the names of the steps active for v, in stream order.
func (p GODPolicy[T]) Fields(v GODVersion) []string {
	var names []string
	for _, step := range p {
		if step.When(v) {
			names = append(names, step.Name)
		}
	}
	return names
}
