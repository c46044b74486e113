// Package formats provides parsers for GOD (MeshRoot) scene files.
//
// A GOD file carries no version marker. Callers pass the version in
// GODOptions, or use ProbeGODVersions to list the versions under which a
// buffer decodes cleanly.
package formats
