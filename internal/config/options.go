package config

import (
	"github.com/Faultbox/godtool/internal/export"
	"github.com/Faultbox/godtool/pkg/formats"
)

// ToGODOptions converts the decode section into decoder options.
// An empty version leaves Version zero; callers probe in that case.
func (c *Config) ToGODOptions() (formats.GODOptions, error) {
	opts := formats.GODOptions{
		DataOffset:   c.Decode.DataOffset,
		Encoding:     c.Decode.Encoding,
		StrictLimits: c.Decode.StrictLimits,
	}
	if c.Decode.Version == "" {
		return opts, nil
	}

	v, err := formats.ParseGODVersion(c.Decode.Version)
	if err != nil {
		return opts, err
	}
	opts.Version = v
	return opts, nil
}

// ToExportOptions converts the export section into glTF builder options.
func (c *Config) ToExportOptions() export.Options {
	return export.Options{
		MirrorX:        c.Export.MirrorX,
		FlipV:          c.Export.FlipV,
		RotateXDegrees: c.Export.RotateXDegrees,
		TextureDir:     c.Export.TextureDir,
	}
}
