// Package config handles godtool configuration loading and management.
package config

import "github.com/Faultbox/godtool/pkg/formats"

// Config holds all tool settings.
type Config struct {
	Decode  DecodeConfig  `yaml:"decode"`
	Export  ExportConfig  `yaml:"export"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// DecodeConfig holds GOD decoder settings.
type DecodeConfig struct {
	Version      string `yaml:"version"`     // Empty means probe
	DataOffset   int    `yaml:"data_offset"` // Start of the scene header
	Encoding     string `yaml:"encoding"`    // Code page for names, empty keeps raw bytes
	StrictLimits bool   `yaml:"strict_limits"`
}

// ExportConfig holds glTF export settings.
type ExportConfig struct {
	OutputDir      string  `yaml:"output_dir"`
	Binary         bool    `yaml:"binary"` // .glb instead of .gltf
	MirrorX        bool    `yaml:"mirror_x"`
	FlipV          bool    `yaml:"flip_v"`
	RotateXDegrees float32 `yaml:"rotate_x_degrees"`
	TextureDir     string  `yaml:"texture_dir"` // Prefix for texture URIs
}

// BatchConfig holds worker pool settings.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 uses runtime.NumCPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			DataOffset: formats.GODDefaultDataOffset,
		},
		Export: ExportConfig{
			OutputDir:      ".",
			MirrorX:        true,
			FlipV:          true,
			RotateXDegrees: 90,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
