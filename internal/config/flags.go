package config

import (
	"flag"
	"strconv"
)

// Flags holds command-line overrides. Zero values leave the loaded config
// untouched.
type Flags struct {
	Config     string
	Debug      bool
	Version    string
	DataOffset *int // nil leaves the configured offset
	Encoding   string
	Strict     bool
	OutputDir  string
	Binary     bool
	NoMirror   bool
	TextureDir string
	Workers    int
}

// Register binds the flags to a subcommand's flag set.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Version, "version", "", "GOD version (1-13, empty to probe)")
	fs.Func("offset", "Scene data offset in bytes (default from config, 52)", func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		f.DataOffset = &n
		return nil
	})
	fs.StringVar(&f.Encoding, "encoding", "", "Code page for names (e.g. \"Windows 1252\")")
	fs.BoolVar(&f.Strict, "strict", false, "Reject counts above the format limits")
	fs.StringVar(&f.OutputDir, "o", "", "Output directory")
	fs.BoolVar(&f.Binary, "binary", false, "Write .glb instead of .gltf")
	fs.BoolVar(&f.NoMirror, "no-mirror", false, "Keep the source handedness")
	fs.StringVar(&f.TextureDir, "textures", "", "Directory prefix for texture URIs")
	fs.IntVar(&f.Workers, "j", 0, "Number of parallel workers")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Version != "" {
		cfg.Decode.Version = f.Version
	}
	if f.DataOffset != nil {
		cfg.Decode.DataOffset = *f.DataOffset
	}
	if f.Encoding != "" {
		cfg.Decode.Encoding = f.Encoding
	}
	if f.Strict {
		cfg.Decode.StrictLimits = true
	}
	if f.OutputDir != "" {
		cfg.Export.OutputDir = f.OutputDir
	}
	if f.Binary {
		cfg.Export.Binary = true
	}
	if f.NoMirror {
		cfg.Export.MirrorX = false
	}
	if f.TextureDir != "" {
		cfg.Export.TextureDir = f.TextureDir
	}
	if f.Workers > 0 {
		cfg.Batch.Workers = f.Workers
	}
}
