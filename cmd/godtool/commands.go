package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Faultbox/godtool/internal/batch"
	"github.com/Faultbox/godtool/internal/config"
	"github.com/Faultbox/godtool/internal/export"
	"github.com/Faultbox/godtool/internal/logger"
	"github.com/Faultbox/godtool/pkg/formats"
)

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfg, err := setup(fs, args, 1, "info [options] <file.god>")
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	g, err := decodeFile(cfg, path)
	if err != nil {
		return err
	}

	printInfo(os.Stdout, path, g)
	return nil
}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	part := fs.String("part", "", "Dump only one part: header, vertices, normals, uvs, colors, faces, buckets, diagnostics")
	cfg, err := setup(fs, args, 1, "dump [options] <file.god>")
	if err != nil {
		return err
	}

	g, err := decodeFile(cfg, fs.Arg(0))
	if err != nil {
		return err
	}

	return dumpScene(os.Stdout, g, *part)
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfg, err := setup(fs, args, 1, "export [options] <file.god>...")
	if err != nil {
		return err
	}

	files := fs.Args()
	log := logger.Named("export")

	results := batch.Run(files, cfg.Batch.Workers, log, func(path string) error {
		out, err := exportFile(cfg, path)
		if err != nil {
			return err
		}
		log.Info("exported", zap.String("file", path), zap.String("output", out))
		return nil
	})

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", r.Path, r.Err)
		}
	}

	failed := batch.Failed(results)
	fmt.Printf("Exported %d/%d files to %s\n", len(results)-failed, len(results), cfg.Export.OutputDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(results))
	}
	return nil
}

func cmdProbe(args []string) error {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	cfg, err := setup(fs, args, 1, "probe [options] <file.god>...")
	if err != nil {
		return err
	}

	opts, err := cfg.ToGODOptions()
	if err != nil {
		return err
	}

	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: %s\n", path, formatVersions(formats.ProbeGODVersions(data, opts)))
	}
	return nil
}

func cmdVersions(args []string) error {
	fs := flag.NewFlagSet("versions", flag.ExitOnError)
	if _, err := setup(fs, args, 0, "versions"); err != nil {
		return err
	}

	printVersions(os.Stdout)
	return nil
}

// decodeFile reads and decodes one file. Without a configured version the
// file is probed and the latest matching version wins.
func decodeFile(cfg *config.Config, path string) (*formats.GOD, error) {
	opts, err := cfg.ToGODOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger.Named("formats").With(zap.String("file", filepath.Base(path)))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if opts.Version == 0 {
		opts.Version, err = pickVersion(data, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	g, err := formats.ParseGOD(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func pickVersion(data []byte, opts formats.GODOptions) (formats.GODVersion, error) {
	matches := formats.ProbeGODVersions(data, opts)
	switch len(matches) {
	case 0:
		return 0, errors.New("no supported version decodes this file, pass -version")
	case 1:
		return matches[0], nil
	}

	v := matches[len(matches)-1]
	opts.Logger.Warn("several versions match, using the latest",
		zap.String("candidates", formatVersions(matches)),
		zap.Stringer("version", v))
	return v, nil
}

func exportFile(cfg *config.Config, path string) (string, error) {
	g, err := decodeFile(cfg, path)
	if err != nil {
		return "", err
	}

	opts := cfg.ToExportOptions()
	outDir := cfg.Export.OutputDir
	if opts.TextureDir == "" {
		// Textures live next to the source file.
		if rel, err := filepath.Rel(outDir, filepath.Dir(path)); err == nil {
			opts.TextureDir = filepath.ToSlash(rel)
		}
	}

	doc, err := export.Build(g, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	out := export.OutputPath(path, outDir, cfg.Export.Binary)
	if err := export.WriteFile(out, doc, cfg.Export.Binary); err != nil {
		return "", err
	}
	return out, nil
}

func printInfo(w io.Writer, path string, g *formats.GOD) {
	h := g.Header

	fmt.Fprintf(w, "File:     %s\n", path)
	fmt.Fprintf(w, "Object:   %s\n", h.ObjectName)
	fmt.Fprintf(w, "Version:  %s (%s)\n", g.Version, g.Version.BlockName())
	fmt.Fprintf(w, "Radius:   %.3f\n", h.Radius)
	fmt.Fprintf(w, "Size:     %.3f x %.3f x %.3f\n", h.Width, h.Height, h.Breadth)
	fmt.Fprintf(w, "Offset:   %.3f, %.3f, %.3f\n", h.Offset.X, h.Offset.Y, h.Offset.Z)
	fmt.Fprintf(w, "Scale:    %.3f\n", h.Scale)
	fmt.Fprintf(w, "Shadow:   %s, radius %.3f\n", h.ShadowType, h.ShadowRadius)
	if g.Version > formats.GODVersion5 {
		fmt.Fprintf(w, "Tread:    %d (control %d, %.3f per meter)\n", h.HasTread, h.HasControl, h.TreadPerMeter)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Vertices: %d\n", len(g.Vertices))
	fmt.Fprintf(w, "Normals:  %d\n", len(g.Normals))
	fmt.Fprintf(w, "UVs:      %d\n", len(g.UVs))
	fmt.Fprintf(w, "Colors:   %d\n", len(g.Colors))
	fmt.Fprintf(w, "Faces:    %d\n", len(g.Faces))
	if lo, hi, ok := g.Bounds(); ok {
		fmt.Fprintf(w, "Bounds:   (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}
	fmt.Fprintln(w)

	groups := g.FacesByBucket()
	fmt.Fprintf(w, "Buckets (%d):\n", len(g.Buckets))
	for i, b := range g.Buckets {
		material := b.MaterialName()
		if b.Material == nil {
			material = "(none)"
		}
		fmt.Fprintf(w, "  [%d] %-20s faces=%-5d", i, material, len(groups[i]))
		if tex := b.TextureName(); tex != "" {
			fmt.Fprintf(w, " texture=%s", tex)
		}
		fmt.Fprintln(w)
	}

	if g.HasDiagnostics() {
		fmt.Fprintf(w, "\nDropped faces (%d):\n", len(g.Diagnostics))
		for _, d := range g.Diagnostics {
			fmt.Fprintf(w, "  %v\n", d.Err)
		}
	}
}

func dumpScene(w io.Writer, g *formats.GOD, part string) error {
	var v any
	switch strings.ToLower(part) {
	case "":
		v = g
	case "header":
		v = g.Header
	case "vertices":
		v = g.Vertices
	case "normals":
		v = g.Normals
	case "uvs":
		v = g.UVs
	case "colors":
		v = g.Colors
	case "faces":
		v = g.Faces
	case "buckets":
		v = g.Buckets
	case "diagnostics":
		v = g.Diagnostics
	default:
		return fmt.Errorf("unknown part %q", part)
	}

	spewConfig.Fdump(w, v)
	return nil
}

func printVersions(w io.Writer) {
	for _, v := range formats.GODVersions() {
		fmt.Fprintf(w, "%-3s %s\n", v, v.BlockName())
		fmt.Fprintf(w, "    header:   %s\n", strings.Join(formats.GODHeaderFields(v), ", "))
		fmt.Fprintf(w, "    material: %s\n", strings.Join(formats.GODMaterialFields(v), ", "))
	}
}

func formatVersions(versions []formats.GODVersion) string {
	if len(versions) == 0 {
		return "none"
	}
	parts := make([]string, len(versions))
	for i, v := range versions {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	cfg, err := setup(fs, args, 0, "config [-save] [options]")
	if err != nil {
		return err
	}

	if *save {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Saved %s\n", filepath.Join(config.ConfigDir(), config.FileName))
		return nil
	}

	return printConfig(os.Stdout, cfg)
}

func printConfig(w io.Writer, cfg *config.Config) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
