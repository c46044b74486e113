// godtool is a CLI utility for inspecting and converting GOD scene files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/godtool/internal/config"
	"github.com/Faultbox/godtool/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "dump":
		err = cmdDump(args)
	case "export", "x":
		err = cmdExport(args)
	case "probe":
		err = cmdProbe(args)
	case "versions":
		err = cmdVersions(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`godtool - GOD (MeshRoot) scene utility

Usage:
  godtool <command> [options] <args>

Commands:
  info [options] <file.god>            Show header, counts and buckets
  dump [options] <file.god>            Dump the decoded scene structure
  export [options] <file.god>...       Convert scenes to glTF (.gltf/.glb)
  probe [options] <file.god>...        List versions a file decodes under
  versions                             List supported versions and field layouts
  config [-save] [options]             Print the effective config, or save it

Options:
  -version N      GOD version (1-13, no 4); probed when omitted
  -offset N       Scene data offset in bytes (default 52)
  -encoding NAME  Code page for names, e.g. "Windows 1252"
  -strict         Reject counts above the format limits
  -o DIR          Export output directory
  -binary         Export .glb instead of .gltf
  -j N            Parallel export workers
  -config PATH    Config file (default ./godtool.yaml)
  -debug          Enable debug logging

Examples:
  godtool info -version 13 tank.god
  godtool dump -part buckets tank.god
  godtool export -binary -o out/ models/*.god
  godtool probe unknown.god`)
}

// errUsage marks a command line that did not match the command's usage.
var errUsage = errors.New("usage")

// setup parses a subcommand's arguments, loads the configuration and
// initializes logging.
func setup(fs *flag.FlagSet, args []string, minArgs int, usage string) (*config.Config, error) {
	var flags config.Flags
	flags.Register(fs)
	fs.Parse(args)

	if fs.NArg() < minArgs {
		return nil, fmt.Errorf("%w: godtool %s", errUsage, usage)
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("command", fs.Name()),
		zap.String("file", flags.Config),
		zap.String("version", cfg.Decode.Version),
		zap.Int("offset", cfg.Decode.DataOffset))
	return cfg, nil
}
