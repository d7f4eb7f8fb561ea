// contour is a CLI utility for turning voxel density volumes into meshes.
package main

import (
	"fmt"
	"os"
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
	case "mesh":
		err = cmdMesh(args)
	case "demo":
		err = cmdDemo(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`contour - voxel volume contouring utility

Usage:
  contour <command> [options]

Commands:
  info <file.vxd>                 Show volume information
  mesh [flags] <file.vxd> <out.obj>
                                  Compile one chunk of a volume to OBJ
  demo [flags]                    Generate terrain, compile it in chunks
  config [path]                   Write the default config file

Flags (mesh, demo):
  -config <file>      Config file (default ./contour.yaml)
  -lod <n>            Level of detail
  -neighbors <faces>  Faces bordering a coarser LOD, e.g. "X+|Z-"
  -next-lod <src>     "downsample" or a .vxd file of the coarser volume
  -workers <n>        Parallel workers (demo)
  -chunk-size <n>     Chunk size (demo)
  -seed <n>           Terrain seed (demo)
  -out <dir>          Output directory (demo)
  -debug              Debug logging

Examples:
  contour demo -seed 7 -out ./terrain
  contour info ./terrain/volume.vxd
  contour mesh -neighbors "X+" -next-lod downsample ./terrain/volume.vxd chunk.obj`)
}
