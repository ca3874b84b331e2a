package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-draw-mcp/internal/server"
)

// Build metadata, overridden with -ldflags "-X main.Version=...".
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `image-draw-mcp draws annotations onto raster images for MCP clients.

Usage:
  image-draw-mcp            serve MCP requests on stdin, reply on stdout
  image-draw-mcp --version  print build information
  image-draw-mcp --help     print this text

Coordinates are (row, col) pixels with (0, 0) at the top-left corner.
Points outside the image are rejected by draw_point; every other shape
is clipped to the image.

Tools:
  image_load, image_sample_color
  draw_point, draw_try_point, draw_line, draw_box, draw_cross, draw_shapes
  image_grid_overlay, annotate_regions, annotate_text

Environment:
  IMAGE_DRAW_MCP_LOG_LEVEL=debug  log each request to stderr
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("%s %s (built %s, commit %s)\n", server.ServerName, Version, BuildTime, GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Print(usage)
			return
		default:
			fmt.Fprintf(os.Stderr, "%s: unknown argument %q\n\n%s", server.ServerName, os.Args[1], usage)
			os.Exit(2)
		}
	}

	// Replies own stdout.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("IMAGE_DRAW_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("%s %s starting (commit %s)", server.ServerName, Version, GitCommit)
	}

	if err := server.New(server.Config{Version: Version, Debug: debug}).Run(); err != nil {
		log.Fatalf("%s: %v", server.ServerName, err)
	}
}
