package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/marcopesani/design-tools/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("palette-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("palette-mcp - MCP server for image color palettes")
			fmt.Println()
			fmt.Println("Usage: palette-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PALETTE_MCP_LOG_LEVEL=debug       Enable debug logging")
			fmt.Println("  PALETTE_MCP_MAX_DIMENSION=<px>    Default working image size (800)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// stdout carries the protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.DefaultConfig()
	cfg.Version = Version
	cfg.Debug = os.Getenv("PALETTE_MCP_LOG_LEVEL") == "debug"

	if v := os.Getenv("PALETTE_MCP_MAX_DIMENSION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Fatalf("PALETTE_MCP_MAX_DIMENSION: want a positive integer, got %q", v)
		}
		cfg.MaxDimension = n
	}

	if cfg.Debug {
		log.Printf("Palette MCP Server v%s (built %s, commit %s), max dimension %d",
			Version, BuildTime, GitCommit, cfg.MaxDimension)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
