// Command string-mcp runs the STRING database bridge. With no arguments
// (or "serve") it speaks the Model Context Protocol over stdio; the
// remaining subcommands call the STRING API directly:
//
//	string-mcp serve                     Run the stdio MCP server
//	string-mcp map <identifiers...>      Map identifiers to STRING IDs
//	string-mcp network <identifiers...>  Fetch interaction edges
//	string-mcp image <identifiers...>    Render the network image to a file
//	string-mcp demo                      Run a small demo pipeline
//	string-mcp version                   Print the remote STRING version
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"string-mcp/internal/mcpserver"
	"string-mcp/internal/stringdb"
)

func main() {
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The stdio transport owns stdout; everything else goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	bridge := stringdb.New(configFromEnv(), nil)

	cmd := "serve"
	args := []string{}
	if len(os.Args) > 1 {
		cmd = os.Args[1]
		args = os.Args[2:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(logger, bridge)
	case "map":
		err = runMap(bridge, args)
	case "network":
		err = runNetwork(bridge, args)
	case "image":
		err = runImage(bridge, args)
	case "demo":
		err = runDemo(bridge, args)
	case "version":
		err = runVersion(bridge, args)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: string-mcp [command] [flags]

Commands:
  serve     Run the MCP server on stdio (default)
  map       Map protein identifiers to STRING IDs
  network   Fetch STRING interaction edges
  image     Render the interaction network to an image file
  demo      Map a sample protein set and summarize its network
  version   Print the STRING database version

Run "string-mcp <command> -h" for command flags.
`)
}

func runServe(logger *slog.Logger, bridge *stringdb.Client) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mcp server ready", "name", mcpserver.Name, "version", mcpserver.Version)
	return mcpserver.New(bridge).Run(ctx)
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// configFromEnv builds the bridge configuration from STRING_* environment
// variables, falling back to the package defaults.
func configFromEnv() stringdb.Config {
	cfg := stringdb.DefaultConfig()
	if v := os.Getenv("STRING_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("STRING_VERSION_URL"); v != "" {
		cfg.VersionURL = v
	}
	if v := os.Getenv("STRING_CALLER_IDENTITY"); v != "" {
		cfg.CallerIdentity = v
	}
	if v := os.Getenv("STRING_REQUEST_DELAY"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RequestDelay = time.Duration(secs * float64(time.Second))
		}
	}
	return cfg
}
