package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/wippyai/abiwire/ffi"
	"github.com/wippyai/abiwire/guestmem"
	"github.com/wippyai/abiwire/manifest"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		color       = flag.String("color", "", "Colorize output (auto, always, never)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *color != "" {
		cfg.Color = *color
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ffi.SetLogger(logger.Named("ffi"))
	manifest.SetLogger(logger.Named("manifest"))
	guestmem.SetLogger(logger.Named("guestmem"))

	a := newApp(cfg, os.Stdout, cfg.UseColor(os.Stdout), logger)

	if *interactive {
		if !isTerminal(os.Stdin) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(a); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}
	if err := a.dispatch(context.Background(), flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: abidump [flags] fingerprint <type>...")
	fmt.Fprintln(os.Stderr, "       abidump [flags] encode <type> <value>")
	fmt.Fprintln(os.Stderr, "       abidump [flags] decode <type> <hex>")
	fmt.Fprintln(os.Stderr, "       abidump [flags] roundtrip <type> <value>")
	fmt.Fprintln(os.Stderr, "       abidump [flags] verify [manifest.yaml]")
	fmt.Fprintln(os.Stderr, "       abidump [flags] manifest <name> <version> <type-name>=<type>...")
	fmt.Fprintln(os.Stderr, "       abidump -i  (interactive mode)")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}
