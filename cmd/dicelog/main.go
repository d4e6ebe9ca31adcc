package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doeshing/dicelog/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A .env file in the working directory may carry DICELOG_* overrides.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := cli.Options{Verbose: isVerbose(os.Args[1:])}

	root, cleanup := cli.NewRootCmd(ctx, opts)
	defer cleanup()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func isVerbose(args []string) bool {
	if v := os.Getenv("DICELOG_DEBUG"); strings.EqualFold(v, "1") || strings.EqualFold(v, "true") {
		return true
	}
	for _, arg := range args {
		if arg == "--verbose" || arg == "-v" {
			return true
		}
	}
	return false
}
