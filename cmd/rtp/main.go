package main

import (
	"fmt"
	"os"

	"rtp/internal/cli"
	"rtp/internal/cli/commands"
	"rtp/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "rtp",
		Short:   "Robot test suite processor",
		Long:    `A parallel processor for keyword-driven test suites. Discover, parse and statically analyze suite files: keyword resolution, embedded arguments, templates, and argument counts.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
