package main

import (
	"os"

	"github.com/sha1n/contentkit/internal/app"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "contentkit"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := app.NewRootCommand(version, programName, app.DefaultRunParams())
	rootCmd.Annotations = map[string]string{"build": build}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
