// Package cli wires the extraction and generation pipeline into commands.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "testplan",
	Version: Version,
	Short:   "Generate test plans from requirements and design documents",
	Long: `Testplan reads requirements documents, design documents, press
releases, and PDFs, extracts normalized requirements and design components,
and generates a comprehensive test plan from them.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}
