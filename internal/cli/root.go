// Package cli provides the command-line interface for jobsift.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobsift/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jobsift",
		Short: "Extract failure causes from batch job logs",
		Long: `jobsift digs the interesting parts out of the logs a failed
Hadoop streaming job leaves behind.

It locates:
  - Python tracebacks in task stderr
  - Java stack traces following task-tracker child errors
  - Interesting streaming driver errors (skipping "Job not Successful!")
  - The first input URI a mapper opened

It also understands the reporter:counter / reporter:status protocol that
tasks emit on stderr, accumulating counters across log chunks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewCountersCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
