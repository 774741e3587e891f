package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jobsift/pkg/config"
	"jobsift/pkg/diagnose"
	"jobsift/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ScanOptions holds command-line options for the scan command.
type ScanOptions struct {
	Config  string
	BaseDir string
	Finders []string
	Output  string
	Verbose bool
	Quiet   bool
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [log-dir]",
		Short: "Scan a job's retrieved logs for the failure cause",
		Long: `Scan the log tree a failed job left behind and report what killed it.

The log directory can be given as an argument, via --config, or through
the JOBSIFT_BASE_DIR environment variable. Without a config file the
standard layout is assumed (task-attempts/*/stderr, task-attempts/*/syslog,
steps/*/syslog). Compressed logs (.gz, .zst) are read transparently.

Exit codes:
  0 - At least one failure cause found
  1 - Nothing found
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file with log locations")
	cmd.Flags().StringSliceVar(&opts.Finders, "find", nil, "Run specific finder(s) only (can be repeated)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include run metadata in the output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var cfg *config.Config
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironment()
	}

	diagOpts := []diagnose.Option{}
	if len(args) == 1 {
		diagOpts = append(diagOpts, diagnose.WithBaseDir(args[0]))
	}
	if len(opts.Finders) > 0 {
		diagOpts = append(diagOpts, diagnose.WithFinderFilter(opts.Finders))
	}

	d, err := diagnose.NewDiagnoser(cfg, diagOpts...)
	if err != nil {
		return err
	}

	result, err := d.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	report := output.NewReport(result)

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if !report.HasFindings() {
		ExitCode = 1
	}

	return nil
}
