package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jobsift/pkg/reporter"
	"jobsift/pkg/source"
)

// CountersOptions holds command-line options for the counters command.
type CountersOptions struct {
	Output string
}

// NewCountersCommand creates the counters command.
func NewCountersCommand() *cobra.Command {
	opts := &CountersOptions{}

	cmd := &cobra.Command{
		Use:   "counters [stderr-file...]",
		Short: "Parse reporter directives out of task stderr",
		Long: `Parse reporter:counter and reporter:status directives from the stderr
of one or more task attempts, accumulating counter totals across all
inputs. With no files, reads from stdin. Lines that aren't well-formed
directives are passed through untouched in the output's "other" list.

Compressed files (.gz, .zst) are read transparently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounters(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "json", "Output format (json|yaml|text)")

	return cmd
}

func runCounters(cmd *cobra.Command, args []string, opts *CountersOptions) error {
	res, err := collectReporterOutput(cmd, args)
	if err != nil {
		return err
	}
	return writeReporterResult(cmd.OutOrStdout(), res, opts.Output)
}

func collectReporterOutput(cmd *cobra.Command, args []string) (*reporter.Result, error) {
	if len(args) == 0 {
		// Live stream: defer partial trailing lines until more arrives.
		p := reporter.NewChunkParser(nil)
		if _, err := io.Copy(p, cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		p.Flush()
		return p.Result(), nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	src := source.New(args)
	defer src.Close()

	res, err := reporter.Parse(ctx, src, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing reporter output: %w", err)
	}
	return res, nil
}

func writeReporterResult(w io.Writer, res *reporter.Result, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(res)
	case "text":
		return writeReporterText(w, res)
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml, or text)", format)
	}
}

func writeReporterText(w io.Writer, res *reporter.Result) error {
	groups := make([]string, 0, len(res.Counters))
	for group := range res.Counters {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		names := make([]string, 0, len(res.Counters[group]))
		for name := range res.Counters[group] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "counter\t%s\t%s\t%d\n", group, name, res.Counters[group][name])
		}
	}
	for _, status := range res.Statuses {
		fmt.Fprintf(w, "status\t%s\n", status)
	}
	for _, line := range res.Other {
		fmt.Fprintf(w, "other\t%s", line)
		if len(line) == 0 || line[len(line)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
	return nil
}
