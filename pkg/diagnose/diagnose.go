package diagnose

import (
	"context"
	"fmt"
	"time"

	"jobsift/pkg/config"
	"jobsift/pkg/linestream"
	"jobsift/pkg/scanner"
	"jobsift/pkg/source"
)

// finder binds a named scanner to the log kind it reads.
type finder struct {
	name  string
	globs func(*config.Config) []string
	scan  func(ctx context.Context, src linestream.Source) (*Finding, error)
}

// Finders run in this order; the first log kinds hold the most specific
// failure causes.
var finders = []finder{
	{
		name:  FinderPythonTraceback,
		globs: func(c *config.Config) []string { return c.Logs.TaskStderr },
		scan: func(ctx context.Context, src linestream.Source) (*Finding, error) {
			tb, err := scanner.FindPythonTraceback(ctx, src)
			if err != nil || tb == nil {
				return nil, err
			}
			return &Finding{Lines: tb}, nil
		},
	},
	{
		name:  FinderJavaStackTrace,
		globs: func(c *config.Config) []string { return c.Logs.TaskSyslog },
		scan: func(ctx context.Context, src linestream.Source) (*Finding, error) {
			trace, err := scanner.FindJavaStackTrace(ctx, src)
			if err != nil || trace == nil {
				return nil, err
			}
			return &Finding{Lines: trace}, nil
		},
	},
	{
		name:  FinderStreamingError,
		globs: func(c *config.Config) []string { return c.Logs.StepSyslog },
		scan: func(ctx context.Context, src linestream.Source) (*Finding, error) {
			msg, found, err := scanner.FindStreamingError(ctx, src)
			if err != nil || !found {
				return nil, err
			}
			return &Finding{Message: msg}, nil
		},
	},
	{
		name:  FinderMapperInput,
		globs: func(c *config.Config) []string { return c.Logs.TaskSyslog },
		scan: func(ctx context.Context, src linestream.Source) (*Finding, error) {
			uri, found, err := scanner.FindMapperInput(ctx, src)
			if err != nil || !found {
				return nil, err
			}
			return &Finding{Message: uri}, nil
		},
	},
}

// Diagnoser orchestrates the scanners over a configured log tree.
type Diagnoser struct {
	cfg     *config.Config
	baseDir string
	filter  map[string]bool // nil means all finders
}

// Option configures diagnoser behavior.
type Option func(*Diagnoser)

// WithFinderFilter limits the run to the named finders.
func WithFinderFilter(names []string) Option {
	return func(d *Diagnoser) {
		if len(names) > 0 {
			d.filter = make(map[string]bool)
			for _, n := range names {
				d.filter[n] = true
			}
		}
	}
}

// WithBaseDir overrides the configured base directory.
func WithBaseDir(dir string) Option {
	return func(d *Diagnoser) {
		d.baseDir = dir
	}
}

// NewDiagnoser creates a diagnoser from configuration.
func NewDiagnoser(cfg *config.Config, opts ...Option) (*Diagnoser, error) {
	d := &Diagnoser{
		cfg:     cfg,
		baseDir: cfg.BaseDir,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.filter != nil {
		known := make(map[string]bool, len(finders))
		for _, f := range finders {
			known[f.name] = true
		}
		for name := range d.filter {
			if !known[name] {
				return nil, fmt.Errorf("unknown finder %q", name)
			}
		}
	}

	return d, nil
}

// Run executes every enabled finder over its log kind. Within a finder the
// first file containing the signature wins; files are visited in sorted
// order so runs are deterministic. A finder coming up empty is a normal
// result, not an error.
func (d *Diagnoser) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Metadata: Metadata{
			BaseDir:   d.baseDir,
			StartTime: time.Now(),
		},
	}

	for _, f := range finders {
		if d.filter != nil && !d.filter[f.name] {
			continue
		}

		finding, err := d.runFinder(ctx, f, &result.Metadata)
		if err != nil {
			return nil, fmt.Errorf("running finder %s: %w", f.name, err)
		}
		result.Findings = append(result.Findings, finding)
	}

	result.Metadata.EndTime = time.Now()

	return result, nil
}

func (d *Diagnoser) runFinder(ctx context.Context, f finder, meta *Metadata) (*Finding, error) {
	files, err := source.ExpandGlobs(d.baseDir, f.globs(d.cfg))
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		src := source.New([]string{file})
		finding, err := f.scan(ctx, src)
		if cerr := src.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, err
		}
		meta.FilesScanned++

		if finding != nil {
			finding.Finder = f.name
			finding.Found = true
			finding.Source = file
			return finding, nil
		}
	}

	return &Finding{Finder: f.name}, nil
}
