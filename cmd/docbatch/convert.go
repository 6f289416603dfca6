package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	docbatch "github.com/avelar/go-docbatch"
	"github.com/avelar/go-docbatch/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// runConvert orchestrates a batch conversion from flags and config.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfgPath := flags.common.config
	if cfgPath == "" {
		cfgPath = envCfg.ConfigPath
	}

	cfg := DefaultConfig()
	if cfgPath != "" {
		var err error
		cfg, err = LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	opts, err := converterOptions(cfg)
	if err != nil {
		return err
	}

	proc, err := docbatch.NewProcessor(resolveWorkers(cfg.Conversion.Workers), opts...)
	if err != nil {
		return err
	}
	defer func() { _ = proc.Close() }()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", proc.MaxWorkers())
	}

	progress := newProgressPrinter(env.Stdout, flags.common.quiet)

	summary, err := convertInput(ctx, proc, inputPath, cfg, progress.update)
	progress.finish()
	if err != nil {
		return err
	}

	failed := printSummary(summary, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// convertInput dispatches to directory or single-file conversion based on
// what the input path is.
func convertInput(ctx context.Context, proc *docbatch.Processor, inputPath string, cfg *Config, onProgress docbatch.ProgressFunc) (*docbatch.Summary, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("input not found: %w", err)
	}

	if info.IsDir() {
		return proc.ConvertDirectory(ctx, inputPath, cfg.Output.DefaultDir, cfg.Conversion.Format, docbatch.BatchOptions{
			Patterns:   cfg.Input.Patterns,
			Recursive:  cfg.Input.Recursive,
			OnProgress: onProgress,
		})
	}

	return proc.ConvertFileList(ctx, []string{inputPath}, cfg.Output.DefaultDir, cfg.Conversion.Format, onProgress)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveWorkers maps an unset worker count to a pool size derived from
// available CPUs. Explicit values, including invalid negatives, pass through
// for the library to validate.
func resolveWorkers(workers int) int {
	if workers == 0 {
		return docbatch.ResolvePoolSize(workers)
	}
	return workers
}

// converterOptions builds library options from the merged config.
func converterOptions(cfg *Config) ([]docbatch.Option, error) {
	var opts []docbatch.Option

	if cfg.Conversion.Timeout != "" {
		d, err := time.ParseDuration(cfg.Conversion.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, cfg.Conversion.Timeout)
		}
		opts = append(opts, docbatch.WithTimeout(d))
	}
	if cfg.Office.Path != "" {
		opts = append(opts, docbatch.WithOfficePath(cfg.Office.Path))
	}
	if cfg.Browser.Bin != "" {
		opts = append(opts, docbatch.WithBrowserBin(cfg.Browser.Bin))
	}

	img := docbatch.DefaultImageOptions()
	if cfg.Image.Format != "" {
		img.Format = cfg.Image.Format
	}
	if cfg.Image.DPI > 0 {
		img.DPI = cfg.Image.DPI
	}
	if cfg.Image.Quality > 0 {
		img.Quality = cfg.Image.Quality
	}
	img.FirstPage = cfg.Image.FirstPage
	img.LastPage = cfg.Image.LastPage
	if err := img.Validate(); err != nil {
		return nil, err
	}
	opts = append(opts, docbatch.WithImageOptions(img))

	return opts, nil
}

// progressPrinter renders a single rewriting progress line. The library
// serializes progress callbacks, so no locking is needed here.
type progressPrinter struct {
	w       io.Writer
	quiet   bool
	printed bool
}

func newProgressPrinter(w io.Writer, quiet bool) *progressPrinter {
	return &progressPrinter{w: w, quiet: quiet}
}

// update is a docbatch.ProgressFunc.
func (p *progressPrinter) update(completed, total int, filename string) {
	if p.quiet || total == 0 {
		return
	}
	pct := float64(completed) / float64(total) * 100
	fmt.Fprintf(p.w, "\rProgress: %d/%d (%.0f%%) - %s", completed, total, pct, filename)
	p.printed = true
}

// finish terminates the progress line so later output starts on a fresh line.
func (p *progressPrinter) finish() {
	if p.printed {
		fmt.Fprintln(p.w)
	}
}

// printSummary outputs batch results and returns the failure count.
func printSummary(s *docbatch.Summary, quiet, verbose bool, env *Environment) int {
	for _, skipped := range s.Skipped {
		fmt.Fprintf(env.Stderr, "SKIPPED %s: file not found\n", skipped)
	}

	for _, fe := range s.Errors {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", fe.File, fe.Err)
	}

	if !quiet {
		for _, r := range s.Results {
			printResult(r, verbose, env.Stdout)
		}
		if s.TotalFiles > 1 {
			fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", s.Successful, s.Failed)
		}
	}

	return s.Failed
}

// printResult outputs one successful conversion.
func printResult(r docbatch.Result, verbose bool, w io.Writer) {
	if !verbose {
		for _, out := range r.OutputPaths {
			fmt.Fprintf(w, "Created %s\n", out)
		}
		return
	}

	for _, out := range r.OutputPaths {
		size := "?"
		if info, err := os.Stat(out); err == nil {
			size = fileutil.FormatSize(info.Size())
		}
		fmt.Fprintf(w, "%s -> %s (%v, %s)\n", r.InputPath, out, r.Duration.Round(time.Millisecond), size)
	}
}
