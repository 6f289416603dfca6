package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// imageFlags holds PDF rasterization flags.
type imageFlags struct {
	dpi       int
	quality   int
	firstPage int
	lastPage  int
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	format     string
	patterns   []string
	recursive  bool
	workers    int
	timeout    string
	officePath string
	browserBin string
	image      imageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file timing and sizes")
}

// addImageFlags adds rasterization flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.IntVar(&f.dpi, "dpi", 0, "image render resolution (50-1200)")
	fs.IntVar(&f.quality, "quality", 0, "JPEG quality (1-100)")
	fs.IntVar(&f.firstPage, "first-page", 0, "first page to render")
	fs.IntVar(&f.lastPage, "last-page", 0, "last page to render")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.format, "format", "f", "", "target format: pdf, html, jpeg, png, txt")
	fs.StringSliceVarP(&f.patterns, "patterns", "p", nil, "glob patterns to match input files")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-conversion timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.officePath, "office-path", "", "LibreOffice soffice binary path")
	fs.StringVar(&f.browserBin, "browser-bin", "", "headless browser binary path")

	addCommonFlags(fs, &f.common)
	addImageFlags(fs, &f.image)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.format != "" {
		cfg.Conversion.Format = flags.format
	}
	if len(flags.patterns) > 0 {
		cfg.Input.Patterns = flags.patterns
	}
	if flags.recursive {
		cfg.Input.Recursive = true
	}
	if flags.workers > 0 {
		cfg.Conversion.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Conversion.Timeout = flags.timeout
	}
	if flags.officePath != "" {
		cfg.Office.Path = flags.officePath
	}
	if flags.browserBin != "" {
		cfg.Browser.Bin = flags.browserBin
	}
	if flags.image.dpi > 0 {
		cfg.Image.DPI = flags.image.dpi
	}
	if flags.image.quality > 0 {
		cfg.Image.Quality = flags.image.quality
	}
	if flags.image.firstPage > 0 {
		cfg.Image.FirstPage = flags.image.firstPage
	}
	if flags.image.lastPage > 0 {
		cfg.Image.LastPage = flags.image.lastPage
	}
}
