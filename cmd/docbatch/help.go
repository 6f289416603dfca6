package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docbatch <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert documents in a file or directory")
	fmt.Fprintln(w, "  formats    List supported conversion pairs")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docbatch help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docbatch convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a document or every matching document in a directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: converted)")
	fmt.Fprintln(w, "  -f, --format <s>          Target format: pdf, html, jpeg, png, txt")
	fmt.Fprintln(w, "  -p, --patterns <globs>    Input file patterns, comma-separated")
	fmt.Fprintln(w, "  -r, --recursive           Descend into subdirectories")
	fmt.Fprintln(w, "  -c, --config <path>       YAML config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --office-path <path>  LibreOffice soffice binary")
	fmt.Fprintln(w, "      --browser-bin <path>  Headless browser binary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image output (jpeg/png targets):")
	fmt.Fprintln(w, "      --dpi <n>             Render resolution (50-1200)")
	fmt.Fprintln(w, "      --quality <n>         JPEG quality (1-100)")
	fmt.Fprintln(w, "      --first-page <n>      First page to render")
	fmt.Fprintln(w, "      --last-page <n>       Last page to render")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-file timing and sizes")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "formats":
		fmt.Fprintln(env.Stdout, "Usage: docbatch formats")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List supported input extensions and their target formats.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docbatch version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docbatch help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
