package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message. program is the invocation name.
func printUsage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage: %s [flags] pattern... < config.xml\n", program)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Look for patterns in a GoCD config.xml piped to stdin, then report each")
	fmt.Fprintln(w, "matching line and, optionally, the pipeline it belongs to.")
	fmt.Fprintln(w, "Quote your patterns to protect them from the shell, and escape any periods")
	fmt.Fprintln(w, "with a backslash. A line matches when any pattern matches.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags (single letters may be bundled, as in -inp):")
	fmt.Fprintln(w, "  -i, --ignore-case         Ignore case")
	fmt.Fprintln(w, "  -n, --line-number         Number matching lines")
	fmt.Fprintln(w, "  -p, --pipeline            Show the pipeline of each match")
	fmt.Fprintln(w, "  -l, --pipeline-only       Skip the matching line (forces -p)")
	fmt.Fprintln(w, "  -f, --format <fmt>        Next argument is the output format; -n, -p and -l")
	fmt.Fprintln(w, "                            are then ignored")
	fmt.Fprintln(w, "      --count               Print only the number of matching lines")
	fmt.Fprintln(w, "      --color <mode>        Color the plain format: auto, always, never")
	fmt.Fprintln(w, "      --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --verbose             Log diagnostics to stderr")
	fmt.Fprintln(w, "      --help                Show this help")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "      --                    Treat every later argument as a pattern")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats:")
	fmt.Fprintln(w, "  csv, tab and json (any case) select those formats; named formats from")
	fmt.Fprintln(w, "  the config file work the same way. Anything else is a template whose")
	fmt.Fprintln(w, "  keys go in curly braces: {pipeline}, {n}, {line}, {sline}, {eline},")
	fmt.Fprintln(w, "  {cline}. sline has no surrounding whitespace; eline escapes its quotes")
	fmt.Fprintln(w, "  with a backslash and cline doubles them. Write {{ and }} for braces.")
	fmt.Fprintln(w, "  A key may carry a width and alignment after a colon: {n:>4},")
	fmt.Fprintln(w, "  {pipeline:<20}, {sline:.40}.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PIPELINEGREP_CONFIG       Config file name or path")
	fmt.Fprintln(w, "  PIPELINEGREP_FORMAT       Default format")
	fmt.Fprintln(w, "  PIPELINEGREP_COLOR        Default color mode")
	fmt.Fprintln(w, "  PIPELINEGREP_IGNORE_CASE  Ignore case by default (true/false)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s -ni artifactcleanupprohibited -p < config.xml\n", program)
	fmt.Fprintf(w, "  %s -pin '\\bgithub.*\\.com\\b' < config.xml\n", program)
	fmt.Fprintf(w, "  %s -i 'example\\.com' fakedomain.com wassamatta.edu -f CSV < config.xml\n", program)
	fmt.Fprintf(w, "  %s 'example\\.com' -f '{pipeline}:{n}--{line}' < config.xml\n", program)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status: 0 success (even without matches), 1 no patterns, 2 usage,")
	fmt.Fprintln(w, "3 input/output, 4 input is not a pipeline config.")
}
