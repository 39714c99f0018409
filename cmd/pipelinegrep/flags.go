package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// Long flag names. Single letters are rewritten to these by expandArgs.
const (
	flagIgnoreCase   = "ignore-case"
	flagLineNumber   = "line-number"
	flagPipeline     = "pipeline"
	flagPipelineOnly = "pipeline-only"
	flagFormat       = "format"
	flagConfig       = "config"
	flagColor        = "color"
	flagVerbose      = "verbose"
	flagCount        = "count"
	flagHelp         = "help"
	flagVersion      = "version"
)

// shortFlags is the whole single-letter alphabet.
var shortFlags = map[rune]string{
	'i': flagIgnoreCase,
	'n': flagLineNumber,
	'p': flagPipeline,
	'l': flagPipelineOnly,
	'f': flagFormat,
}

// valueFlags are the long flags that consume an argument.
var valueFlags = map[string]bool{
	flagFormat: true,
	flagConfig: true,
	flagColor:  true,
}

// cliOptions holds everything parsed from the command line.
type cliOptions struct {
	program  string
	patterns []string

	ignoreCase   bool
	lineNumbers  bool
	showPipeline bool
	hideLine     bool
	format       string

	config  string
	color   string
	verbose bool
	count   bool
	help    bool
	version bool

	set map[string]bool // Flags given explicitly
}

// formatSet reports whether a non-empty format was given. An empty -f
// argument falls back to the flag-driven format.
func (o *cliOptions) formatSet() bool {
	return o.set[flagFormat] && o.format != ""
}

// plainSet reports whether any flag of the plain format was given.
func (o *cliOptions) plainSet() bool {
	return o.set[flagLineNumber] || o.set[flagPipeline] || o.set[flagPipelineOnly]
}

func newFlagSet(opts *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("pipelinegrep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.BoolVar(&opts.ignoreCase, flagIgnoreCase, false, "ignore case")
	fs.BoolVar(&opts.lineNumbers, flagLineNumber, false, "number matching lines")
	fs.BoolVar(&opts.showPipeline, flagPipeline, false, "show the pipeline of each match")
	fs.BoolVar(&opts.hideLine, flagPipelineOnly, false, "show only the pipeline, not the line")
	fs.StringVar(&opts.format, flagFormat, "", "output template or format name")
	fs.StringVar(&opts.config, flagConfig, "", "config file name or path")
	fs.StringVar(&opts.color, flagColor, "", "color mode: auto, always, never")
	fs.BoolVar(&opts.verbose, flagVerbose, false, "log diagnostics to stderr")
	fs.BoolVar(&opts.count, flagCount, false, "print only the number of matching lines")
	fs.BoolVar(&opts.help, flagHelp, false, "show help")
	fs.BoolVar(&opts.version, flagVersion, false, "show version")

	return fs
}
