package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	pipelinegrep "github.com/alnah/go-pipelinegrep"
	"github.com/alnah/go-pipelinegrep/internal/config"
	"github.com/alnah/go-pipelinegrep/internal/highlight"
	"github.com/alnah/go-pipelinegrep/internal/hints"
)

// runMain parses args, runs the search and returns the process exit code.
// Nothing is written to stdout when an error is detected before scanning.
func runMain(ctx context.Context, args []string, env *Environment) int {
	opts, err := parseArgs(args)
	if err != nil {
		return fail(env.Stderr, opts.program, err)
	}

	if opts.help {
		printUsage(env.Stdout, opts.program)
		return ExitSuccess
	}
	if opts.version {
		fmt.Fprintf(env.Stdout, "pipelinegrep %s\n", Version)
		return ExitSuccess
	}
	if len(opts.patterns) == 0 {
		err := fmt.Errorf("%w on command line", pipelinegrep.ErrNoPatterns)
		return fail(env.Stderr, opts.program, err)
	}

	if err := run(ctx, opts, env); err != nil {
		return fail(env.Stderr, opts.program, err)
	}
	return ExitSuccess
}

// fail reports err on w and returns its exit code.
func fail(w io.Writer, program string, err error) int {
	if isUsageError(err) {
		fmt.Fprintf(w, "%s: ERROR: %v\n\n", program, err)
		printUsage(w, program)
	} else {
		fmt.Fprintf(w, "%s: ERROR: %v\n", program, err)
	}
	return exitCodeFor(err)
}

// settings are the effective choices after merging flags, env and config.
type settings struct {
	ignoreCase bool
	format     pipelinegrep.Format
	color      highlight.Mode
	markers    pipelinegrep.Markers
}

// run loads configuration, resolves the output format and scans stdin.
func run(ctx context.Context, opts *cliOptions, env *Environment) error {
	logger := newLogger(env.Stderr, opts.verbose)
	warnUnknownEnvVars(logger, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	cfg, err := loadConfig(opts, envCfg, logger)
	if err != nil {
		return withHint(err, pipelinegrep.DefaultMarkers())
	}
	applyEnvConfig(envCfg, cfg)

	s, err := mergeFlags(opts, cfg)
	if err != nil {
		return withHint(err, s.markers)
	}

	renderer, err := resolveRenderer(s, env.Stdout, env.Getenv)
	if err != nil {
		return withHint(err, s.markers)
	}
	logger.Info("format resolved", "kind", s.format.Kind().String(), "template", s.format.Source())

	g, err := pipelinegrep.NewGrep(opts.patterns,
		pipelinegrep.WithIgnoreCase(s.ignoreCase),
		pipelinegrep.WithMarkers(s.markers),
		pipelinegrep.WithRenderer(renderer),
		pipelinegrep.WithLogger(logger),
	)
	if err != nil {
		return withHint(err, s.markers)
	}

	if opts.count {
		err = runCount(ctx, g, env)
	} else {
		_, err = g.Run(ctx, env.Stdin, env.Stdout)
	}
	return withHint(err, s.markers)
}

// runCount prints the number of matching lines instead of the matches.
func runCount(ctx context.Context, g *pipelinegrep.Grep, env *Environment) error {
	lines, err := pipelinegrep.ReadLines(env.Stdin)
	if err != nil {
		return err
	}
	stats, err := g.Scan(ctx, lines, func(pipelinegrep.Match) error { return nil })
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(env.Stdout, stats.Matches); err != nil {
		return fmt.Errorf("%w: %v", pipelinegrep.ErrWriteOutput, err)
	}
	return nil
}

// loadConfig loads the config named by --config, else PIPELINEGREP_CONFIG.
// Without either, defaults are used and no file is searched.
func loadConfig(opts *cliOptions, env *envConfig, logger *slog.Logger) (*config.Config, error) {
	name := opts.config
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, err
	}
	logger.Info("config loaded", "config", name, "formats", len(cfg.Formats))
	return cfg, nil
}

// mergeFlags applies explicit flags over the config defaults.
// A format given with -f wins; otherwise any of -n, -p or -l selects the
// plain format; otherwise the configured default format, if any, is used.
func mergeFlags(opts *cliOptions, cfg *config.Config) (*settings, error) {
	s := &settings{
		ignoreCase: cfg.Defaults.IgnoreCase,
		markers:    cfg.ToMarkers(),
	}
	if opts.set[flagIgnoreCase] {
		s.ignoreCase = opts.ignoreCase
	}

	plain := pipelinegrep.PlainOptions{
		LineNumbers:  cfg.Defaults.LineNumbers,
		ShowPipeline: cfg.Defaults.ShowPipeline,
		HideLine:     cfg.Defaults.HideLine,
	}
	if opts.set[flagLineNumber] {
		plain.LineNumbers = opts.lineNumbers
	}
	if opts.set[flagPipeline] {
		plain.ShowPipeline = opts.showPipeline
	}
	if opts.set[flagPipelineOnly] {
		plain.HideLine = opts.hideLine
	}

	switch {
	case opts.formatSet():
		s.format = pipelinegrep.ParseFormat(opts.format, cfg.Formats)
	case opts.plainSet() || cfg.Defaults.Format == "":
		s.format = pipelinegrep.SynthesizedFormat(plain)
	default:
		s.format = pipelinegrep.ParseFormat(cfg.Defaults.Format, cfg.Formats)
	}

	color := cfg.Color
	if opts.set[flagColor] {
		color = opts.color
	}
	mode, err := highlight.ParseMode(color)
	if err != nil {
		return s, err
	}
	s.color = mode

	return s, nil
}

// resolveRenderer parses the format once. Only the plain format is colored.
func resolveRenderer(s *settings, stdout io.Writer, getenv func(string) string) (pipelinegrep.Renderer, error) {
	tmpl, err := s.format.Template()
	if err != nil {
		return nil, err
	}
	if s.format.Kind() == pipelinegrep.FormatSynthesized && highlight.Enabled(s.color, stdout, getenv) {
		return highlight.NewRenderer(s.format.Plain()), nil
	}
	return tmpl, nil
}

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches the hint matching err, if there is one.
func withHint(err error, markers pipelinegrep.Markers) error {
	if err == nil {
		return nil
	}

	var hint string
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		hint = hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(nil)
	case errors.Is(err, pipelinegrep.ErrInvalidPattern):
		hint = hints.ForPattern()
	case errors.Is(err, pipelinegrep.ErrTemplate):
		hint = hints.ForTemplate(pipelinegrep.Fields())
	case errors.Is(err, pipelinegrep.ErrNoSectionClose):
		hint = hints.ForNoSectionClose(markers.Close)
	case errors.Is(err, pipelinegrep.ErrSectionName):
		hint = hints.ForSectionName(markers.Attribute)
	case errors.Is(err, highlight.ErrInvalidMode):
		hint = hints.ForChoices(highlight.Modes())
	}

	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
