package pipelinegrep

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Option configures a Grep.
type Option func(*Grep)

// WithIgnoreCase enables case-insensitive matching.
func WithIgnoreCase(ignore bool) Option {
	return func(g *Grep) {
		g.ignoreCase = ignore
	}
}

// WithMarkers overrides the GoCD section markers.
func WithMarkers(m Markers) Option {
	return func(g *Grep) {
		g.markers = m
	}
}

// WithRenderer sets how matches are written by Run.
func WithRenderer(r Renderer) Option {
	return func(g *Grep) {
		g.renderer = r
	}
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grep) {
		g.logger = l
	}
}

// Grep searches a pipeline configuration and reports matches with the
// pipeline they belong to. A Grep is immutable once created.
type Grep struct {
	exprs      []string
	ignoreCase bool
	markers    Markers
	renderer   Renderer
	logger     *slog.Logger
	patterns   *PatternSet
}

// NewGrep compiles patterns and validates options.
// Without WithRenderer, matches are rendered with the plain line format.
func NewGrep(patterns []string, opts ...Option) (*Grep, error) {
	g := &Grep{
		exprs:   patterns,
		markers: DefaultMarkers(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.markers.Validate(); err != nil {
		return nil, err
	}

	ps, err := CompilePatterns(g.exprs, g.ignoreCase)
	if err != nil {
		return nil, err
	}
	g.patterns = ps

	if g.renderer == nil {
		t, err := SynthesizedFormat(PlainOptions{}).Template()
		if err != nil {
			return nil, err
		}
		g.renderer = t
	}

	return g, nil
}

// Scan indexes lines, then calls fn for every matching line in ascending
// order. It stops at the first error from fn or when ctx is done.
func (g *Grep) Scan(ctx context.Context, lines []string, fn func(Match) error) (Stats, error) {
	stats := Stats{Lines: len(lines)}

	bounds, err := IndexSections(lines, g.markers)
	if err != nil {
		return stats, err
	}
	stats.Sections = bounds.Sections()

	cursor := newSectionCursor(bounds)
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		cursor.advance(i)
		if !g.patterns.Match(line) {
			continue
		}

		name, err := g.resolveSection(cursor, lines)
		if err != nil {
			return stats, err
		}
		stats.Matches++
		if err := fn(NewMatch(i, line, name)); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// resolveSection names the section the cursor is in.
func (g *Grep) resolveSection(c *sectionCursor, lines []string) (string, error) {
	at, ok := c.current()
	if !ok {
		return NoPipeline, nil
	}
	name, ok := g.markers.sectionName(lines[at])
	if !ok {
		return "", fmt.Errorf("%w: line %d has no %s...%s attribute: %q",
			ErrSectionName, at+1, g.markers.Attribute, g.markers.quote(), lines[at])
	}
	return name, nil
}

// Run reads all of r, scans it and renders every match to w.
func (g *Grep) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return Stats{}, err
	}
	g.logger.Info("input loaded", "lines", len(lines))

	bw := bufio.NewWriter(w)
	stats, err := g.Scan(ctx, lines, func(m Match) error {
		return g.renderer.Render(bw, m)
	})
	if flushErr := bw.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("%w: %v", ErrWriteOutput, flushErr)
	}
	if err != nil {
		return stats, err
	}

	g.logger.Info("scan complete",
		"sections", stats.Sections,
		"matches", stats.Matches,
		"patterns", g.patterns.Len(),
		"ignore_case", g.ignoreCase)
	return stats, nil
}
