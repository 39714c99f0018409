// Package pipelinegrep searches a GoCD config.xml for regular expressions
// and reports each match together with the pipeline it belongs to.
//
// # Quick Start
//
//	g, err := pipelinegrep.NewGrep([]string{`github\.com`})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stats, err := g.Run(ctx, os.Stdin, os.Stdout)
//
// # How Sections Are Found
//
// The document is not parsed as XML. Every line containing the open marker
// (`<pipeline name=` by default) starts a section, and the last line
// containing the close marker (`</pipelines>`) ends the collection. A match
// is attributed to the closest open marker above it; matches before the
// first pipeline or after the collection report NoPipeline. Only one flat
// level of sections is supported. Use WithMarkers for other layouts.
//
// # Output Formats
//
// Matches are rendered through a Template with the placeholders {pipeline},
// {n}, {line}, {sline}, {eline} and {cline}:
//
//	f := pipelinegrep.ParseFormat("csv", nil)
//	t, err := f.Template()
//	g, err := pipelinegrep.NewGrep(patterns, pipelinegrep.WithRenderer(t))
//
// The built-in formats are csv, tab and json. Any other string is used as a
// literal template; {{ and }} produce literal braces.
//
// # Lower-Level Access
//
// ReadLines, IndexSections and Grep.Scan expose the individual stages for
// callers that want matches as values instead of rendered text.
package pipelinegrep
