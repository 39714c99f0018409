package pipelinegrep

import (
	"fmt"
	"strings"
)

// Section markers of a GoCD config.xml (v17 layout).
const (
	DefaultOpenMarker  = "<pipeline name="
	DefaultCloseMarker = "</pipelines>"
	DefaultAttribute   = `pipeline name="`
)

// NoPipeline is reported for matches outside any named section.
const NoPipeline = "(none)"

// Markers are the literal substrings used to find section boundaries.
type Markers struct {
	Open      string // Present on every line that opens a section
	Close     string // Present on the line closing the whole collection
	Attribute string // Text right before the quoted section name, quote included
}

// DefaultMarkers returns the markers for a GoCD config.xml.
func DefaultMarkers() Markers {
	return Markers{
		Open:      DefaultOpenMarker,
		Close:     DefaultCloseMarker,
		Attribute: DefaultAttribute,
	}
}

// Validate checks that every marker is set and that Attribute ends with
// the quote character that terminates the section name.
func (m Markers) Validate() error {
	if m.Open == "" {
		return fmt.Errorf("%w: open marker is empty", ErrInvalidMarkers)
	}
	if m.Close == "" {
		return fmt.Errorf("%w: close marker is empty", ErrInvalidMarkers)
	}
	if m.Attribute == "" {
		return fmt.Errorf("%w: attribute prefix is empty", ErrInvalidMarkers)
	}
	if q := m.quote(); q != `"` && q != "'" {
		return fmt.Errorf("%w: attribute prefix %q must end with a quote", ErrInvalidMarkers, m.Attribute)
	}
	return nil
}

func (m Markers) quote() string {
	return m.Attribute[len(m.Attribute)-1:]
}

// sectionName returns the quoted value following the attribute prefix.
func (m Markers) sectionName(line string) (string, bool) {
	_, rest, ok := strings.Cut(line, m.Attribute)
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, m.quote())
	if !ok {
		return "", false
	}
	return name, true
}

// Match is produced for every matching line and rendered right away.
type Match struct {
	N        int    // 1-based line number
	Line     string // Line as read, trailing whitespace removed
	SLine    string // Line with surrounding whitespace removed
	ELine    string // SLine with double quotes backslash-escaped (JSON)
	CLine    string // SLine with double quotes doubled (CSV)
	Pipeline string // Enclosing section name, or NoPipeline
}

// NewMatch builds a Match from a 0-based line index.
func NewMatch(index int, line, pipeline string) Match {
	sline := strings.TrimSpace(line)
	return Match{
		N:        index + 1,
		Line:     line,
		SLine:    sline,
		ELine:    strings.ReplaceAll(sline, `"`, `\"`),
		CLine:    strings.ReplaceAll(sline, `"`, `""`),
		Pipeline: pipeline,
	}
}

// Stats summarizes a completed run.
type Stats struct {
	Lines    int
	Sections int
	Matches  int
}
