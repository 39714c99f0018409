package pipelinegrep

import (
	"fmt"
	"strings"
)

// Boundaries lists the line indices that delimit sections, in document order:
// a synthetic 0 for "before any section", every line holding the open marker,
// and the last line holding the close marker.
//
// Only one flat level of sections is modeled; nested sections are attributed
// to whichever open marker was seen last.
type Boundaries []int

// IndexSections scans lines once for the open and close markers.
// It fails with ErrNoSectionClose when the close marker never appears.
func IndexSections(lines []string, m Markers) (Boundaries, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	bounds := Boundaries{0}
	lastClose := -1
	for i, line := range lines {
		if strings.Contains(line, m.Open) {
			bounds = append(bounds, i)
		}
		if strings.Contains(line, m.Close) {
			lastClose = i
		}
	}

	if lastClose < 0 {
		return nil, fmt.Errorf("%w: no line contains %q", ErrNoSectionClose, m.Close)
	}
	return append(bounds, lastClose), nil
}

// Sections returns the number of section-open lines.
func (b Boundaries) Sections() int {
	if len(b) < 2 {
		return 0
	}
	return len(b) - 2
}

// sectionCursor walks Boundaries forward without modifying it.
type sectionCursor struct {
	bounds Boundaries
	pos    int
}

func newSectionCursor(b Boundaries) *sectionCursor {
	return &sectionCursor{bounds: b}
}

func (c *sectionCursor) remaining() int {
	return len(c.bounds) - c.pos
}

// advance moves past every boundary that index has reached.
func (c *sectionCursor) advance(index int) {
	for c.remaining() > 1 && index >= c.bounds[c.pos+1] {
		c.pos++
	}
}

// current returns the line index of the open marker enclosing the cursor.
// ok is false before the first section and past the close marker.
func (c *sectionCursor) current() (line int, ok bool) {
	if c.pos == 0 || c.remaining() < 2 {
		return 0, false
	}
	return c.bounds[c.pos], true
}
