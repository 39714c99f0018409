package pipelinegrep

// Notes:
// - IndexSections: we test boundary layout, a missing close marker, and
//   that the last close marker wins.
// - sectionCursor: we walk a document line by line and check the enclosing
//   section at each step, including lines before the first section and
//   after the close marker.
// - Markers: we test validation and name extraction edge cases.

import (
	"errors"
	"reflect"
	"testing"
)

var twoPipelines = []string{
	"<pipelines>",
	`<pipeline name="alpha" isLocked="false">`,
	"x=github.com",
	"</pipeline>",
	`<pipeline name="beta" isLocked="false">`,
	"y=foo",
	"</pipeline>",
	"</pipelines>",
}

// ---------------------------------------------------------------------------
// TestIndexSections - Boundary list construction
// ---------------------------------------------------------------------------

func TestIndexSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []string
		want    Boundaries
		wantErr error
	}{
		{
			name:  "two pipelines",
			lines: twoPipelines,
			want:  Boundaries{0, 1, 4, 7},
		},
		{
			name:  "close marker only",
			lines: []string{"<pipelines>", "</pipelines>"},
			want:  Boundaries{0, 1},
		},
		{
			name: "last close marker wins",
			lines: []string{
				"</pipelines>",
				`<pipeline name="a">`,
				"</pipelines>",
			},
			want: Boundaries{0, 1, 2},
		},
		{
			name:    "no close marker",
			lines:   twoPipelines[:7],
			wantErr: ErrNoSectionClose,
		},
		{
			name:    "empty input",
			lines:   nil,
			wantErr: ErrNoSectionClose,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := IndexSections(tt.lines, DefaultMarkers())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("IndexSections() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("IndexSections() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IndexSections() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndexSections_InvalidMarkers(t *testing.T) {
	t.Parallel()

	_, err := IndexSections(twoPipelines, Markers{Open: "<p", Close: "</ps>"})
	if !errors.Is(err, ErrInvalidMarkers) {
		t.Fatalf("IndexSections() error = %v, want ErrInvalidMarkers", err)
	}
}

func TestBoundaries_Sections(t *testing.T) {
	t.Parallel()

	if got := (Boundaries{0, 1, 4, 7}).Sections(); got != 2 {
		t.Errorf("Sections() = %d, want 2", got)
	}
	if got := (Boundaries{0, 3}).Sections(); got != 0 {
		t.Errorf("Sections() = %d, want 0", got)
	}
	if got := (Boundaries(nil)).Sections(); got != 0 {
		t.Errorf("Sections() = %d, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// TestSectionCursor - Forward walk over boundaries
// ---------------------------------------------------------------------------

func TestSectionCursor(t *testing.T) {
	t.Parallel()

	lines := append([]string{"<!-- header -->"}, twoPipelines...)
	lines = append(lines, "<agents/>")
	bounds, err := IndexSections(lines, DefaultMarkers())
	if err != nil {
		t.Fatalf("IndexSections() error = %v", err)
	}

	// Expected enclosing open-marker line per index, -1 for none.
	want := []int{-1, -1, 2, 2, 2, 5, 5, 5, -1, -1}

	c := newSectionCursor(bounds)
	for i := range lines {
		c.advance(i)
		at, ok := c.current()
		if !ok {
			at = -1
		}
		if at != want[i] {
			t.Errorf("line %d: section at %d, want %d", i, at, want[i])
		}
	}

	if !reflect.DeepEqual(bounds, Boundaries{0, 2, 5, 8}) {
		t.Errorf("cursor must not modify boundaries, got %v", bounds)
	}
}

func TestSectionCursor_OpenOnFirstLine(t *testing.T) {
	t.Parallel()

	lines := []string{`<pipeline name="first">`, "x", "</pipelines>"}
	bounds, err := IndexSections(lines, DefaultMarkers())
	if err != nil {
		t.Fatalf("IndexSections() error = %v", err)
	}

	c := newSectionCursor(bounds)
	c.advance(0)
	at, ok := c.current()
	if !ok || at != 0 {
		t.Errorf("current() = (%d, %v), want (0, true)", at, ok)
	}
}

// ---------------------------------------------------------------------------
// TestMarkers - Validation and name extraction
// ---------------------------------------------------------------------------

func TestMarkers_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		m       Markers
		wantErr bool
	}{
		{"defaults", DefaultMarkers(), false},
		{"single quote attribute", Markers{Open: "<job ", Close: "</jobs>", Attribute: "name='"}, false},
		{"empty open", Markers{Close: "</x>", Attribute: `n="`}, true},
		{"empty close", Markers{Open: "<x", Attribute: `n="`}, true},
		{"empty attribute", Markers{Open: "<x", Close: "</x>"}, true},
		{"attribute without quote", Markers{Open: "<x", Close: "</x>", Attribute: "name="}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMarkers) {
				t.Errorf("error should wrap ErrInvalidMarkers, got %v", err)
			}
		})
	}
}

func TestMarkers_SectionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"gocd line", `    <pipeline name="census_publish" isLocked="false">`, "census_publish", true},
		{"empty name", `<pipeline name="">`, "", true},
		{"first attribute wins", `<pipeline name="a"><pipeline name="b">`, "a", true},
		{"missing attribute", `<pipeline name=census>`, "", false},
		{"unterminated quote", `<pipeline name="census`, "", false},
	}

	m := DefaultMarkers()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := m.sectionName(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("sectionName(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewMatch - Match record variants
// ---------------------------------------------------------------------------

func TestNewMatch(t *testing.T) {
	t.Parallel()

	m := NewMatch(4, `    <git url="a" />`, "alpha")

	if m.N != 5 {
		t.Errorf("N = %d, want 5", m.N)
	}
	if m.Line != `    <git url="a" />` {
		t.Errorf("Line = %q", m.Line)
	}
	if m.SLine != `<git url="a" />` {
		t.Errorf("SLine = %q", m.SLine)
	}
	if m.ELine != `<git url=\"a\" />` {
		t.Errorf("ELine = %q", m.ELine)
	}
	if m.CLine != `<git url=""a"" />` {
		t.Errorf("CLine = %q", m.CLine)
	}
	if m.Pipeline != "alpha" {
		t.Errorf("Pipeline = %q", m.Pipeline)
	}
}
