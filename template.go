package pipelinegrep

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Placeholder names available in templates.
const (
	FieldPipeline = "pipeline"
	FieldN        = "n"
	FieldLine     = "line"
	FieldSLine    = "sline"
	FieldELine    = "eline"
	FieldCLine    = "cline"
)

var knownFields = map[string]bool{
	FieldPipeline: true,
	FieldN:        true,
	FieldLine:     true,
	FieldSLine:    true,
	FieldELine:    true,
	FieldCLine:    true,
}

// Fields returns the placeholder names, sorted.
func Fields() []string {
	names := make([]string, 0, len(knownFields))
	for name := range knownFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Renderer writes one Match, newline included.
type Renderer interface {
	Render(w io.Writer, m Match) error
}

// Compile-time interface implementation check.
var _ Renderer = (*Template)(nil)

// Template is a parsed output template. Placeholders are written {name} or
// {name:spec}, where spec follows [[fill]align][sign][0][width][,][.precision]
// as in "{n:>4}" or "{pipeline:<20}". {{ and }} stand for literal braces.
type Template struct {
	source   string
	segments []segment
}

// segment is either literal text or a placeholder (field != "").
type segment struct {
	literal string
	field   string
	spec    *fieldSpec
}

// ParseTemplate parses src, rejecting unknown placeholders, invalid format
// specs, unclosed "{" and stray "}".
func ParseTemplate(src string) (*Template, error) {
	t := &Template{source: src}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(src[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' at offset %d in %q", ErrTemplate, i, src)
			}
			name, spec, err := parseField(src[i+1 : i+1+end])
			if err != nil {
				return nil, fmt.Errorf("%w: %w in %q", ErrTemplate, err, src)
			}
			flush()
			t.segments = append(t.segments, segment{field: name, spec: spec})
			i += end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("%w: single '}' at offset %d in %q", ErrTemplate, i, src)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return t, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
// Intended for templates known at compile time.
func MustParseTemplate(src string) *Template {
	t, err := ParseTemplate(src)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}

// Execute substitutes m into the template.
func (t *Template) Execute(m Match) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.field == "" {
			b.WriteString(seg.literal)
			continue
		}
		value := fieldValue(m, seg.field)
		if seg.spec != nil {
			value = seg.spec.apply(value, seg.field == FieldN)
		}
		b.WriteString(value)
	}
	return b.String()
}

// Render writes the executed template followed by a newline.
func (t *Template) Render(w io.Writer, m Match) error {
	if _, err := io.WriteString(w, t.Execute(m)+"\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func fieldValue(m Match, field string) string {
	switch field {
	case FieldPipeline:
		return m.Pipeline
	case FieldN:
		return strconv.Itoa(m.N)
	case FieldLine:
		return m.Line
	case FieldSLine:
		return m.SLine
	case FieldELine:
		return m.ELine
	case FieldCLine:
		return m.CLine
	}
	return ""
}
