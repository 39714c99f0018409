package pipelinegrep

import (
	"fmt"
	"sort"
	"strings"
)

// Built-in format names, matched case-insensitively.
const (
	FormatCSV  = "csv"
	FormatTab  = "tab"
	FormatJSON = "json"
)

var builtInTemplates = map[string]string{
	FormatJSON: `{{ "pipeline":"{pipeline}", "n":{n}, "line":"{eline}" }}`,
	FormatCSV:  `"{pipeline}",{n},"{cline}"`,
	FormatTab:  "{pipeline}\t{n}\t{sline}",
}

// IsBuiltInFormat reports whether name is a reserved format name.
func IsBuiltInFormat(name string) bool {
	_, ok := builtInTemplates[strings.ToLower(name)]
	return ok
}

// BuiltInFormats returns the reserved format names, sorted.
func BuiltInFormats() []string {
	names := make([]string, 0, len(builtInTemplates))
	for name := range builtInTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatKind tags how a Format was chosen.
type FormatKind int

const (
	FormatSynthesized FormatKind = iota // Built from PlainOptions
	FormatBuiltIn                       // Reserved or configured name
	FormatExplicit                      // Literal template from the user
)

func (k FormatKind) String() string {
	switch k {
	case FormatSynthesized:
		return "synthesized"
	case FormatBuiltIn:
		return "built-in"
	case FormatExplicit:
		return "explicit"
	}
	return fmt.Sprintf("FormatKind(%d)", int(k))
}

// PlainOptions drive the synthesized plain format.
type PlainOptions struct {
	LineNumbers  bool // Prefix the line with "{n}: "
	ShowPipeline bool // Emit "pipeline: {pipeline}" first
	HideLine     bool // Leave the line after the header empty; implies ShowPipeline
}

// Template builds the plain template source.
func (p PlainOptions) Template() string {
	var b strings.Builder
	if p.ShowPipeline || p.HideLine {
		b.WriteString("pipeline: {pipeline}\n")
		if p.HideLine {
			return b.String()
		}
	}
	if p.LineNumbers {
		b.WriteString("{n}: ")
	}
	b.WriteString("{line}")
	return b.String()
}

// Format is the output format selected before scanning.
type Format struct {
	kind   FormatKind
	name   string
	source string
	plain  PlainOptions
}

// SynthesizedFormat returns a plain format driven by flags.
func SynthesizedFormat(p PlainOptions) Format {
	return Format{kind: FormatSynthesized, source: p.Template(), plain: p}
}

// ExplicitFormat returns a literal template format.
func ExplicitFormat(template string) Format {
	return Format{kind: FormatExplicit, source: template}
}

// BuiltInFormat returns the reserved format called name.
func BuiltInFormat(name string) (Format, error) {
	key := strings.ToLower(name)
	src, ok := builtInTemplates[key]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return Format{kind: FormatBuiltIn, name: key, source: src}, nil
}

// ParseFormat classifies a user-supplied format argument. A name matching a
// built-in, then a key of named (both case-insensitive), selects that format;
// anything else is a literal template.
func ParseFormat(arg string, named map[string]string) Format {
	if f, err := BuiltInFormat(arg); err == nil {
		return f
	}
	key := strings.ToLower(arg)
	for name, src := range named {
		if strings.ToLower(name) == key {
			return Format{kind: FormatBuiltIn, name: key, source: src}
		}
	}
	return ExplicitFormat(arg)
}

// Kind returns how the format was chosen.
func (f Format) Kind() FormatKind { return f.kind }

// Name returns the format name for FormatBuiltIn, "" otherwise.
func (f Format) Name() string { return f.name }

// Plain returns the plain options for FormatSynthesized.
func (f Format) Plain() PlainOptions { return f.plain }

// Source returns the template source.
func (f Format) Source() string { return f.source }

// Template parses the format into a Template.
func (f Format) Template() (*Template, error) {
	t, err := ParseTemplate(f.source)
	if err != nil {
		if f.kind == FormatBuiltIn {
			return nil, fmt.Errorf("format %q: %w", f.name, err)
		}
		return nil, err
	}
	return t, nil
}
