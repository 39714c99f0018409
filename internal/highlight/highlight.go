// Package highlight renders plain-format matches with terminal colors.
//
// The pipeline header is styled through lipgloss and the matching line is
// highlighted as XML with chroma. Machine formats (built-in and explicit
// templates) never go through this package.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	pipelinegrep "github.com/alnah/go-pipelinegrep"
)

// Mode selects when colors are used.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ErrInvalidMode is returned for a color mode other than auto, always or never.
var ErrInvalidMode = errors.New("invalid color mode")

// Modes returns the accepted color modes.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeAlways), string(ModeNever)}
}

// ParseMode parses a color mode, case-insensitively. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeAlways:
		return ModeAlways, nil
	case ModeNever:
		return ModeNever, nil
	}
	return "", fmt.Errorf("%w: %q (must be %s)", ErrInvalidMode, s, strings.Join(Modes(), ", "))
}

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// Enabled reports whether output written to w should be colored.
// In auto mode that requires w to be a terminal and NO_COLOR to be unset.
// A nil getenv falls back to os.Getenv.
func Enabled(mode Mode, w io.Writer, getenv func(string) string) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

// Chroma names used for the matching line.
const (
	lexerName     = "xml"
	formatterName = "terminal256"
	styleName     = "monokai"
)

// Renderer renders matches like the synthesized plain format, with colors.
// It implements pipelinegrep.Renderer.
type Renderer struct {
	opts   pipelinegrep.PlainOptions
	header lipgloss.Style
	number lipgloss.Style
}

// NewRenderer returns a colored renderer for the given plain options.
func NewRenderer(opts pipelinegrep.PlainOptions) *Renderer {
	// Colors are decided by Enabled, so the profile is forced instead of
	// detected from the environment.
	lr := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	lr.SetColorProfile(termenv.ANSI256)

	return &Renderer{
		opts:   opts,
		header: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		number: lr.NewStyle().Foreground(lipgloss.Color("243")),
	}
}

// Render writes m followed by a newline.
func (r *Renderer) Render(w io.Writer, m pipelinegrep.Match) error {
	var b strings.Builder
	if r.opts.ShowPipeline || r.opts.HideLine {
		b.WriteString(r.header.Render("pipeline: " + m.Pipeline))
		b.WriteByte('\n')
	}
	if !r.opts.HideLine {
		if r.opts.LineNumbers {
			b.WriteString(r.number.Render(strconv.Itoa(m.N) + ":"))
			b.WriteByte(' ')
		}
		b.WriteString(highlightLine(m.Line))
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %w", pipelinegrep.ErrWriteOutput, err)
	}
	return nil
}

// highlightLine colors a single line as XML. The line is returned as-is
// when chroma fails.
func highlightLine(line string) string {
	var buf strings.Builder
	if err := quick.Highlight(&buf, line, lexerName, formatterName, styleName); err != nil {
		return line
	}
	// Lexers may append a newline; a line never contains one.
	return strings.ReplaceAll(buf.String(), "\n", "")
}
