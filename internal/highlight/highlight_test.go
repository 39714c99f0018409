package highlight

// Notes:
// - Enabled in auto mode is only tested with non-terminal writers; a real
//   TTY is not available under go test.
// - Colored output is compared after stripping ANSI sequences, so the tests
//   pin the text layout and not chroma's exact escape codes.

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	pipelinegrep "github.com/alnah/go-pipelinegrep"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

// ---------------------------------------------------------------------------
// TestParseMode - Color mode parsing
// ---------------------------------------------------------------------------

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"ALWAYS", ModeAlways, false},
		{" never ", ModeNever, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMode) {
					t.Fatalf("ParseMode(%q) error = %v, want ErrInvalidMode", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEnabled - Color decision per mode and writer
// ---------------------------------------------------------------------------

func TestEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if !Enabled(ModeAlways, &buf, nil) {
		t.Error("always should color any writer")
	}
	if Enabled(ModeNever, os.Stdout, nil) {
		t.Error("never should not color")
	}
	if Enabled(ModeAuto, &buf, nil) {
		t.Error("auto should not color a buffer")
	}
}

func TestEnabled_AutoRegularFile(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer func() { _ = f.Close() }()

	if Enabled(ModeAuto, f, nil) {
		t.Error("auto should not color a regular file")
	}
}

func TestEnabled_NoColor(t *testing.T) {
	t.Parallel()

	var looked []string
	getenv := func(key string) string {
		looked = append(looked, key)
		if key == "NO_COLOR" {
			return "1"
		}
		return ""
	}

	if Enabled(ModeAuto, os.Stdout, getenv) {
		t.Error("NO_COLOR should disable auto colors")
	}
	if len(looked) != 1 || looked[0] != "NO_COLOR" {
		t.Errorf("getenv lookups = %v, want [NO_COLOR]", looked)
	}
	if !Enabled(ModeAlways, os.Stdout, getenv) {
		t.Error("NO_COLOR should not override always")
	}
}

// ---------------------------------------------------------------------------
// TestRenderer - Layout matches the plain format
// ---------------------------------------------------------------------------

func TestRenderer(t *testing.T) {
	t.Parallel()

	m := pipelinegrep.NewMatch(30, `      <exec command="curl" />`, "census_publish")

	tests := []struct {
		name string
		opts pipelinegrep.PlainOptions
	}{
		{"line only", pipelinegrep.PlainOptions{}},
		{"numbered", pipelinegrep.PlainOptions{LineNumbers: true}},
		{"pipeline", pipelinegrep.PlainOptions{ShowPipeline: true}},
		{"pipeline numbered", pipelinegrep.PlainOptions{ShowPipeline: true, LineNumbers: true}},
		{"hide line", pipelinegrep.PlainOptions{HideLine: true, LineNumbers: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var colored bytes.Buffer
			if err := NewRenderer(tt.opts).Render(&colored, m); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			var plain bytes.Buffer
			tmpl := pipelinegrep.MustParseTemplate(tt.opts.Template())
			if err := tmpl.Render(&plain, m); err != nil {
				t.Fatalf("template Render() error = %v", err)
			}

			if got := ansi.Strip(colored.String()); got != plain.String() {
				t.Errorf("stripped output = %q, want %q", got, plain.String())
			}
		})
	}
}

func TestRenderer_EmitsColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := pipelinegrep.NewMatch(0, `<pipeline name="a">`, "a")
	if err := NewRenderer(pipelinegrep.PlainOptions{ShowPipeline: true}).Render(&buf, m); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI sequences, got %q", buf.String())
	}
}

func TestRenderer_HideLineBlank(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := pipelinegrep.NewMatch(4, "y=foo", "beta")
	if err := NewRenderer(pipelinegrep.PlainOptions{HideLine: true}).Render(&buf, m); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := ansi.Strip(buf.String()); got != "pipeline: beta\n\n" {
		t.Errorf("stripped output = %q, want %q", got, "pipeline: beta\n\n")
	}
}

func TestRenderer_WriteError(t *testing.T) {
	t.Parallel()

	m := pipelinegrep.NewMatch(0, "x", "a")
	err := NewRenderer(pipelinegrep.PlainOptions{}).Render(failingWriter{}, m)
	if !errors.Is(err, pipelinegrep.ErrWriteOutput) {
		t.Fatalf("Render() error = %v, want ErrWriteOutput", err)
	}
}
