package pipelinegrep

// Notes:
// - ParseTemplate: we test placeholders, brace escapes, and every error
//   shape (unknown placeholder, unclosed '{', stray '}').
// - Render: we test the trailing newline and write error wrapping.
// - Built-in templates are covered in format_test.go.

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

var sampleMatch = NewMatch(5, `  y="foo" `, "beta")

// ---------------------------------------------------------------------------
// TestParseTemplate - Parsing and execution
// ---------------------------------------------------------------------------

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"literal only", "hit", "hit"},
		{"pipeline and number", "{pipeline}:{n}", "beta:6"},
		{"raw line", "[{line}]", `[  y="foo" ]`},
		{"trimmed line", "[{sline}]", `[y="foo"]`},
		{"escaped line", "{eline}", `y=\"foo\"`},
		{"doubled line", "{cline}", `y=""foo""`},
		{"escaped braces", "{{{n}}}", "{6}"},
		{"repeated placeholder", "{n}-{n}", "6-6"},
		{"multi line", "pipeline: {pipeline}\n{n}: {line}", "pipeline: beta\n6:   y=\"foo\" "},
		{"right aligned number", "{n:>4}|{sline}", `   6|y="foo"`},
		{"left aligned pipeline", "{pipeline:<8}|", "beta    |"},
		{"centered pipeline", "{pipeline:^8}", "  beta  "},
		{"custom fill", "{n:*^5}", "**6**"},
		{"zero padded number", "{n:04}", "0006"},
		{"signed number", "{n:+}", "+6"},
		{"truncated line", "{sline:.3}", `y="`},
		{"conversion and spec", "{pipeline!s:>6}", "  beta"},
		{"width below length", "{pipeline:2}", "beta"},
		{"empty spec", "{n:}", "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate(tt.src)
			if err != nil {
				t.Fatalf("ParseTemplate(%q) error = %v", tt.src, err)
			}
			if got := tmpl.Execute(sampleMatch); got != tt.want {
				t.Errorf("Execute() = %q, want %q", got, tt.want)
			}
			if tmpl.String() != tt.src {
				t.Errorf("String() = %q, want %q", tmpl.String(), tt.src)
			}
		})
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		src         string
		wantUnknown bool
		wantMsg     string
	}{
		{"unknown placeholder", "{pipline}", true, "{pipline}"},
		{"empty placeholder", "{}", true, "{}"},
		{"unclosed brace", "{pipeline", false, "unclosed '{'"},
		{"stray closing brace", "n}", false, "single '}'"},
		{"stray after placeholder", "{n}}", false, "single '}'"},
		{"unknown name with spec", "{nn:>4}", true, "{nn:>4}"},
		{"precision on number", "{n:.2}", false, "precision is not allowed"},
		{"sign on text", "{pipeline:+}", false, "sign is not allowed"},
		{"text code on number", "{n:s}", false, "format code 's'"},
		{"unparsable spec", "{line:x}", false, `invalid format spec "x"`},
		{"unsupported conversion", "{n!r}", false, "unsupported conversion !r"},
		{"width too large", "{n:99999}", false, "width 99999 exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTemplate(tt.src)
			if !errors.Is(err, ErrTemplate) {
				t.Fatalf("ParseTemplate(%q) error = %v, want ErrTemplate", tt.src, err)
			}
			if got := errors.Is(err, ErrUnknownPlaceholder); got != tt.wantUnknown {
				t.Errorf("errors.Is(ErrUnknownPlaceholder) = %v, want %v", got, tt.wantUnknown)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestMustParseTemplate_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid template")
		}
	}()
	MustParseTemplate("{bogus}")
}

func TestFields(t *testing.T) {
	t.Parallel()

	want := []string{"cline", "eline", "line", "n", "pipeline", "sline"}
	if got := Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestTemplate_Render - Writing rendered matches
// ---------------------------------------------------------------------------

func TestTemplate_Render(t *testing.T) {
	t.Parallel()

	t.Run("appends newline", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := MustParseTemplate("{pipeline}").Render(&buf, sampleMatch); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if buf.String() != "beta\n" {
			t.Errorf("Render() wrote %q, want %q", buf.String(), "beta\n")
		}
	})

	t.Run("wraps write errors", func(t *testing.T) {
		t.Parallel()

		err := MustParseTemplate("{n}").Render(failingWriter{}, sampleMatch)
		if !errors.Is(err, ErrWriteOutput) {
			t.Fatalf("Render() error = %v, want ErrWriteOutput", err)
		}
	})
}
