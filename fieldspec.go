package pipelinegrep

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxFieldWidth bounds the padding a single placeholder can request.
const maxFieldWidth = 4096

// specPattern is the format spec grammar after ':' in a placeholder:
// [[fill]align][sign][0][width][grouping][.precision][type]
var specPattern = regexp.MustCompile(`^(?:(.)?([<>^=]))?([-+ ])?(0)?([0-9]+)?([,_])?(?:\.([0-9]+))?([sd])?$`)

// fieldSpec controls padding and truncation of one placeholder value.
type fieldSpec struct {
	fill      rune
	align     byte // '<', '>', '^' or '='; 0 picks the default for the field
	sign      byte // '+', ' ' or '-'
	zero      bool
	width     int
	group     byte // ',' or '_'
	precision int  // -1 when absent
}

// parseField splits a placeholder body into its name and optional spec.
// An optional "!s" conversion is accepted and has no effect.
func parseField(body string) (name string, spec *fieldSpec, err error) {
	name = body
	rest := ""
	if i := strings.IndexAny(body, "!:"); i >= 0 {
		name, rest = body[:i], body[i:]
	}
	if !knownFields[name] {
		return "", nil, fmt.Errorf("%w {%s}", ErrUnknownPlaceholder, body)
	}

	if strings.HasPrefix(rest, "!") {
		conv, after, hasSpec := strings.Cut(rest[1:], ":")
		if conv != "s" {
			return "", nil, fmt.Errorf("unsupported conversion !%s in {%s}", conv, body)
		}
		rest = ""
		if hasSpec {
			rest = ":" + after
		}
	}
	if rest == "" {
		return name, nil, nil
	}

	spec, err = parseFieldSpec(name, rest[1:])
	if err != nil {
		return "", nil, fmt.Errorf("%v in {%s}", err, body)
	}
	return name, spec, nil
}

func parseFieldSpec(name, src string) (*fieldSpec, error) {
	if src == "" {
		return nil, nil
	}
	g := specPattern.FindStringSubmatch(src)
	if g == nil {
		return nil, fmt.Errorf("invalid format spec %q", src)
	}

	numeric := name == FieldN
	s := &fieldSpec{fill: ' ', precision: -1, zero: g[4] != ""}
	if g[1] != "" {
		s.fill, _ = utf8.DecodeRuneInString(g[1])
	}
	if g[2] != "" {
		s.align = g[2][0]
	}
	if g[3] != "" {
		s.sign = g[3][0]
	}
	if g[5] != "" {
		w, err := strconv.Atoi(g[5])
		if err != nil || w > maxFieldWidth {
			return nil, fmt.Errorf("width %s exceeds %d", g[5], maxFieldWidth)
		}
		s.width = w
	}
	if g[6] != "" {
		s.group = g[6][0]
	}
	if g[7] != "" {
		p, err := strconv.Atoi(g[7])
		if err != nil || p > maxFieldWidth {
			return nil, fmt.Errorf("precision %s exceeds %d", g[7], maxFieldWidth)
		}
		s.precision = p
	}

	verb := g[8]
	switch {
	case numeric && verb == "s":
		return nil, errors.New("format code 's' is not valid for a number")
	case numeric && s.precision >= 0:
		return nil, errors.New("precision is not allowed for a number")
	case !numeric && verb == "d":
		return nil, errors.New("format code 'd' is not valid for text")
	case !numeric && s.sign != 0:
		return nil, errors.New("sign is not allowed for text")
	case !numeric && s.group != 0:
		return nil, errors.New("grouping is not allowed for text")
	case !numeric && s.align == '=':
		return nil, errors.New("'=' alignment is not allowed for text")
	}

	if s.zero && g[1] == "" {
		s.fill = '0'
		if numeric && s.align == 0 {
			s.align = '='
		}
	}
	if s.align == 0 {
		s.align = '<'
		if numeric {
			s.align = '>'
		}
	}
	return s, nil
}

// apply formats value. Numbers are expected as plain decimal digits.
func (s *fieldSpec) apply(value string, numeric bool) string {
	prefix := ""
	if numeric {
		if s.sign == '+' || s.sign == ' ' {
			prefix = string(s.sign)
		}
		if s.group != 0 {
			value = groupDigits(value, s.group)
		}
	} else if s.precision >= 0 && utf8.RuneCountInString(value) > s.precision {
		value = string([]rune(value)[:s.precision])
	}

	pad := s.width - utf8.RuneCountInString(prefix+value)
	if pad <= 0 {
		return prefix + value
	}
	fill := func(n int) string { return strings.Repeat(string(s.fill), n) }

	switch s.align {
	case '>':
		return fill(pad) + prefix + value
	case '^':
		return fill(pad/2) + prefix + value + fill(pad-pad/2)
	case '=':
		return prefix + fill(pad) + value
	default:
		return prefix + value + fill(pad)
	}
}

// groupDigits inserts sep between groups of three digits.
func groupDigits(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
