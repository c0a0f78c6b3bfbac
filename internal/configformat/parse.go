package configformat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError reports a malformed property line. Line is 1-based and relative
// to the parsed text.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse decodes Felix ".config" text into a property map.
func Parse(text string) (map[string]any, error) {
	p := &parser{src: text, line: 1}
	props := make(map[string]any)

	for {
		p.skipBlankAndComments()

		if p.eof() {
			return props, nil
		}

		key, err := p.readKey()
		if err != nil {
			return nil, err
		}

		p.skipSpaces()

		if !p.consume('=') {
			return nil, p.errorf("expected '=' after key %q", key)
		}

		p.skipSpaces()

		value, err := p.readValue()
		if err != nil {
			return nil, err
		}

		props[key] = value

		p.skipSpaces()

		switch {
		case p.eof(), p.peek() == '\n', p.peek() == '\r':
		case p.peek() == '#':
			p.skipLine()
		default:
			return nil, p.errorf("unexpected %q after value of %q", p.peek(), key)
		}
	}
}

// ParseProperties decodes java properties style "key=value" lines. All values
// are strings.
func ParseProperties(text string) (map[string]any, error) {
	props := make(map[string]any)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}

		sep := strings.IndexAny(line, "=:")
		if sep <= 0 {
			return nil, &SyntaxError{Line: i + 1, Msg: fmt.Sprintf("expected key=value, got %q", line)}
		}

		props[strings.TrimSpace(line[:sep])] = strings.TrimSpace(line[sep+1:])
	}

	return props, nil
}

type parser struct {
	src  string
	pos  int
	line int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) consume(c byte) bool {
	if !p.eof() && p.peek() == c {
		p.pos++
		return true
	}

	return false
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpaces() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

// skipWhitespace also crosses line breaks.
func (p *parser) skipWhitespace() {
	for !p.eof() {
		switch p.peek() {
		case '\n':
			p.line++
		case ' ', '\t', '\r':
		default:
			return
		}

		p.pos++
	}
}

func (p *parser) skipLine() {
	for !p.eof() && p.peek() != '\n' {
		p.pos++
	}
}

func (p *parser) skipBlankAndComments() {
	for {
		p.skipWhitespace()

		if p.eof() || p.peek() != '#' {
			return
		}

		p.skipLine()
	}
}

func (p *parser) readKey() (string, error) {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '=' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}

		p.pos++
	}

	if p.pos == start {
		return "", p.errorf("missing property name")
	}

	return p.src[start:p.pos], nil
}

func (p *parser) readValue() (any, error) {
	if p.eof() {
		return nil, p.errorf("missing value")
	}

	kind := KindString

	if c := p.peek(); c != '"' && c != '[' && c != '(' {
		k, ok := KindForMarker(c)
		if !ok {
			return nil, p.errorf("invalid type marker %q", c)
		}

		kind = k
		p.pos++
	}

	if p.eof() {
		return nil, p.errorf("missing value after type marker")
	}

	switch p.peek() {
	case '"':
		s, err := p.readQuoted()
		if err != nil {
			return nil, err
		}

		v, err := convert(kind, s)
		if err != nil {
			return nil, p.errorf("%v", err)
		}

		return v, nil
	case '[':
		return p.readList(kind, ']')
	case '(':
		return p.readList(kind, ')')
	default:
		return nil, p.errorf("expected '\"', '[' or '(' but got %q", p.peek())
	}
}

func (p *parser) readQuoted() (string, error) {
	p.pos++ // opening quote

	var sb strings.Builder

	for !p.eof() {
		c := p.peek()
		p.pos++

		switch c {
		case '"':
			return sb.String(), nil
		case '\n':
			return "", p.errorf("unterminated string")
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated escape sequence")
			}

			if err := p.readEscape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(c)
		}
	}

	return "", p.errorf("unterminated string")
}

func (p *parser) readEscape(sb *strings.Builder) error {
	c := p.peek()
	p.pos++

	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'u':
		if p.pos+4 > len(p.src) {
			return p.errorf("short unicode escape")
		}

		r, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
		if err != nil {
			return p.errorf("invalid unicode escape %q", p.src[p.pos:p.pos+4])
		}

		sb.WriteRune(rune(r))
		p.pos += 4
	default:
		sb.WriteByte(c)
	}

	return nil
}

func (p *parser) readList(kind Kind, closing byte) (any, error) {
	p.pos++ // opening bracket

	var elems []string

	for {
		p.skipWhitespace()

		if p.eof() {
			return nil, p.errorf("unterminated list, expected %q", closing)
		}

		if p.consume(closing) {
			break
		}

		if p.peek() != '"' {
			return nil, p.errorf("expected quoted list element but got %q", p.peek())
		}

		s, err := p.readQuoted()
		if err != nil {
			return nil, err
		}

		elems = append(elems, s)

		p.skipWhitespace()

		if p.consume(',') {
			continue
		}

		if p.consume(closing) {
			break
		}

		if p.eof() {
			return nil, p.errorf("unterminated list, expected %q", closing)
		}

		return nil, p.errorf("expected ',' or %q but got %q", closing, p.peek())
	}

	v, err := convertList(kind, elems)
	if err != nil {
		return nil, p.errorf("%v", err)
	}

	return v, nil
}

func convert(kind Kind, s string) (any, error) {
	switch kind {
	case KindString:
		return s, nil
	case KindInteger:
		v, err := strconv.ParseInt(s, 10, 32)
		return int32(v), numErr(kind, s, err)
	case KindLong:
		v, err := strconv.ParseInt(s, 10, 64)
		return v, numErr(kind, s, err)
	case KindFloat:
		v, err := strconv.ParseFloat(s, 32)
		return float32(v), numErr(kind, s, err)
	case KindDouble:
		v, err := strconv.ParseFloat(s, 64)
		return v, numErr(kind, s, err)
	case KindByte:
		v, err := strconv.ParseInt(s, 10, 8)
		return int8(v), numErr(kind, s, err)
	case KindShort:
		v, err := strconv.ParseInt(s, 10, 16)
		return int16(v), numErr(kind, s, err)
	case KindChar:
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("%s value %q must be a single character", kind, s)
		}

		r, _ := utf8.DecodeRuneInString(s)

		return Char(r), nil
	case KindBoolean:
		return strings.EqualFold(s, "true"), nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

func numErr(kind Kind, s string, err error) error {
	if err != nil {
		return fmt.Errorf("invalid %s value %q", kind, s)
	}

	return nil
}

func convertList(kind Kind, elems []string) (any, error) {
	switch kind {
	case KindString:
		return convertAll[string](kind, elems)
	case KindInteger:
		return convertAll[int32](kind, elems)
	case KindLong:
		return convertAll[int64](kind, elems)
	case KindFloat:
		return convertAll[float32](kind, elems)
	case KindDouble:
		return convertAll[float64](kind, elems)
	case KindByte:
		return convertAll[int8](kind, elems)
	case KindShort:
		return convertAll[int16](kind, elems)
	case KindChar:
		return convertAll[Char](kind, elems)
	case KindBoolean:
		return convertAll[bool](kind, elems)
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

func convertAll[T any](kind Kind, elems []string) ([]T, error) {
	out := make([]T, 0, len(elems))

	for _, e := range elems {
		v, err := convert(kind, e)
		if err != nil {
			return nil, err
		}

		out = append(out, v.(T))
	}

	return out, nil
}
