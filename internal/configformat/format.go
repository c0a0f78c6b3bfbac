package configformat

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Format renders properties in Felix ".config" syntax, one property per line,
// keys sorted.
func Format(props map[string]any) (string, error) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	var sb strings.Builder

	for _, k := range keys {
		v, err := FormatValue(props[k])
		if err != nil {
			return "", fmt.Errorf("property %q: %w", k, err)
		}

		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(v)
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// FormatValue renders a single value including its type marker.
func FormatValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return quote(t), nil
	case int32:
		return typed(KindInteger, strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return typed(KindLong, strconv.FormatInt(t, 10)), nil
	case int:
		return typed(KindLong, strconv.Itoa(t)), nil
	case float32:
		return typed(KindFloat, strconv.FormatFloat(float64(t), 'g', -1, 32)), nil
	case float64:
		return typed(KindDouble, strconv.FormatFloat(t, 'g', -1, 64)), nil
	case int8:
		return typed(KindByte, strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return typed(KindShort, strconv.FormatInt(int64(t), 10)), nil
	case Char:
		return typed(KindChar, string(rune(t))), nil
	case bool:
		return typed(KindBoolean, strconv.FormatBool(t)), nil
	case []string:
		return list(0, t, func(s string) string { return s }), nil
	case []int32:
		return list(KindInteger, t, func(i int32) string { return strconv.FormatInt(int64(i), 10) }), nil
	case []int64:
		return list(KindLong, t, func(i int64) string { return strconv.FormatInt(i, 10) }), nil
	case []float32:
		return list(KindFloat, t, func(f float32) string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }), nil
	case []float64:
		return list(KindDouble, t, func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }), nil
	case []int8:
		return list(KindByte, t, func(i int8) string { return strconv.FormatInt(int64(i), 10) }), nil
	case []int16:
		return list(KindShort, t, func(i int16) string { return strconv.FormatInt(int64(i), 10) }), nil
	case []Char:
		return list(KindChar, t, func(c Char) string { return string(rune(c)) }), nil
	case []bool:
		return list(KindBoolean, t, strconv.FormatBool), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func typed(kind Kind, s string) string {
	return string(kind.Marker()) + quote(s)
}

// list renders a typed array; a zero kind writes no marker.
func list[T any](kind Kind, values []T, str func(T) string) string {
	var sb strings.Builder

	if kind != 0 {
		sb.WriteByte(kind.Marker())
	}

	sb.WriteByte('[')

	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(quote(str(v)))
	}

	sb.WriteByte(']')

	return sb.String()
}

func quote(s string) string {
	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
