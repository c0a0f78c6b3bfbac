package configformat

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind identifies the value type selected by a type marker.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindString
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindByte
	KindShort
	KindChar
	KindBoolean
)

// Char is a single character value (marker C), kept apart from the int32
// values of marker I.
type Char rune

var markers = map[byte]Kind{
	'T': KindString,
	'I': KindInteger,
	'L': KindLong,
	'F': KindFloat,
	'D': KindDouble,
	'X': KindByte,
	'S': KindShort,
	'C': KindChar,
	'B': KindBoolean,
}

// KindForMarker returns the kind for a type marker. Lower case markers denote
// primitive types and map to the same kinds.
func KindForMarker(m byte) (Kind, bool) {
	if m >= 'a' && m <= 'z' {
		m -= 'a' - 'A'
	}

	k, ok := markers[m]

	return k, ok
}

// Marker returns the upper case type marker of the kind.
func (k Kind) Marker() byte {
	for m, kind := range markers {
		if kind == k {
			return m
		}
	}

	return 0
}
