// Package configformat reads and writes OSGi configuration properties in the
// Apache Felix ".config" syntax used inside provisioning documents.
//
// Each property is written on its own line:
//
//	key="plain string"
//	port=I"8080"
//	enabled=B"true"
//	hosts=["a.example.com", "b.example.com"]
//	levels=L( "1", "2" )
//
// An optional type marker precedes the value:
//
//	T string   I int32    L int64   F float32   D float64
//	X int8     S int16    C Char    B bool
//
// Values without a marker are strings. Arrays "[...]" and collections
// "(...)" both decode to typed Go slices and may span several lines.
package configformat
