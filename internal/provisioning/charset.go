package provisioning

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultCharset is used when no charset is given.
const DefaultCharset = "UTF-8"

// LookupEncoding resolves an IANA charset name such as "UTF-8" or
// "ISO-8859-1". An empty name selects DefaultCharset.
func LookupEncoding(charset string) (encoding.Encoding, error) {
	if charset == "" {
		charset = DefaultCharset
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	return enc, nil
}
