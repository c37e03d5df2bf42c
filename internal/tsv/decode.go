package tsv

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw spreadsheet bytes to a UTF-8 string.
// A UTF-8 or UTF-16 byte order mark selects that encoding and is removed.
// Without a BOM the bytes are taken as UTF-8, falling back to Windows-1252
// when they are not valid UTF-8.
func Decode(raw []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", fmt.Errorf("decode byte order mark: %w", err)
	}

	if utf8.Valid(out) {
		return string(out), nil
	}

	out, err = charmap.Windows1252.NewDecoder().Bytes(out)
	if err != nil {
		return "", fmt.Errorf("decode windows-1252: %w", err)
	}
	return string(out), nil
}

// ParseBytes decodes raw and parses the result.
func ParseBytes(raw []byte) (*Table, error) {
	text, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return Parse(text)
}
