package transformations

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// Base64Int decodes a base64 cell and parses the decoded text as a base-10
// integer. The result is re-rendered in canonical decimal form, so leading
// zeros and surrounding whitespace of the encoded value are not preserved.
type Base64Int struct{}

func (t *Base64Int) Transform(input string) (string, error) {
	n, err := DecodeBase64Int(input)
	if err != nil {
		return input, err
	}
	return n.String(), nil
}

// DecodeBase64Int decodes s as base64 and parses the result as an integer.
func DecodeBase64Int(s string) (*big.Int, error) {
	decoded, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}
	// Decoded bytes are read as Latin-1 so every byte maps to one rune.
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInteger, err)
	}
	return ParseIntPrefix(string(text))
}

// isStrWhiteSpace reports whether r is white space or a line terminator in
// the sense of ECMAScript's String.prototype.trim and parseInt.
func isStrWhiteSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// decodeBase64 accepts the standard alphabet with or without padding. The
// input is trimmed of surrounding white space, ASCII white space inside it is
// ignored.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimFunc(s, isStrWhiteSpace)
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s)

	enc := base64.StdEncoding
	if !strings.HasSuffix(clean, "=") && len(clean)%4 != 0 {
		enc = base64.RawStdEncoding
	}

	decoded, err := enc.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return decoded, nil
}

// ParseIntPrefix parses the leading base-10 integer of s. Leading white space
// (tab, vertical tab, form feed, line terminators, BOM and Unicode space
// separators) and a single sign are accepted, parsing stops at the first
// non-digit. Text without any leading digit yields ErrNotInteger.
func ParseIntPrefix(s string) (*big.Int, error) {
	rest := strings.TrimLeftFunc(s, isStrWhiteSpace)

	sign := ""
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		if rest[0] == '-' {
			sign = "-"
		}
		rest = rest[1:]
	}

	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}

	n, ok := new(big.Int).SetString(sign+rest[:end], 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return n, nil
}
