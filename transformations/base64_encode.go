package transformations

import (
	"encoding/base64"
	"strings"
)

// IntBase64 is the inverse of Base64Int: it parses the leading integer of the
// cell and encodes its canonical decimal form as padded base64.
type IntBase64 struct{}

func (t *IntBase64) Transform(input string) (string, error) {
	n, err := ParseIntPrefix(strings.TrimSpace(input))
	if err != nil {
		return input, err
	}
	return base64.StdEncoding.EncodeToString([]byte(n.String())), nil
}
