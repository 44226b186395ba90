package decoder

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is used when Options.Encoding is empty.
const DefaultEncoding = "utf-8"

// Policy decides what happens to a row when one of its cells cannot be
// transformed.
type Policy string

const (
	// PolicyKeep logs a warning and keeps the original cell value.
	PolicyKeep Policy = "keep"
	// PolicyDropRow logs a warning and leaves the whole row out of the output.
	PolicyDropRow Policy = "drop-row"
	// PolicyFail aborts the run without writing any output.
	PolicyFail Policy = "fail"
)

// ParsePolicy converts a policy name into a Policy. An empty name selects
// PolicyKeep.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return PolicyKeep, nil
	case PolicyKeep, PolicyDropRow, PolicyFail:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown on-error policy %q (want keep, drop-row or fail)", ErrInvalidOptions, name)
	}
}

// Options configures a Decoder.
type Options struct {
	// FilePath is the CSV file to read.
	FilePath string

	// ColumnNames lists the header names whose cells are transformed.
	ColumnNames []string

	// Encoding is the WHATWG label of the input and output text encoding
	// (default: utf-8).
	Encoding string

	// OnError selects the cell failure policy (default: keep).
	OnError Policy

	// Comma is the field delimiter (default: ',').
	Comma rune

	// LazyQuotes relaxes quote handling while parsing.
	LazyQuotes bool

	// CRLF terminates output lines with \r\n instead of \n.
	CRLF bool

	// OutputPath overrides the derived output path.
	OutputPath string

	// Logger receives warnings and the completion summary.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.OnError == "" {
		o.OnError = PolicyKeep
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

func (o *Options) validate() (encoding.Encoding, error) {
	if strings.TrimSpace(o.FilePath) == "" {
		return nil, fmt.Errorf("%w: file path is required", ErrInvalidOptions)
	}
	if len(o.ColumnNames) == 0 {
		return nil, fmt.Errorf("%w: at least one column name is required", ErrInvalidOptions)
	}
	policy, err := ParsePolicy(string(o.OnError))
	if err != nil {
		return nil, err
	}
	o.OnError = policy
	if err := checkComma(o.Comma); err != nil {
		return nil, err
	}
	return lookupEncoding(o.Encoding)
}

func checkComma(r rune) error {
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("%w: invalid field delimiter %q", ErrInvalidOptions, r)
	}
	return nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidOptions, name)
	}
	return enc, nil
}
