package decoder

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const utf8BOM = "\uFEFF"

// Row is an ordered sequence of cells.
type Row []string

// Document holds every row of a CSV file; Rows[0] is the header.
type Document struct {
	Rows []Row

	// BOM records whether the input started with a UTF-8 byte order mark.
	BOM bool
}

// Header returns the header row, or nil for an empty document.
func (d *Document) Header() Row {
	if len(d.Rows) == 0 {
		return nil
	}
	return d.Rows[0]
}

// Data returns the rows after the header.
func (d *Document) Data() []Row {
	if len(d.Rows) < 2 {
		return nil
	}
	return d.Rows[1:]
}

// codec converts between file bytes and CSV documents.
type codec struct {
	enc        encoding.Encoding
	comma      rune
	lazyQuotes bool
	crlf       bool
}

func (c codec) isUTF8() bool { return c.enc == unicode.UTF8 }

// readFile loads the raw bytes of path and converts them to UTF-8.
func (c codec) readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	if c.isUTF8() {
		return raw, nil
	}
	text, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: fmt.Errorf("decode text: %w", err)}
	}
	return text, nil
}

// parse splits UTF-8 text into rows. The first row is always the header and
// rows may have differing widths.
func (c codec) parse(text []byte) (*Document, error) {
	doc := &Document{}
	if bytes.HasPrefix(text, []byte(utf8BOM)) {
		text = text[len(utf8BOM):]
		doc.BOM = true
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = c.comma
	r.LazyQuotes = c.lazyQuotes
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	doc.Rows = make([]Row, len(records))
	for i, rec := range records {
		doc.Rows[i] = rec
	}
	return doc, nil
}

// load reads and parses path.
func (c codec) load(path string) (*Document, error) {
	text, err := c.readFile(path)
	if err != nil {
		return nil, err
	}
	return c.parse(text)
}

// marshal renders doc as CSV in the configured encoding.
func (c codec) marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if doc.BOM && c.isUTF8() {
		buf.WriteString(utf8BOM)
	}

	w := csv.NewWriter(&buf)
	w.Comma = c.comma
	w.UseCRLF = c.crlf
	for _, row := range doc.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	if c.isUTF8() {
		return buf.Bytes(), nil
	}
	out, err := c.enc.NewEncoder().Bytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	return out, nil
}

// writeFile replaces path with the rendered document in a single write.
func (c codec) writeFile(path string, doc *Document) error {
	data, err := c.marshal(doc)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadHeader returns the header row of the CSV file at path, read with the
// given encoding label (empty means utf-8) and field delimiter (0 means ',').
func ReadHeader(path, encodingName string, comma rune) (Row, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	if comma == 0 {
		comma = ','
	}
	if err := checkComma(comma); err != nil {
		return nil, err
	}
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if err := checkRegularFile(path); err != nil {
		return nil, err
	}
	doc, err := codec{enc: enc, comma: comma, lazyQuotes: true}.load(path)
	if err != nil {
		return nil, err
	}
	return doc.Header(), nil
}

func checkRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &IOError{Op: "stat", Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &IOError{Op: "stat", Path: path, Err: ErrNotRegularFile}
	}
	return nil
}
