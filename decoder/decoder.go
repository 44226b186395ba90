// Package decoder rewrites selected CSV columns from base64 text to integers.
//
// Usage:
//
//	d, err := decoder.New(decoder.Options{
//		FilePath:    "./data.csv",
//		ColumnNames: []string{"encoded_id", "encoded_value"},
//	})
//	if err != nil {
//		return err
//	}
//	report, err := d.Process(ctx)
//
// The decoded file is written next to the input as data_opts.csv. Cells that
// do not decode are reported as warnings and, by default, left untouched.
package decoder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fs0414/csv-nodeid-decoder/transformations"
)

// CellWarning describes a cell that could not be transformed.
type CellWarning struct {
	// Row is the 1-based line of the row in the file, the header being row 1.
	Row    int
	Column string
	Value  string
	Err    error
}

func (w CellWarning) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", w.Row, w.Column, w.Err)
}

// Outcome is the result of transforming a single cell: either Decoded with
// the new Value, or unchanged with a Warning.
type Outcome struct {
	Value   string
	Decoded bool
	Warning *CellWarning
}

// Report summarizes a successful run.
type Report struct {
	OutputPath string
	// Columns lists the requested columns that were found, in request order.
	Columns []string
	// Missing lists the requested columns absent from the header.
	Missing []string
	// Rows is the number of data rows written, header excluded.
	Rows int
	// Dropped is the number of rows left out under PolicyDropRow.
	Dropped  int
	Decoded  int
	Warnings []CellWarning
}

// Decoder transforms the selected columns of one CSV file.
type Decoder struct {
	opts      Options
	codec     codec
	transform transformations.Transformation
	suffix    string
	verb      string
	logger    *slog.Logger
	stage     Stage
}

// New creates a Decoder that base64-decodes cells into integers.
func New(opts Options) (*Decoder, error) {
	return newProcessor(opts, transformations.TypeBase64Int, "_opts", "decode")
}

// NewEncoder creates a Decoder running the inverse transformation: integer
// cells are base64-encoded and written to <stem>_b64.csv.
func NewEncoder(opts Options) (*Decoder, error) {
	return newProcessor(opts, transformations.TypeIntBase64, "_b64", "encode")
}

func newProcessor(opts Options, transformType, suffix, verb string) (*Decoder, error) {
	opts.defaults()
	enc, err := opts.validate()
	if err != nil {
		return nil, err
	}
	t, err := transformations.BuildTransformation(transformType)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		opts: opts,
		codec: codec{
			enc:        enc,
			comma:      opts.Comma,
			lazyQuotes: opts.LazyQuotes,
			crlf:       opts.CRLF,
		},
		transform: t,
		suffix:    suffix,
		verb:      verb,
		logger:    opts.Logger,
	}, nil
}

// Decode base64-decodes columnNames of the file at filePath with default
// options and writes the result next to it. Every error, invalid arguments
// included, is a *ProcessError.
func Decode(ctx context.Context, filePath string, columnNames []string) (*Report, error) {
	d, err := New(Options{FilePath: filePath, ColumnNames: columnNames})
	if err != nil {
		return nil, &ProcessError{Stage: StageValidating, Err: err}
	}
	return d.Process(ctx)
}

// Stage returns the stage the decoder is in.
func (d *Decoder) Stage() Stage { return d.stage }

// OutputPath returns the file Process writes to.
func (d *Decoder) OutputPath() string {
	if d.opts.OutputPath != "" {
		return d.opts.OutputPath
	}
	return derivePath(d.opts.FilePath, d.suffix)
}

func (d *Decoder) enter(s Stage) {
	d.stage = s
	d.logger.Debug("csv stage", "stage", s.String(), "file", d.opts.FilePath)
}

// Process runs the whole read, transform and write cycle. Any fatal error is
// returned as a *ProcessError and no output file is written.
func (d *Decoder) Process(ctx context.Context) (*Report, error) {
	d.stage = StageIdle
	report, err := d.process(ctx)
	if err != nil {
		failed := d.stage
		d.enter(StageFailed)
		return nil, &ProcessError{Stage: failed, Err: err}
	}
	d.enter(StageDone)

	d.logger.Info("processing complete",
		"output", report.OutputPath,
		"columns", strings.Join(report.Columns, ", "),
		"rows", report.Rows,
	)
	return report, nil
}

func (d *Decoder) process(ctx context.Context) (*Report, error) {
	path := d.opts.FilePath

	d.enter(StageValidating)
	if err := checkRegularFile(path); err != nil {
		return nil, err
	}

	d.enter(StageReading)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := d.codec.readFile(path)
	if err != nil {
		return nil, err
	}

	d.enter(StageParsing)
	doc, err := d.codec.parse(text)
	if err != nil {
		return nil, err
	}

	d.enter(StageResolvingColumns)
	selection, missing := ResolveColumns(doc.Header(), d.opts.ColumnNames)
	for _, name := range missing {
		d.logger.Warn("column not found", "column", name, "file", path)
	}
	if len(selection) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumnsFound, strings.Join(d.opts.ColumnNames, ", "))
	}

	d.enter(StageTransforming)
	report := &Report{
		OutputPath: d.OutputPath(),
		Columns:    selection.Names(),
		Missing:    missing,
	}
	out := &Document{BOM: doc.BOM, Rows: make([]Row, 0, len(doc.Rows))}
	out.Rows = append(out.Rows, doc.Header())
	for i, row := range doc.Data() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		newRow, keep, err := d.transformRow(row, i+2, selection, report)
		if err != nil {
			return nil, err
		}
		if !keep {
			report.Dropped++
			continue
		}
		out.Rows = append(out.Rows, newRow)
	}
	report.Rows = len(out.Rows) - 1

	d.enter(StageWriting)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.codec.writeFile(report.OutputPath, out); err != nil {
		return nil, err
	}
	return report, nil
}

// transformRow returns a copy of row with the selected cells transformed and
// whether the row belongs in the output. line is the 1-based file row.
func (d *Decoder) transformRow(row Row, line int, selection ColumnSelection, report *Report) (Row, bool, error) {
	newRow := make(Row, len(row))
	copy(newRow, row)

	keep := true
	for _, col := range selection {
		if col.Index >= len(row) || row[col.Index] == "" {
			continue
		}
		outcome := d.transformCell(row[col.Index], line, col.Name)
		if outcome.Decoded {
			newRow[col.Index] = outcome.Value
			report.Decoded++
			continue
		}

		w := *outcome.Warning
		report.Warnings = append(report.Warnings, w)
		switch d.opts.OnError {
		case PolicyFail:
			return nil, false, fmt.Errorf("%w: %v", ErrCellDecode, w)
		case PolicyDropRow:
			d.logger.Warn("failed to "+d.verb+" cell, dropping row", "row", w.Row, "column", w.Column, "error", w.Err)
			keep = false
		default:
			d.logger.Warn("failed to "+d.verb+" cell, keeping original value", "row", w.Row, "column", w.Column, "error", w.Err)
		}
	}
	return newRow, keep, nil
}

func (d *Decoder) transformCell(value string, line int, column string) Outcome {
	v, err := d.transform.Transform(value)
	if err != nil {
		return Outcome{
			Value:   value,
			Warning: &CellWarning{Row: line, Column: column, Value: value, Err: err},
		}
	}
	return Outcome{Value: v, Decoded: true}
}
