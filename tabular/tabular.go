package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrParse is returned for a selected cell that is not a finite number.
	ErrParse = errors.New("tabular: parse error")

	// ErrColumn is returned when a selected column is missing from the
	// header or selected twice.
	ErrColumn = errors.New("tabular: unknown column")

	// ErrEmpty is returned when the table has no data rows.
	ErrEmpty = errors.New("tabular: no data rows")
)

// ParseError describes a cell that could not be parsed. It matches ErrParse
// under errors.Is.
type ParseError struct {
	// Row is the 1-based data row, not counting the header.
	Row int
	// Column is the header name of the cell.
	Column string
	Value  string
	cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tabular: row %d, column %q: cannot parse %q", e.Row, e.Column, e.Value)
}

func (e *ParseError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.cause}
}

// Table is a decoded feature matrix with the names of its columns.
type Table struct {
	Columns []string
	Data    *mat.Dense
}

// Read decodes a table from r. ctx is checked between records.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*Table, error) {
	o := applyOptions(opts)

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("tabular: header: %w", err)
	}
	header = cloneTrimmed(header)

	index, names, err := selectColumns(header, o.columns)
	if err != nil {
		return nil, err
	}

	var data []float64
	rows := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tabular: %w", err)
		}
		rows++
		for j, c := range index {
			raw := strings.TrimSpace(rec[c])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &ParseError{Row: rows, Column: names[j], Value: raw, cause: err}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ParseError{Row: rows, Column: names[j], Value: raw}
			}
			data = append(data, v)
		}
	}
	if rows == 0 {
		return nil, ErrEmpty
	}

	return &Table{
		Columns: names,
		Data:    mat.NewDense(rows, len(index), data),
	}, nil
}

func cloneTrimmed(rec []string) []string {
	out := make([]string, len(rec))
	for i, s := range rec {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// selectColumns maps the requested names to header positions. With no
// names every column is selected.
func selectColumns(header, names []string) ([]int, []string, error) {
	if len(names) == 0 {
		index := make([]int, len(header))
		for i := range index {
			index[i] = i
		}
		return index, header, nil
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	index := make([]int, len(names))
	seen := make(map[string]bool, len(names))
	for j, name := range names {
		i, ok := pos[name]
		if !ok {
			return nil, nil, fmt.Errorf("%w %q", ErrColumn, name)
		}
		if seen[name] {
			return nil, nil, fmt.Errorf("%w %q selected twice", ErrColumn, name)
		}
		seen[name] = true
		index[j] = i
	}
	return index, names, nil
}
