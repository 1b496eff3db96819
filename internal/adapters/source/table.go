package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/gocarina/gocsv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table is one CSV file with a normalized header and the source line of
// every data record.
type table struct {
	name    string
	records [][]string // records[0] is the header
	lines   []int      // lines[i] is the line of records[i+1]
}

// records implements gocsv.CSVReader over already-read records.
type records struct {
	rows [][]string
	pos  int
}

func (r *records) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *records) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if h == "id" {
		return "influencer_id"
	}
	return h
}

// readTable reads name from the loader's file system and checks that every
// required column is present. Records whose field count differs from the
// header are rejected.
func (l *Loader) readTable(ctx context.Context, rep *Report, name string, required []string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingSource, name, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: empty file", ErrSchemaMismatch, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: header: %w", ErrInvalidInput, name, err)
	}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		header[i] = normalizeHeader(h)
		seen[header[i]] = true
	}
	var missing []string
	for _, col := range required {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s: missing column(s) %s", ErrSchemaMismatch, name, strings.Join(missing, ", "))
	}

	t := &table{name: name, records: [][]string{header}}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.StartLine
			}
			if rerr := l.reject(rep, name, line, err); rerr != nil {
				return nil, rerr
			}
			continue
		}
		line, _ := r.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != len(header) {
			if rerr := l.reject(rep, name, line, fmt.Errorf("expected %d fields, got %d", len(header), len(rec))); rerr != nil {
				return nil, rerr
			}
			continue
		}
		t.records = append(t.records, rec)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

// decode maps the data records onto out, a pointer to a slice of structs
// with csv tags.
func (t *table) decode(out any) error {
	if len(t.records) < 2 {
		return nil
	}
	if err := gocsv.UnmarshalCSV(&records{rows: t.records}, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, t.name, err)
	}
	return nil
}
