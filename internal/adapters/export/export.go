// Package export serializes a filtered summary view as CSV for download.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/okian/roasboard/internal/domain/model"
)

const (
	// FileName is the suggested download name.
	FileName = "filtered_influencer_data.csv"
	// ContentType is the media type of the export.
	ContentType = "text/csv; charset=utf-8"
)

// Header is the fixed column order of the export.
var Header = []string{"name", "platform", "category", "revenue", "total_payout", "ROAS"}

// Row is one exported line. Missing payouts and undefined ROAS are empty.
type Row struct {
	Name        string `csv:"name"`
	Platform    string `csv:"platform"`
	Category    string `csv:"category"`
	Revenue     string `csv:"revenue"`
	TotalPayout string `csv:"total_payout"`
	ROAS        string `csv:"ROAS"`
}

// Rows flattens summary rows into export rows, preserving order.
func Rows(in []model.InfluencerSummary) []Row {
	out := make([]Row, len(in))
	for i, s := range in {
		r := Row{
			Name:     s.Name,
			Platform: s.Platform,
			Category: s.Category,
			Revenue:  s.Revenue.String(),
		}
		if s.TotalPayout != nil {
			r.TotalPayout = s.TotalPayout.String()
		}
		if s.ROASDefined {
			r.ROAS = strconv.FormatFloat(s.ROAS, 'f', -1, 64)
		}
		out[i] = r
	}
	return out
}

// WriteCSV writes the header and one line per summary row to w.
func WriteCSV(w io.Writer, in []model.InfluencerSummary) error {
	rows := Rows(in)
	if len(rows) == 0 {
		// An empty view still carries its header row.
		cw := gocsv.DefaultCSVWriter(w)
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("export: header: %w", err)
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("export: header: %w", err)
		}
		return nil
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Bytes renders the export in memory.
func Bytes(in []model.InfluencerSummary) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
