// Package source reads the three campaign CSV files into a model.Dataset.
//
// Files live under one directory with fixed names. Headers are matched
// case-insensitively after trimming, and an "id" column stands in for
// "influencer_id". Columns the core does not need are optional.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/okian/roasboard/internal/domain/model"
)

// Fixed file names under the data directory.
const (
	InfluencersFile = "influencers.csv"
	PayoutsFile     = "payouts.csv"
	TrackingFile    = "tracking_data.csv"
)

// Files lists the source files in load order.
var Files = []string{InfluencersFile, PayoutsFile, TrackingFile}

// RowError describes one rejected data row.
type RowError struct {
	Source string
	Line   int
	Err    error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Report summarizes a load.
type Report struct {
	// Rows counts accepted data rows per file name.
	Rows map[string]int
	// Rejected lists skipped rows; always empty in strict mode.
	Rejected []RowError
}

// Result is the output of a successful load.
type Result struct {
	Fingerprint string
	Dataset     model.Dataset
	Report      Report
}

// Loader reads campaign data from a file system.
type Loader struct {
	fsys   fs.FS
	strict bool
}

// NewLoader returns a Loader over fsys. Rows are strict by default.
func NewLoader(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{fsys: fsys, strict: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDirLoader returns a Loader over a directory on disk.
func NewDirLoader(dir string, opts ...Option) *Loader {
	return NewLoader(os.DirFS(dir), opts...)
}

// Strict reports whether malformed rows fail the load.
func (l *Loader) Strict() bool { return l.strict }

// Fingerprint identifies the current state of the source files from their
// names, sizes and modification times. Any change to a file changes it.
func (l *Loader) Fingerprint(ctx context.Context) (string, error) {
	h := sha256.New()
	for _, name := range Files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		info, err := fs.Stat(l.fsys, name)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrMissingSource, name, err)
		}
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(strconv.FormatInt(info.Size(), 10)))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(strconv.FormatInt(info.ModTime().UnixNano(), 10)))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load reads all three files. Any error aborts the load and no partial
// dataset is returned.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	fp, err := l.Fingerprint(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Fingerprint: fp,
		Report:      Report{Rows: make(map[string]int, len(Files))},
	}

	if res.Dataset.Influencers, err = l.loadInfluencers(ctx, &res.Report); err != nil {
		return nil, err
	}
	if res.Dataset.Payouts, err = l.loadPayouts(ctx, &res.Report); err != nil {
		return nil, err
	}
	if res.Dataset.Tracking, err = l.loadTracking(ctx, &res.Report); err != nil {
		return nil, err
	}
	return res, nil
}

// reject records a bad row, or returns it as an error in strict mode.
func (l *Loader) reject(rep *Report, name string, line int, err error) error {
	re := RowError{Source: name, Line: line, Err: err}
	if l.strict {
		return fmt.Errorf("%w: %s", ErrInvalidInput, re.Error())
	}
	rep.Rejected = append(rep.Rejected, re)
	return nil
}
