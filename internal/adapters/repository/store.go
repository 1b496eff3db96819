// Package repository memoizes computed summary tables keyed on the
// fingerprint of the source files they were built from.
package repository

import (
	"context"
	"time"

	"github.com/okian/roasboard/internal/domain/model"
)

// Snapshot is one computed summary table. Rows are read-only once stored.
type Snapshot struct {
	Fingerprint   string
	Rows          []model.InfluencerSummary
	SourceRows    map[string]int
	Rejected      int
	LoadedAt      time.Time
	BuildDuration time.Duration
}

// Store provides access to cached snapshots.
type Store interface {
	// Get returns the snapshot for fingerprint or ErrNotFound.
	Get(ctx context.Context, fingerprint string) (*Snapshot, error)
	// Put stores a snapshot under its fingerprint, evicting the oldest
	// entry when full.
	Put(ctx context.Context, snap *Snapshot) error
	// Invalidate drops every snapshot.
	Invalidate(ctx context.Context)
	// Len returns the number of cached snapshots.
	Len(ctx context.Context) int
}
