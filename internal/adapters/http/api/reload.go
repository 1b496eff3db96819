package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/roasboard/internal/adapters/repository"
)

// ReloadDependencies defines the interface for forced reloads.
type ReloadDependencies interface {
	Reload(ctx context.Context) (*repository.Snapshot, error)
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

type reloadResponse struct {
	Fingerprint string         `json:"fingerprint"`
	Rows        int            `json:"rows"`
	Rejected    int            `json:"rejected"`
	SourceRows  map[string]int `json:"source_rows"`
	LoadedAt    string         `json:"loaded_at"`
}

// HandlePostReload handles POST /reload requests.
func (h *ReloadHandler) HandlePostReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Reload(r.Context())
	if err != nil {
		writeDataError(w, "api.post_reload", err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Fingerprint: snap.Fingerprint,
		Rows:        len(snap.Rows),
		Rejected:    snap.Rejected,
		SourceRows:  snap.SourceRows,
		LoadedAt:    snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}
