package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/model"
	"github.com/okian/roasboard/internal/domain/types"
)

// TopDependencies defines the interface for ranking operations.
type TopDependencies interface {
	TopN(ctx context.Context, c filter.Criteria, n int) ([]model.InfluencerSummary, error)
}

// TopHandler handles ROAS ranking requests.
type TopHandler struct {
	deps         TopDependencies
	query        queryParser
	defaultLimit int
	maxLimit     int
}

// NewTopHandler creates a new ranking handler.
func NewTopHandler(deps TopDependencies, q queryParser, defaultLimit, maxLimit int) *TopHandler {
	return &TopHandler{
		deps:         deps,
		query:        q,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// HandleGetTop handles GET /top?limit=N&platform=&category=&min_roas= requests.
func (h *TopHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_top"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrLimitExceeded))
		return
	}
	c, err := h.query.criteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	ranked, err := h.deps.TopN(r.Context(), c, n)
	if err != nil {
		writeDataError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewEntries(ranked))
}
