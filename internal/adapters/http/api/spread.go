package api

import (
	"context"
	"net/http"

	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/model"
	"github.com/okian/roasboard/internal/domain/types"
)

// SpreadDependencies defines the interface for the revenue-vs-payout series.
type SpreadDependencies interface {
	Spread(ctx context.Context, c filter.Criteria) ([]model.InfluencerSummary, error)
}

// SpreadHandler handles spread requests.
type SpreadHandler struct {
	deps  SpreadDependencies
	query queryParser
}

// NewSpreadHandler creates a new spread handler.
func NewSpreadHandler(deps SpreadDependencies, q queryParser) *SpreadHandler {
	return &SpreadHandler{deps: deps, query: q}
}

// HandleGetSpread handles GET /spread requests.
func (h *SpreadHandler) HandleGetSpread(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_spread"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := h.query.criteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.Spread(r.Context(), c)
	if err != nil {
		writeDataError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewPoints(rows))
}
