package api

import (
	"context"
	"net/http"

	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/types"
)

// SummaryDependencies defines the interface for summary queries.
type SummaryDependencies interface {
	Query(ctx context.Context, c filter.Criteria) (*filter.View, error)
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps  SummaryDependencies
	query queryParser
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies, q queryParser) *SummaryHandler {
	return &SummaryHandler{deps: deps, query: q}
}

// HandleGetSummary handles GET /summary?platform=&category=&min_roas= requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := h.query.criteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.Query(r.Context(), c)
	if err != nil {
		writeDataError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.View{
		Fingerprint: view.Fingerprint,
		Rows:        types.NewRows(view.Rows),
		Totals:      types.NewTotals(view.Totals),
	})
}
