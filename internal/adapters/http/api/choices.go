package api

import (
	"context"
	"net/http"

	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/types"
)

// OptionsDependencies defines the interface for listing filter choices.
type OptionsDependencies interface {
	Options(ctx context.Context) (filter.Options, error)
}

// OptionsHandler handles filter choice requests.
type OptionsHandler struct {
	deps OptionsDependencies
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps OptionsDependencies) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

// HandleGetOptions handles GET /options requests.
func (h *OptionsHandler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	opts, err := h.deps.Options(r.Context())
	if err != nil {
		writeDataError(w, "api.get_options", err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewOptions(opts))
}
