package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/roasboard/internal/adapters/export"
	"github.com/okian/roasboard/internal/domain/filter"
)

// ExportDependencies defines the interface for CSV export.
type ExportDependencies interface {
	Export(ctx context.Context, c filter.Criteria, w io.Writer) error
}

// ExportHandler handles CSV download requests.
type ExportHandler struct {
	deps  ExportDependencies
	query queryParser
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies, q queryParser) *ExportHandler {
	return &ExportHandler{deps: deps, query: q}
}

// HandleGetExport handles GET /export requests. The body is rendered fully
// before headers are sent so failures still produce a JSON error.
func (h *ExportHandler) HandleGetExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := h.query.criteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	var buf bytes.Buffer
	if err := h.deps.Export(r.Context(), c, &buf); err != nil {
		writeDataError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
