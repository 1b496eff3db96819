// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/roasboard/internal/adapters/repository"
	"github.com/okian/roasboard/internal/adapters/source"
	"github.com/okian/roasboard/internal/domain/filter"
	"github.com/okian/roasboard/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Query(ctx context.Context, c filter.Criteria) (*filter.View, error)
	TopN(ctx context.Context, c filter.Criteria, n int) ([]model.InfluencerSummary, error)
	Spread(ctx context.Context, c filter.Criteria) ([]model.InfluencerSummary, error)
	Export(ctx context.Context, c filter.Criteria, w io.Writer) error
	Options(ctx context.Context) (filter.Options, error)
	Reload(ctx context.Context) (*repository.Snapshot, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	defaultMinROAS float64
	topN           int
	maxTopLimit    int

	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	summaryHandler *SummaryHandler
	topHandler     *TopHandler
	spreadHandler  *SpreadHandler
	exportHandler  *ExportHandler
	optionsHandler *OptionsHandler
	reloadHandler  *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		defaultMinROAS: 1.0,
		topN:           10,
		maxTopLimit:    100,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxTopLimit < s.topN {
		s.maxTopLimit = s.topN
	}

	q := queryParser{defaultMinROAS: s.defaultMinROAS}
	s.healthHandler = NewHealthHandler(nil)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.summaryHandler = NewSummaryHandler(deps, q)
	s.topHandler = NewTopHandler(deps, q, s.topN, s.maxTopLimit)
	s.spreadHandler = NewSpreadHandler(deps, q)
	s.exportHandler = NewExportHandler(deps, q)
	s.optionsHandler = NewOptionsHandler(deps)
	s.reloadHandler = NewReloadHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/top", MetricsMiddleware(s.topHandler.HandleGetTop, "top"))
	mux.HandleFunc("/spread", MetricsMiddleware(s.spreadHandler.HandleGetSpread, "spread"))
	mux.HandleFunc("/export", MetricsMiddleware(s.exportHandler.HandleGetExport, "export"))
	mux.HandleFunc("/options", MetricsMiddleware(s.optionsHandler.HandleGetOptions, "options"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandlePostReload, "reload"))
}

// queryParser turns platform, category and min_roas query parameters into
// filter criteria.
type queryParser struct {
	defaultMinROAS float64
}

func (p queryParser) criteria(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	c := filter.Criteria{
		Platform: strings.TrimSpace(q.Get("platform")),
		Category: strings.TrimSpace(q.Get("category")),
		MinROAS:  p.defaultMinROAS,
	}
	if raw := strings.TrimSpace(q.Get("min_roas")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return filter.Criteria{}, errors.New("min_roas must be a non-negative number")
		}
		c.MinROAS = v
	}
	return c, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDataError reports a failure to produce the summary table. Load
// errors keep their kind as the response code.
func writeDataError(w http.ResponseWriter, op string, err error) {
	kind := source.Kind(err)
	switch kind {
	case "missing_source", "schema_mismatch", "invalid_input":
		writeError(w, http.StatusInternalServerError, kind, WrapKind(op, ErrUnavailable, err))
	case "canceled":
		writeError(w, http.StatusServiceUnavailable, kind, Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
