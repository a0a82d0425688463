package metcons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/metconstats/internal/heatmap"
	"github.com/2beens/metconstats/internal/middleware"
	"github.com/2beens/metconstats/internal/telemetry/metrics"
	"github.com/2beens/metconstats/internal/telemetry/tracing"
	"github.com/2beens/metconstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=metcons_test

type heatmapService interface {
	Heatmap(ctx context.Context, q HeatmapQuery) (*HeatmapResponse, error)
	Detail(ctx context.Context, q DetailQuery) (heatmap.Detail, bool, error)
}

type Handler struct {
	service heatmapService
}

func NewHandler(service heatmapService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	metconsRouter := mainRouter.PathPrefix("/metcons").Subrouter()
	metconsRouter.
		HandleFunc("/users/{userId}/heatmap", h.HandleHeatmap).
		Methods("GET", "OPTIONS").Name("metcons-heatmap")
	metconsRouter.
		HandleFunc("/users/{userId}/heatmap/cell", h.HandleDetail).
		Methods("GET", "OPTIONS").Name("metcons-heatmap-cell")

	if rateLimiter != nil {
		metconsRouter.Use(middleware.RateLimit(rateLimiter, "metcons-heatmap", allowedPerMin, metricsManager))
	}
}

// HandleHeatmap returns the heatmap table of the user's latest program.
// Query params: metric (percentile | rpe | quality | heartrate), time (chips, e.g. 1-5,20+), range.
func (h *Handler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.metcons.heatmap")
	defer span.End()

	userID, err := userIDFromRequest(r)
	if err != nil {
		span.SetStatus(codes.Error, "invalid-user-id")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	metric, dateRange, ok := parseMetricAndRange(w, r)
	if !ok {
		span.SetStatus(codes.Error, "invalid-query")
		return
	}

	chips := heatmap.ParseChips(r.URL.Query().Get("time"))
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("metric", string(metric)),
	)

	resp, err := h.service.Heatmap(ctx, HeatmapQuery{
		UserID: userID,
		Metric: metric,
		Chips:  chips,
		Range:  dateRange,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeServiceError(w, userID, err)
		return
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal heatmap for user %d: %s", userID, err)
		http.Error(w, "marshal response error", http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, string(respJson))
}

// HandleDetail returns the detail of one cell. With only exercise set, it describes
// the row rollup; with only domain set, the column rollup.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.metcons.detail")
	defer span.End()

	userID, err := userIDFromRequest(r)
	if err != nil {
		span.SetStatus(codes.Error, "invalid-user-id")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	metric, dateRange, ok := parseMetricAndRange(w, r)
	if !ok {
		span.SetStatus(codes.Error, "invalid-query")
		return
	}

	exercise := r.URL.Query().Get("exercise")
	domain := r.URL.Query().Get("domain")
	if exercise == "" && domain == "" {
		http.Error(w, "exercise or domain must be set", http.StatusBadRequest)
		return
	}

	detail, found, err := h.service.Detail(ctx, DetailQuery{
		UserID:   userID,
		Exercise: exercise,
		Domain:   domain,
		Metric:   metric,
		Range:    dateRange,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeServiceError(w, userID, err)
		return
	}
	if !found {
		http.Error(w, "no data for the selected cell", http.StatusNotFound)
		return
	}

	respJson, err := json.Marshal(detail)
	if err != nil {
		log.Errorf("marshal heatmap detail for user %d: %s", userID, err)
		http.Error(w, "marshal response error", http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, string(respJson))
}

func userIDFromRequest(r *http.Request) (int, error) {
	userID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		return 0, err
	}
	if userID <= 0 {
		return 0, errors.New("user id must be positive")
	}
	return userID, nil
}

func parseMetricAndRange(w http.ResponseWriter, r *http.Request) (heatmap.Metric, Range, bool) {
	metric, err := heatmap.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}

	dateRange, err := ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}

	return metric, dateRange, true
}

func writeServiceError(w http.ResponseWriter, userID int, err error) {
	switch {
	case errors.Is(err, ErrProgramNotFound):
		http.Error(w, "no program found for user", http.StatusNotFound)
	case errors.Is(err, heatmap.ErrDuplicateCell):
		log.Errorf("inconsistent heatmap data for user %d: %s", userID, err)
		http.Error(w, "inconsistent heatmap data", http.StatusInternalServerError)
	default:
		log.Errorf("get heatmap for user %d: %s", userID, err)
		http.Error(w, "failed to get heatmap", http.StatusInternalServerError)
	}
}
