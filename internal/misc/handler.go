package misc

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/2beens/metconstats/internal/telemetry/tracing"
	"github.com/2beens/metconstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck reports whether a dependency (db, redis, ...) is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	versionInfo  string
	healthChecks map[string]HealthCheck
}

func NewHandler(versionInfo string, healthChecks map[string]HealthCheck) *Handler {
	return &Handler{
		versionInfo:  versionInfo,
		healthChecks: healthChecks,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/myip", handler.handleGetMyIp).Methods("GET").Name("myip")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleGetMyIp(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.getMyIp")
	defer span.End()

	ip := pkg.ClientIP(r)
	if ip == "" {
		span.SetStatus(codes.Error, "failed to get user IP address")
		http.Error(w, "failed to get IP", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.ip", ip))
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteTextResponseOK(w, ip)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleHealth runs every health check and answers 503 if any of them fails.
func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(handler.healthChecks))
	for name := range handler.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(names)),
	}
	for _, name := range names {
		if err := handler.healthChecks[name](ctx); err != nil {
			log.Errorf("health check [%s]: %s", name, err)
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "marshal health response", http.StatusInternalServerError)
		return
	}

	statusCode := http.StatusOK
	if resp.Status != "ok" {
		span.SetStatus(codes.Error, "degraded")
		statusCode = http.StatusServiceUnavailable
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, statusCode)
}
