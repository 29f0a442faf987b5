// Package api declares the /asset HTTP contracts and route registration.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/okian/assetlens/internal/adapters/http/swagger"
	service "github.com/okian/assetlens/internal/app"
	"github.com/okian/assetlens/internal/asset"
	"github.com/okian/assetlens/pkg/logger"
	"github.com/okian/assetlens/pkg/metrics"
)

// Response messages.
const (
	msgOK                = "查询成功"
	msgDistributionError = "获取个人资产分布数据失败"
	msgDetailError       = "获取资产分布详情数据失败"
	msgUnauthorized      = "未登录或非法访问"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Distribution returns the named top-level set.
	Distribution(ctx context.Context, set string) (asset.Distribution, error)

	// DistributionDetail returns the detail set of one category label.
	DistributionDetail(ctx context.Context, itemName string) (asset.Distribution, error)
}

// Server wires HTTP routes for the asset API.
type Server struct {
	deps    Dependencies
	token   string
	origins []string
	logger  logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithToken requires a matching bearer token on /asset routes. Empty disables the check.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithAllowedOrigins sets the CORS origins. Defaults to all origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:    deps,
		origins: []string{"*"},
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with every route attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}).Handler)

	r.Get("/healthz", MetricsMiddleware(handleHealth, "healthz"))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	swagger.Register(r)

	r.Route("/asset", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/distribution", MetricsMiddleware(s.distributionHandler(service.DefaultSet), "distribution"))
		r.Get("/distribution2", MetricsMiddleware(s.distributionHandler("asset2"), "distribution2"))
		r.Get("/distribution3", MetricsMiddleware(s.distributionHandler("asset3"), "distribution3"))
		r.Get("/distributionDetail", MetricsMiddleware(s.handleDistributionDetail, "distributionDetail"))
	})
	return r
}

// distributionHandler handles GET /asset/distribution{,2,3} for one backing set.
func (s *Server) distributionHandler(set string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := s.deps.Distribution(r.Context(), set)
		if err != nil {
			s.logger.Error(r.Context(), msgDistributionError, logger.String("set", set), logger.Error(err))
			writeFail(w, statusFor(err), msgDistributionError)
			return
		}
		writeOK(w, d)
	}
}

// handleDistributionDetail handles GET /asset/distributionDetail?itemName=.
func (s *Server) handleDistributionDetail(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get(asset.ParamItemName)
	d, err := s.deps.DistributionDetail(r.Context(), name)
	if err != nil {
		s.logger.Error(r.Context(), msgDetailError, logger.String("item_name", name), logger.Error(err))
		writeFail(w, statusFor(err), msgDetailError)
		return
	}
	writeOK(w, d)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// envelope is the {success, data, msg} body of every /asset response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Msg     string `json:"msg"`
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Msg: msgOK})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Msg: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
