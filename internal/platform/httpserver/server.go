package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	erpservice "erpinterno/contexts/erp/erp-service"
	httptransport "erpinterno/contexts/erp/erp-service/transport/http"
	_ "erpinterno/internal/platform/httpserver/docs"
	"erpinterno/internal/shared/apperrors"
	"erpinterno/internal/shared/envelope"
	"erpinterno/internal/shared/logging"
	"erpinterno/internal/shared/tenant"
	"erpinterno/internal/shared/validation"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
	maxBodyBytes      = 1 << 20
)

// Options carries the process settings the server needs. Zero values fall
// back to development defaults.
type Options struct {
	Logger         *slog.Logger
	Addr           string
	InternalKey    string
	AllowedOrigins []string
	Production     bool
	Environment    string
	Version        string
	Database       Pinger
	Registry       *prometheus.Registry
}

type Server struct {
	mux      *http.ServeMux
	handler  http.Handler
	logger   *slog.Logger
	addr     string
	module   erpservice.Module
	gate     Gate
	builder  envelope.Builder
	health   healthReporter
	registry *prometheus.Registry
}

func New(module erpservice.Module, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	builder := envelope.NewBuilder(opts.Version)

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		module: module,
		gate: Gate{
			InternalKey:    opts.InternalKey,
			AllowedOrigins: opts.AllowedOrigins,
			Production:     opts.Production,
			Builder:        builder,
			Logger:         logger,
		},
		builder: builder,
		health: healthReporter{
			database:    opts.Database,
			version:     builder.Version,
			environment: opts.Environment,
		},
		registry: registry,
	}
	s.registerRoutes()
	s.handler = s.middleware(s.mux)
	return s
}

// Handler returns the full middleware chain in front of the route table.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) middleware(next http.Handler) http.Handler {
	metrics := newHTTPMetrics(s.registry)

	h := gziphandler.GzipHandler(next)
	h = s.gate.Middleware(h)
	h = recoverer(s.builder, s.logger)(h)
	h = accessLog(s.logger, slowRequestThreshold)(h)
	h = metrics.Middleware(s.mux)(h)
	return s.corsLayer(h)
}

// corsLayer answers preflights. rs/cors reads an empty origin list as allow
// all, so it is only mounted when origins are configured; a production
// server without origins rejects every preflight instead.
func (s *Server) corsLayer(next http.Handler) http.Handler {
	if len(s.gate.AllowedOrigins) > 0 {
		return cors.New(cors.Options{
			AllowedOrigins: s.gate.AllowedOrigins,
			AllowedMethods: allowedMethods,
			AllowedHeaders: allowedHeaders,
		}).Handler(next)
	}
	if !s.gate.Production {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			fillRequestIDs(r.Header)
			s.gate.reject(w, r, errCORSNotConfigured)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{DisableCompression: true}))
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	h := s.module.Handler
	s.mux.HandleFunc("GET /api/empresas", list(s, h.ListCompaniesHandler))
	s.mux.HandleFunc("POST /api/empresas", create(s, h.CreateCompanyHandler))
	s.mux.HandleFunc("GET /api/clientes", list(s, h.ListClientsHandler))
	s.mux.HandleFunc("POST /api/clientes", create(s, h.CreateClientHandler))
	s.mux.HandleFunc("GET /api/projetos", list(s, h.ListProjectsHandler))
	s.mux.HandleFunc("POST /api/projetos", create(s, h.CreateProjectHandler))
	s.mux.HandleFunc("GET /api/projetos/kanban", view(s, h.ProjectKanbanHandler))
	s.mux.HandleFunc("GET /api/documentos", list(s, h.ListDocumentsHandler))
	s.mux.HandleFunc("POST /api/documentos", create(s, h.CreateDocumentHandler))
	s.mux.HandleFunc("GET /api/orcamentos", list(s, h.ListBudgetsHandler))
	s.mux.HandleFunc("POST /api/orcamentos", create(s, h.CreateBudgetHandler))
	s.mux.HandleFunc("GET /api/orcamentos/kanban", view(s, h.BudgetKanbanHandler))
	s.mux.HandleFunc("GET /api/status-projetos", list(s, h.ListProjectStatusesHandler))
	s.mux.HandleFunc("POST /api/status-projetos", create(s, h.CreateProjectStatusHandler))
	s.mux.HandleFunc("GET /api/categorias-documentos", list(s, h.ListDocumentCategoriesHandler))
	s.mux.HandleFunc("POST /api/categorias-documentos", create(s, h.CreateDocumentCategoryHandler))
	s.mux.HandleFunc("GET /api/metrics", s.handleDashboard)
}

func list[D any](s *Server, fn func(context.Context, tenant.RequestContext, url.Values) (httptransport.ListResponse[D], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, rc, ok := s.requestContext(w, r)
		if !ok {
			return
		}
		resp, err := fn(ctx, rc, r.URL.Query())
		if err != nil {
			s.writeError(w, ctx, rc, err)
			return
		}
		pagination := envelope.NewPagination(resp.Page, resp.Limit, resp.Total)
		writeJSON(w, http.StatusOK, s.builder.Success(resp.Items, rc, &pagination))
	}
}

func create[Req any, D any](s *Server, fn func(context.Context, tenant.RequestContext, Req) (D, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, rc, ok := s.requestContext(w, r)
		if !ok {
			return
		}
		var req Req
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := validation.DecodeJSON(r.Body, &req); err != nil {
			s.writeError(w, ctx, rc, err)
			return
		}
		resp, err := fn(ctx, rc, req)
		if err != nil {
			s.writeError(w, ctx, rc, err)
			return
		}
		writeJSON(w, http.StatusOK, s.builder.Success(resp, rc, nil))
	}
}

func view[D any](s *Server, fn func(context.Context, tenant.RequestContext, url.Values) (D, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, rc, ok := s.requestContext(w, r)
		if !ok {
			return
		}
		resp, err := fn(ctx, rc, r.URL.Query())
		if err != nil {
			s.writeError(w, ctx, rc, err)
			return
		}
		writeJSON(w, http.StatusOK, s.builder.Success(resp, rc, nil))
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, rc, ok := s.requestContext(w, r)
	if !ok {
		return
	}
	resp, err := s.module.Handler.DashboardHandler(ctx, rc)
	if err != nil {
		s.writeError(w, ctx, rc, err)
		return
	}
	writeJSON(w, http.StatusOK, s.builder.Success(resp, rc, nil))
}

// requestContext runs the tenant extractor and attaches the result to the
// request context for logging.
func (s *Server) requestContext(w http.ResponseWriter, r *http.Request) (context.Context, tenant.RequestContext, bool) {
	rc, err := tenant.FromHeaders(r.Header)
	if err != nil {
		partial := tenant.Partial(r.Header)
		s.writeError(w, logging.WithRequest(r.Context(), partial), partial, err)
		return nil, tenant.RequestContext{}, false
	}
	return logging.WithRequest(r.Context(), rc), rc, true
}

// writeError renders err as an envelope and logs it once: warn for client
// errors, error for server errors.
func (s *Server) writeError(w http.ResponseWriter, ctx context.Context, rc tenant.RequestContext, err error) {
	logger := logging.FromContext(ctx, s.logger)
	if fields, ok := validation.AsFieldErrors(err); ok {
		logger.Warn("request validation failed",
			"event", "http_request_invalid",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"fields", len(fields),
		)
		status, body := s.builder.Validation(fields, rc)
		writeJSON(w, status, body)
		return
	}

	appErr := apperrors.Normalize(err)
	status, body := s.builder.Failure(appErr, rc)
	attrs := []any{
		"event", "http_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"code", appErr.Code,
		"status", status,
		"error", appErr.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
