package httpserver

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"erpinterno/internal/shared/apperrors"
	"erpinterno/internal/shared/envelope"
	"erpinterno/internal/shared/logging"
	"erpinterno/internal/shared/tenant"

	"github.com/google/uuid"
	ua "github.com/mileusna/useragent"
)

const (
	apiPrefix  = "/api/"
	healthPath = "/api/health"

	CodeInvalidInternalKey = "INVALID_INTERNAL_KEY"
	CodeCORSNotConfigured  = "CORS_NOT_CONFIGURED"
	CodeGateFailure        = "GATE_ERROR"
)

var (
	errInvalidInternalKey = apperrors.Unauthorized(CodeInvalidInternalKey, "Chave interna inválida")
	errCORSNotConfigured  = apperrors.Internal(CodeCORSNotConfigured, "CORS não configurado para produção")
	errGateFailure        = apperrors.Internal(CodeGateFailure, "Erro interno do servidor")
)

var (
	allowedMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders = []string{
		"Content-Type",
		"Authorization",
		"x-internal-key",
		"x-tenant-id",
		"x-request-id",
		"x-correlation-id",
		"x-user-id",
	}
)

// Gate guards every path under /api/ except the health check.
type Gate struct {
	InternalKey    string
	AllowedOrigins []string
	Production     bool
	Builder        envelope.Builder
	Logger         *slog.Logger
}

func (g Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, apiPrefix) || r.URL.Path == healthPath {
			next.ServeHTTP(w, r)
			return
		}
		fillRequestIDs(r.Header)
		if err := g.evaluate(r); err != nil {
			g.reject(w, r, err)
			return
		}
		g.setHeaders(w.Header(), r.Header.Get("Origin"))
		next.ServeHTTP(w, r)
	})
}

// evaluate returns nil when the request may proceed. A panic while checking
// becomes a 500 rejection.
func (g Gate) evaluate(r *http.Request) (err *apperrors.Error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errGateFailure.WithCause(fmt.Errorf("gate panic: %v", recovered))
		}
	}()

	given := r.Header.Get(tenant.HeaderInternalKey)
	if g.InternalKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(g.InternalKey)) != 1 {
		return errInvalidInternalKey
	}
	tenantID := strings.TrimSpace(r.Header.Get(tenant.HeaderTenantID))
	if tenantID == "" {
		return tenant.ErrMissingTenantID
	}
	if !tenant.IsValidTenantID(tenantID) {
		return tenant.ErrInvalidTenantID
	}
	if g.Production && len(g.AllowedOrigins) == 0 {
		return errCORSNotConfigured
	}
	return nil
}

func (g Gate) reject(w http.ResponseWriter, r *http.Request, err *apperrors.Error) {
	rc := tenant.Partial(r.Header)
	logger := logging.FromContext(logging.WithRequest(r.Context(), rc), g.Logger)
	agent := r.Header.Get("User-Agent")
	attrs := []any{
		"event", "http_gate_rejected",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"code", err.Code,
		"ip", resolveClientIP(r),
		"user_agent", agent,
		"browser", browserName(agent),
		"path", r.URL.Path,
	}
	if err.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request gate failed", append(attrs, "error", err.Error())...)
	} else {
		logger.Warn("request gate rejected", attrs...)
	}
	status, body := g.Builder.Failure(err, rc)
	writeJSON(w, status, body)
}

func (g Gate) setHeaders(h http.Header, origin string) {
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	if allow := g.allowOrigin(origin); allow != "" {
		h.Set("Access-Control-Allow-Origin", allow)
	}
	h.Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ", "))
}

// allowOrigin echoes a listed origin, answers "*" for a wildcard list and
// falls back to the first configured origin otherwise.
func (g Gate) allowOrigin(origin string) string {
	if len(g.AllowedOrigins) == 0 {
		return ""
	}
	if slices.Contains(g.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(g.AllowedOrigins, origin) {
		return origin
	}
	return g.AllowedOrigins[0]
}

// fillRequestIDs stamps missing request and correlation ids so the gate log
// and the handler envelope share them.
func fillRequestIDs(h http.Header) {
	for _, name := range []string{tenant.HeaderRequestID, tenant.HeaderCorrelationID} {
		if strings.TrimSpace(h.Get(name)) == "" {
			h.Set(name, uuid.NewString())
		}
	}
}

func browserName(header string) string {
	if header == "" {
		return "unknown"
	}
	return ua.Parse(header).Name
}

// recoverer turns a handler panic into a 500 envelope.
func recoverer(builder envelope.Builder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				rc := tenant.Partial(r.Header)
				appErr := apperrors.Normalize(recovered)
				logging.FromContext(logging.WithRequest(r.Context(), rc), logger).Error("request panicked",
					"event", "http_request_panic",
					"module", "internal/platform/httpserver",
					"layer", "platform",
					"path", r.URL.Path,
					"error", appErr.Error(),
				)
				status, body := builder.Failure(appErr, rc)
				writeJSON(w, status, body)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
