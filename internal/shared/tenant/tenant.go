// Package tenant extracts the per-request tenant context from headers.
package tenant

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"erpinterno/internal/shared/apperrors"

	"github.com/google/uuid"
)

const (
	HeaderInternalKey   = "X-Internal-Key"
	HeaderTenantID      = "X-Tenant-Id"
	HeaderRequestID     = "X-Request-Id"
	HeaderCorrelationID = "X-Correlation-Id"
	HeaderUserID        = "X-User-Id"
)

const (
	CodeMissingTenantID = "MISSING_TENANT_ID"
	CodeInvalidTenantID = "INVALID_TENANT_ID"
)

var (
	ErrMissingTenantID = apperrors.Tenant(CodeMissingTenantID, "Tenant ID é obrigatório")
	ErrInvalidTenantID = apperrors.Tenant(CodeInvalidTenantID, "Tenant ID inválido")
)

var tenantIDPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// RequestContext is built once per request and never mutated.
type RequestContext struct {
	TenantID      string
	RequestID     string
	CorrelationID string
	UserID        string
}

// IsValidTenantID reports whether value has the 8-4-4-4-12 hex shape.
func IsValidTenantID(value string) bool {
	return tenantIDPattern.MatchString(value)
}

// FromHeaders requires a tenant header and fills request and correlation
// ids with fresh UUIDs when missing. Format checks belong to the gate.
func FromHeaders(h http.Header) (RequestContext, error) {
	rc := Partial(h)
	if rc.TenantID == "" {
		return RequestContext{}, ErrMissingTenantID
	}
	return rc, nil
}

// Partial never fails; the tenant id may be empty.
func Partial(h http.Header) RequestContext {
	return RequestContext{
		TenantID:      strings.TrimSpace(h.Get(HeaderTenantID)),
		RequestID:     headerOrUUID(h, HeaderRequestID),
		CorrelationID: headerOrUUID(h, HeaderCorrelationID),
		UserID:        strings.TrimSpace(h.Get(HeaderUserID)),
	}
}

func headerOrUUID(h http.Header, name string) string {
	if value := strings.TrimSpace(h.Get(name)); value != "" {
		return value
	}
	return uuid.NewString()
}

type contextKey struct{}

func NewContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(RequestContext)
	return rc, ok
}
