package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"
	"erpinterno/internal/shared/logging"
)

const ModuleName = "erp/erp-service"

// ResolveLogger guarantees a non-nil logger for application code paths.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// RequestLogger adds the request attributes carried by ctx.
func RequestLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	return logging.FromContext(ctx, ResolveLogger(logger))
}

func RequireTenant(tenantID string) (string, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return "", domainerrors.ErrTenantRequired
	}
	return tenantID, nil
}
