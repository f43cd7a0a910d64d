package queries

import (
	"log/slog"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"
)

// ListResult is one page of items plus the unpaged total.
type ListResult[T any] struct {
	Items []T
	Total int
	Page  query.Page
}

// Sortable fields per entity. Anything else is rejected at the edge.
var (
	CompanySortFields  = []string{query.FieldCreatedAt, ports.FieldUpdatedAt, ports.FieldLegalName, ports.FieldTradeName}
	ClientSortFields   = []string{query.FieldCreatedAt, ports.FieldUpdatedAt, ports.FieldLegalName, ports.FieldTradeName, ports.FieldCity}
	ProjectSortFields  = []string{query.FieldCreatedAt, ports.FieldUpdatedAt, ports.FieldSubject, ports.FieldEntryDate, ports.FieldPriority}
	DocumentSortFields = []string{query.FieldCreatedAt, ports.FieldUpdatedAt, ports.FieldTitle, ports.FieldSizeBytes}
	BudgetSortFields   = []string{query.FieldCreatedAt, ports.FieldUpdatedAt, ports.FieldNumber, ports.FieldTitle, ports.FieldValidUntil, ports.FieldTotalValue}
	StatusSortFields   = []string{query.FieldCreatedAt, ports.FieldUpdatedAt, ports.FieldName, ports.FieldOrder}
	CategorySortFields = []string{query.FieldCreatedAt, ports.FieldUpdatedAt, ports.FieldName, ports.FieldOrder}
)

func logListed(logger *slog.Logger, entity string, filter query.Filter, count int, total int) {
	logger.Info("entity list served",
		"event", "erp_"+entity+"_listed",
		"module", application.ModuleName,
		"layer", "application",
		"count", count,
		"total", total,
		"filters", filter.Applied(),
	)
}
