// Package envelope builds the uniform success and failure response bodies.
package envelope

import (
	"net/http"
	"time"

	"erpinterno/internal/shared/apperrors"
	"erpinterno/internal/shared/tenant"
)

const (
	DefaultVersion    = "1.0.0"
	validationMessage = "Erro de validação"
	timestampLayout   = "2006-01-02T15:04:05.000Z07:00"
)

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination derives totalPages as ceil(total/limit).
func NewPagination(page int, limit int, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

type Meta struct {
	TenantID   string      `json:"tenantId"`
	RequestID  string      `json:"requestId"`
	Timestamp  string      `json:"timestamp"`
	Version    string      `json:"version"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Success struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

type ErrorBody struct {
	Message    string         `json:"message"`
	Code       string         `json:"code"`
	StatusCode int            `json:"statusCode"`
	Details    map[string]any `json:"details,omitempty"`
}

type Failure struct {
	Error ErrorBody `json:"error"`
	Meta  Meta      `json:"meta"`
}

// Builder stamps envelopes with the API version and the construction time.
type Builder struct {
	Version string
	Now     func() time.Time
}

func NewBuilder(version string) Builder {
	return Builder{Version: version}
}

func (b Builder) Success(data any, rc tenant.RequestContext, pagination *Pagination) Success {
	return Success{Data: data, Meta: b.meta(rc, pagination)}
}

func (b Builder) Failure(err *apperrors.Error, rc tenant.RequestContext) (int, Failure) {
	if err == nil {
		err = apperrors.Normalize(struct{}{})
	}
	status := err.StatusCode()
	return status, Failure{
		Error: ErrorBody{
			Message:    err.Message,
			Code:       err.Code,
			StatusCode: status,
			Details:    err.Details,
		},
		Meta: b.meta(rc, nil),
	}
}

// Validation renders per-field messages as a 400 failure.
func (b Builder) Validation(fields map[string][]string, rc tenant.RequestContext) (int, Failure) {
	details := make(map[string]any, len(fields))
	for field, messages := range fields {
		details[field] = messages
	}
	return http.StatusBadRequest, Failure{
		Error: ErrorBody{
			Message:    validationMessage,
			Code:       apperrors.CodeValidation,
			StatusCode: http.StatusBadRequest,
			Details:    details,
		},
		Meta: b.meta(rc, nil),
	}
}

func (b Builder) meta(rc tenant.RequestContext, pagination *Pagination) Meta {
	version := b.Version
	if version == "" {
		version = DefaultVersion
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return Meta{
		TenantID:   rc.TenantID,
		RequestID:  rc.RequestID,
		Timestamp:  now().UTC().Format(timestampLayout),
		Version:    version,
		Pagination: pagination,
	}
}
