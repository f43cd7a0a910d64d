package envelope

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"erpinterno/internal/shared/apperrors"
	"erpinterno/internal/shared/tenant"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2026, 3, 9, 12, 30, 45, 123456789, time.FixedZone("BRT", -3*3600))
}

func sampleContext() tenant.RequestContext {
	return tenant.RequestContext{TenantID: "t-1", RequestID: "r-1", CorrelationID: "c-1"}
}

func TestNewPaginationTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, pages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{100, 1, 100},
	}
	for _, tc := range cases {
		p := NewPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.pages, p.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestSuccessMeta(t *testing.T) {
	b := Builder{Version: "2.1.0", Now: fixedNow}
	pagination := NewPagination(2, 10, 25)

	got := b.Success([]string{"a"}, sampleContext(), &pagination)

	want := Meta{
		TenantID:   "t-1",
		RequestID:  "r-1",
		Timestamp:  "2026-03-09T15:30:45.123Z",
		Version:    "2.1.0",
		Pagination: &Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3},
	}
	if diff := cmp.Diff(want, got.Meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultVersion(t *testing.T) {
	got := Builder{Now: fixedNow}.Success(nil, sampleContext(), nil)
	assert.Equal(t, DefaultVersion, got.Meta.Version)
	assert.Nil(t, got.Meta.Pagination)
}

func TestFailureUsesErrorStatus(t *testing.T) {
	b := Builder{Now: fixedNow}
	status, body := b.Failure(apperrors.Conflict("CNPJ_EXISTS", "CNPJ já cadastrado"), sampleContext())

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, ErrorBody{Message: "CNPJ já cadastrado", Code: "CNPJ_EXISTS", StatusCode: http.StatusConflict}, body.Error)
	assert.Equal(t, "t-1", body.Meta.TenantID)
}

func TestValidationEnvelope(t *testing.T) {
	b := Builder{Now: fixedNow}
	status, body := b.Validation(map[string][]string{
		"cnpj":   {"CNPJ deve ter 14 dígitos"},
		"tags.0": {"obrigatório", "muito longo"},
	}, sampleContext())

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.CodeValidation, body.Error.Code)
	assert.Equal(t, "Erro de validação", body.Error.Message)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	details := decoded["error"]["details"].(map[string]any)
	assert.Equal(t, []any{"obrigatório", "muito longo"}, details["tags.0"])
}

func TestSuccessOmitsPaginationInJSON(t *testing.T) {
	raw, err := json.Marshal(Builder{Now: fixedNow}.Success(map[string]int{"n": 1}, sampleContext(), nil))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "pagination")
	assert.Contains(t, string(raw), `"data":{"n":1}`)
}
