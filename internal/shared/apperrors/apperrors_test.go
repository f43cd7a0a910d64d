package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatusCodes(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindNotFound:     http.StatusNotFound,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindConflict:     http.StatusConflict,
		KindTenant:       http.StatusBadRequest,
		KindInternal:     http.StatusInternalServerError,
		KindUnknown:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.StatusCode(), kind.String())
	}
}

func TestNormalizePassesThroughAppErrors(t *testing.T) {
	original := Conflict("CNPJ_EXISTS", "CNPJ já cadastrado")
	wrapped := fmt.Errorf("create client: %w", original)

	got := Normalize(wrapped)
	require.NotNil(t, got)
	assert.Same(t, original, got)
	assert.Equal(t, http.StatusConflict, got.StatusCode())
}

func TestNormalizeGenericErrorBecomesInternal(t *testing.T) {
	got := Normalize(errors.New("connection reset"))
	require.NotNil(t, got)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, CodeInternal, got.Code)
	assert.Equal(t, "connection reset", got.Message)
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
}

func TestNormalizeNonErrorValueBecomesUnknown(t *testing.T) {
	for _, value := range []any{"boom", 42, struct{}{}, []int{1}} {
		got := Normalize(value)
		require.NotNil(t, got)
		assert.Equal(t, CodeUnknown, got.Code)
		assert.Equal(t, unknownMessage, got.Message)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
	}
}

func TestNormalizeNil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	var typed *Error
	assert.Nil(t, Normalize(typed))
}

func TestErrorsIsMatchesKindAndCode(t *testing.T) {
	sentinel := NotFound("CLIENT_NOT_FOUND", "Cliente não encontrado")
	withDetails := sentinel.WithDetails(map[string]any{"clienteId": "x"})

	assert.True(t, errors.Is(withDetails, sentinel))
	assert.False(t, errors.Is(withDetails, NotFound("PROJECT_NOT_FOUND", "x")))
	assert.Nil(t, sentinel.Details)
}

func TestDefaultCodes(t *testing.T) {
	assert.Equal(t, CodeNotFound, NotFound("", "x").Code)
	assert.Equal(t, CodeTenant, Tenant("", "x").Code)
	assert.Equal(t, "MISSING_TENANT_ID", Tenant("MISSING_TENANT_ID", "x").Code)
}
