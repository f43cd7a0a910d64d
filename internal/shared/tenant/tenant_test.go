package tenant

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTenant = "3f2b8c1e-9a7d-4e5f-8b6a-1c2d3e4f5a6b"

func TestFromHeadersRequiresTenant(t *testing.T) {
	_, err := FromHeaders(http.Header{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTenantID))
}

func TestFromHeadersKeepsSuppliedIDs(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderTenantID, sampleTenant)
	h.Set(HeaderRequestID, "req-1")
	h.Set(HeaderCorrelationID, "corr-1")
	h.Set(HeaderUserID, "user-1")

	rc, err := FromHeaders(h)
	require.NoError(t, err)
	assert.Equal(t, RequestContext{
		TenantID:      sampleTenant,
		RequestID:     "req-1",
		CorrelationID: "corr-1",
		UserID:        "user-1",
	}, rc)
}

func TestFromHeadersGeneratesMissingIDs(t *testing.T) {
	h := http.Header{}
	h.Set("x-tenant-id", sampleTenant)

	first, err := FromHeaders(h)
	require.NoError(t, err)
	second, err := FromHeaders(h)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(first.RequestID)
	assert.NoError(t, parseErr)
	_, parseErr = uuid.Parse(first.CorrelationID)
	assert.NoError(t, parseErr)
	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.Empty(t, first.UserID)
}

func TestIsValidTenantID(t *testing.T) {
	assert.True(t, IsValidTenantID(sampleTenant))
	assert.True(t, IsValidTenantID("3F2B8C1E-9A7D-4E5F-8B6A-1C2D3E4F5A6B"))
	assert.False(t, IsValidTenantID("not-a-uuid"))
	assert.False(t, IsValidTenantID("{"+sampleTenant+"}"))
	assert.False(t, IsValidTenantID("3f2b8c1e9a7d4e5f8b6a1c2d3e4f5a6b"))
	assert.False(t, IsValidTenantID(""))
}

func TestContextRoundTrip(t *testing.T) {
	rc := RequestContext{TenantID: sampleTenant, RequestID: "r"}
	got, ok := FromContext(NewContext(context.Background(), rc))
	require.True(t, ok)
	assert.Equal(t, rc, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
