package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTenantSeedsIsolationClauses(t *testing.T) {
	f := ForTenant(" tenant-1 ")
	require.NoError(t, f.Validate())
	assert.Equal(t, "tenant-1", f.TenantID())
	assert.Equal(t, []Clause{
		{Field: FieldTenant, Op: OpEq, Value: "tenant-1"},
		{Field: FieldDeletedAt, Op: OpIsNull},
	}, f.Clauses())
}

func TestEmptyTenantIsRejected(t *testing.T) {
	assert.ErrorIs(t, ForTenant("").Validate(), ErrMissingTenant)
	assert.ErrorIs(t, Filter{}.Validate(), ErrMissingTenant)
}

func TestBuildersSkipEmptyValues(t *testing.T) {
	f := ForTenant("t").Eq("segmento", "  ").Search("", "nome").Contains("nome", "")
	assert.Len(t, f.Clauses(), 2)
	assert.Empty(t, f.Applied())
}

func TestFilterIsImmutable(t *testing.T) {
	base := ForTenant("t")
	withClient := base.Eq("clienteId", "c-1")
	withStatus := base.Eq("statusId", "s-1")

	assert.Len(t, base.Clauses(), 2)
	assert.Len(t, withClient.Clauses(), 3)
	assert.Equal(t, map[string]any{"statusId": "s-1"}, withStatus.Applied())

	clauses := withClient.Clauses()
	clauses[0].Value = "other"
	assert.Equal(t, "t", withClient.Clauses()[0].Value)
}

func TestApplied(t *testing.T) {
	f := ForTenant("t").Eq("status", "APROVADO").Search("obra", "numero", "titulo")
	assert.Equal(t, map[string]any{"status": "APROVADO", "search": "obra"}, f.Applied())
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Page{Number: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, Page{Number: 0, Limit: 20}.Offset())
	assert.Equal(t, FieldCreatedAt, Page{}.NormalizedSort())
	assert.Equal(t, "nome", Page{SortBy: "nome"}.NormalizedSort())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_x`, EscapeLike("50% off_x"))
}
