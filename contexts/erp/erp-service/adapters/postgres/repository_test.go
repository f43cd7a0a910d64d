package postgresadapter

import (
	"testing"

	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMissingReferenceMapsForeignKeys(t *testing.T) {
	cases := map[string]error{
		"clientes_empresa_id_fkey":       domainerrors.ErrCompanyNotFound,
		"orcamentos_empresa_id_fkey":     domainerrors.ErrCompanyNotFound,
		"projetos_cliente_id_fkey":       domainerrors.ErrClientNotFound,
		"orcamentos_projeto_id_fkey":     domainerrors.ErrProjectNotFound,
		"projetos_status_id_fkey":        domainerrors.ErrStatusNotFound,
		"documentos_categoria_id_fkey":   domainerrors.ErrCategoryNotFound,
		"documentos_created_by_id_check": nil,
	}
	for constraint, want := range cases {
		got := missingReference(&pgconn.PgError{Code: foreignKeyViolation, ConstraintName: constraint})
		assert.Equal(t, want, got, constraint)
	}
}

func TestCompanyNotFoundIsATypedNotFound(t *testing.T) {
	err := missingReference(&pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "clientes_empresa_id_fkey"})
	assert.ErrorIs(t, err, domainerrors.ErrCompanyNotFound)
	assert.Equal(t, 404, domainerrors.ErrCompanyNotFound.StatusCode())
	assert.Equal(t, "COMPANY_NOT_FOUND", domainerrors.ErrCompanyNotFound.Code)
}
