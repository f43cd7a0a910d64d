package errors

import "erpinterno/internal/shared/apperrors"

var (
	ErrCompanyExists      = apperrors.Conflict("COMPANY_EXISTS", "Empresa já cadastrada para este tenant")
	ErrCNPJExists         = apperrors.Conflict("CNPJ_EXISTS", "CNPJ já cadastrado")
	ErrBudgetNumberExists = apperrors.Conflict("ORCAMENTO_NUMBER_EXISTS", "Número de orçamento já existe")
	ErrStatusNameExists   = apperrors.Conflict("STATUS_NAME_EXISTS", "Já existe um status com este nome")
	ErrCategoryNameExists = apperrors.Conflict("CATEGORY_NAME_EXISTS", "Já existe uma categoria com este nome")

	ErrCompanyNotFound  = apperrors.NotFound("COMPANY_NOT_FOUND", "Empresa não encontrada para este tenant")
	ErrClientNotFound   = apperrors.NotFound("CLIENT_NOT_FOUND", "Cliente não encontrado")
	ErrProjectNotFound  = apperrors.NotFound("PROJECT_NOT_FOUND", "Projeto não encontrado")
	ErrStatusNotFound   = apperrors.NotFound("STATUS_NOT_FOUND", "Status não encontrado")
	ErrCategoryNotFound = apperrors.NotFound("CATEGORY_NOT_FOUND", "Categoria não encontrada")

	ErrTenantRequired = apperrors.Tenant("MISSING_TENANT_ID", "Tenant ID é obrigatório")
)
