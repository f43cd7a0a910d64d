package ports

import (
	"context"
	"time"

	"erpinterno/contexts/erp/erp-service/domain/entities"
	"erpinterno/internal/shared/query"
)

// Logical field names shared by filters, sort keys and the adapters that
// evaluate them.
const (
	FieldUpdatedAt   = "updatedAt"
	FieldClientID    = "clienteId"
	FieldProjectID   = "projetoId"
	FieldStatusID    = "statusId"
	FieldCategoryID  = "categoriaId"
	FieldSegment     = "segmento"
	FieldPriority    = "prioridade"
	FieldStatus      = "status"
	FieldPhase       = "fase"
	FieldName        = "nome"
	FieldOrder       = "ordem"
	FieldLegalName   = "razaoSocial"
	FieldTradeName   = "nomeFantasia"
	FieldSubject     = "assunto"
	FieldTitle       = "titulo"
	FieldNumber      = "numero"
	FieldDescription = "descricao"
	FieldEntryDate   = "dataEntrada"
	FieldValidUntil  = "dataValidade"
	FieldTotalValue  = "valorTotal"
	FieldCity        = "cidade"
	FieldSizeBytes   = "sizeBytes"

	// Fields read through a relation.
	FieldClientSegment   = "cliente.segmento"
	FieldClientLegalName = "cliente.razaoSocial"
	FieldProjectClientID = "projeto.clienteId"
	FieldProjectSubject  = "projeto.assunto"
)

type CompanyRepository interface {
	ListCompanies(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Company, int, error)
	CompanyExists(ctx context.Context, tenantID string) (bool, error)
	// CNPJRegistered is the only cross-tenant read; it returns a boolean only.
	CNPJRegistered(ctx context.Context, cnpj string) (bool, error)
	CreateCompany(ctx context.Context, company entities.Company) error
}

type ClientRepository interface {
	ListClients(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Client, int, error)
	ClientExists(ctx context.Context, tenantID string, clientID string) (bool, error)
	ClientCNPJTaken(ctx context.Context, tenantID string, normalizedCNPJ string) (bool, error)
	CreateClient(ctx context.Context, client entities.Client) error
}

// List methods order by the page sort, ties broken by id ascending.
// ListAll variants return every match newest first.
type ProjectRepository interface {
	ListProjects(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Project, int, error)
	ListAllProjects(ctx context.Context, filter query.Filter) ([]entities.Project, error)
	ProjectExists(ctx context.Context, tenantID string, projectID string) (bool, error)
	CreateProject(ctx context.Context, project entities.Project) error
}

type DocumentRepository interface {
	ListDocuments(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Document, int, error)
	CreateDocument(ctx context.Context, document entities.Document) error
}

type BudgetRepository interface {
	ListBudgets(ctx context.Context, filter query.Filter, page query.Page) ([]entities.Budget, int, error)
	ListAllBudgets(ctx context.Context, filter query.Filter) ([]entities.Budget, error)
	BudgetNumberTaken(ctx context.Context, tenantID string, number string) (bool, error)
	CreateBudget(ctx context.Context, budget entities.Budget) error
}

type ProjectStatusRepository interface {
	ListProjectStatuses(ctx context.Context, filter query.Filter, page query.Page) ([]entities.ProjectStatus, int, error)
	// ListAllProjectStatuses orders by ordem (unset last), then nome.
	ListAllProjectStatuses(ctx context.Context, filter query.Filter) ([]entities.ProjectStatus, error)
	ProjectStatusExists(ctx context.Context, tenantID string, statusID string) (bool, error)
	ProjectStatusNameTaken(ctx context.Context, tenantID string, name string) (bool, error)
	CreateProjectStatus(ctx context.Context, status entities.ProjectStatus) error
}

type DocumentCategoryRepository interface {
	ListDocumentCategories(ctx context.Context, filter query.Filter, page query.Page) ([]entities.DocumentCategory, int, error)
	DocumentCategoryExists(ctx context.Context, tenantID string, categoryID string) (bool, error)
	DocumentCategoryNameTaken(ctx context.Context, tenantID string, name string) (bool, error)
	CreateDocumentCategory(ctx context.Context, category entities.DocumentCategory) error
}

// DashboardReader aggregates non-deleted rows of one tenant.
type DashboardReader interface {
	CountEntities(ctx context.Context, tenantID string) (entities.DashboardCounts, error)
	CountProjectsByStatus(ctx context.Context, tenantID string) (map[string]int, error)
	CountBudgetsByStatus(ctx context.Context, tenantID string) (map[entities.BudgetStatus]int, error)
}

// RelationReader resolves the rows a listing references. Lookups are scoped
// to the tenant and include soft-deleted rows; unknown ids are left out of
// the result.
type RelationReader interface {
	ClientsByID(ctx context.Context, tenantID string, ids []string) (map[string]entities.Client, error)
	ProjectsByID(ctx context.Context, tenantID string, ids []string) (map[string]entities.Project, error)
	ProjectStatusesByID(ctx context.Context, tenantID string, ids []string) (map[string]entities.ProjectStatus, error)
	// CountProjectChildren counts non-deleted documents and budgets per project.
	CountProjectChildren(ctx context.Context, tenantID string, projectIDs []string) (map[string]entities.ProjectCounts, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
