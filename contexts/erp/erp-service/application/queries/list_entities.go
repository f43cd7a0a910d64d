package queries

import (
	"context"
	"log/slog"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"
)

type ListCompaniesQuery struct {
	TenantID string
	Page     query.Page
}

type ListCompaniesUseCase struct {
	Companies ports.CompanyRepository
	Logger    *slog.Logger
}

func (uc ListCompaniesUseCase) Execute(ctx context.Context, q ListCompaniesQuery) (ListResult[entities.Company], error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return ListResult[entities.Company]{}, err
	}
	filter := query.ForTenant(tenantID)
	items, total, err := uc.Companies.ListCompanies(ctx, filter, q.Page)
	if err != nil {
		return ListResult[entities.Company]{}, err
	}
	logListed(application.RequestLogger(ctx, uc.Logger), "company", filter, len(items), total)
	return ListResult[entities.Company]{Items: items, Total: total, Page: q.Page}, nil
}

type ListClientsQuery struct {
	TenantID string
	Page     query.Page
	ClientID string
	Segment  string
	Search   string
}

type ListClientsUseCase struct {
	Clients ports.ClientRepository
	Logger  *slog.Logger
}

func (uc ListClientsUseCase) Execute(ctx context.Context, q ListClientsQuery) (ListResult[entities.Client], error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return ListResult[entities.Client]{}, err
	}
	filter := query.ForTenant(tenantID).
		Eq(query.FieldID, q.ClientID).
		Eq(ports.FieldSegment, q.Segment).
		Search(q.Search, ports.FieldLegalName, ports.FieldTradeName)
	items, total, err := uc.Clients.ListClients(ctx, filter, q.Page)
	if err != nil {
		return ListResult[entities.Client]{}, err
	}
	logListed(application.RequestLogger(ctx, uc.Logger), "client", filter, len(items), total)
	return ListResult[entities.Client]{Items: items, Total: total, Page: q.Page}, nil
}

type ListProjectsQuery struct {
	TenantID  string
	Page      query.Page
	ProjectID string
	ClientID  string
	StatusID  string
	Priority  string
	Segment   string
	Search    string
}

type ListProjectsUseCase struct {
	Projects  ports.ProjectRepository
	Relations Relations
	Logger    *slog.Logger
}

func (uc ListProjectsUseCase) Execute(ctx context.Context, q ListProjectsQuery) (ListResult[entities.ProjectListing], error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return ListResult[entities.ProjectListing]{}, err
	}
	filter := query.ForTenant(tenantID).
		Eq(query.FieldID, q.ProjectID).
		Eq(ports.FieldClientID, q.ClientID).
		Eq(ports.FieldStatusID, q.StatusID).
		Eq(ports.FieldPriority, q.Priority).
		Eq(ports.FieldClientSegment, q.Segment).
		Search(q.Search, ports.FieldSubject)
	items, total, err := uc.Projects.ListProjects(ctx, filter, q.Page)
	if err != nil {
		return ListResult[entities.ProjectListing]{}, err
	}
	rows, err := uc.Relations.Projects(ctx, tenantID, items)
	if err != nil {
		return ListResult[entities.ProjectListing]{}, err
	}
	logListed(application.RequestLogger(ctx, uc.Logger), "project", filter, len(rows), total)
	return ListResult[entities.ProjectListing]{Items: rows, Total: total, Page: q.Page}, nil
}

type ListDocumentsQuery struct {
	TenantID   string
	Page       query.Page
	ProjectID  string
	ClientID   string
	CategoryID string
	Search     string
}

type ListDocumentsUseCase struct {
	Documents ports.DocumentRepository
	Logger    *slog.Logger
}

func (uc ListDocumentsUseCase) Execute(ctx context.Context, q ListDocumentsQuery) (ListResult[entities.Document], error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return ListResult[entities.Document]{}, err
	}
	filter := query.ForTenant(tenantID).
		Eq(ports.FieldProjectID, q.ProjectID).
		Eq(ports.FieldClientID, q.ClientID).
		Eq(ports.FieldCategoryID, q.CategoryID).
		Search(q.Search, ports.FieldTitle)
	items, total, err := uc.Documents.ListDocuments(ctx, filter, q.Page)
	if err != nil {
		return ListResult[entities.Document]{}, err
	}
	logListed(application.RequestLogger(ctx, uc.Logger), "document", filter, len(items), total)
	return ListResult[entities.Document]{Items: items, Total: total, Page: q.Page}, nil
}

type ListBudgetsQuery struct {
	TenantID  string
	Page      query.Page
	ProjectID string
	ClientID  string
	Segment   string
	Status    string
	Search    string
}

type ListBudgetsUseCase struct {
	Budgets   ports.BudgetRepository
	Relations Relations
	Logger    *slog.Logger
}

func (uc ListBudgetsUseCase) Execute(ctx context.Context, q ListBudgetsQuery) (ListResult[entities.BudgetListing], error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return ListResult[entities.BudgetListing]{}, err
	}
	filter := query.ForTenant(tenantID).
		Eq(ports.FieldProjectID, q.ProjectID).
		Eq(ports.FieldProjectClientID, q.ClientID).
		Eq(ports.FieldClientSegment, q.Segment).
		Eq(ports.FieldStatus, q.Status).
		Search(q.Search,
			ports.FieldNumber,
			ports.FieldTitle,
			ports.FieldDescription,
			ports.FieldProjectSubject,
			ports.FieldClientLegalName,
		)
	items, total, err := uc.Budgets.ListBudgets(ctx, filter, q.Page)
	if err != nil {
		return ListResult[entities.BudgetListing]{}, err
	}
	rows, err := uc.Relations.Budgets(ctx, tenantID, items)
	if err != nil {
		return ListResult[entities.BudgetListing]{}, err
	}
	logListed(application.RequestLogger(ctx, uc.Logger), "budget", filter, len(rows), total)
	return ListResult[entities.BudgetListing]{Items: rows, Total: total, Page: q.Page}, nil
}

type ListProjectStatusesQuery struct {
	TenantID string
	Page     query.Page
	Phase    string
	Search   string
}

type ListProjectStatusesUseCase struct {
	Statuses ports.ProjectStatusRepository
	Logger   *slog.Logger
}

func (uc ListProjectStatusesUseCase) Execute(ctx context.Context, q ListProjectStatusesQuery) (ListResult[entities.ProjectStatus], error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return ListResult[entities.ProjectStatus]{}, err
	}
	filter := query.ForTenant(tenantID).
		Eq(ports.FieldPhase, q.Phase).
		Search(q.Search, ports.FieldName, ports.FieldPhase)
	items, total, err := uc.Statuses.ListProjectStatuses(ctx, filter, q.Page)
	if err != nil {
		return ListResult[entities.ProjectStatus]{}, err
	}
	logListed(application.RequestLogger(ctx, uc.Logger), "status", filter, len(items), total)
	return ListResult[entities.ProjectStatus]{Items: items, Total: total, Page: q.Page}, nil
}

type ListDocumentCategoriesQuery struct {
	TenantID string
	Page     query.Page
	Search   string
}

type ListDocumentCategoriesUseCase struct {
	Categories ports.DocumentCategoryRepository
	Logger     *slog.Logger
}

func (uc ListDocumentCategoriesUseCase) Execute(ctx context.Context, q ListDocumentCategoriesQuery) (ListResult[entities.DocumentCategory], error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return ListResult[entities.DocumentCategory]{}, err
	}
	filter := query.ForTenant(tenantID).
		Search(q.Search, ports.FieldName, ports.FieldDescription)
	items, total, err := uc.Categories.ListDocumentCategories(ctx, filter, q.Page)
	if err != nil {
		return ListResult[entities.DocumentCategory]{}, err
	}
	logListed(application.RequestLogger(ctx, uc.Logger), "category", filter, len(items), total)
	return ListResult[entities.DocumentCategory]{Items: items, Total: total, Page: q.Page}, nil
}
