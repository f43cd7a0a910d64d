package httpadapter

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"erpinterno/contexts/erp/erp-service/application/commands"
	"erpinterno/contexts/erp/erp-service/application/queries"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	httptransport "erpinterno/contexts/erp/erp-service/transport/http"
	"erpinterno/internal/shared/tenant"
	"erpinterno/internal/shared/validation"
)

const (
	priorityTag     = "omitempty,oneof=BAIXA MEDIA ALTA URGENTE"
	budgetStatusTag = "omitempty,oneof=RASCUNHO ENVIADO APROVADO REJEITADO EXPIRADO"
	uuidTag         = "omitempty,uuid"
)

type Handler struct {
	ListCompanies          queries.ListCompaniesUseCase
	CreateCompany          commands.CreateCompanyUseCase
	ListClients            queries.ListClientsUseCase
	CreateClient           commands.CreateClientUseCase
	ListProjects           queries.ListProjectsUseCase
	CreateProject          commands.CreateProjectUseCase
	ListDocuments          queries.ListDocumentsUseCase
	CreateDocument         commands.CreateDocumentUseCase
	ListBudgets            queries.ListBudgetsUseCase
	CreateBudget           commands.CreateBudgetUseCase
	ListProjectStatuses    queries.ListProjectStatusesUseCase
	CreateProjectStatus    commands.CreateProjectStatusUseCase
	ListDocumentCategories queries.ListDocumentCategoriesUseCase
	CreateDocumentCategory commands.CreateDocumentCategoryUseCase
	Dashboard              queries.DashboardUseCase
	ProjectKanban          queries.ProjectKanbanUseCase
	BudgetKanban           queries.BudgetKanbanUseCase
	Validator              *validation.Validator
	Logger                 *slog.Logger
}

func param(params url.Values, name string) string {
	return strings.TrimSpace(params.Get(name))
}

// ListCompaniesHandler godoc
// @Summary List the tenant company
// @Description Returns the company row whose id equals the tenant id.
// @Tags empresas
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param page query int false "Page (>=1)"
// @Param limit query int false "Page size (1..100)"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Failure 401 {object} envelope.Failure
// @Router /api/empresas [get]
func (h Handler) ListCompaniesHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) (httptransport.ListResponse[httptransport.CompanyDTO], error) {
	errs := validation.FieldErrors{}
	page := validation.ParsePage(params, queries.CompanySortFields, errs)
	if err := errs.Err(); err != nil {
		return httptransport.ListResponse[httptransport.CompanyDTO]{}, err
	}
	result, err := h.ListCompanies.Execute(ctx, queries.ListCompaniesQuery{TenantID: rc.TenantID, Page: page})
	if err != nil {
		return httptransport.ListResponse[httptransport.CompanyDTO]{}, err
	}
	return listResponse(result, mapCompany), nil
}

// CreateCompanyHandler godoc
// @Summary Register the tenant company
// @Description The company id is the tenant id; the CNPJ is unique across tenants.
// @Tags empresas
// @Accept json
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param request body httptransport.CreateCompanyRequest true "Company"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Failure 409 {object} envelope.Failure
// @Router /api/empresas [post]
func (h Handler) CreateCompanyHandler(ctx context.Context, rc tenant.RequestContext, req httptransport.CreateCompanyRequest) (httptransport.CompanyDTO, error) {
	if err := h.Validator.Struct(req); err != nil {
		return httptransport.CompanyDTO{}, err
	}
	company, err := h.CreateCompany.Execute(ctx, commands.CreateCompanyCommand{
		TenantID:   rc.TenantID,
		LegalName:  req.RazaoSocial,
		TradeName:  req.NomeFantasia,
		CNPJ:       req.CNPJ,
		Address:    req.Endereco,
		Phone:      req.Telefone,
		Email:      req.Email,
		Website:    req.Website,
		Logo:       req.Logo,
		Timezone:   req.Timezone,
		Currency:   req.Moeda,
		DateFormat: req.FormatoData,
	})
	if err != nil {
		return httptransport.CompanyDTO{}, err
	}
	return mapCompany(company), nil
}

// ListClientsHandler godoc
// @Summary List clients
// @Tags clientes
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param clienteId query string false "Client id"
// @Param segmento query string false "Segment"
// @Param search query string false "Matches razaoSocial or nomeFantasia"
// @Param page query int false "Page (>=1)"
// @Param limit query int false "Page size (1..100)"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/clientes [get]
func (h Handler) ListClientsHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) (httptransport.ListResponse[httptransport.ClientDTO], error) {
	errs := validation.FieldErrors{}
	page := validation.ParsePage(params, queries.ClientSortFields, errs)
	clientID := param(params, "clienteId")
	h.Validator.Var("clienteId", clientID, uuidTag, errs)
	if err := errs.Err(); err != nil {
		return httptransport.ListResponse[httptransport.ClientDTO]{}, err
	}
	result, err := h.ListClients.Execute(ctx, queries.ListClientsQuery{
		TenantID: rc.TenantID,
		Page:     page,
		ClientID: clientID,
		Segment:  param(params, "segmento"),
		Search:   param(params, "search"),
	})
	if err != nil {
		return httptransport.ListResponse[httptransport.ClientDTO]{}, err
	}
	return listResponse(result, mapClient), nil
}

// CreateClientHandler godoc
// @Summary Create a client
// @Description The normalized CNPJ is unique per tenant.
// @Tags clientes
// @Accept json
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param request body httptransport.CreateClientRequest true "Client"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Failure 409 {object} envelope.Failure
// @Router /api/clientes [post]
func (h Handler) CreateClientHandler(ctx context.Context, rc tenant.RequestContext, req httptransport.CreateClientRequest) (httptransport.ClientDTO, error) {
	if err := h.Validator.Struct(req); err != nil {
		return httptransport.ClientDTO{}, err
	}
	client, err := h.CreateClient.Execute(ctx, commands.CreateClientCommand{
		TenantID:   rc.TenantID,
		LegalName:  req.RazaoSocial,
		TradeName:  req.NomeFantasia,
		CNPJ:       req.CNPJ,
		Segment:    req.Segmento,
		Street:     req.Logradouro,
		Number:     req.Numero,
		Complement: req.Complemento,
		District:   req.Bairro,
		City:       req.Cidade,
		State:      req.Estado,
		PostalCode: req.CEP,
		Phone:      req.Telefone,
		Email:      req.Email,
		Website:    req.Website,
	})
	if err != nil {
		return httptransport.ClientDTO{}, err
	}
	return mapClient(client), nil
}

// ListProjectsHandler godoc
// @Summary List projects
// @Tags projetos
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param projetoId query string false "Project id"
// @Param clienteId query string false "Client id"
// @Param statusId query string false "Status id"
// @Param prioridade query string false "BAIXA, MEDIA, ALTA or URGENTE"
// @Param segmento query string false "Client segment"
// @Param search query string false "Matches assunto"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/projetos [get]
func (h Handler) ListProjectsHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) (httptransport.ListResponse[httptransport.ProjectDTO], error) {
	errs := validation.FieldErrors{}
	page := validation.ParsePage(params, queries.ProjectSortFields, errs)
	projectID := param(params, "projetoId")
	clientID := param(params, "clienteId")
	statusID := param(params, "statusId")
	priority := param(params, "prioridade")
	h.Validator.Var("projetoId", projectID, uuidTag, errs)
	h.Validator.Var("clienteId", clientID, uuidTag, errs)
	h.Validator.Var("statusId", statusID, uuidTag, errs)
	h.Validator.Var("prioridade", priority, priorityTag, errs)
	if err := errs.Err(); err != nil {
		return httptransport.ListResponse[httptransport.ProjectDTO]{}, err
	}
	result, err := h.ListProjects.Execute(ctx, queries.ListProjectsQuery{
		TenantID:  rc.TenantID,
		Page:      page,
		ProjectID: projectID,
		ClientID:  clientID,
		StatusID:  statusID,
		Priority:  priority,
		Segment:   param(params, "segmento"),
		Search:    param(params, "search"),
	})
	if err != nil {
		return httptransport.ListResponse[httptransport.ProjectDTO]{}, err
	}
	return listResponse(result, mapProjectListing), nil
}

// CreateProjectHandler godoc
// @Summary Create a project
// @Description The client must exist in the tenant; statusId is optional.
// @Tags projetos
// @Accept json
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param request body httptransport.CreateProjectRequest true "Project"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/projetos [post]
func (h Handler) CreateProjectHandler(ctx context.Context, rc tenant.RequestContext, req httptransport.CreateProjectRequest) (httptransport.ProjectDTO, error) {
	if err := h.Validator.Struct(req); err != nil {
		return httptransport.ProjectDTO{}, err
	}
	entryDate, _ := time.Parse(time.RFC3339Nano, req.DataEntrada)
	project, err := h.CreateProject.Execute(ctx, commands.CreateProjectCommand{
		TenantID:       rc.TenantID,
		ClientID:       req.ClienteID,
		Subject:        req.Assunto,
		Description:    req.Descricao,
		StatusID:       req.StatusID,
		EntryDate:      entryDate,
		StartDate:      parseOptionalTime(req.DataInicio),
		EndDate:        parseOptionalTime(req.DataFim),
		Expectation:    req.Expectativa,
		Objective:      req.Objetivo,
		Notes:          req.Observacoes,
		EstimatedValue: req.ValorEstimado,
		Priority:       entities.Priority(req.Prioridade),
		Tags:           append([]string(nil), req.Tags...),
		ManagerID:      req.GerenteID,
		SalespersonID:  req.VendedorID,
	})
	if err != nil {
		return httptransport.ProjectDTO{}, err
	}
	return mapProject(project), nil
}

// ListDocumentsHandler godoc
// @Summary List documents
// @Tags documentos
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param projetoId query string false "Project id"
// @Param clienteId query string false "Client id"
// @Param categoriaId query string false "Category id"
// @Param search query string false "Matches titulo"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/documentos [get]
func (h Handler) ListDocumentsHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) (httptransport.ListResponse[httptransport.DocumentDTO], error) {
	errs := validation.FieldErrors{}
	page := validation.ParsePage(params, queries.DocumentSortFields, errs)
	projectID := param(params, "projetoId")
	clientID := param(params, "clienteId")
	categoryID := param(params, "categoriaId")
	h.Validator.Var("projetoId", projectID, uuidTag, errs)
	h.Validator.Var("clienteId", clientID, uuidTag, errs)
	h.Validator.Var("categoriaId", categoryID, uuidTag, errs)
	if err := errs.Err(); err != nil {
		return httptransport.ListResponse[httptransport.DocumentDTO]{}, err
	}
	result, err := h.ListDocuments.Execute(ctx, queries.ListDocumentsQuery{
		TenantID:   rc.TenantID,
		Page:       page,
		ProjectID:  projectID,
		ClientID:   clientID,
		CategoryID: categoryID,
		Search:     param(params, "search"),
	})
	if err != nil {
		return httptransport.ListResponse[httptransport.DocumentDTO]{}, err
	}
	return listResponse(result, mapDocument), nil
}

// CreateDocumentHandler godoc
// @Summary Register document metadata
// @Tags documentos
// @Accept json
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param x-user-id header string false "Acting user"
// @Param request body httptransport.CreateDocumentRequest true "Document"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/documentos [post]
func (h Handler) CreateDocumentHandler(ctx context.Context, rc tenant.RequestContext, req httptransport.CreateDocumentRequest) (httptransport.DocumentDTO, error) {
	if err := h.Validator.Struct(req); err != nil {
		return httptransport.DocumentDTO{}, err
	}
	document, err := h.CreateDocument.Execute(ctx, commands.CreateDocumentCommand{
		TenantID:        rc.TenantID,
		UserID:          rc.UserID,
		ProjectID:       req.ProjetoID,
		ClientID:        req.ClienteID,
		CategoryID:      req.CategoriaID,
		Title:           req.Titulo,
		Description:     req.Descricao,
		StorageKey:      req.StorageKey,
		ContentType:     req.ContentType,
		SizeBytes:       req.SizeBytes,
		Checksum:        req.Checksum,
		StorageProvider: req.StorageProvider,
		Metadata:        req.Metadata,
		Tags:            append([]string(nil), req.Tags...),
	})
	if err != nil {
		return httptransport.DocumentDTO{}, err
	}
	return mapDocument(document), nil
}

// ListBudgetsHandler godoc
// @Summary List budgets
// @Tags orcamentos
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param projetoId query string false "Project id"
// @Param clienteId query string false "Client id of the project"
// @Param segmento query string false "Segment of the project client"
// @Param status query string false "Budget status"
// @Param search query string false "Matches numero, titulo, descricao, project assunto or client razaoSocial"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/orcamentos [get]
func (h Handler) ListBudgetsHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) (httptransport.ListResponse[httptransport.BudgetDTO], error) {
	errs := validation.FieldErrors{}
	page := validation.ParsePage(params, queries.BudgetSortFields, errs)
	projectID := param(params, "projetoId")
	clientID := param(params, "clienteId")
	status := param(params, "status")
	h.Validator.Var("projetoId", projectID, uuidTag, errs)
	h.Validator.Var("clienteId", clientID, uuidTag, errs)
	h.Validator.Var("status", status, budgetStatusTag, errs)
	if err := errs.Err(); err != nil {
		return httptransport.ListResponse[httptransport.BudgetDTO]{}, err
	}
	result, err := h.ListBudgets.Execute(ctx, queries.ListBudgetsQuery{
		TenantID:  rc.TenantID,
		Page:      page,
		ProjectID: projectID,
		ClientID:  clientID,
		Segment:   param(params, "segmento"),
		Status:    status,
		Search:    param(params, "search"),
	})
	if err != nil {
		return httptransport.ListResponse[httptransport.BudgetDTO]{}, err
	}
	return listResponse(result, mapBudgetListing), nil
}

// CreateBudgetHandler godoc
// @Summary Create a budget
// @Description valorFinal is valorTotal minus desconto, never below zero.
// @Tags orcamentos
// @Accept json
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param request body httptransport.CreateBudgetRequest true "Budget"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Failure 409 {object} envelope.Failure
// @Router /api/orcamentos [post]
func (h Handler) CreateBudgetHandler(ctx context.Context, rc tenant.RequestContext, req httptransport.CreateBudgetRequest) (httptransport.BudgetDTO, error) {
	if err := h.Validator.Struct(req); err != nil {
		return httptransport.BudgetDTO{}, err
	}
	validUntil, _ := time.Parse(time.RFC3339Nano, req.DataValidade)
	budget, err := h.CreateBudget.Execute(ctx, commands.CreateBudgetCommand{
		TenantID:    rc.TenantID,
		UserID:      rc.UserID,
		ProjectID:   req.ProjetoID,
		Number:      req.Numero,
		Title:       req.Titulo,
		Description: req.Descricao,
		Status:      entities.BudgetStatus(req.Status),
		ValidUntil:  validUntil,
		Currency:    req.Moeda,
		TotalValue:  req.ValorTotal,
		Discount:    req.Desconto,
		Notes:       req.Observacoes,
		SupplierID:  req.FornecedorID,
	})
	if err != nil {
		return httptransport.BudgetDTO{}, err
	}
	return mapBudget(budget), nil
}

// ListProjectStatusesHandler godoc
// @Summary List project statuses
// @Tags status-projetos
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param fase query string false "Phase"
// @Param search query string false "Matches nome or fase"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/status-projetos [get]
func (h Handler) ListProjectStatusesHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) (httptransport.ListResponse[httptransport.ProjectStatusDTO], error) {
	errs := validation.FieldErrors{}
	page := validation.ParsePage(params, queries.StatusSortFields, errs)
	if err := errs.Err(); err != nil {
		return httptransport.ListResponse[httptransport.ProjectStatusDTO]{}, err
	}
	result, err := h.ListProjectStatuses.Execute(ctx, queries.ListProjectStatusesQuery{
		TenantID: rc.TenantID,
		Page:     page,
		Phase:    param(params, "fase"),
		Search:   param(params, "search"),
	})
	if err != nil {
		return httptransport.ListResponse[httptransport.ProjectStatusDTO]{}, err
	}
	return listResponse(result, mapProjectStatus), nil
}

// CreateProjectStatusHandler godoc
// @Summary Create a project status
// @Tags status-projetos
// @Accept json
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param request body httptransport.CreateProjectStatusRequest true "Status"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Failure 409 {object} envelope.Failure
// @Router /api/status-projetos [post]
func (h Handler) CreateProjectStatusHandler(ctx context.Context, rc tenant.RequestContext, req httptransport.CreateProjectStatusRequest) (httptransport.ProjectStatusDTO, error) {
	if err := h.Validator.Struct(req); err != nil {
		return httptransport.ProjectStatusDTO{}, err
	}
	status, err := h.CreateProjectStatus.Execute(ctx, commands.CreateProjectStatusCommand{
		TenantID: rc.TenantID,
		Name:     req.Nome,
		Phase:    req.Fase,
		Color:    req.Cor,
		Order:    req.Ordem,
	})
	if err != nil {
		return httptransport.ProjectStatusDTO{}, err
	}
	return mapProjectStatus(status), nil
}

// ListDocumentCategoriesHandler godoc
// @Summary List document categories
// @Tags categorias-documentos
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param search query string false "Matches nome or descricao"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/categorias-documentos [get]
func (h Handler) ListDocumentCategoriesHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) (httptransport.ListResponse[httptransport.DocumentCategoryDTO], error) {
	errs := validation.FieldErrors{}
	page := validation.ParsePage(params, queries.CategorySortFields, errs)
	if err := errs.Err(); err != nil {
		return httptransport.ListResponse[httptransport.DocumentCategoryDTO]{}, err
	}
	result, err := h.ListDocumentCategories.Execute(ctx, queries.ListDocumentCategoriesQuery{
		TenantID: rc.TenantID,
		Page:     page,
		Search:   param(params, "search"),
	})
	if err != nil {
		return httptransport.ListResponse[httptransport.DocumentCategoryDTO]{}, err
	}
	return listResponse(result, mapDocumentCategory), nil
}

// CreateDocumentCategoryHandler godoc
// @Summary Create a document category
// @Tags categorias-documentos
// @Accept json
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param request body httptransport.CreateDocumentCategoryRequest true "Category"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Failure 409 {object} envelope.Failure
// @Router /api/categorias-documentos [post]
func (h Handler) CreateDocumentCategoryHandler(ctx context.Context, rc tenant.RequestContext, req httptransport.CreateDocumentCategoryRequest) (httptransport.DocumentCategoryDTO, error) {
	if err := h.Validator.Struct(req); err != nil {
		return httptransport.DocumentCategoryDTO{}, err
	}
	category, err := h.CreateDocumentCategory.Execute(ctx, commands.CreateDocumentCategoryCommand{
		TenantID:    rc.TenantID,
		Name:        req.Nome,
		Description: req.Descricao,
		Color:       req.Cor,
		Order:       req.Ordem,
	})
	if err != nil {
		return httptransport.DocumentCategoryDTO{}, err
	}
	return mapDocumentCategory(category), nil
}

// DashboardHandler godoc
// @Summary Tenant dashboard metrics
// @Tags metrics
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Success 200 {object} envelope.Success
// @Router /api/metrics [get]
func (h Handler) DashboardHandler(ctx context.Context, rc tenant.RequestContext) (httptransport.DashboardResponse, error) {
	dashboard, err := h.Dashboard.Execute(ctx, rc.TenantID)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	resp := httptransport.DashboardResponse{
		Overview: httptransport.DashboardOverview{
			TotalClientes:   dashboard.Counts.Clients,
			TotalProjetos:   dashboard.Counts.Projects,
			TotalDocumentos: dashboard.Counts.Documents,
			TotalOrcamentos: dashboard.Counts.Budgets,
		},
		Projetos:   httptransport.ProjectMetrics{PorStatus: make([]httptransport.ProjectStatusBucket, 0, len(dashboard.ProjectsByStatus))},
		Orcamentos: httptransport.BudgetMetrics{PorStatus: make([]httptransport.BudgetStatusBucket, 0, len(dashboard.BudgetsByStatus))},
		Timestamp:  formatTime(dashboard.GeneratedAt),
	}
	for _, bucket := range dashboard.ProjectsByStatus {
		resp.Projetos.PorStatus = append(resp.Projetos.PorStatus, httptransport.ProjectStatusBucket{
			StatusID: optionalString(bucket.StatusID),
			Status:   statusSummary(bucket.Status),
			Count:    bucket.Count,
		})
	}
	for _, bucket := range dashboard.BudgetsByStatus {
		resp.Orcamentos.PorStatus = append(resp.Orcamentos.PorStatus, httptransport.BudgetStatusBucket{
			Status: string(bucket.Status),
			Count:  bucket.Count,
		})
	}
	return resp, nil
}

// ProjectKanbanHandler godoc
// @Summary Projects grouped by status
// @Tags projetos
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param clienteId query string false "Client id"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/projetos/kanban [get]
func (h Handler) ProjectKanbanHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) ([]httptransport.ProjectKanbanColumn, error) {
	errs := validation.FieldErrors{}
	clientID := param(params, "clienteId")
	h.Validator.Var("clienteId", clientID, uuidTag, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	columns, err := h.ProjectKanban.Execute(ctx, queries.ProjectKanbanQuery{TenantID: rc.TenantID, ClientID: clientID})
	if err != nil {
		return nil, err
	}
	out := make([]httptransport.ProjectKanbanColumn, 0, len(columns))
	for _, column := range columns {
		item := httptransport.ProjectKanbanColumn{
			Status:   statusPtr(column.Status),
			Projetos: mapAll(column.Projects, mapProject),
		}
		if column.Status != nil {
			item.StatusID = optionalString(column.Status.ID)
		}
		out = append(out, item)
	}
	return out, nil
}

// BudgetKanbanHandler godoc
// @Summary Budgets grouped by lifecycle status
// @Tags orcamentos
// @Produce json
// @Param x-internal-key header string true "Internal API key"
// @Param x-tenant-id header string true "Tenant id"
// @Param projetoId query string false "Project id"
// @Success 200 {object} envelope.Success
// @Failure 400 {object} envelope.Failure
// @Router /api/orcamentos/kanban [get]
func (h Handler) BudgetKanbanHandler(ctx context.Context, rc tenant.RequestContext, params url.Values) ([]httptransport.BudgetKanbanColumn, error) {
	errs := validation.FieldErrors{}
	projectID := param(params, "projetoId")
	h.Validator.Var("projetoId", projectID, uuidTag, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	columns, err := h.BudgetKanban.Execute(ctx, queries.BudgetKanbanQuery{TenantID: rc.TenantID, ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	out := make([]httptransport.BudgetKanbanColumn, 0, len(columns))
	for _, column := range columns {
		total := 0.0
		for _, budget := range column.Budgets {
			total += budget.FinalValue
		}
		out = append(out, httptransport.BudgetKanbanColumn{
			Status:     string(column.Status),
			Orcamentos: mapAll(column.Budgets, mapBudget),
			ValorTotal: total,
		})
	}
	return out, nil
}

func listResponse[T any, D any](result queries.ListResult[T], mapper func(T) D) httptransport.ListResponse[D] {
	return httptransport.ListResponse[D]{
		Items: mapAll(result.Items, mapper),
		Page:  result.Page.Number,
		Limit: result.Page.Limit,
		Total: result.Total,
	}
}

func statusPtr(status *entities.ProjectStatus) *httptransport.ProjectStatusDTO {
	if status == nil {
		return nil
	}
	dto := mapProjectStatus(*status)
	return &dto
}
