package erpservice

import (
	"log/slog"

	httpadapter "erpinterno/contexts/erp/erp-service/adapters/http"
	"erpinterno/contexts/erp/erp-service/adapters/memory"
	"erpinterno/contexts/erp/erp-service/application/commands"
	"erpinterno/contexts/erp/erp-service/application/queries"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/validation"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Companies   ports.CompanyRepository
	Clients     ports.ClientRepository
	Projects    ports.ProjectRepository
	Documents   ports.DocumentRepository
	Budgets     ports.BudgetRepository
	Statuses    ports.ProjectStatusRepository
	Categories  ports.DocumentCategoryRepository
	Dashboard   ports.DashboardReader
	Relations   ports.RelationReader
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			ListCompanies: queries.ListCompaniesUseCase{
				Companies: deps.Companies,
				Logger:    deps.Logger,
			},
			CreateCompany: commands.CreateCompanyUseCase{
				Companies: deps.Companies,
				Clock:     deps.Clock,
				Logger:    deps.Logger,
			},
			ListClients: queries.ListClientsUseCase{
				Clients: deps.Clients,
				Logger:  deps.Logger,
			},
			CreateClient: commands.CreateClientUseCase{
				Clients: deps.Clients,
				Clock:   deps.Clock,
				IDGen:   deps.IDGenerator,
				Logger:  deps.Logger,
			},
			ListProjects: queries.ListProjectsUseCase{
				Projects:  deps.Projects,
				Relations: queries.Relations{Reader: deps.Relations},
				Logger:    deps.Logger,
			},
			CreateProject: commands.CreateProjectUseCase{
				Projects: deps.Projects,
				Clients:  deps.Clients,
				Statuses: deps.Statuses,
				Clock:    deps.Clock,
				IDGen:    deps.IDGenerator,
				Logger:   deps.Logger,
			},
			ListDocuments: queries.ListDocumentsUseCase{
				Documents: deps.Documents,
				Logger:    deps.Logger,
			},
			CreateDocument: commands.CreateDocumentUseCase{
				Documents:  deps.Documents,
				Projects:   deps.Projects,
				Clients:    deps.Clients,
				Categories: deps.Categories,
				Clock:      deps.Clock,
				IDGen:      deps.IDGenerator,
				Logger:     deps.Logger,
			},
			ListBudgets: queries.ListBudgetsUseCase{
				Budgets:   deps.Budgets,
				Relations: queries.Relations{Reader: deps.Relations},
				Logger:    deps.Logger,
			},
			CreateBudget: commands.CreateBudgetUseCase{
				Budgets:  deps.Budgets,
				Projects: deps.Projects,
				Clock:    deps.Clock,
				IDGen:    deps.IDGenerator,
				Logger:   deps.Logger,
			},
			ListProjectStatuses: queries.ListProjectStatusesUseCase{
				Statuses: deps.Statuses,
				Logger:   deps.Logger,
			},
			CreateProjectStatus: commands.CreateProjectStatusUseCase{
				Statuses: deps.Statuses,
				Clock:    deps.Clock,
				IDGen:    deps.IDGenerator,
				Logger:   deps.Logger,
			},
			ListDocumentCategories: queries.ListDocumentCategoriesUseCase{
				Categories: deps.Categories,
				Logger:     deps.Logger,
			},
			CreateDocumentCategory: commands.CreateDocumentCategoryUseCase{
				Categories: deps.Categories,
				Clock:      deps.Clock,
				IDGen:      deps.IDGenerator,
				Logger:     deps.Logger,
			},
			Dashboard: queries.DashboardUseCase{
				Reader:   deps.Dashboard,
				Statuses: deps.Statuses,
				Clock:    deps.Clock,
				Logger:   deps.Logger,
			},
			ProjectKanban: queries.ProjectKanbanUseCase{
				Projects: deps.Projects,
				Statuses: deps.Statuses,
				Logger:   deps.Logger,
			},
			BudgetKanban: queries.BudgetKanbanUseCase{
				Budgets: deps.Budgets,
				Logger:  deps.Logger,
			},
			Validator: validation.New(),
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(seed memory.Seed, logger *slog.Logger) Module {
	store := memory.NewStore(seed, logger)
	module := NewModule(Dependencies{
		Companies:   store,
		Clients:     store,
		Projects:    store,
		Documents:   store,
		Budgets:     store,
		Statuses:    store,
		Categories:  store,
		Dashboard:   store,
		Relations:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
