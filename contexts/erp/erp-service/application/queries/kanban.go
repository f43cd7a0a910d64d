package queries

import (
	"context"
	"log/slog"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"
)

type ProjectKanbanQuery struct {
	TenantID string
	ClientID string
}

// ProjectKanbanUseCase lays projects out in status columns ordered by the
// status board order, plus a trailing column without status.
type ProjectKanbanUseCase struct {
	Projects ports.ProjectRepository
	Statuses ports.ProjectStatusRepository
	Logger   *slog.Logger
}

func (uc ProjectKanbanUseCase) Execute(ctx context.Context, q ProjectKanbanQuery) ([]entities.ProjectColumn, error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return nil, err
	}
	statuses, err := uc.Statuses.ListAllProjectStatuses(ctx, query.ForTenant(tenantID))
	if err != nil {
		return nil, err
	}
	filter := query.ForTenant(tenantID).Eq(ports.FieldClientID, q.ClientID)
	projects, err := uc.Projects.ListAllProjects(ctx, filter)
	if err != nil {
		return nil, err
	}

	columns := make([]entities.ProjectColumn, 0, len(statuses)+1)
	index := make(map[string]int, len(statuses))
	for i := range statuses {
		status := statuses[i]
		index[status.ID] = len(columns)
		columns = append(columns, entities.ProjectColumn{Status: &status, Projects: []entities.Project{}})
	}
	unassigned := entities.ProjectColumn{Projects: []entities.Project{}}
	for _, project := range projects {
		if pos, ok := index[project.StatusID]; ok {
			columns[pos].Projects = append(columns[pos].Projects, project)
			continue
		}
		unassigned.Projects = append(unassigned.Projects, project)
	}
	columns = append(columns, unassigned)

	application.RequestLogger(ctx, uc.Logger).Info("project kanban served",
		"event", "erp_project_kanban_served",
		"module", application.ModuleName,
		"layer", "application",
		"columns", len(columns),
		"projects", len(projects),
	)
	return columns, nil
}

type BudgetKanbanQuery struct {
	TenantID  string
	ProjectID string
}

// BudgetKanbanUseCase buckets budgets by lifecycle status in enum order.
type BudgetKanbanUseCase struct {
	Budgets ports.BudgetRepository
	Logger  *slog.Logger
}

func (uc BudgetKanbanUseCase) Execute(ctx context.Context, q BudgetKanbanQuery) ([]entities.BudgetColumn, error) {
	tenantID, err := application.RequireTenant(q.TenantID)
	if err != nil {
		return nil, err
	}
	filter := query.ForTenant(tenantID).Eq(ports.FieldProjectID, q.ProjectID)
	budgets, err := uc.Budgets.ListAllBudgets(ctx, filter)
	if err != nil {
		return nil, err
	}

	columns := make([]entities.BudgetColumn, len(entities.BudgetStatuses))
	index := make(map[entities.BudgetStatus]int, len(entities.BudgetStatuses))
	for i, status := range entities.BudgetStatuses {
		columns[i] = entities.BudgetColumn{Status: status, Budgets: []entities.Budget{}}
		index[status] = i
	}
	for _, budget := range budgets {
		pos, ok := index[budget.Status]
		if !ok {
			pos = index[entities.BudgetStatusDraft]
		}
		columns[pos].Budgets = append(columns[pos].Budgets, budget)
	}

	application.RequestLogger(ctx, uc.Logger).Info("budget kanban served",
		"event", "erp_budget_kanban_served",
		"module", application.ModuleName,
		"layer", "application",
		"budgets", len(budgets),
	)
	return columns, nil
}
