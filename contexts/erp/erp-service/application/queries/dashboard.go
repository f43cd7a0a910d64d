package queries

import (
	"context"
	"log/slog"
	"sort"

	application "erpinterno/contexts/erp/erp-service/application"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"
)

type DashboardUseCase struct {
	Reader   ports.DashboardReader
	Statuses ports.ProjectStatusRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (uc DashboardUseCase) Execute(ctx context.Context, tenantID string) (entities.Dashboard, error) {
	tenantID, err := application.RequireTenant(tenantID)
	if err != nil {
		return entities.Dashboard{}, err
	}

	counts, err := uc.Reader.CountEntities(ctx, tenantID)
	if err != nil {
		return entities.Dashboard{}, err
	}
	byStatus, err := uc.Reader.CountProjectsByStatus(ctx, tenantID)
	if err != nil {
		return entities.Dashboard{}, err
	}
	byBudgetStatus, err := uc.Reader.CountBudgetsByStatus(ctx, tenantID)
	if err != nil {
		return entities.Dashboard{}, err
	}
	statuses, err := uc.Statuses.ListAllProjectStatuses(ctx, query.ForTenant(tenantID))
	if err != nil {
		return entities.Dashboard{}, err
	}

	dashboard := entities.Dashboard{
		GeneratedAt:      uc.Clock.Now(),
		Counts:           counts,
		ProjectsByStatus: groupProjectCounts(byStatus, statuses),
		BudgetsByStatus:  make([]entities.BudgetStatusCount, 0, len(byBudgetStatus)),
	}
	for _, status := range entities.BudgetStatuses {
		if n := byBudgetStatus[status]; n > 0 {
			dashboard.BudgetsByStatus = append(dashboard.BudgetsByStatus, entities.BudgetStatusCount{Status: status, Count: n})
		}
	}

	application.RequestLogger(ctx, uc.Logger).Info("dashboard metrics served",
		"event", "erp_dashboard_served",
		"module", application.ModuleName,
		"layer", "application",
		"projects", counts.Projects,
		"budgets", counts.Budgets,
	)
	return dashboard, nil
}

// groupProjectCounts follows the status board order; the unassigned bucket
// and ids that no longer resolve come last.
func groupProjectCounts(counts map[string]int, statuses []entities.ProjectStatus) []entities.StatusCount {
	out := make([]entities.StatusCount, 0, len(counts))
	seen := make(map[string]struct{}, len(statuses))
	for i := range statuses {
		status := statuses[i]
		seen[status.ID] = struct{}{}
		if n := counts[status.ID]; n > 0 {
			out = append(out, entities.StatusCount{StatusID: status.ID, Status: &status, Count: n})
		}
	}

	var orphans []string
	for id := range counts {
		if _, ok := seen[id]; !ok && id != "" {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		out = append(out, entities.StatusCount{StatusID: id, Count: counts[id]})
	}
	if n := counts[""]; n > 0 {
		out = append(out, entities.StatusCount{Count: n})
	}
	return out
}
