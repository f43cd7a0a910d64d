package queries

import (
	"context"

	"erpinterno/contexts/erp/erp-service/domain/entities"
	"erpinterno/contexts/erp/erp-service/ports"
)

// Relations attaches referenced rows to a page of results with one lookup
// per relation.
type Relations struct {
	Reader ports.RelationReader
}

func (r Relations) Projects(ctx context.Context, tenantID string, projects []entities.Project) ([]entities.ProjectListing, error) {
	out := make([]entities.ProjectListing, 0, len(projects))
	if len(projects) == 0 {
		return out, nil
	}
	clients, statuses, err := r.projectRefs(ctx, tenantID, projects)
	if err != nil {
		return nil, err
	}
	counts, err := r.Reader.CountProjectChildren(ctx, tenantID, distinct(projects, func(p entities.Project) string { return p.ID }))
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		out = append(out, listProject(project, clients, statuses, counts[project.ID]))
	}
	return out, nil
}

func (r Relations) Budgets(ctx context.Context, tenantID string, budgets []entities.Budget) ([]entities.BudgetListing, error) {
	out := make([]entities.BudgetListing, 0, len(budgets))
	if len(budgets) == 0 {
		return out, nil
	}
	byID, err := r.Reader.ProjectsByID(ctx, tenantID, distinct(budgets, func(b entities.Budget) string { return b.ProjectID }))
	if err != nil {
		return nil, err
	}
	projects := make([]entities.Project, 0, len(byID))
	for _, project := range byID {
		projects = append(projects, project)
	}
	clients, statuses, err := r.projectRefs(ctx, tenantID, projects)
	if err != nil {
		return nil, err
	}
	for _, budget := range budgets {
		row := entities.BudgetListing{Budget: budget}
		if project, ok := byID[budget.ProjectID]; ok {
			listing := listProject(project, clients, statuses, entities.ProjectCounts{})
			row.Project = &listing
		}
		out = append(out, row)
	}
	return out, nil
}

func (r Relations) projectRefs(ctx context.Context, tenantID string, projects []entities.Project) (map[string]entities.Client, map[string]entities.ProjectStatus, error) {
	clients, err := r.Reader.ClientsByID(ctx, tenantID, distinct(projects, func(p entities.Project) string { return p.ClientID }))
	if err != nil {
		return nil, nil, err
	}
	statuses, err := r.Reader.ProjectStatusesByID(ctx, tenantID, distinct(projects, func(p entities.Project) string { return p.StatusID }))
	if err != nil {
		return nil, nil, err
	}
	return clients, statuses, nil
}

func listProject(project entities.Project, clients map[string]entities.Client, statuses map[string]entities.ProjectStatus, counts entities.ProjectCounts) entities.ProjectListing {
	row := entities.ProjectListing{Project: project, Counts: counts}
	if client, ok := clients[project.ClientID]; ok {
		row.Client = &client
	}
	if status, ok := statuses[project.StatusID]; ok {
		row.Status = &status
	}
	return row
}

// distinct collects the non-empty keys of items in first-seen order.
func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
