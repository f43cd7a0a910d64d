package queries

import (
	"context"
	"fmt"
	"testing"
	"time"

	"erpinterno/contexts/erp/erp-service/adapters/memory"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tenantA = "11111111-1111-4111-8111-111111111111"
	tenantB = "22222222-2222-4222-8222-222222222222"
)

var base = time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func clientsFor(tenantID string, n int, prefix string) []entities.Client {
	out := make([]entities.Client, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entities.Client{
			ID:        fmt.Sprintf("%s-%02d", prefix, i),
			TenantID:  tenantID,
			LegalName: fmt.Sprintf("Cliente %02d", i),
			Segment:   []string{"varejo", "industria"}[i%2],
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestListClientsPaginatesNewestFirst(t *testing.T) {
	store := memory.NewStore(memory.Seed{Clients: clientsFor(tenantA, 45, "a")}, nil)
	uc := ListClientsUseCase{Clients: store}

	result, err := uc.Execute(context.Background(), ListClientsQuery{
		TenantID: tenantA,
		Page:     query.Page{Number: 3, Limit: 20, SortDesc: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 45, result.Total)
	require.Len(t, result.Items, 5)
	assert.Equal(t, "a-04", result.Items[0].ID)
	assert.Equal(t, "a-00", result.Items[4].ID)
}

func TestListClientsNeverLeaksOtherTenants(t *testing.T) {
	seed := append(clientsFor(tenantA, 3, "a"), clientsFor(tenantB, 4, "b")...)
	store := memory.NewStore(memory.Seed{Clients: seed}, nil)
	uc := ListClientsUseCase{Clients: store}

	result, err := uc.Execute(context.Background(), ListClientsQuery{
		TenantID: tenantB,
		Page:     query.Page{Number: 1, Limit: 100, SortDesc: true},
		Search:   "cliente",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	for _, item := range result.Items {
		assert.Equal(t, tenantB, item.TenantID)
	}
}

func TestListClientsFiltersBySegmentAndSkipsDeleted(t *testing.T) {
	seed := clientsFor(tenantA, 6, "a")
	deletedAt := base
	seed[0].DeletedAt = &deletedAt
	store := memory.NewStore(memory.Seed{Clients: seed}, nil)
	uc := ListClientsUseCase{Clients: store}

	result, err := uc.Execute(context.Background(), ListClientsQuery{
		TenantID: tenantA,
		Page:     query.Page{Number: 1, Limit: 20},
		Segment:  "varejo",
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		ids = append(ids, item.ID)
	}
	if diff := cmp.Diff([]string{"a-02", "a-04"}, ids); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
}

func TestListProjectStatusesBreaksTiesOnID(t *testing.T) {
	store := memory.NewStore(memory.Seed{Statuses: []entities.ProjectStatus{
		{ID: "s-2", TenantID: tenantA, Name: "B", CreatedAt: base},
		{ID: "s-1", TenantID: tenantA, Name: "A", CreatedAt: base},
		{ID: "s-3", TenantID: tenantA, Name: "C", CreatedAt: base},
	}}, nil)
	uc := ListProjectStatusesUseCase{Statuses: store}

	result, err := uc.Execute(context.Background(), ListProjectStatusesQuery{
		TenantID: tenantA,
		Page:     query.Page{Number: 1, Limit: 20, SortDesc: true},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, []string{"s-1", "s-2", "s-3"}, []string{result.Items[0].ID, result.Items[1].ID, result.Items[2].ID})
}

func TestListCompaniesReturnsOnlyTenantRow(t *testing.T) {
	store := memory.NewStore(memory.Seed{Companies: []entities.Company{
		{ID: tenantA, LegalName: "Alfa", CreatedAt: base},
		{ID: tenantB, LegalName: "Beta", CreatedAt: base},
	}}, nil)
	uc := ListCompaniesUseCase{Companies: store}

	result, err := uc.Execute(context.Background(), ListCompaniesQuery{TenantID: tenantA, Page: query.Page{Number: 1, Limit: 20}})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Alfa", result.Items[0].LegalName)
}

func kanbanSeed() memory.Seed {
	return memory.Seed{
		Statuses: []entities.ProjectStatus{
			{ID: "st-late", TenantID: tenantA, Name: "Entregue", Order: intPtr(3), CreatedAt: base},
			{ID: "st-first", TenantID: tenantA, Name: "Backlog", Order: intPtr(1), CreatedAt: base},
			{ID: "st-unset", TenantID: tenantA, Name: "Arquivo", CreatedAt: base},
			{ID: "st-other", TenantID: tenantB, Name: "Outro", Order: intPtr(0), CreatedAt: base},
		},
		Projects: []entities.Project{
			{ID: "p-1", TenantID: tenantA, ClientID: "c-1", StatusID: "st-first", Subject: "Um", CreatedAt: base},
			{ID: "p-2", TenantID: tenantA, ClientID: "c-1", StatusID: "st-first", Subject: "Dois", CreatedAt: base.Add(time.Hour)},
			{ID: "p-3", TenantID: tenantA, ClientID: "c-2", Subject: "Tres", CreatedAt: base},
			{ID: "p-4", TenantID: tenantA, ClientID: "c-2", StatusID: "st-gone", Subject: "Quatro", CreatedAt: base},
			{ID: "p-5", TenantID: tenantB, ClientID: "c-9", StatusID: "st-other", Subject: "Cinco", CreatedAt: base},
		},
		Budgets: []entities.Budget{
			{ID: "b-1", TenantID: tenantA, ProjectID: "p-1", Status: entities.BudgetStatusApproved, FinalValue: 50, CreatedAt: base},
			{ID: "b-2", TenantID: tenantA, ProjectID: "p-1", Status: entities.BudgetStatusDraft, FinalValue: 10, CreatedAt: base},
			{ID: "b-3", TenantID: tenantA, ProjectID: "p-2", Status: entities.BudgetStatusApproved, FinalValue: 5, CreatedAt: base.Add(time.Hour)},
			{ID: "b-4", TenantID: tenantB, ProjectID: "p-5", Status: entities.BudgetStatusSent, CreatedAt: base},
		},
	}
}

func TestProjectKanbanOrdersColumnsAndAppendsUnassigned(t *testing.T) {
	store := memory.NewStore(kanbanSeed(), nil)
	uc := ProjectKanbanUseCase{Projects: store, Statuses: store}

	columns, err := uc.Execute(context.Background(), ProjectKanbanQuery{TenantID: tenantA})
	require.NoError(t, err)
	require.Len(t, columns, 4)

	assert.Equal(t, "st-first", columns[0].Status.ID)
	assert.Equal(t, "st-late", columns[1].Status.ID)
	assert.Equal(t, "st-unset", columns[2].Status.ID)
	assert.Nil(t, columns[3].Status)

	require.Len(t, columns[0].Projects, 2)
	assert.Equal(t, "p-2", columns[0].Projects[0].ID, "newest first")
	assert.Empty(t, columns[1].Projects)

	unassigned := []string{}
	for _, p := range columns[3].Projects {
		unassigned = append(unassigned, p.ID)
	}
	assert.ElementsMatch(t, []string{"p-3", "p-4"}, unassigned)
}

func TestProjectKanbanFiltersByClient(t *testing.T) {
	store := memory.NewStore(kanbanSeed(), nil)
	uc := ProjectKanbanUseCase{Projects: store, Statuses: store}

	columns, err := uc.Execute(context.Background(), ProjectKanbanQuery{TenantID: tenantA, ClientID: "c-2"})
	require.NoError(t, err)
	assert.Empty(t, columns[0].Projects)
	assert.Len(t, columns[len(columns)-1].Projects, 2)
}

func TestBudgetKanbanHasOneColumnPerStatus(t *testing.T) {
	store := memory.NewStore(kanbanSeed(), nil)
	uc := BudgetKanbanUseCase{Budgets: store}

	columns, err := uc.Execute(context.Background(), BudgetKanbanQuery{TenantID: tenantA})
	require.NoError(t, err)
	require.Len(t, columns, len(entities.BudgetStatuses))
	for i, status := range entities.BudgetStatuses {
		assert.Equal(t, status, columns[i].Status)
	}
	assert.Len(t, columns[0].Budgets, 1)
	assert.Empty(t, columns[1].Budgets)
	assert.Len(t, columns[2].Budgets, 2)

	columns, err = uc.Execute(context.Background(), BudgetKanbanQuery{TenantID: tenantA, ProjectID: "p-2"})
	require.NoError(t, err)
	assert.Len(t, columns[2].Budgets, 1)
	assert.Empty(t, columns[0].Budgets)
}

func TestDashboardGroupsByStatusBoardOrder(t *testing.T) {
	store := memory.NewStore(kanbanSeed(), nil)
	store.SetClock(func() time.Time { return base })
	uc := DashboardUseCase{Reader: store, Statuses: store, Clock: store}

	dashboard, err := uc.Execute(context.Background(), tenantA)
	require.NoError(t, err)
	assert.Equal(t, base, dashboard.GeneratedAt)

	assert.Equal(t, entities.DashboardCounts{Projects: 4, Budgets: 3}, dashboard.Counts)

	require.Len(t, dashboard.ProjectsByStatus, 3)
	assert.Equal(t, "st-first", dashboard.ProjectsByStatus[0].StatusID)
	assert.Equal(t, 2, dashboard.ProjectsByStatus[0].Count)
	require.NotNil(t, dashboard.ProjectsByStatus[0].Status)
	assert.Equal(t, "Backlog", dashboard.ProjectsByStatus[0].Status.Name)

	assert.Equal(t, "st-gone", dashboard.ProjectsByStatus[1].StatusID, "orphan status ids follow known ones")
	assert.Nil(t, dashboard.ProjectsByStatus[1].Status)
	assert.Equal(t, "", dashboard.ProjectsByStatus[2].StatusID, "unassigned comes last")

	want := []entities.BudgetStatusCount{
		{Status: entities.BudgetStatusDraft, Count: 1},
		{Status: entities.BudgetStatusApproved, Count: 2},
	}
	if diff := cmp.Diff(want, dashboard.BudgetsByStatus); diff != "" {
		t.Fatalf("unexpected budget buckets (-want +got):\n%s", diff)
	}
}

func relationSeed() memory.Seed {
	seed := kanbanSeed()
	deleted := base.Add(2 * time.Hour)
	seed.Clients = []entities.Client{
		{ID: "c-1", TenantID: tenantA, LegalName: "Acme Ltda", TradeName: "Acme", Segment: "varejo", CreatedAt: base},
		{ID: "c-2", TenantID: tenantA, LegalName: "Brava SA", Segment: "industria", CreatedAt: base},
		{ID: "c-9", TenantID: tenantB, LegalName: "Acme Sul", Segment: "varejo", CreatedAt: base},
	}
	seed.Documents = []entities.Document{
		{ID: "d-1", TenantID: tenantA, ProjectID: "p-1", Title: "Planta", CreatedAt: base},
		{ID: "d-2", TenantID: tenantA, ProjectID: "p-1", Title: "Antiga", CreatedAt: base, DeletedAt: &deleted},
	}
	return seed
}

func projectIDs(rows []entities.ProjectListing) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out
}

func budgetIDs(rows []entities.BudgetListing) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out
}

func TestListProjectsAttachesClientStatusAndCounts(t *testing.T) {
	store := memory.NewStore(relationSeed(), nil)
	uc := ListProjectsUseCase{Projects: store, Relations: Relations{Reader: store}}
	page := query.Page{Number: 1, Limit: 10}

	result, err := uc.Execute(context.Background(), ListProjectsQuery{TenantID: tenantA, Page: page, ProjectID: "p-1"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	row := result.Items[0]
	require.NotNil(t, row.Client)
	assert.Equal(t, "Acme Ltda", row.Client.LegalName)
	require.NotNil(t, row.Status)
	assert.Equal(t, "Backlog", row.Status.Name)
	assert.Equal(t, entities.ProjectCounts{Documents: 1, Budgets: 2}, row.Counts, "deleted documents are not counted")

	result, err = uc.Execute(context.Background(), ListProjectsQuery{TenantID: tenantA, Page: page, ProjectID: "p-4"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.NotNil(t, result.Items[0].Client)
	assert.Nil(t, result.Items[0].Status, "unresolved status stays empty")
}

func TestListProjectsFiltersByClientSegment(t *testing.T) {
	store := memory.NewStore(relationSeed(), nil)
	uc := ListProjectsUseCase{Projects: store, Relations: Relations{Reader: store}}

	result, err := uc.Execute(context.Background(), ListProjectsQuery{TenantID: tenantA, Page: query.Page{Number: 1, Limit: 10}, Segment: "industria"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p-3", "p-4"}, projectIDs(result.Items))
	assert.Equal(t, 2, result.Total)
}

func TestListBudgetsFiltersAndSearchesThroughProject(t *testing.T) {
	store := memory.NewStore(relationSeed(), nil)
	uc := ListBudgetsUseCase{Budgets: store, Relations: Relations{Reader: store}}
	page := query.Page{Number: 1, Limit: 10}

	cases := []struct {
		name string
		q    ListBudgetsQuery
		want []string
	}{
		{"client of project", ListBudgetsQuery{ClientID: "c-1"}, []string{"b-1", "b-2", "b-3"}},
		{"segment of client", ListBudgetsQuery{Segment: "industria"}, []string{}},
		{"project subject", ListBudgetsQuery{Search: "dois"}, []string{"b-3"}},
		{"client legal name", ListBudgetsQuery{Search: "ACME"}, []string{"b-1", "b-2", "b-3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.q
			q.TenantID = tenantA
			q.Page = page
			result, err := uc.Execute(context.Background(), q)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.want, budgetIDs(result.Items))
		})
	}
}

func TestListBudgetsEmbedsProjectSummary(t *testing.T) {
	store := memory.NewStore(relationSeed(), nil)
	uc := ListBudgetsUseCase{Budgets: store, Relations: Relations{Reader: store}}

	result, err := uc.Execute(context.Background(), ListBudgetsQuery{TenantID: tenantA, Page: query.Page{Number: 1, Limit: 10}, ProjectID: "p-2"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	project := result.Items[0].Project
	require.NotNil(t, project)
	assert.Equal(t, "Dois", project.Subject)
	require.NotNil(t, project.Client)
	assert.Equal(t, "c-1", project.Client.ID)
	require.NotNil(t, project.Status)
	assert.Equal(t, "st-first", project.Status.ID)
}

func TestQueriesRequireTenant(t *testing.T) {
	store := memory.NewStore(memory.Seed{}, nil)
	_, err := ListDocumentsUseCase{Documents: store}.Execute(context.Background(), ListDocumentsQuery{})
	assert.Error(t, err)
	_, err = DashboardUseCase{Reader: store, Statuses: store, Clock: store}.Execute(context.Background(), "")
	assert.Error(t, err)
}

var (
	_ ports.DashboardReader = (*memory.Store)(nil)
	_ ports.RelationReader  = (*memory.Store)(nil)
)
