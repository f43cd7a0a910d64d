package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"erpinterno/contexts/erp/erp-service/domain/entities"
	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"
	"erpinterno/contexts/erp/erp-service/ports"
	"erpinterno/internal/shared/query"
)

const tenantID = "11111111-1111-4111-8111-111111111111"

func TestStoreEmulatesUniqueIndexes(t *testing.T) {
	store := NewStore(Seed{}, nil)
	ctx := context.Background()

	company := entities.Company{ID: tenantID, CNPJ: "11222333000181"}
	if err := store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("create company: %v", err)
	}
	if err := store.CreateCompany(ctx, company); !errors.Is(err, domainerrors.ErrCompanyExists) {
		t.Fatalf("expected COMPANY_EXISTS, got %v", err)
	}
	other := entities.Company{ID: "22222222-2222-4222-8222-222222222222", CNPJ: company.CNPJ}
	if err := store.CreateCompany(ctx, other); !errors.Is(err, domainerrors.ErrCNPJExists) {
		t.Fatalf("expected CNPJ_EXISTS, got %v", err)
	}

	budget := entities.Budget{ID: "b-1", TenantID: tenantID, Number: "ORC-1"}
	if err := store.CreateBudget(ctx, budget); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	budget.ID = "b-2"
	if err := store.CreateBudget(ctx, budget); !errors.Is(err, domainerrors.ErrBudgetNumberExists) {
		t.Fatalf("expected ORCAMENTO_NUMBER_EXISTS, got %v", err)
	}
}

func TestStoreReturnsCopiesOfMutableFields(t *testing.T) {
	store := NewStore(Seed{Projects: []entities.Project{
		{ID: "p-1", TenantID: tenantID, Tags: []string{"a"}},
	}}, nil)

	items, _, err := store.ListProjects(context.Background(), query.ForTenant(tenantID), query.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	items[0].Tags[0] = "mutated"

	again, _, err := store.ListProjects(context.Background(), query.ForTenant(tenantID), query.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if again[0].Tags[0] != "a" {
		t.Fatalf("expected stored tags to be isolated, got %q", again[0].Tags[0])
	}
}

func TestStoreRejectsFilterWithoutTenant(t *testing.T) {
	store := NewStore(Seed{}, nil)
	_, _, err := store.ListClients(context.Background(), query.ForTenant(""), query.Page{Number: 1, Limit: 10})
	if !errors.Is(err, query.ErrMissingTenant) {
		t.Fatalf("expected missing tenant error, got %v", err)
	}
}

func TestStoreSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	store := NewStore(Seed{Budgets: []entities.Budget{
		{ID: "b-1", TenantID: tenantID, Number: "ORC-001", Title: "Reforma"},
		{ID: "b-2", TenantID: tenantID, Number: "ORC-002", Title: "Pintura", Description: "Inclui REFORMA da fachada"},
		{ID: "b-3", TenantID: tenantID, Number: "ORC-003", Title: "Telhado"},
	}}, nil)

	filter := query.ForTenant(tenantID).Search("reforma", ports.FieldNumber, ports.FieldTitle, ports.FieldDescription)
	items, total, err := store.ListBudgets(context.Background(), filter, query.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list budgets: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected two matches, got %d", total)
	}
}

func TestStoreClockOverride(t *testing.T) {
	store := NewStore(Seed{}, nil)
	fixed := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return fixed })
	if !store.Now().Equal(fixed) {
		t.Fatalf("expected overridden clock, got %s", store.Now())
	}
}
