package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"erpinterno/contexts/erp/erp-service/adapters/memory"
	"erpinterno/contexts/erp/erp-service/domain/entities"
	domainerrors "erpinterno/contexts/erp/erp-service/domain/errors"
	"erpinterno/internal/shared/query"
)

const (
	tenantA = "11111111-1111-4111-8111-111111111111"
	tenantB = "22222222-2222-4222-8222-222222222222"
	clientA = "aaaaaaaa-0000-4000-8000-000000000001"
	projA   = "aaaaaaaa-0000-4000-8000-000000000002"
	statusA = "aaaaaaaa-0000-4000-8000-000000000003"
)

var fixedNow = time.Date(2026, time.March, 9, 15, 30, 0, 0, time.UTC)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore(memory.Seed{
		Companies: []entities.Company{{ID: tenantA, LegalName: "Alfa LTDA", CNPJ: "11222333000181", CreatedAt: fixedNow}},
		Clients:   []entities.Client{{ID: clientA, TenantID: tenantA, LegalName: "Cliente Alfa", CNPJ: "44.555.666/0001-99", NormalizedCNPJ: "44555666000199", CreatedAt: fixedNow}},
		Projects:  []entities.Project{{ID: projA, TenantID: tenantA, ClientID: clientA, Subject: "Site", CreatedAt: fixedNow}},
		Statuses:  []entities.ProjectStatus{{ID: statusA, TenantID: tenantA, Name: "Backlog", CreatedAt: fixedNow}},
	}, nil)
	store.SetClock(func() time.Time { return fixedNow })
	return store
}

func TestCreateCompanyUsesTenantAsIDAndDefaults(t *testing.T) {
	store := newStore(t)
	uc := CreateCompanyUseCase{Companies: store, Clock: store}

	company, err := uc.Execute(context.Background(), CreateCompanyCommand{
		TenantID:  tenantB,
		LegalName: " Beta SA ",
		TradeName: "Beta",
		CNPJ:      "99888777000166",
		Address:   "Rua 1",
	})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	if company.ID != tenantB {
		t.Fatalf("expected company id to equal tenant, got %q", company.ID)
	}
	if company.LegalName != "Beta SA" {
		t.Fatalf("expected trimmed legal name, got %q", company.LegalName)
	}
	if company.Timezone != entities.DefaultTimezone || company.Currency != entities.DefaultCurrency || company.DateFormat != entities.DefaultDateFormat {
		t.Fatalf("expected defaults, got %+v", company)
	}
	if !company.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected clock timestamp, got %s", company.CreatedAt)
	}
}

func TestCreateCompanyRejectsCNPJOfAnotherTenant(t *testing.T) {
	store := newStore(t)
	uc := CreateCompanyUseCase{Companies: store, Clock: store}

	_, err := uc.Execute(context.Background(), CreateCompanyCommand{
		TenantID:  tenantB,
		LegalName: "Copia",
		TradeName: "Copia",
		CNPJ:      "11222333000181",
		Address:   "Rua 2",
	})
	if !errors.Is(err, domainerrors.ErrCNPJExists) {
		t.Fatalf("expected CNPJ_EXISTS, got %v", err)
	}

	items, total, err := store.ListCompanies(context.Background(), query.ForTenant(tenantB), query.Page{Number: 1, Limit: 20})
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("expected no write on conflict, got %d rows", total)
	}
}

func TestCreateCompanyRejectsSecondCompanyForTenant(t *testing.T) {
	store := newStore(t)
	uc := CreateCompanyUseCase{Companies: store, Clock: store}

	_, err := uc.Execute(context.Background(), CreateCompanyCommand{
		TenantID: tenantA,
		CNPJ:     "55666777000188",
	})
	if !errors.Is(err, domainerrors.ErrCompanyExists) {
		t.Fatalf("expected COMPANY_EXISTS, got %v", err)
	}
}

func TestCreateCompanyRequiresTenant(t *testing.T) {
	store := newStore(t)
	uc := CreateCompanyUseCase{Companies: store, Clock: store}

	_, err := uc.Execute(context.Background(), CreateCompanyCommand{TenantID: "  "})
	if !errors.Is(err, domainerrors.ErrTenantRequired) {
		t.Fatalf("expected tenant error, got %v", err)
	}
}

func TestCreateClientDuplicateCNPJIsScopedToTenant(t *testing.T) {
	store := newStore(t)
	uc := CreateClientUseCase{Clients: store, Clock: store, IDGen: store}
	cmd := CreateClientCommand{
		LegalName:  "Outro Cliente",
		CNPJ:       "44555666000199",
		Street:     "Rua A",
		Number:     "10",
		District:   "Centro",
		City:       "Recife",
		State:      "pe",
		PostalCode: "50000000",
	}

	cmd.TenantID = tenantA
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrCNPJExists) {
		t.Fatalf("expected CNPJ_EXISTS within tenant, got %v", err)
	}

	cmd.TenantID = tenantB
	client, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("expected same CNPJ to be accepted in another tenant, got %v", err)
	}
	if client.TenantID != tenantB || client.ID == "" {
		t.Fatalf("expected stamped tenant and id, got %+v", client)
	}
	if client.State != "PE" {
		t.Fatalf("expected uppercased state, got %q", client.State)
	}
}

func TestCreateProjectRequiresClientOfSameTenant(t *testing.T) {
	store := newStore(t)
	uc := CreateProjectUseCase{Projects: store, Clients: store, Statuses: store, Clock: store, IDGen: store}

	_, err := uc.Execute(context.Background(), CreateProjectCommand{
		TenantID:  tenantB,
		ClientID:  clientA,
		Subject:   "Vazamento",
		EntryDate: fixedNow,
	})
	if !errors.Is(err, domainerrors.ErrClientNotFound) {
		t.Fatalf("expected CLIENT_NOT_FOUND across tenants, got %v", err)
	}
}

func TestCreateProjectRejectsUnknownStatus(t *testing.T) {
	store := newStore(t)
	uc := CreateProjectUseCase{Projects: store, Clients: store, Statuses: store, Clock: store, IDGen: store}

	_, err := uc.Execute(context.Background(), CreateProjectCommand{
		TenantID:  tenantA,
		ClientID:  clientA,
		StatusID:  "bbbbbbbb-0000-4000-8000-000000000009",
		Subject:   "Portal",
		EntryDate: fixedNow,
	})
	if !errors.Is(err, domainerrors.ErrStatusNotFound) {
		t.Fatalf("expected STATUS_NOT_FOUND, got %v", err)
	}
}

func TestCreateProjectAppliesDefaults(t *testing.T) {
	store := newStore(t)
	uc := CreateProjectUseCase{Projects: store, Clients: store, Statuses: store, Clock: store, IDGen: store}

	project, err := uc.Execute(context.Background(), CreateProjectCommand{
		TenantID:  tenantA,
		ClientID:  clientA,
		StatusID:  statusA,
		Subject:   "Portal",
		EntryDate: fixedNow,
		Tags:      []string{" web ", ""},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Priority != entities.PriorityMedium {
		t.Fatalf("expected MEDIA priority, got %q", project.Priority)
	}
	if len(project.Tags) != 1 || project.Tags[0] != "web" {
		t.Fatalf("expected cleaned tags, got %#v", project.Tags)
	}
}

func TestCreateBudgetComputesFinalValue(t *testing.T) {
	store := newStore(t)
	uc := CreateBudgetUseCase{Budgets: store, Projects: store, Clock: store, IDGen: store}

	cases := []struct {
		number   string
		discount *float64
		want     float64
	}{
		{number: "ORC-1", discount: nil, want: 100},
		{number: "ORC-2", discount: ptr(30.0), want: 70},
		{number: "ORC-3", discount: ptr(150.0), want: 0},
	}
	for _, tc := range cases {
		budget, err := uc.Execute(context.Background(), CreateBudgetCommand{
			TenantID:   tenantA,
			ProjectID:  projA,
			Number:     tc.number,
			Title:      "Proposta",
			ValidUntil: fixedNow.Add(72 * time.Hour),
			TotalValue: 100,
			Discount:   tc.discount,
		})
		if err != nil {
			t.Fatalf("%s: create budget: %v", tc.number, err)
		}
		if budget.FinalValue != tc.want {
			t.Fatalf("%s: expected final value %v, got %v", tc.number, tc.want, budget.FinalValue)
		}
		if budget.Status != entities.BudgetStatusDraft || budget.Currency != entities.DefaultCurrency {
			t.Fatalf("%s: expected draft BRL defaults, got %s %s", tc.number, budget.Status, budget.Currency)
		}
	}
}

func TestCreateBudgetRejectsDuplicateNumberAndUnknownProject(t *testing.T) {
	store := newStore(t)
	uc := CreateBudgetUseCase{Budgets: store, Projects: store, Clock: store, IDGen: store}
	cmd := CreateBudgetCommand{
		TenantID:   tenantA,
		ProjectID:  projA,
		Number:     "ORC-9",
		Title:      "Proposta",
		ValidUntil: fixedNow,
		TotalValue: 10,
	}
	if _, err := uc.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrBudgetNumberExists) {
		t.Fatalf("expected ORCAMENTO_NUMBER_EXISTS, got %v", err)
	}

	cmd.TenantID = tenantB
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrProjectNotFound) {
		t.Fatalf("expected PROJECT_NOT_FOUND for foreign project, got %v", err)
	}
}

func TestCreateDocumentChecksOptionalReferences(t *testing.T) {
	store := newStore(t)
	uc := CreateDocumentUseCase{Documents: store, Projects: store, Clients: store, Categories: store, Clock: store, IDGen: store}
	cmd := CreateDocumentCommand{
		TenantID:    tenantA,
		UserID:      "user-7",
		Title:       "Contrato",
		StorageKey:  "docs/contrato.pdf",
		ContentType: "application/pdf",
		SizeBytes:   2048,
		CategoryID:  "cccccccc-0000-4000-8000-000000000001",
	}
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrCategoryNotFound) {
		t.Fatalf("expected CATEGORY_NOT_FOUND, got %v", err)
	}

	cmd.CategoryID = ""
	cmd.ProjectID = projA
	document, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if document.CreatedByID != "user-7" || document.UpdatedByID != "user-7" {
		t.Fatalf("expected acting user stamped, got %+v", document)
	}
	if document.Tags == nil {
		t.Fatalf("expected empty tags, got nil")
	}
}

func TestCreateProjectStatusRejectsDuplicateName(t *testing.T) {
	store := newStore(t)
	uc := CreateProjectStatusUseCase{Statuses: store, Clock: store, IDGen: store}

	if _, err := uc.Execute(context.Background(), CreateProjectStatusCommand{TenantID: tenantA, Name: "Backlog"}); !errors.Is(err, domainerrors.ErrStatusNameExists) {
		t.Fatalf("expected STATUS_NAME_EXISTS, got %v", err)
	}

	status, err := uc.Execute(context.Background(), CreateProjectStatusCommand{TenantID: tenantB, Name: "Backlog", Color: "#ff00aa"})
	if err != nil {
		t.Fatalf("expected name to be free in another tenant, got %v", err)
	}
	if status.Color != "#FF00AA" {
		t.Fatalf("expected uppercased color, got %q", status.Color)
	}
}

func TestCreateDocumentCategoryRejectsDuplicateName(t *testing.T) {
	store := newStore(t)
	uc := CreateDocumentCategoryUseCase{Categories: store, Clock: store, IDGen: store}

	if _, err := uc.Execute(context.Background(), CreateDocumentCategoryCommand{TenantID: tenantA, Name: "Contratos"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.Execute(context.Background(), CreateDocumentCategoryCommand{TenantID: tenantA, Name: "Contratos"}); !errors.Is(err, domainerrors.ErrCategoryNameExists) {
		t.Fatalf("expected CATEGORY_NAME_EXISTS, got %v", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
